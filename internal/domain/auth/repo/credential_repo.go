package repo

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/auth/model"
)

type CredentialRepo interface {
	GetByUsername(ctx context.Context, username string) (model.Credential, error)
	// DecoyHash is compared against when the username is unknown so a
	// failed login costs the same either way.
	DecoyHash() string
}
