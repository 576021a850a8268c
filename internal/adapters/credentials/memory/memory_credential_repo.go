package memory

import (
	"context"

	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/auth/model"
	customErrors "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/config"
	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
)

var argonParams = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// CredentialRepo holds the one account configured at startup. It is never
// written after construction, so concurrent reads need no locking.
type CredentialRepo struct {
	cred  model.Credential
	decoy string
}

func NewCredentialRepo(cred model.Credential) (*CredentialRepo, error) {
	if cred.Username == "" || cred.PasswordHash == "" {
		return nil, customErrors.NewInvalidArgument("credential requires username and password hash")
	}
	params, _, _, err := argon2id.DecodeHash(cred.PasswordHash)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "decode admin password hash")
	}
	decoy, err := argon2id.CreateHash(uuid.NewString(), params)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "hash decoy password")
	}
	return &CredentialRepo{cred: cred, decoy: decoy}, nil
}

// NewFromConfig uses ADMIN_PASSWORD_HASH when present, otherwise hashes
// ADMIN_PASSWORD (with the pepper) once.
func NewFromConfig(cfg *config.Config) (*CredentialRepo, error) {
	hash := cfg.AdminPasswordHash
	if hash == "" {
		if cfg.AdminPassword == "" {
			return nil, customErrors.NewInvalidArgument("admin password is not configured")
		}
		var err error
		hash, err = argon2id.CreateHash(cfg.AdminPassword+cfg.PasswordPepper, argonParams)
		if err != nil {
			return nil, customErrors.WrapInternal(err, "hash admin password")
		}
	}
	return NewCredentialRepo(model.Credential{Username: cfg.AdminUser, PasswordHash: hash})
}

func (r *CredentialRepo) GetByUsername(_ context.Context, username string) (model.Credential, error) {
	if username != r.cred.Username {
		return model.Credential{}, customErrors.ErrNotFound
	}
	return r.cred, nil
}


// DecoyHash is a hash of a random secret made with the same argon2id
// parameters as the stored credential.
func (r *CredentialRepo) DecoyHash() string {
	return r.decoy
}
