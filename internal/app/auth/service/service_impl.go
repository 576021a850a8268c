package service

import (
	"context"
	"errors"
	"time"

	"github.com/Miraines/MoonyAndStarry/qr-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/auth/jwt"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/auth/model"
	repo "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/auth/repo"
	customErrors "github.com/Miraines/MoonyAndStarry/qr-service/internal/domain/errors"
	"github.com/Miraines/MoonyAndStarry/qr-service/internal/infra/config"
	"github.com/alexedwards/argon2id"
	"github.com/go-playground/validator/v10"
)

type authService struct {
	credRepo repo.CredentialRepo
	jwtUtil  jwt.JWTUtil
	cfg      *config.Config
	v        *validator.Validate
}

type Service interface {
	Issue(context.Context, dto.TokenRequestDTO) (model.Token, error)
	Verify(ctx context.Context, accessToken string) (model.Identity, error)
}

func New(
	cr repo.CredentialRepo,
	jm jwt.JWTUtil,
	cfg *config.Config,
	v *validator.Validate,
) Service {
	return &authService{
		credRepo: cr, jwtUtil: jm, cfg: cfg, v: v,
	}
}

func (a *authService) Issue(ctx context.Context, dto dto.TokenRequestDTO) (model.Token, error) {
	if err := a.v.Struct(dto); err != nil {
		return model.Token{}, customErrors.NewInvalidArgument(err.Error())
	}

	cred, err := a.credRepo.GetByUsername(ctx, dto.Username)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		_, _ = argon2id.ComparePasswordAndHash(dto.Password+a.cfg.PasswordPepper, a.credRepo.DecoyHash())
		return model.Token{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.Token{}, customErrors.WrapInternal(err, "Issue")
	}

	ok, err := argon2id.ComparePasswordAndHash(dto.Password+a.cfg.PasswordPepper, cred.PasswordHash)
	if err != nil {
		return model.Token{}, customErrors.WrapInternal(err, "Issue")
	}
	if !ok {
		return model.Token{}, customErrors.ErrInvalidCredentials
	}

	at, atExp, _, err := a.jwtUtil.GenerateAccessToken(cred.Username)
	if err != nil {
		return model.Token{}, customErrors.WrapInternal(err, "GenerateAccessToken")
	}

	return model.Token{
		AccessToken: at,
		TokenType:   model.TokenTypeBearer,
		ExpiresAt:   atExp,
		AccessTTL:   time.Until(atExp),
	}, nil
}

func (a *authService) Verify(_ context.Context, accessToken string) (model.Identity, error) {
	if accessToken == "" {
		return model.Identity{}, customErrors.ErrUnauthenticated
	}

	claims, err := a.jwtUtil.ValidateAccessToken(accessToken)
	if err != nil {
		return model.Identity{}, customErrors.ErrInvalidToken
	}

	id := model.Identity{
		Username: claims.Subject,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, nil
}
