package services

import (
	"context"
	"errors"

	jwtutil "jiansou/backend/app/jwt"
	"jiansou/backend/app/models"
	"jiansou/backend/app/repo"

	"github.com/rs/zerolog"
)

// IdentityService turns bearer tokens into active users.
type IdentityService struct {
	users  *repo.UserRepository
	signer *jwtutil.Signer
	log    zerolog.Logger
}

func NewIdentityService(users *repo.UserRepository, signer *jwtutil.Signer, log zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, signer: signer, log: log}
}

// ResolveRequired fails with ErrUnauthorized for a missing or invalid token,
// an unknown subject, or an inactive user. Storage failures are returned as is.
func (s *IdentityService) ResolveRequired(ctx context.Context, token string) (*models.User, error) {
	username, err := s.signer.Subject(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrUnauthorized
	}
	return u, nil
}

// ResolveOptional is ResolveRequired for endpoints that serve anonymous
// callers: every failure yields nil.
func (s *IdentityService) ResolveOptional(ctx context.Context, token string) *models.User {
	if token == "" {
		return nil
	}
	u, err := s.ResolveRequired(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrUnauthorized) {
			s.log.Debug().Err(err).Msg("optional identity lookup failed")
		}
		return nil
	}
	return u
}

// Owner maps an optional user to the owner used by list operations.
func Owner(u *models.User) models.Owner {
	if u == nil {
		return models.VirtualOwner()
	}
	return models.UserOwner(u.ID)
}
