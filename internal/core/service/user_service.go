package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// UserService implements profile access and password changes for the caller's
// own account.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

func (s *UserService) Profile(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.repo.FindByID(ctx, id.ID)
}

// ChangePassword rehashes and stores the new password after re-verifying the
// current one. Last write wins on concurrent changes; the row itself is the
// only serialization point.
func (s *UserService) ChangePassword(ctx context.Context, id domain.Identity, current, next string) error {
	user, err := s.repo.FindByID(ctx, id.ID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.logger.Info().Str("username", user.Username).Msg("password changed")
	return nil
}
