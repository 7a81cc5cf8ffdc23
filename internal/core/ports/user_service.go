package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

type UserService interface {
	Profile(ctx context.Context, id domain.Identity) (*domain.User, error)
	// ChangePassword re-verifies the current password before storing the new
	// hash; a mismatch fails with domain.ErrInvalidCredentials.
	ChangePassword(ctx context.Context, id domain.Identity, current, next string) error
}
