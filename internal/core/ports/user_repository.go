package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// UserRepository defines persistence operations for credential records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
