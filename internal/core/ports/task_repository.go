package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	// FindByIdempotencyKey retrieves the task previously created by the same
	// owner with the same Idempotency-Key, if any.
	FindByIdempotencyKey(ctx context.Context, ownerID int64, key string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)
	ListAll(ctx context.Context) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id int64) error
}
