package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task. IdempotencyKey is
// optional; when present, replays return the originally created task.
type CreateTaskInput struct {
	Title          string
	Description    string
	Priority       int
	Completed      bool
	IdempotencyKey string
}

// UpdateTaskInput carries the full replacement state for a task.
type UpdateTaskInput struct {
	Title       string
	Description string
	Priority    int
	Completed   bool
}

// CreateTaskResult is returned by Create. AlreadyExisted is true when the
// Idempotency-Key matched a previous creation.
type CreateTaskResult struct {
	Task           *domain.Task
	AlreadyExisted bool
}

// TaskService defines use-case operations for tasks. Every operation receives
// the already-resolved caller identity; ownership and role checks happen here.
type TaskService interface {
	ListOwn(ctx context.Context, id domain.Identity) ([]*domain.Task, error)
	Create(ctx context.Context, id domain.Identity, input CreateTaskInput) (*CreateTaskResult, error)
	Update(ctx context.Context, id domain.Identity, taskID int64, input UpdateTaskInput) error
	Delete(ctx context.Context, id domain.Identity, taskID int64) error

	// Manager-only operations.
	ListAll(ctx context.Context, id domain.Identity) ([]*domain.Task, error)
	DeleteAny(ctx context.Context, id domain.Identity, taskID int64) error
}
