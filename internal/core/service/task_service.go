package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// IdempotencyChecker abstracts the replay-detection store (Redis). It is a
// fast path only; the repository's idempotency_key column is authoritative.
type IdempotencyChecker interface {
	Seen(ctx context.Context, ownerID int64, key string) (bool, error)
	Mark(ctx context.Context, ownerID int64, key string) error
}

// TaskService implements task CRUD with ownership and role enforcement.
type TaskService struct {
	repo   ports.TaskRepository
	idem   IdempotencyChecker
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, idem IdempotencyChecker, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, idem: idem, logger: logger}
}

func (s *TaskService) ListOwn(ctx context.Context, id domain.Identity) ([]*domain.Task, error) {
	return s.repo.ListByOwner(ctx, id.ID)
}

// Create stores a new task owned by the caller. When an Idempotency-Key is
// supplied and already seen for this owner, the original task is returned and
// nothing is inserted.
func (s *TaskService) Create(ctx context.Context, id domain.Identity, input ports.CreateTaskInput) (*ports.CreateTaskResult, error) {
	if input.IdempotencyKey != "" {
		seen, err := s.idem.Seen(ctx, id.ID, input.IdempotencyKey)
		if err != nil {
			// Redis is a fast path only; fall back to the store's column.
			s.logger.Warn().Err(err).Str("username", id.Username).Msg("idempotency check failed, falling back to store")
			seen = true
		}
		if seen {
			existing, ferr := s.repo.FindByIdempotencyKey(ctx, id.ID, input.IdempotencyKey)
			if ferr == nil {
				s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Int64("task_id", existing.ID).Msg("idempotent replay")
				return &ports.CreateTaskResult{Task: existing, AlreadyExisted: true}, nil
			}
			if !errors.Is(ferr, domain.ErrTaskNotFound) {
				return nil, ferr
			}
		}
	}

	task := &domain.Task{
		Title:          input.Title,
		Description:    input.Description,
		Priority:       input.Priority,
		Completed:      input.Completed,
		OwnerID:        id.ID,
		IdempotencyKey: input.IdempotencyKey,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		// A replay can still reach the insert when the cache entry expired or
		// a concurrent duplicate raced past the fast path; the unique key
		// column catches it here.
		if input.IdempotencyKey != "" && errors.Is(err, domain.ErrTaskExists) {
			existing, ferr := s.repo.FindByIdempotencyKey(ctx, id.ID, input.IdempotencyKey)
			if ferr != nil {
				return nil, ferr
			}
			if merr := s.idem.Mark(ctx, id.ID, input.IdempotencyKey); merr != nil {
				s.logger.Warn().Err(merr).Int64("task_id", existing.ID).Msg("failed to mark idempotency key")
			}
			s.logger.Info().Str("idempotency_key", input.IdempotencyKey).Int64("task_id", existing.ID).Msg("idempotent replay")
			return &ports.CreateTaskResult{Task: existing, AlreadyExisted: true}, nil
		}
		return nil, fmt.Errorf("create task: %w", err)
	}

	if input.IdempotencyKey != "" {
		if err := s.idem.Mark(ctx, id.ID, input.IdempotencyKey); err != nil {
			s.logger.Warn().Err(err).Int64("task_id", created.ID).Msg("failed to mark idempotency key")
		}
	}

	s.logger.Info().Int64("task_id", created.ID).Str("username", id.Username).Msg("task created")
	return &ports.CreateTaskResult{Task: created}, nil
}

func (s *TaskService) Update(ctx context.Context, id domain.Identity, taskID int64, input ports.UpdateTaskInput) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(id, task.OwnerID); err != nil {
		return err
	}

	task.Title = input.Title
	task.Description = input.Description
	task.Priority = input.Priority
	task.Completed = input.Completed

	return s.repo.Update(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, id domain.Identity, taskID int64) error {
	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if err := domain.RequireOwner(id, task.OwnerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, taskID)
}

// ListAll returns every task in the system. Manager only; the role check is
// repeated here so the service is safe even without the route middleware.
func (s *TaskService) ListAll(ctx context.Context, id domain.Identity) ([]*domain.Task, error) {
	if err := domain.RequireRole(id, domain.RoleManager); err != nil {
		return nil, err
	}
	return s.repo.ListAll(ctx)
}

// DeleteAny deletes any user's task. Manager only.
func (s *TaskService) DeleteAny(ctx context.Context, id domain.Identity, taskID int64) error {
	if err := domain.RequireRole(id, domain.RoleManager); err != nil {
		return err
	}
	if _, err := s.repo.FindByID(ctx, taskID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, taskID); err != nil {
		return err
	}
	s.logger.Info().Int64("task_id", taskID).Str("manager", id.Username).Msg("task deleted by manager")
	return nil
}
