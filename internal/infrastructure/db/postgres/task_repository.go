package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// TaskRepository implements ports.TaskRepository on a pgx pool.
type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

const taskColumns = `id, title, description, priority, completed, owner_id, idempotency_key`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	var key *string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Priority, &t.Completed, &t.OwnerID, &key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	if key != nil {
		t.IdempotencyKey = *key
	}
	return &t, nil
}

// nullableKey maps the empty string onto SQL NULL so the partial unique index
// only applies to real idempotency keys.
func nullableKey(key string) *string {
	if key == "" {
		return nil
	}
	return &key
}

// Create inserts a new task row. A collision on the partial unique index over
// (owner_id, idempotency_key) maps to domain.ErrTaskExists.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (title, description, priority, completed, owner_id, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	created, err := scanTask(r.pool.QueryRow(ctx, query,
		task.Title, task.Description, task.Priority, task.Completed,
		task.OwnerID, nullableKey(task.IdempotencyKey),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrTaskExists
		}
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *TaskRepository) FindByIdempotencyKey(ctx context.Context, ownerID int64, key string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 AND idempotency_key = $2`
	return scanTask(r.pool.QueryRow(ctx, query, ownerID, key))
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY id`
	return r.list(ctx, query, ownerID)
}

func (r *TaskRepository) ListAll(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY id`
	return r.list(ctx, query)
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, priority = $3, completed = $4 WHERE id = $5`,
		task.Title, task.Description, task.Priority, task.Completed, task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
