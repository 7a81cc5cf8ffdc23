package domain

import "errors"

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskExists means an insert collided with the unique
	// (owner_id, idempotency_key) constraint.
	ErrTaskExists = errors.New("task already exists")
)

// Task is a unit of work owned by a single user.
type Task struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Priority       int    `json:"priority"`
	Completed      bool   `json:"completed"`
	OwnerID        int64  `json:"owner_id"`
	IdempotencyKey string `json:"-"`
}
