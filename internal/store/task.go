package store

import (
	"context"

	"github.com/phrazzld/pomodoro-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts a new task and returns its generated ID.
	// Returns ErrTaskNameExists if the owner already has a task with that
	// name, ErrInvalidEntity if the owner or category does not exist.
	Create(ctx context.Context, task *domain.Task) (int64, error)

	// GetByID retrieves a task by its unique ID. The lookup is global, not
	// owner-scoped. Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetByName retrieves the first task with the given name. The lookup is
	// global, not owner-scoped. Returns ErrTaskNotFound if no task matches.
	GetByName(ctx context.Context, name string) (*domain.Task, error)

	// GetAll returns every task. An empty result is a legitimate empty
	// slice, not an error.
	GetAll(ctx context.Context) ([]domain.Task, error)

	// GetForUser returns the tasks owned by the given user. An empty result
	// is a legitimate empty slice, not an error.
	GetForUser(ctx context.Context, userID int64) ([]domain.Task, error)

	// UpdateName renames a task, scoped by the compound (id, ownerID)
	// predicate so a non-owner's attempt matches nothing. Returns the number
	// of rows affected; zero means "no such task for this owner".
	UpdateName(ctx context.Context, id int64, name string, ownerID int64) (int64, error)

	// Delete removes a task by ID and returns the number of rows affected;
	// zero means the task did not exist.
	Delete(ctx context.Context, id int64) (int64, error)
}
