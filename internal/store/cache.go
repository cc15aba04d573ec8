package store

import (
	"context"

	"github.com/phrazzld/pomodoro-api/internal/domain"
)

// TaskCache defines the interface for the TTL-bound task list cache.
//
// The cache is a best-effort accelerator, not a source of truth: entries
// expire on a fixed TTL and absence always means "unknown", never "empty".
// Writes go to the system of record first; cache population and invalidation
// happen after commit and their failures must not surface to API callers.
type TaskCache interface {
	// GetTasks returns the cached global task list.
	// Returns ErrCacheMiss if the bucket is absent.
	GetTasks(ctx context.Context) ([]domain.Task, error)

	// SetTasks replaces the cached global task list and refreshes its TTL.
	SetTasks(ctx context.Context, tasks []domain.Task) error

	// GetUserTasks returns the cached task list for one user.
	// Returns ErrCacheMiss if the bucket is absent.
	GetUserTasks(ctx context.Context, userID int64) ([]domain.Task, error)

	// SetUserTasks replaces the cached task list for one user and refreshes
	// its TTL.
	SetUserTasks(ctx context.Context, userID int64, tasks []domain.Task) error

	// DeleteTask removes a single task from the cached global list by
	// rewriting the remaining entries with a refreshed TTL. A missing bucket
	// or a task not present in it is a no-op, not an error. If filtering
	// leaves zero entries the stale bucket is left to expire on its TTL.
	DeleteTask(ctx context.Context, taskID int64) error
}
