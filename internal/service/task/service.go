// Package task implements the task domain service: CRUD orchestration over
// the system of record with a cache-aside read path for task lists.
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pomodoro-api/internal/domain"
	"github.com/phrazzld/pomodoro-api/internal/store"
)

// Service coordinates task operations between the system of record and the
// task cache.
//
// Ordering invariant: the system of record is always updated before the cache
// is touched, and cache failures are logged but never propagated to callers —
// the cache is a TTL-bound accelerator, not a source of truth.
type Service struct {
	tasks  store.TaskStore
	cache  store.TaskCache
	logger *slog.Logger
}

// NewService creates a task Service with the given collaborators.
// If logger is nil, the default logger is used.
func NewService(tasks store.TaskStore, cache store.TaskCache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		tasks:  tasks,
		cache:  cache,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// GetTasks returns the global task list, cache-aside.
//
// A cache hit is returned verbatim without re-validating against the
// database. A miss (bucket absent — distinct from a cached empty list) falls
// through to the system of record and repopulates the cache.
func (s *Service) GetTasks(ctx context.Context) ([]domain.Task, error) {
	cached, err := s.cache.GetTasks(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, store.ErrCacheMiss) {
		// Infrastructure failure, not a miss: serve from the database.
		s.logger.Warn("task cache read failed", "error", err)
	}

	tasks, err := s.tasks.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	if err := s.cache.SetTasks(ctx, tasks); err != nil {
		s.logger.Warn("failed to populate task cache", "error", err)
	}

	return tasks, nil
}

// GetUserTasks returns one user's task list, cache-aside with a per-user key.
//
// Unlike the global path, a cache miss combined with an empty database read
// returns store.ErrTaskNotFound: an empty per-user list is never cached as a
// legitimate state. That conflates "no tasks yet" with absence; the behavior
// is kept for wire compatibility and pinned in tests.
func (s *Service) GetUserTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	cached, err := s.cache.GetUserTasks(ctx, userID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, store.ErrCacheMiss) {
		s.logger.Warn("user task cache read failed", "error", err, "user_id", userID)
	}

	tasks, err := s.tasks.GetForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read user tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, store.ErrTaskNotFound
	}

	if err := s.cache.SetUserTasks(ctx, userID, tasks); err != nil {
		s.logger.Warn("failed to populate user task cache", "error", err, "user_id", userID)
	}

	return tasks, nil
}

// GetTasksForUser returns the authenticated user's tasks directly from the
// system of record. Returns store.ErrTaskNotFound when the user has none.
func (s *Service) GetTasksForUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	tasks, err := s.tasks.GetForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read user tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, store.ErrTaskNotFound
	}
	return tasks, nil
}

// Create normalizes the input, inserts the task, and re-reads the stored row
// so server-assigned values are reflected in the response.
func (s *Service) Create(ctx context.Context, input domain.TaskInput, ownerID int64) (*domain.Task, error) {
	task, err := domain.NewTask(input, ownerID)
	if err != nil {
		return nil, err
	}

	id, err := s.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	created, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read created task: %w", err)
	}

	s.logger.Info("task created", "task_id", created.ID, "user_id", ownerID)
	return created, nil
}

// UpdateName renames a task on behalf of its owner.
//
// The update is scoped by the compound (id, ownerID) predicate at the store,
// so a non-owner's attempt affects zero rows. Zero rows affected and "task
// does not exist" are deliberately indistinguishable: both surface as
// store.ErrTaskNotFound, so the response never leaks whether another user's
// task exists.
func (s *Service) UpdateName(ctx context.Context, taskID int64, newName string, ownerID int64) (*domain.Task, error) {
	affected, err := s.tasks.UpdateName(ctx, taskID, newName, ownerID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrTaskNotFound
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read updated task: %w", err)
	}

	return task, nil
}

// Delete removes a task, then best-effort removes it from the cached global
// list. Deleting a task that does not exist returns store.ErrTaskNotFound;
// the cache invalidation for a missing entry is a no-op either way.
func (s *Service) Delete(ctx context.Context, taskID int64) error {
	affected, err := s.tasks.Delete(ctx, taskID)
	if err != nil {
		return err
	}

	if cacheErr := s.cache.DeleteTask(ctx, taskID); cacheErr != nil {
		s.logger.Warn("failed to invalidate cached task", "error", cacheErr, "task_id", taskID)
	}

	if affected == 0 {
		return store.ErrTaskNotFound
	}

	s.logger.Info("task deleted", "task_id", taskID)
	return nil
}

// GetByID returns a task by ID. The lookup is global, not owner-scoped,
// unlike UpdateName/Delete — an inherited asymmetry pinned in tests.
func (s *Service) GetByID(ctx context.Context, taskID int64) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, taskID)
}

// GetByName returns a task by name. Global, not owner-scoped.
func (s *Service) GetByName(ctx context.Context, name string) (*domain.Task, error) {
	return s.tasks.GetByName(ctx, name)
}
