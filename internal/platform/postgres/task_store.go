package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pomodoro-api/internal/domain"
	"github.com/phrazzld/pomodoro-api/internal/platform/logger"
	"github.com/phrazzld/pomodoro-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It inserts the task and returns the generated ID. The caller re-reads the
// row to observe server-assigned values.
// Returns store.ErrTaskNameExists if the owner already has a task with that
// name, store.ErrInvalidEntity if the owner or category does not exist.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (name, pomodoro_count, category_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Name,
		task.PomodoroCount,
		task.CategoryID,
		task.UserID,
	).Scan(&id)

	if err != nil {
		if isUniqueViolation(err, "name_idx") {
			log.Warn("duplicate task name for owner",
				slog.String("name", task.Name),
				slog.Int64("user_id", task.UserID))
			return 0, store.ErrTaskNameExists
		}
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("error", err.Error()),
				slog.Int64("user_id", task.UserID))
			return 0, fmt.Errorf("%w: referenced row not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.Int64("user_id", task.UserID))
		return 0, err
	}

	return id, nil
}

// GetByID implements store.TaskStore.GetByID
// The lookup is global, not owner-scoped.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	query := `
		SELECT id, name, pomodoro_count, category_id, user_id
		FROM tasks
		WHERE id = $1
	`
	return s.scanTask(ctx, query, id)
}

// GetByName implements store.TaskStore.GetByName
// The lookup is global, not owner-scoped; with multiple owners sharing a
// name, the lowest ID wins.
// Returns store.ErrTaskNotFound if no task matches.
func (s *PostgresTaskStore) GetByName(ctx context.Context, name string) (*domain.Task, error) {
	query := `
		SELECT id, name, pomodoro_count, category_id, user_id
		FROM tasks
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`
	return s.scanTask(ctx, query, name)
}

// GetAll implements store.TaskStore.GetAll
func (s *PostgresTaskStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	query := `
		SELECT id, name, pomodoro_count, category_id, user_id
		FROM tasks
		ORDER BY id
	`
	return s.scanTasks(ctx, query)
}

// GetForUser implements store.TaskStore.GetForUser
func (s *PostgresTaskStore) GetForUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	query := `
		SELECT id, name, pomodoro_count, category_id, user_id
		FROM tasks
		WHERE user_id = $1
		ORDER BY id
	`
	return s.scanTasks(ctx, query, userID)
}

// UpdateName implements store.TaskStore.UpdateName
// The compound (id, user_id) predicate makes a non-owner's update match zero
// rows; the caller maps zero rows to not-found.
func (s *PostgresTaskStore) UpdateName(ctx context.Context, id int64, name string, ownerID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET name = $1
		WHERE id = $2 AND user_id = $3
	`
	result, err := s.db.ExecContext(ctx, query, name, id, ownerID)
	if err != nil {
		if isUniqueViolation(err, "name_idx") {
			return 0, store.ErrTaskNameExists
		}
		log.Error("failed to update task name",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return 0, err
	}

	return result.RowsAffected()
}

// Delete implements store.TaskStore.Delete
// Returns the number of rows affected; zero means the task did not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return 0, err
	}

	return result.RowsAffected()
}

// scanTask runs a single-row task query and maps absence to ErrTaskNotFound.
func (s *PostgresTaskStore) scanTask(ctx context.Context, query string, arg any) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&task.ID,
		&task.Name,
		&task.PomodoroCount,
		&task.CategoryID,
		&task.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to query task", slog.String("error", err.Error()))
		return nil, err
	}

	return &task, nil
}

// scanTasks runs a multi-row task query. An empty result is an empty slice.
func (s *PostgresTaskStore) scanTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.Name,
			&task.PomodoroCount,
			&task.CategoryID,
			&task.UserID,
		); err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}
