package postgres

import (
	"context"
	"log/slog"

	"github.com/phrazzld/pomodoro-api/internal/domain"
	"github.com/phrazzld/pomodoro-api/internal/platform/logger"
	"github.com/phrazzld/pomodoro-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// Create implements store.CategoryStore.Create
func (s *PostgresCategoryStore) Create(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO category (name, type)
		VALUES ($1, $2)
		RETURNING id
	`
	err := s.db.QueryRowContext(ctx, query, category.Name, category.Type).Scan(&category.ID)
	if err != nil {
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("name", category.Name))
		return err
	}

	log.Info("category created", slog.Int64("category_id", category.ID))
	return nil
}

// GetAll implements store.CategoryStore.GetAll
func (s *PostgresCategoryStore) GetAll(ctx context.Context) ([]domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type FROM category ORDER BY id`)
	if err != nil {
		log.Error("failed to query categories", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// Delete implements store.CategoryStore.Delete
// Tasks referencing the category are detached by the ON DELETE SET NULL
// foreign key, never deleted.
// Returns store.ErrCategoryNotFound if the category does not exist.
func (s *PostgresCategoryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete category",
			slog.String("error", err.Error()),
			slog.Int64("category_id", id))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrCategoryNotFound
	}

	log.Info("category deleted", slog.Int64("category_id", id))
	return nil
}
