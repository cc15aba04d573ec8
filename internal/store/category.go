package store

import (
	"context"

	"github.com/phrazzld/pomodoro-api/internal/domain"
)

// CategoryStore defines the interface for category data persistence.
type CategoryStore interface {
	// Create inserts a new category and assigns its ID.
	Create(ctx context.Context, category *domain.Category) error

	// GetAll returns every category.
	GetAll(ctx context.Context) ([]domain.Category, error)

	// Delete removes a category by ID. Tasks referencing it are detached at
	// the schema level (category_id set to NULL), never deleted.
	// Returns ErrCategoryNotFound if the category does not exist.
	Delete(ctx context.Context, id int64) error
}
