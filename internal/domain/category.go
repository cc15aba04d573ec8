package domain

import "errors"

// ErrEmptyCategoryName is returned when a category is created without a name.
var ErrEmptyCategoryName = errors.New("category name cannot be empty")

// Category groups tasks. Type is an optional free-form tag.
// Deleting a category detaches its tasks (their CategoryID is set to nil at
// the schema level) rather than deleting them.
type Category struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Type *string `json:"type,omitempty"`
}

// NewCategory creates a Category with the given name and optional type tag.
// The ID is assigned by the store on insert.
func NewCategory(name string, categoryType *string) (*Category, error) {
	if name == "" {
		return nil, ErrEmptyCategoryName
	}

	return &Category{
		Name: name,
		Type: categoryType,
	}, nil
}
