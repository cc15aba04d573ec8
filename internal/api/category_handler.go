package api

import (
	"net/http"

	"github.com/phrazzld/pomodoro-api/internal/api/shared"
	"github.com/phrazzld/pomodoro-api/internal/domain"
	"github.com/phrazzld/pomodoro-api/internal/store"
)

// CategoryHandler serves the category endpoints. The flows are thin enough
// to sit directly on the store.
type CategoryHandler struct {
	categoryStore store.CategoryStore
}

// NewCategoryHandler creates a CategoryHandler over the given store.
func NewCategoryHandler(categoryStore store.CategoryStore) *CategoryHandler {
	return &CategoryHandler{
		categoryStore: categoryStore,
	}
}

// GetAll handles GET /categories.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryStore.GetAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	var req CreateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	category, err := domain.NewCategory(req.Name, req.Type)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.categoryStore.Create(r.Context(), category); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// Delete handles DELETE /categories/{category_id}. Tasks referencing the
// category are detached by the schema, never deleted.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	categoryID, err := getPathID(r, "category_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.categoryStore.Delete(r.Context(), categoryID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
