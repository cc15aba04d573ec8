package api

import (
	"net/http"

	"github.com/phrazzld/pomodoro-api/internal/api/shared"
	"github.com/phrazzld/pomodoro-api/internal/service/auth"
)

// UserHandler serves user account endpoints.
type UserHandler struct {
	authService *auth.AuthService
}

// NewUserHandler creates a UserHandler backed by the given service.
func NewUserHandler(authService *auth.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// Create handles POST /users/: registers an account and returns the new
// user's ID with a token pair so the client is logged in immediately.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err))
		return
	}

	user, pair, err := h.authService.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		UserID:       user.ID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
