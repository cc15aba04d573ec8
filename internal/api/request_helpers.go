package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/pomodoro-api/internal/api/shared"
	"github.com/phrazzld/pomodoro-api/internal/domain"
)

// getUserIDFromContext extracts the authenticated user's ID placed in the
// request context by the authentication middleware.
func getUserIDFromContext(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

// getPathID extracts and parses a positive int64 path parameter.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// requireUserID extracts the caller's user ID or writes a 401 and reports
// false. For routes behind the auth middleware the failure path means the
// middleware was not applied.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return 0, false
	}
	return userID, true
}
