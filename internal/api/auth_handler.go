package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/pomodoro-api/internal/api/middleware"
	"github.com/phrazzld/pomodoro-api/internal/api/shared"
	"github.com/phrazzld/pomodoro-api/internal/service/auth"
)

// bearerTokenType is the token_type value reported in token responses.
const bearerTokenType = "Bearer"

// AuthHandler serves the authentication endpoints: login, token refresh and
// identity lookup.
type AuthHandler struct {
	authService *auth.AuthService
}

// NewAuthHandler creates an AuthHandler backed by the given service.
func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles POST /auth/login. Credentials arrive as form fields.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid form data")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "username and password are required")
		return
	}

	pair, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    bearerTokenType,
		ExpiresAt:    pair.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Refresh handles POST /auth/refresh. The refresh token is presented as a
// Bearer credential; a new access token is minted, the refresh token is
// neither rotated nor revoked.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	accessToken, expiresAt, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{
		AccessToken: accessToken,
		TokenType:   bearerTokenType,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	})
}

// Me handles GET /auth/me: resolves the access token's subject and reports
// the token's issue time as logged_in.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.BearerToken(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, claims, err := h.authService.CurrentUser(r.Context(), token)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MeResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Active:   user.Active,
		LoggedIn: claims.IssuedAt.Unix(),
	})
}
