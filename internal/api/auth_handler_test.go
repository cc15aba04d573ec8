package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postLoginForm(handler http.HandlerFunc, username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestAuthHandlerLogin(t *testing.T) {
	users := newFakeUserStore()
	authService := newTestAuthService(t, users)
	handler := NewAuthHandler(authService)
	registerTestUser(t, authService, "alice", "correct horse battery")

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		rr := postLoginForm(handler.Login, "alice", "correct horse battery")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp TokenResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.NotEmpty(t, resp.ExpiresAt)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		wrongPw := postLoginForm(handler.Login, "alice", "not the password")
		noUser := postLoginForm(handler.Login, "nobody", "whatever password")

		assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
		assert.Equal(t, http.StatusUnauthorized, noUser.Code)
		assert.Equal(t, wrongPw.Body.String(), noUser.Body.String())
	})

	t.Run("missing fields return 422", func(t *testing.T) {
		rr := postLoginForm(handler.Login, "", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("inactive account returns 403", func(t *testing.T) {
		user, _ := registerTestUser(t, authService, "dormant", "some long password")
		users.mu.Lock()
		users.users[user.ID].Active = false
		users.mu.Unlock()

		rr := postLoginForm(handler.Login, "dormant", "some long password")
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestAuthHandlerRefresh(t *testing.T) {
	users := newFakeUserStore()
	authService := newTestAuthService(t, users)
	handler := NewAuthHandler(authService)
	_, pair := registerTestUser(t, authService, "bob", "another long password")

	t.Run("valid refresh token mints a new access token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		rr := httptest.NewRecorder()
		handler.Refresh(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp TokenResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.Empty(t, resp.RefreshToken)
	})

	t.Run("access token is rejected where a refresh token is required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rr := httptest.NewRecorder()
		handler.Refresh(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing header returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
		rr := httptest.NewRecorder()
		handler.Refresh(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthHandlerMe(t *testing.T) {
	users := newFakeUserStore()
	authService := newTestAuthService(t, users)
	handler := NewAuthHandler(authService)
	user, pair := registerTestUser(t, authService, "carol", "yet another password")

	t.Run("reports identity and token issue time", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp MeResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, "carol", resp.Username)
		assert.True(t, resp.Active)
		assert.NotZero(t, resp.LoggedIn)
	})

	t.Run("refresh token is rejected where an access token is required", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("subject deleted after issue returns 404", func(t *testing.T) {
		ghost, ghostPair := registerTestUser(t, authService, "ghost", "short lived account")
		users.mu.Lock()
		delete(users.users, ghost.ID)
		users.mu.Unlock()

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+ghostPair.AccessToken)
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

// Guards against credential material leaking into error responses.
func TestLoginErrorResponseOmitsDetail(t *testing.T) {
	users := newFakeUserStore()
	authService := newTestAuthService(t, users)
	handler := NewAuthHandler(authService)

	rr := postLoginForm(handler.Login, "nobody", "some password value")
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.NotContains(t, rr.Body.String(), "some password value")
	assert.NotContains(t, rr.Body.String(), "nobody")
}
