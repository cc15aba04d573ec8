package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRegister(handler *UserHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.Create(rr, req)
	return rr
}

func TestUserHandlerCreate(t *testing.T) {
	users := newFakeUserStore()
	handler := NewUserHandler(newTestAuthService(t, users))

	t.Run("registration returns the user id and a token pair", func(t *testing.T) {
		rr := postRegister(handler, `{"username":"dave","password":"long enough password"}`)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

		var resp RegisterResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.NotZero(t, resp.UserID)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("duplicate username returns 409", func(t *testing.T) {
		rr := postRegister(handler, `{"username":"dave","password":"long enough password"}`)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		first := postRegister(handler, `{"username":"erin","password":"long enough password","email":"erin@example.com"}`)
		require.Equal(t, http.StatusCreated, first.Code)

		rr := postRegister(handler, `{"username":"erin2","password":"long enough password","email":"erin@example.com"}`)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("short password returns 422", func(t *testing.T) {
		rr := postRegister(handler, `{"username":"frank","password":"short"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("invalid email returns 422", func(t *testing.T) {
		rr := postRegister(handler, `{"username":"grace","password":"long enough password","email":"not-an-email"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("malformed payload returns 422", func(t *testing.T) {
		rr := postRegister(handler, `{broken`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("password never echoes back", func(t *testing.T) {
		rr := postRegister(handler, `{"username":"heidi","password":"extremely secret pw"}`)
		require.Equal(t, http.StatusCreated, rr.Code)
		assert.NotContains(t, rr.Body.String(), "extremely secret pw")
	})
}
