package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	RespondWithJSON(rr, req, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestRespondWithError(t *testing.T) {
	t.Run("includes trace ID when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		rr := httptest.NewRecorder()

		RespondWithError(rr, req, http.StatusNotFound, "Task not found")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "Task not found", body.Error)
		assert.NotEmpty(t, body.TraceID)
	})

	t.Run("omits trace ID when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		RespondWithError(rr, req, http.StatusNotFound, "Task not found")

		assert.NotContains(t, rr.Body.String(), "trace_id")
	})
}

func TestRespondWithErrorAndLogHidesErrorDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()

	internal := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	RespondWithErrorAndLog(rr, req, http.StatusInternalServerError, "An unexpected error occurred", internal)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
	assert.Contains(t, rr.Body.String(), "An unexpected error occurred")
}
