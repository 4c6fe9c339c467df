package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(nil).Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler_Readiness(t *testing.T) {
	t.Run("without redis", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHealthHandler(nil).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "disabled", body["redis"])
	})

	t.Run("redis up", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		defer client.Close()

		rec := httptest.NewRecorder()
		NewHealthHandler(client).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["redis"])
	})

	t.Run("redis down", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
		defer client.Close()
		mr.Close()

		rec := httptest.NewRecorder()
		NewHealthHandler(client).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
