package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okPinger() Pinger {
	return PingerFunc(func(context.Context) error { return nil })
}

func failingPinger(msg string) Pinger {
	return PingerFunc(func(context.Context) error { return errors.New(msg) })
}

func serve(h *HealthCheckHandler, path string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthCheck_AllHealthy(t *testing.T) {
	h := NewHealthCheckHandler(map[string]Pinger{"database": okPinger(), "mongodb": okPinger()})

	rec := serve(h, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, map[string]string{"database": "healthy", "mongodb": "healthy"}, resp.Checks)
}

func TestHealthCheck_DependencyDown(t *testing.T) {
	h := NewHealthCheckHandler(map[string]Pinger{"database": okPinger(), "mongodb": failingPinger("no reachable servers")})

	rec := serve(h, "/health")

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "unhealthy: no reachable servers", resp.Checks["mongodb"])
}

func TestReadinessAndLiveness(t *testing.T) {
	down := NewHealthCheckHandler(map[string]Pinger{"database": failingPinger("refused")})

	assert.Equal(t, http.StatusServiceUnavailable, serve(down, "/health/readiness").Code)
	assert.Equal(t, http.StatusOK, serve(down, "/health/liveness").Code)

	up := NewHealthCheckHandler(map[string]Pinger{"database": okPinger()})
	assert.Equal(t, http.StatusOK, serve(up, "/health/readiness").Code)
}
