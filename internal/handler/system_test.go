package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckHealth_MemoryStore(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(testServer())
	e := echo.New()
	rec := httptest.NewRecorder()

	require.NoError(t, h.CheckHealth(e.NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "memory", body["store"])
	assert.Empty(t, body["checks"])
}

func TestCheckHealth_RedisDownIsReported(t *testing.T) {
	t.Parallel()

	srv := testServer()
	srv.Config.Observability.HealthChecks.Timeout = time.Second
	srv.Redis = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = srv.Redis.Close() })

	h := NewHealthHandler(srv)
	e := echo.New()
	rec := httptest.NewRecorder()

	require.NoError(t, h.CheckHealth(e.NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string                       `json:"status"`
		Checks map[string]map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "unhealthy", body.Checks["redis"]["status"])
	assert.NotEmpty(t, body.Checks["redis"]["error"])
}

func TestCheckHealth_DisabledChecksAreSkipped(t *testing.T) {
	t.Parallel()

	srv := testServer()
	srv.Config.Observability.HealthChecks.Enabled = false
	srv.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = srv.Redis.Close() })

	h := NewHealthHandler(srv)
	assert.Empty(t, h.checks())
}

func TestServeOpenAPIUI(t *testing.T) {
	t.Parallel()

	assets := fstest.MapFS{openAPIPage: {Data: []byte("<html>docs</html>")}}
	h := NewOpenAPIHandler(testServer(), assets)

	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, h.ServeOpenAPIUI(e.NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "<html>docs</html>", rec.Body.String())

	missing := NewOpenAPIHandler(testServer(), fstest.MapFS{})
	err := missing.ServeOpenAPIUI(e.NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), httptest.NewRecorder()))
	assert.Error(t, err)
}
