package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/drinks/internal/config"
	"github.com/deppfellow/drinks/internal/errs"
	"github.com/deppfellow/drinks/internal/metrics"
	"github.com/deppfellow/drinks/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	cfg := config.DefaultConfig()
	cfg.Drinks.Store = config.StoreMemory
	return &server.Server{Config: cfg, Logger: &logger, Metrics: metrics.New()}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	e := echo.New()
	var seen string
	h := RequestID()(func(c echo.Context) error {
		seen = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestWantsJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		accept      string
		contentType string
		want        bool
	}{
		{name: "browser", accept: "text/html,application/xhtml+xml,*/*;q=0.8"},
		{name: "api client", accept: "application/json", want: true},
		{name: "json preferred", accept: "application/json, text/html", want: true},
		{name: "html preferred", accept: "text/html, application/json"},
		{name: "json body no accept", contentType: "application/json; charset=utf-8", want: true},
		{name: "json body any accept", accept: "*/*", contentType: "application/json", want: true},
		{name: "form body no accept", contentType: "application/x-www-form-urlencoded"},
		{name: "nothing"},
	}

	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.accept != "" {
				req.Header.Set(echo.HeaderAccept, tt.accept)
			}
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			assert.Equal(t, tt.want, WantsJSON(e.NewContext(req, httptest.NewRecorder())))
		})
	}
}

func TestGlobalErrorHandler_JSON(t *testing.T) {
	t.Parallel()

	global := NewGlobalMiddlewares(testServer())
	e := echo.New()

	code := errs.CodeDrinkNotFound
	req := httptest.NewRequest(http.MethodGet, "/drinks/9", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	global.GlobalErrorHandler(errs.NewNotFoundError("Drink not found", true, &code), e.NewContext(req, rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errs.CodeDrinkNotFound, body.Code)
	assert.Equal(t, "Drink not found", body.Message)
	assert.True(t, body.Override)
}

func TestGlobalErrorHandler_HTMLFallsBackToText(t *testing.T) {
	t.Parallel()

	global := NewGlobalMiddlewares(testServer())
	e := echo.New()

	rec := httptest.NewRecorder()
	global.GlobalErrorHandler(echo.ErrNotFound, e.NewContext(httptest.NewRequest(http.MethodGet, "/nope", nil), rec))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", rec.Body.String())
}

func TestGlobalErrorHandler_HidesUnknownErrors(t *testing.T) {
	t.Parallel()

	global := NewGlobalMiddlewares(testServer())
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/drinks", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	global.GlobalErrorHandler(errors.New("dial tcp: connection refused"), e.NewContext(req, rec))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	rec = httptest.NewRecorder()
	global.GlobalErrorHandler(&pgconn.PgError{Code: "23514", TableName: "drinks", ConstraintName: "drinks_name_present"}, e.NewContext(req, rec))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "DRINK_INVALID")
}

func TestMethodOverride(t *testing.T) {
	t.Parallel()

	global := NewGlobalMiddlewares(testServer())
	e := echo.New()
	e.Pre(global.MethodOverride())
	e.DELETE("/drinks/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "deleted "+c.Param("id"))
	})

	form := url.Values{MethodOverrideParam: {"DELETE"}}
	req := httptest.NewRequest(http.MethodPost, "/drinks/4", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deleted 4", rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	s := testServer()
	s.Config.Server.RateLimit = 1
	rl := NewRateLimitMiddleware(s)

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(rl.Limit())
	e.GET("/drinks", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/drinks", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes, http.StatusTooManyRequests)
	assert.GreaterOrEqual(t, testutil.ToFloat64(s.Metrics.RateLimitHits.WithLabelValues("/drinks")), 1.0)
}

func TestRateLimit_DisabledByDefault(t *testing.T) {
	t.Parallel()

	rl := NewRateLimitMiddleware(testServer())
	e := echo.New()
	e.Use(rl.Limit())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestContextEnhancer_StoresLogger(t *testing.T) {
	t.Parallel()

	ce := NewContextEnhancer(testServer())
	e := echo.New()

	h := ce.EnhanceContext()(func(c echo.Context) error {
		assert.Same(t, GetLogger(c), LoggerFromContext(c.Request().Context()))
		return nil
	})
	require.NoError(t, h(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())))

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.NotNil(t, GetLogger(c), "falls back to a no-op logger")
}
