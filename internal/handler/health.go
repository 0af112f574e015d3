package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/drinks/internal/middleware"
	"github.com/deppfellow/drinks/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Health check names, as listed in observability.health_checks.checks.
const (
	CheckDatabase = "database"
	CheckRedis    = "redis"
)

// HealthHandler reports whether the service and its dependencies are up.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type healthCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// CheckHealth answers 200 when every required dependency responds and 503
// otherwise. The database is required; Redis only degrades notifications
// and is reported without failing the check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"store":       h.server.Config.Drinks.Store,
		"checks":      checks,
	}

	isHealthy := true
	for _, check := range h.checks() {
		result, err := h.runCheck(c.Request().Context(), check, &logger)
		checks[check.name] = result
		if err != nil && check.required {
			isHealthy = false
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) checks() []healthCheck {
	obs := h.server.Config.Observability
	var checks []healthCheck

	if h.server.DB != nil && obs.HealthCheckEnabled(CheckDatabase) {
		checks = append(checks, healthCheck{
			name:     CheckDatabase,
			required: true,
			ping:     h.server.DB.Pool.Ping,
		})
	}

	if h.server.Redis != nil && obs.HealthCheckEnabled(CheckRedis) {
		checks = append(checks, healthCheck{
			name: CheckRedis,
			ping: func(ctx context.Context) error {
				return h.server.Redis.Ping(ctx).Err()
			},
		})
	}

	return checks
}

func (h *HealthHandler) runCheck(ctx context.Context, check healthCheck, logger *zerolog.Logger) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, h.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	checkStart := time.Now()
	err := check.ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", check.name).
			Dur("response_time", elapsed).
			Msg("dependency health check failed")

		h.recordFailure(map[string]interface{}{
			"check_type":       check.name,
			"operation":        "health_check",
			"error_type":       check.name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}, err
	}

	return map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}, nil
}

func (h *HealthHandler) recordFailure(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
