package router

import (
	"net/http"

	"github.com/deppfellow/drinks/internal/handler"
	"github.com/deppfellow/drinks/internal/server"
	"github.com/deppfellow/drinks/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that sit outside the drink
// resource: health, metrics, docs and static assets.
func registerSystemRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers) {
	r.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, handler.DrinksPath())
	})

	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))

	r.StaticFS("/static", static.Files)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
