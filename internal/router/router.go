// Package router builds the echo instance: middleware chain, renderer,
// error handler, and every route mapped to its handler.
package router

import (
	"fmt"

	"github.com/deppfellow/drinks/internal/handler"
	"github.com/deppfellow/drinks/internal/middleware"
	"github.com/deppfellow/drinks/internal/server"
	"github.com/deppfellow/drinks/internal/view"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	middlewares := middleware.NewMiddlewares(s)

	renderer, err := view.NewRenderer(handler.PathFuncs())
	if err != nil {
		return nil, fmt.Errorf("failed to build view renderer: %w", err)
	}

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Renderer = renderer
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Pre runs before routing, so overridden methods reach PATCH/DELETE routes.
	router.Pre(middlewares.Global.MethodOverride())

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, s, h)
	registerDrinkRoutes(router, h)

	return router, nil
}
