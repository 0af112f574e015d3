package router

import (
	"net/http"

	"github.com/deppfellow/drinks/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerDrinkRoutes(r *echo.Echo, h *handler.Handlers) {
	drinks := r.Group(handler.DrinksPath())
	base := h.Drinks.Handler

	drinks.GET("", handler.HandleView(base, h.Drinks.Index))
	drinks.GET("/new", handler.HandleView(base, h.Drinks.New))
	drinks.POST("", handler.HandleView(base, h.Drinks.Create))
	drinks.GET("/:id", handler.HandleView(base, h.Drinks.Show))
	drinks.GET("/:id/edit", handler.HandleView(base, h.Drinks.Edit))
	drinks.Match([]string{http.MethodPatch, http.MethodPut}, "/:id", handler.HandleView(base, h.Drinks.Update))
	drinks.DELETE("/:id", handler.HandleView(base, h.Drinks.Destroy))
}
