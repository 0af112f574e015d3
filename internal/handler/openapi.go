package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/drinks/internal/server"
	"github.com/labstack/echo/v4"
)

const openAPIPage = "openapi.html"

// OpenAPIHandler serves the API documentation page. The page loads its UI
// from a CDN and reads openapi.json from /static.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

func NewOpenAPIHandler(s *server.Server, assets fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  assets,
	}
}

// ServeOpenAPIUI writes openapi.html uncached so doc edits show up at once.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	page, err := fs.ReadFile(h.assets, openAPIPage)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTMLBlob(http.StatusOK, page); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
