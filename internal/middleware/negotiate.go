package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// WantsJSON reports whether the client expects JSON rather than HTML.
//
// An explicit Accept header decides. Without one, or with a bare */*, a
// JSON request body implies a JSON client.
func WantsJSON(c echo.Context) bool {
	req := c.Request()
	accept := req.Header.Get(echo.HeaderAccept)

	if strings.Contains(accept, echo.MIMEApplicationJSON) {
		return !strings.Contains(accept, echo.MIMETextHTML) ||
			strings.Index(accept, echo.MIMEApplicationJSON) < strings.Index(accept, echo.MIMETextHTML)
	}
	if accept != "" && strings.TrimSpace(accept) != "*/*" {
		return false
	}

	return strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}
