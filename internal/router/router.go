package router // package router defines how HTTP routes are registered for the directory

import (
	"github.com/labstack/echo/v4"

	"github.com/jcpao/court-directory/internal/handler"
	"github.com/jcpao/court-directory/internal/view"
)

// RegisterRoutes registers the routes that need no session: the health
// check and the embedded static assets (fallback logo, stylesheet).
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.StaticFS("/assets", view.Assets())
}
