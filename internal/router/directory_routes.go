package router

import (
	"github.com/labstack/echo/v4"

	"github.com/jcpao/court-directory/internal/handler"
	"github.com/jcpao/court-directory/internal/middleware"
	"github.com/jcpao/court-directory/internal/session"
)

// RegisterDirectory registers the gated directory under /directory.
// Unverified visitors are redirected to the verification form.
func RegisterDirectory(e *echo.Echo, h *handler.DirectoryHandler, store *session.Store) {
	g := e.Group(
		"/directory",
		middleware.Session(store),
		middleware.RequireVerified(),
	)
	g.GET("", h.Show)
	g.POST("/filters", h.UpdateFilters)
	g.POST("/reset", h.ResetFilters)
	g.POST("/refresh", h.Refresh)
}
