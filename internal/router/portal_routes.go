package router

import (
	"github.com/labstack/echo/v4"

	"github.com/jcpao/court-directory/internal/handler"
	"github.com/jcpao/court-directory/internal/middleware"
	"github.com/jcpao/court-directory/internal/session"
)

// RegisterPortal registers the verification form and the login/logout
// transitions.  These routes load the session but do not require it to
// be verified.
func RegisterPortal(e *echo.Echo, h *handler.PortalHandler, store *session.Store) {
	withSession := middleware.Session(store)
	e.GET("/", h.Index, withSession)
	e.POST("/verify", h.Verify, withSession)
	e.POST("/logout", h.Logout, withSession)
}
