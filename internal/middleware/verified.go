package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jcpao/court-directory/internal/session"
)

// RequireVerified sends unverified visitors back to the verification
// form.  It assumes Session has already run.
func RequireVerified() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.FromContext(c).Verified {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}
