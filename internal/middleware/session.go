package middleware // middleware provides shared request processing for handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/jcpao/court-directory/internal/session"
)

// Session returns an Echo middleware that decodes the session cookie and
// places the State in the request context, where handlers read it with
// session.FromContext.  Tampered or expired cookies yield a fresh
// unverified session instead of an error.
func Session(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session.Set(c, store.Load(c))
			return next(c)
		}
	}
}
