package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the liveness probe used by the load balancer.  It does not
// touch the database: a directory without a pool is still "up".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
