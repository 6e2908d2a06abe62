package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arquifreelas/marketplace-api/internal/api/middleware"
)

// ctxProfileID extracts the session subject injected by the session
// middleware and fast-fails with 401 before any service call when absent.
func ctxProfileID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxProfileID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return id, nil
}
