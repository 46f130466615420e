package middleware

import (
	"net/http"

	jsonres "stockpulse/pkg/response"

	"github.com/labstack/echo/v4"
)

// AdminOnly requires the role claim set by AuthMiddleware to be "admin".
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role != "admin" {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}
			return next(c)
		}
	}
}
