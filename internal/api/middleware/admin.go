package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identikit/user-service/internal/core/domain"
)

// AdminOnly rejects requests whose verified claims lack the admin flag.
// It must run after Auth.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ClaimsKey).(*domain.UserClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !claims.Admin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
