package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identikit/user-service/internal/api/middleware"
	"github.com/identikit/user-service/internal/core/domain"
)

// ctxClaims extracts the typed claims injected by the Auth middleware. Their
// absence means the middleware did not run on the route; fail closed.
func ctxClaims(c echo.Context) (*domain.UserClaims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*domain.UserClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}

// canActOn reports whether the caller may operate on the account with the
// given login: admins may act on anyone, everyone else only on themself.
func canActOn(claims *domain.UserClaims, login string) bool {
	return claims.Admin || claims.Login == login
}
