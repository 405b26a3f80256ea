package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/identikit/user-service/internal/api/metrics"
	"github.com/identikit/user-service/internal/core/domain"
	"github.com/identikit/user-service/internal/core/ports"
)

// AuthHandler handles the anonymous login endpoint.
type AuthHandler struct {
	users    ports.UserService
	login    ports.LoginService
	tokens   ports.TokenIssuer
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

func NewAuthHandler(users ports.UserService, login ports.LoginService, tokens ports.TokenIssuer, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{users: users, login: login, tokens: tokens, throttle: throttle, logger: logger}
}

// Login authenticates a user and returns a bearer token in the Authorization
// response header alongside a user summary body.
//
// An unknown login and a wrong password produce distinct 404 messages
// ("wrong username" / "wrong password"); a deactivated account fails before
// the password check.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userView
// @Header       200   {string}  Authorization  "Bearer token, valid for one hour"
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	if allowed, err := h.throttle.Allow(ctx, req.Login); err != nil {
		// A throttle outage must not lock everyone out.
		h.logger.Warn().Err(err).Msg("login throttle unavailable")
	} else if !allowed {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many failed login attempts")
	}

	user, err := h.users.GetByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("wrong_username").Inc()
			return echo.NewHTTPError(http.StatusNotFound, "wrong username")
		}
		return err
	}

	claims, err := h.login.TryLogin(ctx, req.Login, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountDeactivated):
			metrics.LoginsTotal.WithLabelValues("deactivated").Inc()
			return echo.NewHTTPError(http.StatusNotFound, "account deactivated")
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("wrong_password").Inc()
			if terr := h.throttle.RecordFailure(ctx, req.Login); terr != nil {
				h.logger.Warn().Err(terr).Msg("failed to record login failure")
			}
			return echo.NewHTTPError(http.StatusNotFound, "wrong password")
		}
		return err
	}

	token, err := h.tokens.Issue(*claims)
	if err != nil {
		return err
	}

	if terr := h.throttle.Reset(ctx, req.Login); terr != nil {
		h.logger.Warn().Err(terr).Msg("failed to reset login throttle")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.logger.Info().Str("login", req.Login).Msg("user logged in")

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	return c.JSON(http.StatusOK, toUserView(user))
}
