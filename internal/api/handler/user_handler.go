package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/identikit/user-service/internal/api/metrics"
	"github.com/identikit/user-service/internal/core/domain"
	"github.com/identikit/user-service/internal/core/ports"
)

// Delete modes accepted by the delete endpoint.
const (
	deleteModeSoft = 0
	deleteModeHard = 1
)

// UserHandler handles the account lifecycle endpoints.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userSummary
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.users.Create(c.Request().Context(), ports.RegisterInput{
		Login:    req.Login,
		Password: req.Password,
		Name:     req.Name,
		Gender:   domain.Gender(req.Gender),
		Birthday: req.Birthday,
		Admin:    req.Admin,
	}, claims.Login)
	if err != nil {
		return err
	}

	metrics.RegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, toUserSummary(user))
}

// Update replaces the profile fields (name, gender, birthday) of an account.
//
// @Summary      Update a user's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string             true  "Login"
// @Param        body   body      updateUserRequest  true  "New profile fields"
// @Success      200    {object}  userSummary
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /users/{login} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	login := c.Param("login")
	if !canActOn(claims, login) {
		return domain.ErrForbidden
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), login, ports.ProfileInput{
		Name:     req.Name,
		Gender:   domain.Gender(req.Gender),
		Birthday: req.Birthday,
	}, claims.Login)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserSummary(user))
}

// ChangePassword sets a new password for an account.
//
// @Summary      Change a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string                 true  "Login"
// @Param        body   body      changePasswordRequest  true  "New password"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /users/{login}/changepassword [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	login := c.Param("login")
	if !canActOn(claims, login) {
		return domain.ErrForbidden
	}

	if err := h.users.ChangePassword(c.Request().Context(), login, req.NewPassword, claims.Login); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "password was successfully changed"})
}

// ChangeLogin renames an account.
//
// @Summary      Change a user's login
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string              true  "Login"
// @Param        body   body      changeLoginRequest  true  "New login"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      409    {object}  map[string]string
// @Router       /users/{login}/changelogin [put]
func (h *UserHandler) ChangeLogin(c echo.Context) error {
	var req changeLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	login := c.Param("login")
	if !canActOn(claims, login) {
		return domain.ErrForbidden
	}

	if err := h.users.ChangeLogin(c.Request().Context(), login, req.NewLogin, claims.Login); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "login was successfully changed"})
}

// List returns all active users ordered by creation time.
//
// @Summary      List active users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userSummary
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ActiveUsers(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]userSummary, 0, len(users))
	for i := range users {
		resp = append(resp, toUserSummary(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// AboveAge returns users strictly older than the given age.
//
// @Summary      List users above an age
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        age  path      int  true  "Age threshold in years"
// @Success      200  {array}   userView
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users/above/{age} [get]
func (h *UserHandler) AboveAge(c echo.Context) error {
	age, err := strconv.Atoi(c.Param("age"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid age")
	}

	users, err := h.users.UsersAboveAge(c.Request().Context(), age)
	if err != nil {
		return err
	}

	resp := make([]userView, 0, len(users))
	for i := range users {
		resp = append(resp, toUserView(&users[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Delete removes an account. Mode 0 deactivates (soft delete), mode 1 removes
// the record permanently.
//
// @Summary      Delete a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string             true  "Login"
// @Param        body   body      deleteUserRequest  true  "Delete mode: 0 soft, 1 hard"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /users/{login} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	login := c.Param("login")

	switch req.DeleteMode {
	case deleteModeSoft:
		if err := h.users.Deactivate(c.Request().Context(), login, claims.Login); err != nil {
			return err
		}
		metrics.DeletedTotal.WithLabelValues("soft").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "user was deactivated"})
	case deleteModeHard:
		if err := h.users.Delete(c.Request().Context(), login); err != nil {
			return err
		}
		metrics.DeletedTotal.WithLabelValues("hard").Inc()
		return c.JSON(http.StatusOK, messageResponse{Message: "user was permanently removed"})
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unexisting delete mode")
	}
}

// Restore clears the deactivation of an account.
//
// @Summary      Restore a deactivated user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string  true  "Login"
// @Success      200    {object}  messageResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /users/{login}/restore [put]
func (h *UserHandler) Restore(c echo.Context) error {
	if err := h.users.Restore(c.Request().Context(), c.Param("login")); err != nil {
		return err
	}

	metrics.RestoredTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user was successfully restored"})
}
