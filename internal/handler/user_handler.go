package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"photoshare/internal/middleware"
	"photoshare/internal/service"
)

// UserHandler handles profile and moderation endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest carries editable profile fields.
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
}

// BlacklistRequest flips an account's banned flag.
type BlacklistRequest struct {
	Banned *bool `json:"banned" validate:"required"`
}

// Me godoc
// @Summary Current account
// @Tags users
// @Produce json
// @Success 200 {object} model.User
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, middleware.Principal(c))
}

// Profile godoc
// @Summary Public profile by username
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.userService.GetProfile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update a profile
// @Tags users
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Param request body UpdateProfileRequest true "New profile fields"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{username} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), middleware.Principal(c), c.Param("username"), req.Username, req.Email)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// Blacklist godoc
// @Summary Ban or unban an account
// @Tags users
// @Accept json
// @Produce json
// @Param email path string true "Account email"
// @Param request body BlacklistRequest true "Ban flag"
// @Success 200 {object} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{email}/blacklist [patch]
func (h *UserHandler) Blacklist(c echo.Context) error {
	var req BlacklistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.SetBanned(c.Request().Context(), c.Param("email"), *req.Banned)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, user)
}
