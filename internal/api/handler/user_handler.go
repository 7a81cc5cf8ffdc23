package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/core/ports"
)

// UserHandler handles the caller's own profile and password.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type profileResponse struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

// Profile returns the authenticated user's own record.
//
// @Summary      Get own profile
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /user/ [get]
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.service.Profile(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        user.Role,
		PhoneNumber: user.PhoneNumber,
	})
}

// ChangePassword updates the authenticated user's password.
//
// @Summary      Change own password
// @Tags         user
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /user/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ChangePassword(c.Request().Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}
