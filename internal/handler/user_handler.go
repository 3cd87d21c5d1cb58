package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todolist/internal/service"
)

// UserHandler bundles account endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// DeleteAccount godoc
// @Summary Delete the current account
// @Description Removes the user together with its todos and issued tokens.
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Router /sign_up [delete]
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteUser(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
