package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todolist/internal/errors"
	"todolist/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	audHeader   string
}

// NewAuthHandler creates a new auth handler. audHeader names the request
// header carrying the token audience.
func NewAuthHandler(authService service.AuthService, audHeader string) *AuthHandler {
	return &AuthHandler{authService: authService, audHeader: audHeader}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	User struct {
		Email                string `json:"email"`
		Name                 string `json:"name"`
		Password             string `json:"password"`
		PasswordConfirmation string `json:"password_confirmation"`
	} `json:"user"`
}

// SignInRequest represents a user sign-in request.
type SignInRequest struct {
	User struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
}

// SignUp godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} UserEnvelope
// @Header 201 {string} Authorization "Bearer token"
// @Failure 400 {object} errors.ErrorsResponse
// @Failure 422 {object} errors.ErrorsResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sign_up [post]
func (h *AuthHandler) SignUp(c echo.Context) error {
	aud, err := Audience(c, h.audHeader)
	if err != nil {
		return err
	}

	params, err := requireParam(c, userParam)
	if err != nil {
		return err
	}

	user, token, err := h.authService.Register(c.Request().Context(), parseRegistration(params), aud)
	if err != nil {
		return err
	}

	setTokenHeader(c, token)
	return c.JSON(http.StatusCreated, UserEnvelope{User: newUserResponse(user)})
}

// SignIn godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignInRequest true "Credentials"
// @Success 200 {object} UserEnvelope
// @Header 200 {string} Authorization "Bearer token"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /sign_in [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	aud, err := Audience(c, h.audHeader)
	if err != nil {
		return err
	}

	params, err := requireParam(c, userParam)
	if err != nil {
		return errors.ErrUnauthenticated
	}

	user, token, err := h.authService.SignIn(
		c.Request().Context(),
		stringField(params, "email"),
		stringField(params, "password"),
		aud,
	)
	if err != nil {
		return err
	}

	setTokenHeader(c, token)
	return c.JSON(http.StatusOK, UserEnvelope{User: newUserResponse(user)})
}

// SignOut godoc
// @Summary Revoke the presented token
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /sign_out [delete]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if err := h.authService.SignOut(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization)); err != nil {
		c.Logger().Errorf("sign out: %v", err)
	}
	return c.NoContent(http.StatusNoContent)
}
