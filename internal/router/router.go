package router

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"todolist/internal/config"
	apperrors "todolist/internal/errors"
	"todolist/internal/handler"
	"todolist/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	todoHandler *handler.TodoHandler,
) {
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, cfg.JWTAudHeader},
		ExposeHeaders: []string{echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.POST("/sign_up", authHandler.SignUp)
	api.POST("/sign_in", authHandler.SignIn)
	api.DELETE("/sign_out", authHandler.SignOut)

	// Secured routes (require an allowlisted JWT)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: handler.CurrentUserKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			aud := c.Request().Header.Get(cfg.JWTAudHeader)
			return authService.Authenticate(c.Request().Context(), token, aud)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if !errors.Is(err, apperrors.ErrUnauthenticated) {
				c.Logger().Debugf("authentication: %v", err)
			}
			return apperrors.ErrUnauthenticated
		},
	}))

	secured.DELETE("/sign_up", userHandler.DeleteAccount)

	secured.GET("/todos", todoHandler.List)
	secured.POST("/todos", todoHandler.Create)
	secured.GET("/todos/:id", todoHandler.Get)
	secured.PATCH("/todos/:id", todoHandler.Update)
	secured.PUT("/todos/:id", todoHandler.Update)
	secured.DELETE("/todos/:id", todoHandler.Delete)
}

// ErrorHandler renders every error returned by a handler or middleware as JSON.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		status int
		body   interface{}
	)

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		status = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			body = apperrors.ErrorResponse{Error: msg}
		} else {
			body = echoErr.Message
		}
	} else {
		httpErr, known := apperrors.MapErrorToHTTP(err)
		if !known {
			c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}
		status, body = httpErr.StatusCode, httpErr.Body
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, body)
	}
	if err != nil {
		c.Logger().Error(err)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
