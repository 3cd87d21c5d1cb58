package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todolist/internal/auth"
	"todolist/internal/errors"
	"todolist/internal/model"
)

// CurrentUserKey is the echo context key holding the authenticated *model.User.
const CurrentUserKey = "current_user"

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// UserEnvelope wraps a single user.
type UserEnvelope struct {
	User UserResponse `json:"user"`
}

// TodoResponse is the public representation of a todo.
type TodoResponse struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	OwnerID   uint   `json:"owner_id"`
}

// TodoEnvelope wraps a single todo.
type TodoEnvelope struct {
	Todo TodoResponse `json:"todo"`
}

// TodosEnvelope wraps a todo list.
type TodosEnvelope struct {
	Todos []TodoResponse `json:"todos"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func newTodoResponse(t *model.Todo) TodoResponse {
	return TodoResponse{ID: t.ID, Title: t.Title, Completed: t.Completed, OwnerID: t.OwnerID}
}

func newTodosEnvelope(todos []model.Todo) TodosEnvelope {
	out := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, newTodoResponse(&todos[i]))
	}
	return TodosEnvelope{Todos: out}
}

// CurrentUser returns the user set by the authentication middleware.
func CurrentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(CurrentUserKey).(*model.User)
	if !ok || user == nil {
		return nil, errors.ErrUnauthenticated
	}
	return user, nil
}

// audienceRequest carries the audience tag sent alongside a request. The
// limit matches the allowlisted_jwts.aud column size.
type audienceRequest struct {
	Aud string `validate:"max=255"`
}

// Audience reads the audience tag from header. An absent header means an
// empty audience.
func Audience(c echo.Context, header string) (string, error) {
	req := audienceRequest{Aud: c.Request().Header.Get(header)}
	if err := c.Validate(&req); err != nil {
		return "", errors.NewHTTPError(http.StatusBadRequest, header+" header is too long")
	}
	return req.Aud, nil
}

func setTokenHeader(c echo.Context, token string) {
	c.Response().Header().Set(echo.HeaderAuthorization, auth.BearerHeader(token))
}
