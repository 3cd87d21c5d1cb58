package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todolist/internal/service"
)

// TodoHandler handles todo endpoints. Every action is scoped to the current user.
type TodoHandler struct {
	todoService service.TodoService
}

// NewTodoHandler creates a new todo handler.
func NewTodoHandler(todoService service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// TodoRequest represents a todo create or update request.
type TodoRequest struct {
	Todo struct {
		Title     string `json:"title"`
		Completed bool   `json:"completed"`
	} `json:"todo"`
}

// List godoc
// @Summary List the current user's todos
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TodosEnvelope
// @Failure 401 {object} errors.ErrorResponse
// @Router /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	todos, err := h.todoService.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTodosEnvelope(todos))
}

// Get godoc
// @Summary Get a todo
// @Tags todos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Success 200 {object} TodoEnvelope
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorsResponse
// @Router /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TodoEnvelope{Todo: newTodoResponse(todo)})
}

// Create godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TodoRequest true "Todo attributes"
// @Success 201 {object} TodoEnvelope
// @Failure 400 {object} errors.ErrorsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorsResponse
// @Router /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	params, err := requireParam(c, todoParam)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Create(c.Request().Context(), user.ID, parseTodoParams(params))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, TodoEnvelope{Todo: newTodoResponse(todo)})
}

// Update godoc
// @Summary Update a todo
// @Description Absent attributes are left unchanged. PUT and PATCH behave the same.
// @Tags todos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Param request body TodoRequest true "Todo attributes"
// @Success 200 {object} TodoEnvelope
// @Failure 400 {object} errors.ErrorsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorsResponse
// @Failure 422 {object} errors.ErrorsResponse
// @Router /todos/{id} [patch]
// @Router /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return err
	}
	// ownership is resolved before the body is inspected
	current, err := h.todoService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	params, err := requireParam(c, todoParam)
	if err != nil {
		return err
	}

	todo, err := h.todoService.Update(c.Request().Context(), current, parseTodoParams(params))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, TodoEnvelope{Todo: newTodoResponse(todo)})
}

// Delete godoc
// @Summary Delete a todo
// @Tags todos
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorsResponse
// @Router /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := todoID(c)
	if err != nil {
		return err
	}

	if err := h.todoService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
