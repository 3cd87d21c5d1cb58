package handler

import (
	"io"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tidwall/gjson"

	"todolist/internal/errors"
	"todolist/internal/service"
)

const (
	userParam = "user"
	todoParam = "todo"
)

// requireParam returns the non-empty object stored under key in the JSON
// request body.
func requireParam(c echo.Context, key string) (gjson.Result, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil || !gjson.ValidBytes(body) {
		return gjson.Result{}, &errors.ParamMissingError{Param: key}
	}
	root := gjson.GetBytes(body, key)
	if !root.IsObject() || len(root.Map()) == 0 {
		return gjson.Result{}, &errors.ParamMissingError{Param: key}
	}
	return root, nil
}

// stringField returns the field as a string, treating null and absent as "".
func stringField(obj gjson.Result, key string) string {
	v := obj.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

func optionalString(obj gjson.Result, key string) *string {
	v := obj.Get(key)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	s := v.String()
	return &s
}

func parseRegistration(user gjson.Result) service.RegisterInput {
	return service.RegisterInput{
		Email:                stringField(user, "email"),
		Name:                 stringField(user, "name"),
		Password:             stringField(user, "password"),
		PasswordConfirmation: optionalString(user, "password_confirmation"),
	}
}

// parseTodoParams keeps only the permitted attributes. An absent key stays
// nil; a null title reads as blank; completed must be a JSON boolean.
func parseTodoParams(todo gjson.Result) service.TodoParams {
	var params service.TodoParams

	if title := todo.Get("title"); title.Exists() {
		s := ""
		if title.Type != gjson.Null {
			s = title.String()
		}
		params.Title = &s
	}

	if completed := todo.Get("completed"); completed.Exists() {
		switch completed.Type {
		case gjson.True, gjson.False:
			b := completed.Bool()
			params.Completed = &b
		default:
			params.CompletedInvalid = true
		}
	}

	return params
}

// todoID parses the :id path parameter. Ids that cannot name a row read as
// not found.
func todoID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.ErrRecordNotFound
	}
	return uint(id), nil
}
