package errors

import (
	"errors"
	"net/http"

	"todolist/internal/validation"
)

// Messages rendered to clients. They are deliberately generic so that a
// response never tells which credential or token check failed.
const (
	MsgUnauthenticated    = "You need to sign in or sign up before continuing."
	MsgInvalidCredentials = "Invalid Email or password."
	MsgRecordNotFound     = "Record not found."
	MsgInternal           = "Internal server error"
)

var (
	// ErrRecordNotFound is returned when a record is absent or not owned by the caller.
	ErrRecordNotFound = errors.New("record not found")
	// ErrUnauthenticated is returned when a request carries no usable token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ParamMissingError is returned when a request body lacks its root key.
type ParamMissingError struct {
	Param string
}

func (e *ParamMissingError) Error() string {
	return "param is missing or the value is empty: " + e.Param
}

// ErrorResponse is the single-message response shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorsResponse is the message-list response shape.
type ErrorsResponse struct {
	Errors []string `json:"errors"`
}

// HTTPError represents an HTTP error with status code and response body.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       interface{}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates an HTTP error rendered as {"error": message}.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Body:       ErrorResponse{Error: message},
	}
}

// NewHTTPErrors creates an HTTP error rendered as {"errors": messages}.
func NewHTTPErrors(statusCode int, messages []string) *HTTPError {
	msg := ""
	if len(messages) > 0 {
		msg = messages[0]
	}
	return &HTTPError{
		StatusCode: statusCode,
		Message:    msg,
		Body:       ErrorsResponse{Errors: messages},
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. The second return value
// is false when err is not a known domain error.
func MapErrorToHTTP(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return NewHTTPErrors(http.StatusUnprocessableEntity, verrs.Messages()), true
	}

	var missing *ParamMissingError
	if errors.As(err, &missing) {
		return NewHTTPErrors(http.StatusBadRequest, []string{missing.Error()}), true
	}

	switch {
	case errors.Is(err, ErrRecordNotFound):
		return NewHTTPErrors(http.StatusNotFound, []string{MsgRecordNotFound}), true
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, MsgUnauthenticated), true
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, MsgInvalidCredentials), true
	default:
		return NewHTTPError(http.StatusInternalServerError, MsgInternal), false
	}
}
