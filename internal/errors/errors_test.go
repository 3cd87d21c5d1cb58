package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"todolist/internal/validation"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   interface{}
		expectedKnown  bool
	}{
		{
			name:           "validation errors",
			err:            validation.Errors{{Field: "Title", Message: "can't be blank"}},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   ErrorsResponse{Errors: []string{"Title can't be blank"}},
			expectedKnown:  true,
		},
		{
			name:           "missing param",
			err:            &ParamMissingError{Param: "todo"},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrorsResponse{Errors: []string{"param is missing or the value is empty: todo"}},
			expectedKnown:  true,
		},
		{
			name:           "wrapped not found",
			err:            fmt.Errorf("get todo: %w", ErrRecordNotFound),
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrorsResponse{Errors: []string{MsgRecordNotFound}},
			expectedKnown:  true,
		},
		{
			name:           "unauthenticated",
			err:            ErrUnauthenticated,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   ErrorResponse{Error: MsgUnauthenticated},
			expectedKnown:  true,
		},
		{
			name:           "invalid credentials",
			err:            ErrInvalidCredentials,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   ErrorResponse{Error: MsgInvalidCredentials},
			expectedKnown:  true,
		},
		{
			name:           "http error passes through",
			err:            NewHTTPError(http.StatusBadRequest, "bad header"),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrorResponse{Error: "bad header"},
			expectedKnown:  true,
		},
		{
			name:           "unknown error",
			err:            fmt.Errorf("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   ErrorResponse{Error: MsgInternal},
			expectedKnown:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr, known := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedBody, httpErr.Body)
			assert.Equal(t, tt.expectedKnown, known)
		})
	}
}
