package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestNewBadRequestError(t *testing.T) {
	err := NewBadRequestError("bad input", false, nil, nil, nil)
	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)

	code := "ATTENDANCE_RECORD_ALREADY_EXISTS"
	err = NewBadRequestError("exists", true, &code, nil, nil)
	assert.Equal(t, code, err.Code)
	assert.True(t, err.Override)
}

func TestNewValidationError(t *testing.T) {
	fieldErrors := []FieldError{{Field: "Date", Error: "must be a valid calendar date"}}

	err := NewValidationError(fieldErrors)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed", err.Message)
	assert.Equal(t, fieldErrors, err.Errors)
}

func TestNewInternalServerErrorHidesCause(t *testing.T) {
	err := NewInternalServerError()

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Internal Server Error", err.Message)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", err.Code)
}

func TestHTTPErrorMatchesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("updating record: %w", NewNotFoundError("Attendance Record not found", true, nil))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.EqualError(t, wrapped, "updating record: Attendance Record not found")
}

func TestWithMessageLeavesTemplateUntouched(t *testing.T) {
	template := NewNotFoundError("Resource not found", false, nil)

	copied := template.WithMessage("Attendance Record not found")

	assert.Equal(t, "Resource not found", template.Message)
	assert.Equal(t, "Attendance Record not found", copied.Message)
	assert.Equal(t, template.Status, copied.Status)
}
