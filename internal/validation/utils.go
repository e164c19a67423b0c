// Package validation contains the logic for validating request data.
//
// Payload types implement Validatable. Most of them describe their fields
// with a Schema (see schema.go), a set of independent field chains whose
// violations are collected together, while the `validator` library supplies
// the tag-based checks those chains delegate to. Failures are converted into
// errs.FieldError values the client can act on.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/deppfellow/attendance-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate returns nil, validator.ValidationErrors (struct tags) or
// CustomValidationErrors (schema checks).
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) fills path params and the JSON body. A body with
//     another Content-Type is treated as empty.
//  2. payload.Validate() applies the payload's rules.
//  3. A failure becomes a 400 *errs.HTTPError listing every bad field.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil && !isUnsupportedBody(err) {
		return bindError(err)
	}

	if fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewValidationError(fieldErrors)
	}

	return nil
}

// isUnsupportedBody reports a body that is not JSON. Path parameters are
// already bound when echo rejects the body, so the payload is validated as if
// the body were empty and the client gets the usual field errors.
func isUnsupportedBody(err error) bool {
	var echoErr *echo.HTTPError
	return errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType
}

// bindError turns an echo binder failure into a client error.
//
// Malformed JSON and type mismatches arrive as 400 *echo.HTTPError; their
// message is reused. Other statuses pass through untouched for the global
// error handler.
func bindError(err error) error {
	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		return errs.NewBadRequestError("Invalid request body", false, nil, nil, nil)
	}

	if echoErr.Code != http.StatusBadRequest {
		return echoErr
	}

	message, ok := echoErr.Message.(string)
	if !ok || message == "" {
		message = "Invalid request body"
	}

	return errs.NewBadRequestError(message, false, nil, nil, nil)
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) []errs.FieldError {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return nil
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, err := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation failure we know how to describe field by field.
		return []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, err := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: describeTag(err),
		})
	}

	return fieldErrors
}

// describeTag converts a failed validator tag into a user-friendly message.
func describeTag(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"

	case "min":
		// min means length for strings and value for numbers.
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "numeric":
		return "must contain only digits"

	case TagDateDDMMYYYY:
		return "must use the DD-MM-YYYY format"

	case TagClockHHMM:
		return "must use the HH:MM format"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", err.Field(), err.Tag())
	}
}
