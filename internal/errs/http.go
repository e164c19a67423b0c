// Package errs defines the error shapes the API returns to clients.
//
// Every failure that leaves the service is rendered as an HTTPError, so
// clients can rely on one JSON layout:
//
//	{
//	  "code": "BAD_REQUEST",
//	  "message": "Validation failed",
//	  "status": 400,
//	  "override": true,
//	  "errors": [{ "field": "Date", "error": "must be a valid calendar date" }],
//	  "action": null
//	}
//
// - Field-level validation failures travel in Errors.
// - Action carries optional hints a frontend can act on.
// - HTTPError plays nicely with errors.Is / errors.As.
package errs

import "strings"

// FieldError is a single field-level violation.
//
// Example:
//
//	{ "field": "CheckInTime", "error": "must use the HH:MM format" }
type FieldError struct {
	// Field is the payload key the error relates to, spelled exactly as the
	// client sent it (e.g. "AttendanceID", "status").
	Field string `json:"field"`

	// Error is the human-readable reason.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client it should redirect somewhere.
	// Value holds the URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type handlers and services return when the failure
// should reach the client as-is.
//
// Fields:
//   - Code: machine-friendly code (e.g. "BAD_REQUEST", "ATTENDANCE_RECORD_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show to end users verbatim.
//   - Errors: per-field violations.
//   - Action: optional client instruction.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction (redirect, etc.).
	Action *Action `json:"action"`
}

// Error returns the Message so logging the error shows something readable.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// Only the type is compared, not Code or Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of e with Message replaced, leaving the
// receiver untouched so it can be used as a template.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
