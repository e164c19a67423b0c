package attendance

import (
	"errors"

	"github.com/deppfellow/attendance-api/internal/validation"
)

// ------------------------------------------------------------

// Payload is the JSON body shared by create and update.
//
// Example body:
//
//	{
//	  "AttendanceID": 12345678,
//	  "Date": "29-02-2024",
//	  "status": "Online",
//	  "CheckInTime": "09:00",
//	  "CheckOutTime": "17:30"
//	}
//
// Fields are untyped: a wrong JSON type must surface as a violation on that
// one field, not as a binding failure of the whole body. Numbers arrive as
// json.Number (see validation.JSONSerializer), strings as string, and a
// missing key stays nil so the schema can report it as required.
type Payload struct {
	AttendanceID any `json:"AttendanceID"`
	Date         any `json:"Date"`
	Status       any `json:"status"`
	CheckInTime  any `json:"CheckInTime"`
	CheckOutTime any `json:"CheckOutTime"`

	// Record holds the typed record once Validate succeeds.
	Record Attendance `json:"-"`
}

// values exposes the raw fields under the keys the schema knows them by.
func (p *Payload) values() map[string]any {
	return map[string]any{
		FieldAttendanceID: p.AttendanceID,
		FieldDate:         p.Date,
		FieldStatus:       p.Status,
		FieldCheckInTime:  p.CheckInTime,
		FieldCheckOutTime: p.CheckOutTime,
	}
}

func (p *Payload) parse() error {
	record, err := ParseRecord(p.values())
	if err != nil {
		return err
	}
	p.Record = record
	return nil
}

// ------------------------------------------------------------

// ListAttendancePayload is the (empty) input of GET /api/attendance.
//
// The list route takes no filters or paging, but it still goes through the
// typed handler pipeline, which needs a Validatable payload.
type ListAttendancePayload struct{}

func (p *ListAttendancePayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

// CreateAttendancePayload is the input of POST /api/attendance: a full
// record in the body.
type CreateAttendancePayload struct {
	Payload
}

// Validate runs the record schema and, on success, fills Record.
func (p *CreateAttendancePayload) Validate() error {
	return p.parse()
}

// ------------------------------------------------------------

// UpdateAttendancePayload is the input of PUT /api/attendance/:id.
//
// Echo's binder fills IDParam from the path and the embedded Payload from the
// JSON body in one Bind call. Validate then turns both into typed values:
//
//	PUT /api/attendance/12345678
//	{"AttendanceID": 12345678, ...}   -> ID = 12345678, Record = {...}
//	{"AttendanceID": 87654321, ...}   -> 400, AttendanceID "must match the id in the path"
type UpdateAttendancePayload struct {
	IDParam string `param:"id" json:"-"`

	// ID holds the parsed IDParam once Validate succeeds.
	ID int64 `json:"-"`

	Payload
}

// Validate checks the path id and the body together so a client sees every
// problem at once. The body must describe the record the path names.
func (p *UpdateAttendancePayload) Validate() error {
	var violations validation.CustomValidationErrors

	id, idErr := ParseID(p.IDParam)
	collect(&violations, idErr)

	bodyErr := p.parse()
	collect(&violations, bodyErr)

	if idErr == nil && bodyErr == nil && p.Record.AttendanceID != id {
		violations = append(violations, validation.CustomValidationError{
			Field:   FieldAttendanceID,
			Message: "must match the id in the path",
		})
	}

	if len(violations) > 0 {
		return violations
	}

	p.ID = id
	return nil
}

// ------------------------------------------------------------

// DeleteAttendancePayload is the input of DELETE /api/attendance/:id. Only the
// path matters; a body, if any, is ignored.
type DeleteAttendancePayload struct {
	IDParam string `param:"id" json:"-"`

	// ID holds the parsed IDParam once Validate succeeds.
	ID int64 `json:"-"`
}

// Validate parses IDParam with the same rules as a body AttendanceID
// (integer, positive, at least MinIDDigits digits).
func (p *DeleteAttendancePayload) Validate() error {
	id, err := ParseID(p.IDParam)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// collect appends the field violations carried by err, if any.
func collect(into *validation.CustomValidationErrors, err error) {
	var violations validation.CustomValidationErrors
	if errors.As(err, &violations) {
		*into = append(*into, violations...)
	}
}

// ------------------------------------------------------------

// MessageResponse is a body with only a human-readable message, e.g. the
// welcome route and DELETE:
//
//	{"message": "Attendance 12345678 deleted"}
type MessageResponse struct {
	Message string `json:"message"`
}

// AttendanceResponse wraps one record, as returned by create and update.
type AttendanceResponse struct {
	Message string     `json:"message"`
	Data    Attendance `json:"data"`
}

// AttendanceListResponse wraps every record. Data is always an array, never
// null, so clients can iterate it without a check.
type AttendanceListResponse struct {
	Message string       `json:"message"`
	Data    []Attendance `json:"data"`
}
