package attendance

import (
	"fmt"
	"time"

	"github.com/deppfellow/attendance-api/internal/validation"
)

// Payload keys, spelled as clients send them.
const (
	FieldAttendanceID = "AttendanceID"
	FieldDate         = "Date"
	FieldStatus       = "status"
	FieldCheckInTime  = "CheckInTime"
	FieldCheckOutTime = "CheckOutTime"
	FieldID           = "id"
)

// recordSchema describes a full attendance record. Each chain checks the
// shape of a value before its range.
var recordSchema = validation.NewSchema(
	validation.NewField(FieldAttendanceID,
		validation.Required,
		validation.Number,
		validation.Integer,
		validation.Positive,
		validation.MinDigits(MinIDDigits),
	),
	validation.NewField(FieldDate,
		validation.Required,
		validation.String,
		validation.Tag(validation.TagDateDDMMYYYY),
		validation.CalendarDate(DateLayout),
	),
	validation.NewField(FieldStatus,
		validation.Required,
		validation.String,
		validation.Tag(fmt.Sprintf("oneof=%s %s", StatusOnline, StatusOffline)),
	),
	validation.NewField(FieldCheckInTime,
		validation.Required,
		validation.String,
		validation.Tag(validation.TagClockHHMM),
		validation.ClockRange,
	),
	validation.NewField(FieldCheckOutTime,
		validation.Required,
		validation.String,
		validation.Tag(validation.TagClockHHMM),
		validation.ClockRange,
	),
)

// idSchema describes the :id path parameter of update and delete.
var idSchema = validation.NewSchema(
	validation.NewField(FieldID,
		validation.Required,
		validation.String,
		validation.Tag("numeric"),
		validation.Integer,
		validation.Positive,
		validation.MinDigits(MinIDDigits),
	),
)

// ParseRecord validates raw payload values and builds the typed record.
// The error, if any, is validation.CustomValidationErrors with one entry per
// failing field.
func ParseRecord(input map[string]any) (Attendance, error) {
	values, err := recordSchema.Validate(input)
	if err != nil {
		return Attendance{}, err
	}

	return Attendance{
		AttendanceID: values[FieldAttendanceID].(int64),
		Date:         DateOf(values[FieldDate].(time.Time)),
		Status:       Status(values[FieldStatus].(string)),
		CheckInTime:  ClockTime(values[FieldCheckInTime].(validation.Clock)),
		CheckOutTime: ClockTime(values[FieldCheckOutTime].(validation.Clock)),
	}, nil
}

// ParseID validates a record identifier taken from the URL path.
func ParseID(raw string) (int64, error) {
	values, err := idSchema.Validate(map[string]any{FieldID: raw})
	if err != nil {
		return 0, err
	}
	return values[FieldID].(int64), nil
}
