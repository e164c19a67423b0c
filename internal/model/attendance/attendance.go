// Package attendance holds the attendance record entity, its validation
// schema and the request/response shapes of the /api/attendance routes.
package attendance

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DateLayout is the only accepted textual form of a Date (DD-MM-YYYY).
	DateLayout = "02-01-2006"

	// MinIDDigits is the minimum number of decimal digits in an AttendanceID.
	MinIDDigits = 8
)

// Status is the closed set of attendance modes.
type Status string

const (
	StatusOnline  Status = "Online"
	StatusOffline Status = "Offline"
)

// Attendance is a validated attendance record.
//
// JSON keys keep the exact casing clients send, including the lower-case
// "status".
type Attendance struct {
	AttendanceID int64     `json:"AttendanceID"`
	Date         Date      `json:"Date"`
	Status       Status    `json:"status"`
	CheckInTime  ClockTime `json:"CheckInTime"`
	CheckOutTime ClockTime `json:"CheckOutTime"`
}

// Date is a calendar date serialized as DD-MM-YYYY.
type Date struct {
	time.Time
}

// NewDate returns the Date for year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock and location of t, keeping its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("date must use the DD-MM-YYYY format: %w", err)
	}
	d.Time = t
	return nil
}

// ClockTime is a time of day with minute precision, serialized as HH:MM.
type ClockTime struct {
	Hour   int
	Minute int
}

// ClockTimeOf converts an offset since midnight, dropping seconds.
func ClockTimeOf(sinceMidnight time.Duration) ClockTime {
	minutes := int(sinceMidnight / time.Minute)
	return ClockTime{Hour: minutes / 60 % 24, Minute: minutes % 60}
}

// SinceMidnight is the offset of t from 00:00.
func (t ClockTime) SinceMidnight() time.Duration {
	return time.Duration(t.Hour)*time.Hour + time.Duration(t.Minute)*time.Minute
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("time must be a string: %w", err)
	}
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return fmt.Errorf("time must use the HH:MM format: %w", err)
	}
	t.Hour, t.Minute = parsed.Hour(), parsed.Minute()
	return nil
}
