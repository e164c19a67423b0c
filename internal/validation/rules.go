package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// TagDateDDMMYYYY checks the DD-MM-YYYY shape only, not the calendar.
	TagDateDDMMYYYY = "ddmmyyyy"

	// TagClockHHMM checks the HH:MM shape only, not the ranges.
	TagClockHHMM = "hhmm"
)

var (
	dateShape  = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	clockShape = regexp.MustCompile(`^\d{2}:\d{2}$`)

	// validate is shared; validator.Validate is safe for concurrent use.
	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report struct fields under their JSON names so clients see the keys
	// they actually sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation(TagDateDDMMYYYY, func(fl validator.FieldLevel) bool {
		return dateShape.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation(TagClockHHMM, func(fl validator.FieldLevel) bool {
		return clockShape.MatchString(fl.Field().String())
	})

	return v
}

// Required rejects absent and null values.
func Required(value any) (any, error) {
	if value == nil {
		return nil, errors.New("is required")
	}
	return value, nil
}

// String accepts only JSON strings (or path/query parameters).
func String(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, errors.New("must be a string")
	}
	return s, nil
}

// Tag runs a go-playground/validator tag against the value, e.g.
// Tag("oneof=Online Offline") or Tag(TagClockHHMM).
func Tag(tag string) Rule {
	return func(value any) (any, error) {
		err := validate.Var(value, tag)
		if err == nil {
			return value, nil
		}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return nil, errors.New(describeTag(validationErrors[0]))
		}
		return nil, err
	}
}

// Integer accepts a JSON number without a fractional part, or a string of
// digits (path parameters arrive as strings), and yields an int64.
func Integer(value any) (any, error) {
	switch v := value.(type) {
	case int64:
		return v, nil

	case int:
		return int64(v), nil

	case float64:
		if math.IsNaN(v) {
			return nil, errors.New("must be a number")
		}
		if math.IsInf(v, 0) {
			return nil, errors.New("is out of range")
		}
		if v != math.Trunc(v) {
			return nil, errors.New("must be an integer")
		}
		if v < math.MinInt64 || v >= math.MaxInt64 {
			return nil, errors.New("is out of range")
		}
		return int64(v), nil

	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		// Not a plain int64: a fraction, an exponent or too many digits.
		f, err := v.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, errors.New("must be a number")
		}
		return Integer(f)

	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("must be an integer")
		}
		return n, nil

	default:
		return nil, errors.New("must be a number")
	}
}

// Number accepts JSON numbers only; strings that look like numbers are
// rejected.
func Number(value any) (any, error) {
	switch value.(type) {
	case float64, json.Number, int, int64:
		return value, nil
	default:
		return nil, errors.New("must be a number")
	}
}

// Positive requires an int64 greater than zero. It expects Integer earlier
// in the chain.
func Positive(value any) (any, error) {
	n, ok := value.(int64)
	if !ok || n <= 0 {
		return nil, errors.New("must be a positive integer")
	}
	return n, nil
}

// MinDigits requires the base-10 form of an int64 to have at least n digits.
// The sign is not counted.
func MinDigits(n int) Rule {
	return func(value any) (any, error) {
		i, ok := value.(int64)
		if !ok {
			return nil, errors.New("must be an integer")
		}
		digits := strings.TrimPrefix(strconv.FormatInt(i, 10), "-")
		if len(digits) < n {
			return nil, fmt.Errorf("must have at least %d digits", n)
		}
		return i, nil
	}
}

// CalendarDate parses a string with the given time layout and yields a
// time.Time. time.Parse rejects days past the end of the month, which covers
// 31-04 and 29-02 outside leap years. Year 0000 parses but is not a calendar
// year, so it is rejected too.
func CalendarDate(layout string) Rule {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, errors.New("must be a string")
		}
		t, err := time.Parse(layout, s)
		if err != nil || t.Year() < 1 {
			return nil, errors.New("must be a valid calendar date")
		}
		return t, nil
	}
}

// Clock is a parsed HH:MM time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ClockRange splits an HH:MM string and requires hours 0-23 and minutes
// 0-59. It expects Tag(TagClockHHMM) earlier in the chain.
func ClockRange(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, errors.New("must be a string")
	}

	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return nil, errors.New("must use the HH:MM format")
	}

	hour, errHour := strconv.Atoi(hh)
	minute, errMinute := strconv.Atoi(mm)
	if errHour != nil || errMinute != nil {
		return nil, errors.New("must use the HH:MM format")
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, errors.New("must be a valid time of day")
	}

	return Clock{Hour: hour, Minute: minute}, nil
}
