package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	return NewSchema(
		NewField("id", Required, Number, Integer, Positive, MinDigits(8)),
		NewField("name", Required, String),
	)
}

func TestSchemaConvertsValues(t *testing.T) {
	values, err := testSchema().Validate(map[string]any{
		"id":   float64(12345678),
		"name": "alice",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(12345678), values["id"])
	assert.Equal(t, "alice", values["name"])
}

func TestSchemaReportsEveryFailingField(t *testing.T) {
	_, err := testSchema().Validate(map[string]any{
		"id": float64(1234567),
	})

	var violations CustomValidationErrors
	require.True(t, errors.As(err, &violations))
	assert.Equal(t, CustomValidationErrors{
		{Field: "id", Message: "must have at least 8 digits"},
		{Field: "name", Message: "is required"},
	}, violations)
	assert.EqualError(t, err, "Validation failed")
}

func TestFieldStopsAtFirstFailure(t *testing.T) {
	calls := 0
	counting := func(value any) (any, error) {
		calls++
		return value, nil
	}

	_, err := NewField("id", Required, counting).check(nil)

	assert.EqualError(t, err, "is required")
	assert.Zero(t, calls)
}

type taggedPayload struct {
	Name string `json:"name" validate:"required,min=3"`
}

func (p *taggedPayload) Validate() error {
	return validate.Struct(p)
}

func TestExtractValidationErrorUsesJSONNames(t *testing.T) {
	fieldErrors := extractValidationError((&taggedPayload{Name: "ab"}).Validate())

	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "name", fieldErrors[0].Field)
	assert.Equal(t, "must be at least 3 characters", fieldErrors[0].Error)
}

func TestExtractValidationErrorFallback(t *testing.T) {
	fieldErrors := extractValidationError(errors.New("boom"))

	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "boom", fieldErrors[0].Error)
}
