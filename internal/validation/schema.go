package validation

// Rule is one link in a field's check chain.
//
// It receives the value produced by the previous link (the raw input for the
// first one) and returns the value to hand to the next link. That lets a
// rule both check and convert, e.g. a JSON number becomes an int64 which
// later rules compare numerically.
type Rule func(value any) (any, error)

// Field names one payload key and the ordered rules applied to it.
type Field struct {
	Name  string
	Rules []Rule
}

// NewField builds a Field from its name and rules.
func NewField(name string, rules ...Rule) Field {
	return Field{Name: name, Rules: rules}
}

// check runs the chain, stopping at the first failure. Format rules are
// listed before range rules so the reported reason is the most basic one.
func (f Field) check(value any) (any, error) {
	var err error
	for _, rule := range f.Rules {
		if value, err = rule(value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// Schema is a declarative constraint set for a payload.
type Schema struct {
	fields []Field
}

// NewSchema returns a Schema checking the given fields in order.
func NewSchema(fields ...Field) *Schema {
	return &Schema{fields: fields}
}

// Validate checks input against every field.
//
// Fields are independent: a failing field never prevents the others from
// being checked, and every failure is reported. On success the returned map
// holds each field's converted value under its name.
func (s *Schema) Validate(input map[string]any) (map[string]any, error) {
	values := make(map[string]any, len(s.fields))
	var violations CustomValidationErrors

	for _, field := range s.fields {
		value, err := field.check(input[field.Name])
		if err != nil {
			violations = append(violations, CustomValidationError{
				Field:   field.Name,
				Message: err.Error(),
			})
			continue
		}
		values[field.Name] = value
	}

	if len(violations) > 0 {
		return nil, violations
	}

	return values, nil
}
