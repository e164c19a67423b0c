package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSONSerializer is echo's JSON serializer with one change: request numbers
// decode into untyped fields as json.Number instead of float64, so Integer
// sees the exact digits. A 17-digit id is then either kept exactly or
// rejected, never rounded.
//
//	e.JSONSerializer = validation.JSONSerializer{}
type JSONSerializer struct {
	echo.DefaultJSONSerializer
}

// Deserialize reads the request body into i, reporting syntax and type
// errors as 400 like echo's default serializer.
func (s JSONSerializer) Deserialize(c echo.Context, i any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.UseNumber()

	err := decoder.Decode(i)

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &typeErr):
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v, offset=%v",
			typeErr.Type, typeErr.Value, typeErr.Field, typeErr.Offset)).SetInternal(err)
	case errors.As(err, &syntaxErr):
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Syntax error: offset=%v, error=%v",
			syntaxErr.Offset, syntaxErr.Error())).SetInternal(err)
	}

	return err
}
