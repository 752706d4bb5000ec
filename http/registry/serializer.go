package registry

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

// ErrUnknownField marks a request body carrying a field the target does not declare
var ErrUnknownField = errors.New("extra fields not permitted")

// StrictJSONSerializer is echo's JSON codec on goccy/go-json. Request bodies
// are decoded with unknown fields rejected.
type StrictJSONSerializer struct{}

// Serialize writes i as JSON to the response
func (StrictJSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

// Deserialize reads the request body into i
func (StrictJSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(i)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case strings.Contains(err.Error(), "unknown field"):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, unknownFieldName(err.Error())).
			SetInternal(ErrUnknownField)
	case errors.As(err, &typeErr):
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Unmarshal type error: expected=%v, got=%v, field=%v", typeErr.Type, typeErr.Value, typeErr.Field)).
			SetInternal(err)
	case errors.As(err, &syntaxErr):
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Syntax error: offset=%v, error=%v", syntaxErr.Offset, syntaxErr.Error())).
			SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}

// unknownFieldName extracts x from `json: unknown field "x"`
func unknownFieldName(msg string) string {
	if start := strings.Index(msg, `"`); start >= 0 {
		if end := strings.LastIndex(msg, `"`); end > start {
			return msg[start+1 : end]
		}
	}
	return ""
}
