package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/benedict-erwin/shop-directory/internal/constants"
	"github.com/benedict-erwin/shop-directory/internal/services/accounts"
	"github.com/benedict-erwin/shop-directory/internal/services/browse"
	dealService "github.com/benedict-erwin/shop-directory/internal/services/deals"
	deviceService "github.com/benedict-erwin/shop-directory/internal/services/devices"
	shopService "github.com/benedict-erwin/shop-directory/internal/services/shops"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/response"
	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// Services are the domain services behind the HTTP handlers
type Services struct {
	Accounts *accounts.Service
	Shops    *shopService.Service
	Deals    *dealService.Service
	Devices  *deviceService.Service
	Browse   *browse.Service
}

// Handler serves every endpoint of the directory API
type Handler struct {
	Services
}

// New creates the handler set
func New(s Services) *Handler {
	return &Handler{Services: s}
}

// bindFailed renders a body that could not be decoded. Unknown fields
// surface from the JSON codec as 422 with the field name as message.
func bindFailed(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusUnprocessableEntity {
		field, _ := he.Message.(string)
		return response.ValidationFailed(c, []response.FieldError{
			{Field: field, Message: "extra fields not permitted"},
		})
	}

	logger.WithScope("bind").Debug().
		Err(err).
		Str("path", c.Request().URL.Path).
		Str("request-id", constants.GetRequestID(c)).
		Msg("Invalid request body")
	return response.FailWithCode(c, constants.CodeInvalidJSON, "Request body must be a valid JSON object")
}

// validationFailed renders validator errors as [{field, message}]
func validationFailed(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return response.FailWithCode(c, constants.CodeValidationFailed, err.Error())
	}

	out := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, response.FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fieldMessage(fe),
		})
	}
	return response.ValidationFailed(c, out)
}

// fieldPath drops the struct name: "RegisterRequest.location.city" -> "location.city"
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "stamp":
		return "invalid date, expected YYYY-MM-DD HH:MM:SS"
	case "ip":
		return "value is not a valid IP address"
	case "mac":
		return "value is not a valid MAC address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}

// bindAndValidate runs both request checks; on failure the response is already written
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, bindFailed(c, err)
	}
	if err := c.Validate(req); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

// internalError logs the cause and writes the generic 500 envelope
func internalError(c echo.Context, scope string, err error) error {
	logger.WithScope(scope).Error().
		Err(err).
		Str("path", c.Request().URL.Path).
		Str("request-id", constants.GetRequestID(c)).
		Msg("Request failed")
	return response.Internal(c)
}

// unauthenticated is written when a guarded handler runs without an identity
func unauthenticated(c echo.Context) error {
	return response.FailWithCode(c, constants.CodeUnauthorized, "Could not validate credentials")
}
