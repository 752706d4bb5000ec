package registry

import (
	"reflect"
	"strings"

	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/utils"
	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

// setupValidator configures request validation using go-playground/validator
func setupValidator(e *echo.Echo) {
	e.Validator = NewValidator()
	logger.WithScope("setupValidator").Debug().Msg("Validator setup completed")
}

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports fields by their json names and knows the "stamp" tag
// for YYYY-MM-DD HH:MM:SS dates
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("stamp", func(fl validator.FieldLevel) bool {
		_, err := utils.ParseStamp(fl.Field().String())
		return err == nil
	})
	return &CustomValidator{validator: v}
}

// Validate validates struct fields using validator tags
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
