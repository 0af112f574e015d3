package validation

import (
	"reflect"
	"strings"

	"github.com/deppfellow/drinks/internal/errs"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// present rejects empty and whitespace-only strings.
	_ = v.RegisterValidation("present", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// Field errors are reported under the JSON name so they line up with
	// form keys and API payloads.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	return validate
}

// Struct validates s against its tags and returns the failures as field
// errors, or nil when s is valid.
func Struct(s any) []errs.FieldError {
	if err := validate.Struct(s); err != nil {
		_, fieldErrors := extractValidationError(err)
		return fieldErrors
	}
	return nil
}
