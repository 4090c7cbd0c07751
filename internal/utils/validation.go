package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "filled" mirrors the loose emptiness check of form handlers: blank
	// text and a lone "0" both count as missing.
	if err := v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		return Filled(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Filled reports whether a form value counts as present.
func Filled(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != "0"
}

// Validate performs validation on a struct.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// FormatValidationError formats validation errors into a readable string.
func FormatValidationError(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var errorMessages []string
		for _, e := range errs {
			errorMessages = append(errorMessages, e.Namespace()+" failed on '"+e.Tag()+"'")
		}
		return strings.Join(errorMessages, ", ")
	}
	return err.Error()
}
