// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Inquiry phone numbers are local format: exactly 10 digits, leading 0.
var phonePattern = regexp.MustCompile(`^0\d{9}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("phone_local", validateLocalPhone)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateLocalPhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// IsValidPhone is the same rule exposed for ad-hoc checks.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "phone_local":
		return "Phone number must be 10 digits and start with 0"
	default:
		return e.Field() + " is invalid"
	}
}
