package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Struct runs go-playground tag validation on a DTO and converts the
// result into accumulated FieldErrors keyed by the lowered field name.
func Struct(v any) FieldErrors {
	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}
	fe := make(FieldErrors)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fe.Add(NonFieldKey, err.Error())
		return fe
	}
	for _, ferr := range verrs {
		fe.Add(strings.ToLower(ferr.Field()), tagMessage(ferr))
	}
	return fe
}

func tagMessage(ferr validator.FieldError) string {
	switch ferr.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "url":
		return "enter a valid URL starting with http:// or https://"
	case "max":
		return "value is too long (max " + ferr.Param() + ")"
	case "min":
		return "value is too short (min " + ferr.Param() + ")"
	case "gte":
		return "value must be at least " + ferr.Param()
	case "lte":
		return "value must be at most " + ferr.Param()
	case "oneof":
		return "must be one of: " + ferr.Param()
	default:
		return "invalid value"
	}
}

// NotBlank rejects empty and whitespace-only input, distinct from a
// field's own blank-allowed setting.
func NotBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}
