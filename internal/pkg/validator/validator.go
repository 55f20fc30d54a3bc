package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate runs struct-tag validation and returns a field -> message map,
// or nil when the value passes.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[strings.ToLower(fe.Field())] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return "value below minimum " + fe.Param()
	case "max":
		return "value above maximum " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "invalid email address"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "invalid value"
	}
}
