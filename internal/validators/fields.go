package validators

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldMessages flattens a binding error into {field: message}. Non
// validator errors (malformed JSON, wrong types) collapse into a single
// "request" entry.
func FieldMessages(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["request"] = "The request body is malformed."
		return out
	}

	for _, fe := range verrs {
		out[snakeCase(fe.Field())] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	field := snakeCase(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("The %s field may not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field may not be greater than %s.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field does not match %s.", field, snakeCase(fe.Param()))
	case "url":
		return fmt.Sprintf("The %s field must be a valid URL.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
