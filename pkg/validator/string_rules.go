package validator

import (
	"fmt"
	"strings"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// IsString validates that a dynamically typed attribute holds a string.
func IsString(field string, value any) Rule {
	return Rule{
		Check: func() bool {
			_, ok := value.(string)
			return ok
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a string",
			TranslationKey: "validation.string",
			TranslationValues: map[string]any{
				"field": field,
				"type":  fmt.Sprintf("%T", value),
			},
		},
	}
}
