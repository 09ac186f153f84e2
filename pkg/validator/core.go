package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ValidationError is one failed check on one attribute. TranslationKey and
// TranslationValues let callers render their own message.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is every failed check of one Apply call, in rule order.
type ValidationErrors []ValidationError

// Error joins the failures as "validation failed: field: message; ...".
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, err := range ve {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %s", err.Field, err.Message)
	}
	return b.String()
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// Is lets errors.Is(err, ErrValidationFailed) match any non-empty set.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed && len(ve) > 0
}

// Has reports whether any check on field failed.
func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(err ValidationError) bool { return err.Field == field })
}

// Get returns the messages reported for field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// Fields lists the failed attributes once each, in first-failure order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	for _, err := range ve {
		if !slices.Contains(fields, err.Field) {
			fields = append(fields, err.Field)
		}
	}
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule pairs a deferred check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and returns the failures as ValidationErrors,
// or nil when all pass. It never stops at the first failure.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			errs.Add(rule.Error)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// ExtractValidationErrors digs ValidationErrors out of a wrapped or joined
// error chain, such as the one a failed token issuance returns.
func ExtractValidationErrors(err error) ValidationErrors {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs
	}
	return nil
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	return ExtractValidationErrors(err) != nil
}
