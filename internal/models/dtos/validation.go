package dtos

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"global-healthops/nexus/internal/constants"
)

// ValidationError describes one rejected input field. It unwraps to
// constants.ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return constants.ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func checkLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		if min == 1 {
			return invalid(field, "field required")
		}
		return invalid(field, "must be at least %d characters", min)
	}
	if max > 0 && n > max {
		return invalid(field, "must be at most %d characters", max)
	}
	return nil
}

func checkOptionalLength(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	return checkLength(field, *value, 0, max)
}

func checkEmail(field, value string) error {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value, "@") {
		return invalid(field, "value is not a valid email address")
	}
	return nil
}
