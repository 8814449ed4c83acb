package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports bad caller input before anything is stored.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)

// NormalizePhone strips separators and the country or trunk prefix from an Indian mobile number.
func NormalizePhone(phone string) string {
	phone = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
	phone = strings.TrimPrefix(phone, "+")
	switch {
	case len(phone) == 12 && strings.HasPrefix(phone, "91"):
		phone = phone[2:]
	case len(phone) == 11 && strings.HasPrefix(phone, "0"):
		phone = phone[1:]
	}
	return phone
}

// ValidPhone reports whether phone is a normalized 10-digit mobile number.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
