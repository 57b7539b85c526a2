package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds agent and node names.
const maxNameLength = 64

// ValidateName checks a display name for an agent.
//
// Names are shown on cards and used to resolve parent references, so they
// must be non-blank, reasonably short and free of control characters.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidatePercent checks that v lies in the closed range 0..100.
func ValidatePercent(field string, v int) error {
	if v < 0 || v > 100 {
		return New(ErrCodeInvalidInput, "%s must be between 0 and 100, got %d", field, v)
	}
	return nil
}
