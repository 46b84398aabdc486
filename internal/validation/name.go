package validation

import (
	"fmt"
	"strings"
)

// ValidateUsername checks the public display name shown on posts.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("username is required")
	}
	if len(strings.TrimSpace(username)) < 2 {
		return fmt.Errorf("username must be at least 2 characters")
	}
	return nil
}

// ValidateName checks a first or last name field. The label is used in
// the error message so the form can show which field failed.
func ValidateName(label, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%s is required", label)
	}
	if len(strings.TrimSpace(name)) < 2 {
		return fmt.Errorf("%s must be at least 2 characters", label)
	}
	return nil
}
