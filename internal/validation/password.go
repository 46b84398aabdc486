package validation

import (
	"errors"
	"unicode"
)

// ValidatePassword enforces the signup password rules: at least five
// characters, letters and digits only.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	if len(password) < 5 {
		return errors.New("password must be at least 5 characters")
	}

	for _, r := range password {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return errors.New("password may only contain letters and numbers")
		}
	}

	return nil
}
