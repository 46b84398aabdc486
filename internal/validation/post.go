package validation

import (
	"errors"
	"strings"
)

// ValidateTitle checks a post title. Leading and trailing whitespace is
// ignored when measuring length.
func ValidateTitle(title string) error {
	t := strings.TrimSpace(title)
	if t == "" {
		return errors.New("title is required")
	}
	if len(t) < 3 {
		return errors.New("title must be at least 3 characters")
	}
	return nil
}

// ValidateDescription checks a post body: between 5 and 800 characters
// after trimming.
func ValidateDescription(description string) error {
	d := strings.TrimSpace(description)
	if d == "" {
		return errors.New("description is required")
	}
	if len(d) < 5 {
		return errors.New("description must be at least 5 characters")
	}
	if len(d) > 800 {
		return errors.New("description must be at most 800 characters")
	}
	return nil
}
