package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("invalid data")
	ErrLocationUnavailable = errors.New("auxiliary service is not available")
)

// ValidationError wraps ErrValidation with a human-readable reason.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
