package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// invalid wraps ErrValidationFailed with a field-level message.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}
