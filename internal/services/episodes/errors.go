package episodes

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError represents a validation error on a sampling request
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var validationErr ValidationError
	return errors.As(err, &validationErr) || errors.Is(err, ErrInvalidInput)
}
