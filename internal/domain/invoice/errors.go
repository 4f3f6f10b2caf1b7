package invoice

import (
	"errors"
	"fmt"

	ierr "github.com/tutordesk/tutordesk/internal/errors"
)

var (
	// ErrInvalidRange is returned when a billing period starts after it ends
	ErrInvalidRange = errors.New("invalid billing period")
)

// ValidationError represents an error that occurs during invoice validation
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error marked for a 400 response
func NewValidationError(field, message string) error {
	return ierr.WithError(&ValidationError{
		Field:   field,
		Message: message,
	}).
		WithHintf("Invoice %s %s", field, message).
		Mark(ierr.ErrValidation)
}

// IsValidationError checks if an error is an invoice validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return ierr.As(err, &ve)
}

// IsInvalidRange checks if an error is a rejected billing period
func IsInvalidRange(err error) bool {
	return ierr.Is(err, ErrInvalidRange)
}
