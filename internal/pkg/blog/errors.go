package blog

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lifecycle service. Controllers translate these to
// HTTP statuses; raw storage or provider errors never cross this boundary.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage failure")
)

// ValidationError names the first field-rule a payload violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// storageErr wraps a persistence failure with operation context while keeping
// ErrStorage matchable via errors.Is.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}
