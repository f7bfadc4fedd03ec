package domain

import (
	"errors"
	"fmt"
)

// Domain rule violations. All are caller-visible and non-retryable without a
// state change. Services return them unwrapped or wrapped with %w so callers
// can match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrEventNotOpen      = errors.New("event is not open for registration")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrCapacityExceeded  = errors.New("event is full")
	ErrInvalidTransition = errors.New("invalid event status transition")
	ErrAlreadyConsumed   = errors.New("credential has already been consumed")
	ErrCredentialVoided  = errors.New("credential was voided by cancellation")
	ErrUnauthorized      = errors.New("not permitted")
)

// Infrastructure faults. Safe to retry the whole operation: no operation
// leaves a partial commit behind.
var (
	ErrUnavailable = errors.New("storage unavailable")
	ErrTimeout     = errors.New("operation timed out")
)

// ValidationError reports malformed or missing caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError for a single field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
