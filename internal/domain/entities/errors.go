package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing client input.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable marks an unreachable data store. Callers may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrConcurrencyConflict marks transient write contention. It is retried
	// inside the progress repositories and never returned to clients.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	// ErrProgressNotFound is returned when a learner has no record for a fact.
	ErrProgressNotFound = errors.New("progress not found")
)

// ValidationError describes which input field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets errors.Is match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
