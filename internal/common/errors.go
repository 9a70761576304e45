// Package common provides shared error types and logging helpers used
// across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnknownBackend indicates an unrecognized storage backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// ValidationError reports a would-be transaction that violates a
// construction invariant. Callers can always recover: the attempted
// operation simply does not happen.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// NewValidationError creates a validation error with a human-readable reason.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError wraps an underlying I/O failure in the persistence layer.
type StoreError struct {
	Err     error
	Message string
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a store error wrapping the underlying cause.
func NewStoreError(message string, err error) error {
	return &StoreError{Message: message, Err: err}
}

// IsStore reports whether err is a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
