package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across service operations.
var (
	// ErrNotFound means the requested record does not exist in any backing system.
	ErrNotFound = errors.New("record not found")

	// ErrUnresolved means a scanned payload could not be mapped to an on-chain product.
	ErrUnresolved = errors.New("product identity could not be resolved")

	// ErrUnauthorized means the caller is not allowed to perform the requested transition.
	ErrUnauthorized = errors.New("caller is not authorized for this operation")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// UpstreamError wraps a failure from a collaborating system (ledger, document store, queue).
type UpstreamError struct {
	System string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.System, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
