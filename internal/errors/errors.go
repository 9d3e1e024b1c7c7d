// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors that can be used across all domain modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingField indicates a required request field is absent or empty.
	ErrMissingField = errors.New("missing field")
)

// Key management gateway errors. The gateway maps provider-specific failures
// onto this taxonomy so callers never see raw KMS errors.
var (
	// ErrKeyServiceUnavailable indicates the external key service could not be
	// reached or the call timed out.
	ErrKeyServiceUnavailable = errors.New("key service unavailable")

	// ErrKeyNotFound indicates the configured key identifier does not resolve.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEncryptionRejected indicates the key service rejected the input
	// (empty, oversized, or malformed).
	ErrEncryptionRejected = errors.New("encryption rejected")
)

// ErrSummaryCommitFailed indicates the analytics summary update could not be
// committed. The invoking worker retries; the aggregation path is idempotent
// so a retry never double-counts.
var ErrSummaryCommitFailed = errors.New("summary commit failed")

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
