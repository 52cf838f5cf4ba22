// Package error defines domain-specific errors for the Life Planner engine.
package error

import "errors"

// Progress computation errors. These are all recoverable: the engine logs,
// degrades the affected record and keeps going, it never crashes the host.
var (
	// ErrMissingConversionRate is returned when the currency service has no
	// rate for a conversion a money track needs.
	ErrMissingConversionRate = errors.New("missing currency conversion rate")

	// ErrProgressNotComputed is returned when a goal has no progress record yet.
	ErrProgressNotComputed = errors.New("goal progress not computed")
)

// ProgressErrorCode defines error codes for progress errors.
// Format: PRG-XXYYYY where XX is category and YYYY is specific error.
type ProgressErrorCode string

const (
	// Recoverable degradations (01XXXX)
	ErrCodeMissingConversionRate ProgressErrorCode = "PRG-010001"

	// Lookup errors (02XXXX)
	ErrCodeProgressNotComputed ProgressErrorCode = "PRG-020001"
)

// ProgressError represents a progress computation error with code and message.
type ProgressError struct {
	Code    ProgressErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProgressError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProgressError) Unwrap() error {
	return e.Err
}

// NewProgressError creates a new ProgressError with the given code and message.
func NewProgressError(code ProgressErrorCode, message string, err error) *ProgressError {
	return &ProgressError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
