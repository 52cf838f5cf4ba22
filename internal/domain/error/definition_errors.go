// Package error defines domain-specific errors for the Life Planner engine.
package error

import "errors"

// Goal definition registration errors.
var (
	// ErrInvalidDefinition is the umbrella error for a definition that fails validation.
	ErrInvalidDefinition = errors.New("invalid goal definition")

	// ErrEmptyTracks is returned when a definition declares no tracks.
	ErrEmptyTracks = errors.New("definition has no tracks")

	// ErrTargetEqualsBaseline is returned when target == baseline, which makes percent undefined.
	ErrTargetEqualsBaseline = errors.New("target equals baseline")

	// ErrDuplicateTrackID is returned when two tracks share an id within one definition.
	ErrDuplicateTrackID = errors.New("duplicate track id")

	// ErrMixedTrackKinds is returned when one definition mixes money, task and habit tracks.
	ErrMixedTrackKinds = errors.New("definition mixes track kinds")

	// ErrInvalidPacingWindow is returned when pacing_window_days is not positive.
	ErrInvalidPacingWindow = errors.New("pacing window must be positive")

	// ErrMissingCurrency is returned when a money track is declared without a goal currency.
	ErrMissingCurrency = errors.New("money track requires a goal currency")

	// ErrDefinitionNotFound is returned when a goal id has no registered definition.
	ErrDefinitionNotFound = errors.New("goal definition not found")
)

// DefinitionErrorCode defines error codes for definition errors.
// Format: DEF-XXYYYY where XX is category and YYYY is specific error.
type DefinitionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyTracks          DefinitionErrorCode = "DEF-010001"
	ErrCodeTargetEqualsBaseline DefinitionErrorCode = "DEF-010002"
	ErrCodeDuplicateTrackID     DefinitionErrorCode = "DEF-010003"
	ErrCodeMixedTrackKinds      DefinitionErrorCode = "DEF-010004"
	ErrCodeInvalidPacingWindow  DefinitionErrorCode = "DEF-010005"
	ErrCodeMissingCurrency      DefinitionErrorCode = "DEF-010006"

	// Lookup errors (02XXXX)
	ErrCodeDefinitionNotFound DefinitionErrorCode = "DEF-020001"
)

// DefinitionError represents a definition error with code and message.
type DefinitionError struct {
	Code    DefinitionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Is lets every DefinitionError match ErrInvalidDefinition.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrInvalidDefinition || errors.Is(e.Err, target)
}

// NewDefinitionError creates a new DefinitionError with the given code and message.
func NewDefinitionError(code DefinitionErrorCode, message string, err error) *DefinitionError {
	return &DefinitionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
