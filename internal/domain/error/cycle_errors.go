package error

import "errors"

// Cycle domain errors.
var (
	// ErrInvalidCycleParameters is returned when a cycle profile cannot be built from the given values.
	ErrInvalidCycleParameters = errors.New("invalid cycle parameters")

	// ErrInsufficientHistory is returned when fewer than two period starts are available.
	// It is not fatal: the aggregator still returns the fallback values.
	ErrInsufficientHistory = errors.New("insufficient cycle history")

	// ErrIrregularCycle marks an average cycle length that had to be clamped into range.
	ErrIrregularCycle = errors.New("irregular cycle length")

	// ErrOnboardingIncomplete is returned when a user has no baseline cycle data yet.
	ErrOnboardingIncomplete = errors.New("onboarding has not been completed")

	// ErrInvalidQueryDate is returned when a date query parameter cannot be parsed.
	ErrInvalidQueryDate = errors.New("invalid date")
)

// CycleErrorCode defines error codes for cycle errors.
// Format: CYC-XXYYYY where XX is category and YYYY is specific error.
type CycleErrorCode string

const (
	// Parameter errors (01XXXX)
	ErrCodeInvalidCycleParameters CycleErrorCode = "CYC-010001"
	ErrCodeInvalidQueryDate       CycleErrorCode = "CYC-010002"

	// History errors (02XXXX)
	ErrCodeInsufficientHistory CycleErrorCode = "CYC-020001"
	ErrCodeIrregularCycle      CycleErrorCode = "CYC-020002"

	// Onboarding errors (03XXXX)
	ErrCodeOnboardingIncomplete CycleErrorCode = "CYC-030001"
	ErrCodeFutureLastPeriod     CycleErrorCode = "CYC-030002"
)

// CycleError represents a cycle error with code and message.
type CycleError struct {
	Code    CycleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CycleError) Unwrap() error {
	return e.Err
}

// NewCycleError creates a new CycleError with the given code and message.
func NewCycleError(code CycleErrorCode, message string, err error) *CycleError {
	return &CycleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
