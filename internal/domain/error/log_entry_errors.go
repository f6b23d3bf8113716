package error

import "errors"

// Log entry domain errors.
var (
	// ErrLogEntryNotFound is returned when no entry exists for the requested date.
	ErrLogEntryNotFound = errors.New("log entry not found")

	// ErrFutureLogDate is returned when logging a day that has not happened yet.
	ErrFutureLogDate = errors.New("log date is in the future")

	// ErrInvalidFlowIntensity is returned for unknown flow values.
	ErrInvalidFlowIntensity = errors.New("invalid flow intensity")

	// ErrInvalidMood is returned when mood falls outside the 1-5 scale.
	ErrInvalidMood = errors.New("invalid mood")

	// ErrInvalidTemperature is returned when a basal temperature is not plausible.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrInvalidDateRange is returned when a list range is inverted or too wide.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// LogEntryErrorCode defines error codes for log entry errors.
// Format: LOG-XXYYYY where XX is category and YYYY is specific error.
type LogEntryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidLogDate       LogEntryErrorCode = "LOG-010001"
	ErrCodeFutureLogDate        LogEntryErrorCode = "LOG-010002"
	ErrCodeInvalidFlowIntensity LogEntryErrorCode = "LOG-010003"
	ErrCodeInvalidMood          LogEntryErrorCode = "LOG-010004"
	ErrCodeInvalidTemperature   LogEntryErrorCode = "LOG-010005"
	ErrCodeInvalidDateRange     LogEntryErrorCode = "LOG-010006"
	ErrCodeMissingLogFields     LogEntryErrorCode = "LOG-010007"
	ErrCodeNotesTooLong         LogEntryErrorCode = "LOG-010008"

	// Lookup errors (02XXXX)
	ErrCodeLogEntryNotFound LogEntryErrorCode = "LOG-020001"
)

// LogEntryError represents a log entry error with code and message.
type LogEntryError struct {
	Code    LogEntryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LogEntryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LogEntryError) Unwrap() error {
	return e.Err
}

// NewLogEntryError creates a new LogEntryError with the given code and message.
func NewLogEntryError(code LogEntryErrorCode, message string, err error) *LogEntryError {
	return &LogEntryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
