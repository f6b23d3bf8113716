package error

import "errors"

// Reminder email failures.
var (
	ErrEmailQueueFailed = errors.New("failed to queue email")
	ErrInvalidTemplate  = errors.New("invalid email template")
	ErrEmailJobNotFound = errors.New("email job not found")
	// ErrPermanentEmailFailure means the provider rejected the message and a
	// retry would be rejected too.
	ErrPermanentEmailFailure = errors.New("permanent email failure")
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode identifies a reminder email failure (EMAIL-CCNNNN).
type EmailErrorCode string

// Queue (01), send (02) and template (03) codes.
const (
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"
	ErrCodeEmailJobNotFound EmailErrorCode = "EMAIL-010002"

	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	ErrCodeInvalidTemplate EmailErrorCode = "EMAIL-030001"
)

// EmailError is a queueing, sending or rendering failure.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *EmailError) Unwrap() error { return e.Err }

// Permanent reports whether retrying cannot succeed.
func (e *EmailError) Permanent() bool {
	return e.Code == ErrCodePermanentEmailFailure || e.Code == ErrCodeInvalidTemplate
}

// NewEmailError creates a new EmailError.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
