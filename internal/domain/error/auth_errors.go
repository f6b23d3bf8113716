package error

import "errors"

// Account and session failures.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed, expired and revoked tokens.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTermsNotAccepted    = errors.New("terms of service must be accepted")
	ErrWeakPassword        = errors.New("password does not meet minimum requirements")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrInvalidConfirmation = errors.New("invalid confirmation")
)

// AuthErrorCode identifies an authentication failure (AUTH-CCNNNN).
type AuthErrorCode string

// Registration (01), login (02), token (03) and account (05) codes.
const (
	ErrCodeEmailExists      AuthErrorCode = "AUTH-010001"
	ErrCodeTermsNotAccepted AuthErrorCode = "AUTH-010002"
	ErrCodeWeakPassword     AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail     AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields    AuthErrorCode = "AUTH-010005"

	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	ErrCodeInvalidConfirmation AuthErrorCode = "AUTH-050001"
)

// AuthError is an authentication failure that maps to an HTTP status by code.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }

// NewAuthError creates a new AuthError.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{Code: code, Message: message, Err: err}
}
