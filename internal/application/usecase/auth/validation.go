// Package auth holds the account and session use cases.
package auth

import (
	"fmt"
	"regexp"
	"strings"

	domainerror "github.com/caresync/backend/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const maxNameLength = 100

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// validateRegistration checks the request in the order clients see the
// failures: missing fields, terms, email shape, then name length. Password
// strength is left to the PasswordService.
func validateRegistration(email, name string, in RegisterUserInput) error {
	switch {
	case email == "" || in.Password == "":
		return domainerror.NewAuthError(domainerror.ErrCodeMissingFields, "email and password are required", nil)
	case !in.TermsAccepted:
		return domainerror.NewAuthError(domainerror.ErrCodeTermsNotAccepted, "terms of service must be accepted", domainerror.ErrTermsNotAccepted)
	case !isValidEmail(email):
		return domainerror.NewAuthError(domainerror.ErrCodeInvalidEmail, "invalid email format", domainerror.ErrInvalidEmail)
	case len(name) > maxNameLength:
		return domainerror.NewAuthError(domainerror.ErrCodeMissingFields, fmt.Sprintf("name must be at most %d characters", maxNameLength), nil)
	}
	return nil
}
