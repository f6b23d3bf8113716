// Package dto holds the JSON bodies of the HTTP API.
package dto

import (
	"time"

	"github.com/caresync/backend/internal/domain/valueobject"
)

// ErrorResponse is the body of every non-2xx reply. Code is the stable
// PREFIX-CCNNNN identifier.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := valueobject.FormatDate(*t)
	return &s
}
