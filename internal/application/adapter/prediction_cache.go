// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PredictionCache stores computed cycle views per user and day.
type PredictionCache interface {
	// GetDashboard decodes the cached dashboard for a user and day into dest.
	// It reports false on a cache miss.
	GetDashboard(ctx context.Context, userID uuid.UUID, day time.Time, dest interface{}) (bool, error)

	// SetDashboard stores the dashboard for a user and day.
	SetDashboard(ctx context.Context, userID uuid.UUID, day time.Time, value interface{}) error

	// InvalidateUser drops every cached view for a user.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
