// Package logentry contains daily log use cases.
package logentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
)

// GetLogEntryInput identifies one entry.
type GetLogEntryInput struct {
	UserID uuid.UUID
	Date   time.Time
}

// GetLogEntryUseCase reads one entry.
type GetLogEntryUseCase struct {
	logRepo adapter.LogEntryRepository
}

// NewGetLogEntryUseCase creates a new GetLogEntryUseCase instance.
func NewGetLogEntryUseCase(logRepo adapter.LogEntryRepository) *GetLogEntryUseCase {
	return &GetLogEntryUseCase{logRepo: logRepo}
}

// Execute returns the entry for the date.
func (uc *GetLogEntryUseCase) Execute(ctx context.Context, input GetLogEntryInput) (*entity.LogEntry, error) {
	entry, err := uc.logRepo.FindByDate(ctx, input.UserID, input.Date)
	if err != nil {
		return nil, notFoundOr(err, "failed to get log entry")
	}
	return entry, nil
}

// DeleteLogEntryInput identifies one entry.
type DeleteLogEntryInput struct {
	UserID uuid.UUID
	Date   time.Time
}

// DeleteLogEntryUseCase removes one entry.
type DeleteLogEntryUseCase struct {
	logRepo adapter.LogEntryRepository
	cache   adapter.PredictionCache
}

// NewDeleteLogEntryUseCase creates a new DeleteLogEntryUseCase instance.
func NewDeleteLogEntryUseCase(logRepo adapter.LogEntryRepository, cache adapter.PredictionCache) *DeleteLogEntryUseCase {
	return &DeleteLogEntryUseCase{logRepo: logRepo, cache: cache}
}

// Execute deletes the entry for the date.
func (uc *DeleteLogEntryUseCase) Execute(ctx context.Context, input DeleteLogEntryInput) error {
	if err := uc.logRepo.DeleteByDate(ctx, input.UserID, input.Date); err != nil {
		return notFoundOr(err, "failed to delete log entry")
	}

	if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
		slog.Warn("Failed to invalidate cache after log delete", "user_id", input.UserID, "error", err)
	}
	return nil
}

func notFoundOr(err error, action string) error {
	if errors.Is(err, domainerror.ErrLogEntryNotFound) {
		return domainerror.NewLogEntryError(
			domainerror.ErrCodeLogEntryNotFound,
			"no log entry for this date",
			domainerror.ErrLogEntryNotFound,
		)
	}
	return fmt.Errorf("%s: %w", action, err)
}
