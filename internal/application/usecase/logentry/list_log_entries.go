// Package logentry contains daily log use cases.
package logentry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// MaxListRangeDays bounds the span of a single list request.
const MaxListRangeDays = 366

// ListLogEntriesInput represents an inclusive date range.
type ListLogEntriesInput struct {
	UserID uuid.UUID
	Start  time.Time
	End    time.Time
}

// ListLogEntriesOutput represents the entries in the range, ordered by date.
type ListLogEntriesOutput struct {
	Entries []*entity.LogEntry
	Start   time.Time
	End     time.Time
}

// ListLogEntriesUseCase lists a user's entries in a date range.
type ListLogEntriesUseCase struct {
	logRepo adapter.LogEntryRepository
}

// NewListLogEntriesUseCase creates a new ListLogEntriesUseCase instance.
func NewListLogEntriesUseCase(logRepo adapter.LogEntryRepository) *ListLogEntriesUseCase {
	return &ListLogEntriesUseCase{logRepo: logRepo}
}

// Execute lists the entries.
func (uc *ListLogEntriesUseCase) Execute(ctx context.Context, input ListLogEntriesInput) (*ListLogEntriesOutput, error) {
	start, end := valueobject.DateOf(input.Start), valueobject.DateOf(input.End)

	if end.Before(start) {
		return nil, domainerror.NewLogEntryError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not be before start date",
			domainerror.ErrInvalidDateRange,
		)
	}
	if valueobject.DaysBetween(start, end)+1 > MaxListRangeDays {
		return nil, domainerror.NewLogEntryError(
			domainerror.ErrCodeInvalidDateRange,
			fmt.Sprintf("date range must not exceed %d days", MaxListRangeDays),
			domainerror.ErrInvalidDateRange,
		)
	}

	entries, err := uc.logRepo.ListByRange(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}

	return &ListLogEntriesOutput{Entries: entries, Start: start, End: end}, nil
}
