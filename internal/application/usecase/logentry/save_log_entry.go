// Package logentry contains daily log use cases.
package logentry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// MaxNotesLength is the maximum number of characters stored in notes.
const MaxNotesLength = 1000

// SaveLogEntryInput represents the data logged for one day. The entry
// replaces whatever was stored for the same date.
type SaveLogEntryInput struct {
	UserID        uuid.UUID
	Date          time.Time
	FlowIntensity string
	IsPeriodStart bool
	Symptoms      []string
	Mood          *int
	Temperature   *decimal.Decimal
	Notes         string
}

// SaveLogEntryOutput represents the stored entry.
type SaveLogEntryOutput struct {
	Entry   *entity.LogEntry
	Created bool
}

// SaveLogEntryUseCase validates and upserts a daily log entry.
type SaveLogEntryUseCase struct {
	logRepo adapter.LogEntryRepository
	cache   adapter.PredictionCache
	clock   adapter.Clock
}

// NewSaveLogEntryUseCase creates a new SaveLogEntryUseCase instance.
func NewSaveLogEntryUseCase(
	logRepo adapter.LogEntryRepository,
	cache adapter.PredictionCache,
	clock adapter.Clock,
) *SaveLogEntryUseCase {
	return &SaveLogEntryUseCase{
		logRepo: logRepo,
		cache:   cache,
		clock:   clock,
	}
}

// Execute performs the upsert.
func (uc *SaveLogEntryUseCase) Execute(ctx context.Context, input SaveLogEntryInput) (*SaveLogEntryOutput, error) {
	if input.Date.IsZero() {
		return nil, domainerror.NewLogEntryError(domainerror.ErrCodeInvalidLogDate, "date is required", nil)
	}

	date := valueobject.DateOf(input.Date)
	if date.After(uc.clock.Today()) {
		return nil, domainerror.NewLogEntryError(
			domainerror.ErrCodeFutureLogDate,
			"cannot log a date in the future",
			domainerror.ErrFutureLogDate,
		)
	}

	flow := entity.FlowIntensity(strings.ToLower(strings.TrimSpace(input.FlowIntensity)))
	if flow == "" {
		flow = entity.FlowNone
	}
	if err := validate(flow, input); err != nil {
		return nil, err
	}

	now := uc.clock.Now().UTC()
	created := false
	entry, err := uc.logRepo.FindByDate(ctx, input.UserID, date)
	if err != nil {
		if !errors.Is(err, domainerror.ErrLogEntryNotFound) {
			return nil, fmt.Errorf("failed to load log entry: %w", err)
		}
		entry = entity.NewLogEntry(input.UserID, date)
		entry.CreatedAt = now
		created = true
	}

	entry.FlowIntensity = flow
	entry.IsPeriodStart = input.IsPeriodStart
	entry.Symptoms = entity.NormalizeSymptoms(input.Symptoms)
	entry.Mood = input.Mood
	entry.Temperature = roundTemperature(input.Temperature)
	entry.Notes = strings.TrimSpace(input.Notes)
	entry.UpdatedAt = now

	if !entry.HasData() {
		return nil, domainerror.NewLogEntryError(
			domainerror.ErrCodeMissingLogFields,
			"log entry has no data; delete the entry instead",
			nil,
		)
	}

	if err := uc.logRepo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save log entry: %w", err)
	}

	if err := uc.cache.InvalidateUser(ctx, input.UserID); err != nil {
		slog.Warn("Failed to invalidate cache after log save", "user_id", input.UserID, "error", err)
	}

	return &SaveLogEntryOutput{Entry: entry, Created: created}, nil
}

func validate(flow entity.FlowIntensity, input SaveLogEntryInput) error {
	if !flow.IsValid() {
		return domainerror.NewLogEntryError(
			domainerror.ErrCodeInvalidFlowIntensity,
			"flow intensity must be one of none, light, medium, heavy",
			domainerror.ErrInvalidFlowIntensity,
		)
	}

	if input.Mood != nil && (*input.Mood < entity.MinMood || *input.Mood > entity.MaxMood) {
		return domainerror.NewLogEntryError(
			domainerror.ErrCodeInvalidMood,
			fmt.Sprintf("mood must be between %d and %d", entity.MinMood, entity.MaxMood),
			domainerror.ErrInvalidMood,
		)
	}

	if t := input.Temperature; t != nil && (t.LessThan(entity.MinTemperature) || t.GreaterThan(entity.MaxTemperature)) {
		return domainerror.NewLogEntryError(
			domainerror.ErrCodeInvalidTemperature,
			fmt.Sprintf("temperature must be between %s and %s °C", entity.MinTemperature.StringFixed(2), entity.MaxTemperature.StringFixed(2)),
			domainerror.ErrInvalidTemperature,
		)
	}

	if utf8.RuneCountInString(input.Notes) > MaxNotesLength {
		return domainerror.NewLogEntryError(
			domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must be at most %d characters", MaxNotesLength),
			nil,
		)
	}

	return nil
}

func roundTemperature(t *decimal.Decimal) *decimal.Decimal {
	if t == nil {
		return nil
	}
	rounded := t.Round(2)
	return &rounded
}
