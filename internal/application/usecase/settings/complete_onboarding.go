// Package settings contains onboarding and user settings use cases.
package settings

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
	"github.com/caresync/backend/internal/domain/valueobject"
)

// CompleteOnboardingInput represents the baseline cycle data collected at onboarding.
type CompleteOnboardingInput struct {
	UserID         uuid.UUID
	CycleLength    int
	PeriodDuration int
	// LutealPhaseLength is optional; the configured default applies when nil.
	LutealPhaseLength *int
	LastPeriodStart   time.Time
}

// CompleteOnboardingOutput represents the result of onboarding.
type CompleteOnboardingOutput struct {
	User    *entity.User
	Profile valueobject.CycleProfile
}

// CompleteOnboardingUseCase validates and stores a user's baseline cycle.
type CompleteOnboardingUseCase struct {
	userRepo      adapter.UserRepository
	logRepo       adapter.LogEntryRepository
	cache         adapter.PredictionCache
	clock         adapter.Clock
	defaultLuteal int
}

// NewCompleteOnboardingUseCase creates a new CompleteOnboardingUseCase instance.
func NewCompleteOnboardingUseCase(
	userRepo adapter.UserRepository,
	logRepo adapter.LogEntryRepository,
	cache adapter.PredictionCache,
	clock adapter.Clock,
	defaultLuteal int,
) *CompleteOnboardingUseCase {
	return &CompleteOnboardingUseCase{
		userRepo:      userRepo,
		logRepo:       logRepo,
		cache:         cache,
		clock:         clock,
		defaultLuteal: defaultLuteal,
	}
}

// Execute stores the baseline and records a period-start entry for the last period.
func (uc *CompleteOnboardingUseCase) Execute(ctx context.Context, input CompleteOnboardingInput) (*CompleteOnboardingOutput, error) {
	luteal := uc.defaultLuteal
	if input.LutealPhaseLength != nil {
		luteal = *input.LutealPhaseLength
	}

	lastStart := valueobject.DateOf(input.LastPeriodStart)
	if err := checkNotFuture(lastStart, uc.clock.Today()); err != nil {
		return nil, err
	}

	profile, err := valueobject.NewCycleProfile(valueobject.CycleParams{
		AverageCycleLength: input.CycleLength,
		PeriodDuration:     input.PeriodDuration,
		LutealPhaseLength:  luteal,
		LastPeriodStart:    lastStart,
	})
	if err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.CompleteOnboarding(input.CycleLength, input.PeriodDuration, luteal, lastStart, uc.clock.Now().UTC())
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save onboarding: %w", err)
	}

	if err := uc.markPeriodStart(ctx, user.ID, lastStart); err != nil {
		return nil, err
	}

	if err := uc.cache.InvalidateUser(ctx, user.ID); err != nil {
		slog.Warn("Failed to invalidate cache after onboarding", "user_id", user.ID, "error", err)
	}

	return &CompleteOnboardingOutput{
		User:    user,
		Profile: profile,
	}, nil
}

func (uc *CompleteOnboardingUseCase) markPeriodStart(ctx context.Context, userID uuid.UUID, day time.Time) error {
	entry, err := uc.logRepo.FindByDate(ctx, userID, day)
	if err != nil {
		if !errors.Is(err, domainerror.ErrLogEntryNotFound) {
			return fmt.Errorf("failed to load log entry: %w", err)
		}
		entry = entity.NewLogEntry(userID, day)
	}

	entry.IsPeriodStart = true
	if !entry.HasFlow() {
		entry.FlowIntensity = entity.FlowMedium
	}
	entry.UpdatedAt = uc.clock.Now().UTC()

	if err := uc.logRepo.Upsert(ctx, entry); err != nil {
		return fmt.Errorf("failed to record period start: %w", err)
	}
	return nil
}

func checkNotFuture(day, today time.Time) error {
	if day.After(today) {
		return domainerror.NewCycleError(
			domainerror.ErrCodeFutureLastPeriod,
			"last period start cannot be in the future",
			domainerror.ErrInvalidCycleParameters,
		)
	}
	return nil
}
