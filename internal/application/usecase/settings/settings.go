// Package settings contains onboarding and user settings use cases.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
)

const maxNameLength = 100

// GetSettingsInput represents the input for reading settings.
type GetSettingsInput struct {
	UserID uuid.UUID
}

// SettingsOutput represents a user's baseline cycle and preferences.
type SettingsOutput struct {
	User *entity.User
}

// GetSettingsUseCase reads a user's settings.
type GetSettingsUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(userRepo adapter.UserRepository) *GetSettingsUseCase {
	return &GetSettingsUseCase{userRepo: userRepo}
}

// Execute returns the settings of a user.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, input GetSettingsInput) (*SettingsOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &SettingsOutput{User: user}, nil
}

// UpdateSettingsInput holds the fields to patch. Nil fields are left unchanged.
type UpdateSettingsInput struct {
	UserID uuid.UUID

	Name *string

	CycleLength       *int
	PeriodDuration    *int
	LutealPhaseLength *int
	LastPeriodStart   *time.Time

	FirstDayOfWeek         *string
	EmailNotifications     *bool
	PeriodReminders        *bool
	FertileWindowReminders *bool
}

func (in UpdateSettingsInput) changesBaseline() bool {
	return in.CycleLength != nil || in.PeriodDuration != nil || in.LutealPhaseLength != nil || in.LastPeriodStart != nil
}

// UpdateSettingsUseCase patches a user's settings.
type UpdateSettingsUseCase struct {
	userRepo adapter.UserRepository
	cache    adapter.PredictionCache
	clock    adapter.Clock
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(
	userRepo adapter.UserRepository,
	cache adapter.PredictionCache,
	clock adapter.Clock,
) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{
		userRepo: userRepo,
		cache:    cache,
		clock:    clock,
	}
}

// Execute applies the patch. Baseline changes are validated as a whole
// through valueobject.NewCycleProfile and require completed onboarding.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*SettingsOutput, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) > maxNameLength {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidName,
				"name must be at most 100 characters",
				domainerror.ErrInvalidPreference,
			)
		}
		user.Name = name
	}

	if input.FirstDayOfWeek != nil {
		day := entity.FirstDayOfWeek(strings.ToLower(*input.FirstDayOfWeek))
		if !day.IsValid() {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidFirstDayOfWeek,
				"first day of week must be 'sunday' or 'monday'",
				domainerror.ErrInvalidPreference,
			)
		}
		user.FirstDayOfWeek = day
	}

	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}
	if input.PeriodReminders != nil {
		user.PeriodReminders = *input.PeriodReminders
	}
	if input.FertileWindowReminders != nil {
		user.FertileWindowReminders = *input.FertileWindowReminders
	}

	baselineChanged := input.changesBaseline()
	if baselineChanged {
		if err := uc.applyBaseline(user, input); err != nil {
			return nil, err
		}
	}

	user.UpdatedAt = uc.clock.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	if baselineChanged {
		if err := uc.cache.InvalidateUser(ctx, user.ID); err != nil {
			slog.Warn("Failed to invalidate cache after settings update", "user_id", user.ID, "error", err)
		}
	}

	return &SettingsOutput{User: user}, nil
}

func (uc *UpdateSettingsUseCase) applyBaseline(user *entity.User, input UpdateSettingsInput) error {
	if !user.HasBaseline() {
		return domainerror.NewCycleError(
			domainerror.ErrCodeOnboardingIncomplete,
			"complete onboarding before changing cycle settings",
			domainerror.ErrOnboardingIncomplete,
		)
	}

	params := valueobject.CycleParams{
		AverageCycleLength: user.CycleLength,
		PeriodDuration:     user.PeriodDuration,
		LutealPhaseLength:  user.LutealPhaseLength,
		LastPeriodStart:    *user.LastPeriodStart,
	}
	if input.CycleLength != nil {
		params.AverageCycleLength = *input.CycleLength
	}
	if input.PeriodDuration != nil {
		params.PeriodDuration = *input.PeriodDuration
	}
	if input.LutealPhaseLength != nil {
		params.LutealPhaseLength = *input.LutealPhaseLength
	}
	if input.LastPeriodStart != nil {
		params.LastPeriodStart = valueobject.DateOf(*input.LastPeriodStart)
		if err := checkNotFuture(params.LastPeriodStart, uc.clock.Today()); err != nil {
			return err
		}
	}

	profile, err := valueobject.NewCycleProfile(params)
	if err != nil {
		return err
	}

	start := profile.LastPeriodStart()
	user.CycleLength = profile.AverageCycleLength()
	user.PeriodDuration = profile.PeriodDuration()
	user.LutealPhaseLength = profile.LutealPhaseLength()
	user.LastPeriodStart = &start
	return nil
}
