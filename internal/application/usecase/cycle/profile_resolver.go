// Package cycle contains the use cases that turn stored cycle data into
// dashboard, calendar, phase and history views.
package cycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
	domaincycle "github.com/caresync/backend/internal/domain/cycle"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// ResolvedProfile is the effective cycle profile of a user together with the
// data it was derived from.
type ResolvedProfile struct {
	User     *entity.User
	Baseline valueobject.CycleProfile
	Profile  valueobject.CycleProfile
	History  domaincycle.AggregateResult
	// InsufficientHistory is set when fewer than two period starts were found
	// in the logs; Profile then carries the baseline cycle values.
	InsufficientHistory bool
	Entries             []*entity.LogEntry
}

// ProfileSummary is the serializable form of a cycle profile.
type ProfileSummary struct {
	AverageCycleLength int       `json:"average_cycle_length"`
	PeriodDuration     int       `json:"period_duration"`
	LutealPhaseLength  int       `json:"luteal_phase_length"`
	LastPeriodStart    time.Time `json:"last_period_start"`
}

// Summary returns the serializable form of the effective profile.
func (r *ResolvedProfile) Summary() ProfileSummary {
	return summarize(r.Profile)
}

func summarize(p valueobject.CycleProfile) ProfileSummary {
	return ProfileSummary{
		AverageCycleLength: p.AverageCycleLength(),
		PeriodDuration:     p.PeriodDuration(),
		LutealPhaseLength:  p.LutealPhaseLength(),
		LastPeriodStart:    p.LastPeriodStart(),
	}
}

// ProfileResolver builds effective profiles from onboarding data and logs.
type ProfileResolver struct {
	userRepo adapter.UserRepository
	logRepo  adapter.LogEntryRepository
}

// NewProfileResolver creates a new ProfileResolver instance.
func NewProfileResolver(userRepo adapter.UserRepository, logRepo adapter.LogEntryRepository) *ProfileResolver {
	return &ProfileResolver{
		userRepo: userRepo,
		logRepo:  logRepo,
	}
}

// Resolve loads a user by ID and resolves their profile.
func (r *ProfileResolver) Resolve(ctx context.Context, userID uuid.UUID) (*ResolvedProfile, error) {
	user, err := r.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return r.ResolveUser(ctx, user)
}

// ResolveUser resolves the profile of an already loaded user.
//
// The onboarding baseline is the starting point. With sufficient log history
// the aggregated cycle length and period duration replace the baseline values,
// and a detected period start later than the baseline anchor becomes the new
// anchor.
func (r *ProfileResolver) ResolveUser(ctx context.Context, user *entity.User) (*ResolvedProfile, error) {
	if !user.HasBaseline() {
		return nil, domainerror.NewCycleError(
			domainerror.ErrCodeOnboardingIncomplete,
			"onboarding must be completed first",
			domainerror.ErrOnboardingIncomplete,
		)
	}

	baseline, err := valueobject.NewCycleProfile(valueobject.CycleParams{
		AverageCycleLength: user.CycleLength,
		PeriodDuration:     user.PeriodDuration,
		LutealPhaseLength:  user.LutealPhaseLength,
		LastPeriodStart:    *user.LastPeriodStart,
	})
	if err != nil {
		return nil, fmt.Errorf("stored baseline for user %s is invalid: %w", user.ID, err)
	}

	entries, err := r.logRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load log entries: %w", err)
	}

	history, err := domaincycle.AggregateLogs(entries, baseline)
	insufficient := errors.Is(err, domainerror.ErrInsufficientHistory)
	if err != nil && !insufficient {
		return nil, fmt.Errorf("failed to aggregate cycle history: %w", err)
	}

	params := baseline.Params()
	if history.LastPeriodStart.After(params.LastPeriodStart) {
		params.LastPeriodStart = history.LastPeriodStart
	}
	if !insufficient {
		params.AverageCycleLength = history.AverageCycleLength
		params.PeriodDuration = history.PeriodDuration
	}

	profile, err := valueobject.NewCycleProfile(params)
	if err != nil {
		slog.Warn("Aggregated cycle values rejected, using baseline",
			"user_id", user.ID,
			"cycle_length", params.AverageCycleLength,
			"period_duration", params.PeriodDuration,
			"error", err,
		)
		profile = baseline
	}

	return &ResolvedProfile{
		User:                user,
		Baseline:            baseline,
		Profile:             profile,
		History:             history,
		InsufficientHistory: insufficient,
		Entries:             entries,
	}, nil
}
