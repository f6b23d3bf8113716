package cycle

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
	domaincycle "github.com/caresync/backend/internal/domain/cycle"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// LongCycleGraceDays is how far past the expected length a cycle may run
// before it is flagged as looking long.
const LongCycleGraceDays = 7

// GetDashboardInput represents the input for the dashboard view.
type GetDashboardInput struct {
	UserID uuid.UUID
	// Today overrides the server clock when set.
	Today *time.Time
}

// HistorySummary describes how much history backs a prediction.
type HistorySummary struct {
	SampleSize      int       `json:"sample_size"`
	RegularityScore float64   `json:"regularity_score"`
	CycleLengths    []int     `json:"cycle_lengths"`
	LastPeriodStart time.Time `json:"last_period_start"`
}

// DashboardOutput is today's cycle status. It is cached as JSON.
type DashboardOutput struct {
	Today               time.Time                    `json:"today"`
	Day                 domaincycle.DayInfo          `json:"day"`
	Prediction          valueobject.PredictionResult `json:"prediction"`
	Profile             ProfileSummary               `json:"profile"`
	History             HistorySummary               `json:"history"`
	DaysSinceLastPeriod int                          `json:"days_since_last_period"`
	InsufficientHistory bool                         `json:"insufficient_history"`
	IrregularCycle      bool                         `json:"irregular_cycle"`
	DataStale           bool                         `json:"data_stale"`
	CycleLooksLong      bool                         `json:"cycle_looks_long"`
}

// GetDashboardUseCase computes today's status for a user.
type GetDashboardUseCase struct {
	resolver *ProfileResolver
	cache    adapter.PredictionCache
	clock    adapter.Clock
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(resolver *ProfileResolver, cache adapter.PredictionCache, clock adapter.Clock) *GetDashboardUseCase {
	return &GetDashboardUseCase{
		resolver: resolver,
		cache:    cache,
		clock:    clock,
	}
}

// Execute returns the dashboard, serving it from cache when possible. Cache
// errors are logged and never fail the request.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*DashboardOutput, error) {
	today := resolveToday(input.Today, uc.clock)

	var cached DashboardOutput
	hit, err := uc.cache.GetDashboard(ctx, input.UserID, today, &cached)
	if err != nil {
		slog.Warn("Dashboard cache read failed", "user_id", input.UserID, "error", err)
	} else if hit {
		return &cached, nil
	}

	resolved, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	output := BuildDashboard(resolved, today)

	if err := uc.cache.SetDashboard(ctx, input.UserID, today, output); err != nil {
		slog.Warn("Dashboard cache write failed", "user_id", input.UserID, "error", err)
	}

	return output, nil
}

// BuildDashboard assembles the dashboard for a resolved profile.
func BuildDashboard(resolved *ResolvedProfile, today time.Time) *DashboardOutput {
	profile := resolved.Profile
	rawCycleDay := valueobject.DaysBetween(profile.LastPeriodStart(), today) + 1

	lengths := resolved.History.CycleLengths
	if lengths == nil {
		lengths = []int{}
	}

	return &DashboardOutput{
		Today:      today,
		Day:        domaincycle.Describe(profile, today),
		Prediction: domaincycle.PredictWithHistory(profile, today, resolved.History),
		Profile:    resolved.Summary(),
		History: HistorySummary{
			SampleSize:      resolved.History.SampleSize,
			RegularityScore: resolved.History.RegularityScore,
			CycleLengths:    lengths,
			LastPeriodStart: profile.LastPeriodStart(),
		},
		DaysSinceLastPeriod: rawCycleDay - 1,
		InsufficientHistory: resolved.InsufficientHistory,
		IrregularCycle:      resolved.History.IrregularCycle,
		DataStale:           rawCycleDay > profile.AverageCycleLength(),
		CycleLooksLong:      rawCycleDay > profile.AverageCycleLength()+LongCycleGraceDays,
	}
}

func resolveToday(override *time.Time, clock adapter.Clock) time.Time {
	if override != nil && !override.IsZero() {
		return valueobject.DateOf(*override)
	}
	return clock.Today()
}
