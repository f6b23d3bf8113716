// Package valueobject contains domain value objects for the CareSync system.
package valueobject

import (
	"fmt"
	"time"

	domainerror "github.com/caresync/backend/internal/domain/error"
)

// Valid ranges for cycle parameters, in days.
const (
	MinCycleLength = 21
	MaxCycleLength = 45

	MinPeriodDuration = 1
	MaxPeriodDuration = 10

	MinLutealPhaseLength = 8
	MaxLutealPhaseLength = 18
)

// Defaults used when a user has not provided a value.
const (
	DefaultCycleLength       = 28
	DefaultPeriodDuration    = 5
	DefaultLutealPhaseLength = 14
)

// CycleParams holds the raw values a CycleProfile is built from.
type CycleParams struct {
	AverageCycleLength int
	PeriodDuration     int
	LutealPhaseLength  int
	LastPeriodStart    time.Time
}

// CycleProfile is a validated, immutable set of cycle parameters anchored at
// the start of the most recent period. The zero value is not valid; build
// profiles with NewCycleProfile.
type CycleProfile struct {
	averageCycleLength int
	periodDuration     int
	lutealPhaseLength  int
	lastPeriodStart    time.Time
}

// NewCycleProfile validates params and returns the resulting profile.
// Errors wrap domainerror.ErrInvalidCycleParameters.
func NewCycleProfile(params CycleParams) (CycleProfile, error) {
	if err := validateCycleParams(params); err != nil {
		return CycleProfile{}, err
	}

	return CycleProfile{
		averageCycleLength: params.AverageCycleLength,
		periodDuration:     params.PeriodDuration,
		lutealPhaseLength:  params.LutealPhaseLength,
		lastPeriodStart:    DateOf(params.LastPeriodStart),
	}, nil
}

func validateCycleParams(p CycleParams) error {
	switch {
	case p.AverageCycleLength < MinCycleLength || p.AverageCycleLength > MaxCycleLength:
		return invalidParameter(fmt.Sprintf("average cycle length must be between %d and %d days", MinCycleLength, MaxCycleLength))
	case p.PeriodDuration < MinPeriodDuration || p.PeriodDuration > MaxPeriodDuration:
		return invalidParameter(fmt.Sprintf("period duration must be between %d and %d days", MinPeriodDuration, MaxPeriodDuration))
	case p.LutealPhaseLength < MinLutealPhaseLength || p.LutealPhaseLength > MaxLutealPhaseLength:
		return invalidParameter(fmt.Sprintf("luteal phase length must be between %d and %d days", MinLutealPhaseLength, MaxLutealPhaseLength))
	case p.PeriodDuration >= p.AverageCycleLength:
		return invalidParameter("period duration must be shorter than the average cycle length")
	case p.LutealPhaseLength >= p.AverageCycleLength:
		return invalidParameter("luteal phase length must be shorter than the average cycle length")
	case p.LastPeriodStart.IsZero():
		return invalidParameter("last period start is required")
	}
	return nil
}

func invalidParameter(message string) error {
	return domainerror.NewCycleError(
		domainerror.ErrCodeInvalidCycleParameters,
		message,
		domainerror.ErrInvalidCycleParameters,
	)
}

// AverageCycleLength returns the cycle length in days.
func (p CycleProfile) AverageCycleLength() int { return p.averageCycleLength }

// PeriodDuration returns the period length in days.
func (p CycleProfile) PeriodDuration() int { return p.periodDuration }

// LutealPhaseLength returns the luteal phase length in days.
func (p CycleProfile) LutealPhaseLength() int { return p.lutealPhaseLength }

// LastPeriodStart returns the anchor date of the profile.
func (p CycleProfile) LastPeriodStart() time.Time { return p.lastPeriodStart }

// Params returns the values the profile was built from.
func (p CycleProfile) Params() CycleParams {
	return CycleParams{
		AverageCycleLength: p.averageCycleLength,
		PeriodDuration:     p.periodDuration,
		LutealPhaseLength:  p.lutealPhaseLength,
		LastPeriodStart:    p.lastPeriodStart,
	}
}

// IsZero reports whether p was never built.
func (p CycleProfile) IsZero() bool {
	return p.averageCycleLength == 0
}

// FollicularEnd returns the last cycle day before the ovulation window.
func (p CycleProfile) FollicularEnd() int {
	return p.averageCycleLength - p.lutealPhaseLength
}

// CycleDay returns the 1-based day of the repeating cycle onDate falls on.
// Dates before the anchor wrap backwards, so the result is always in [1, length].
func (p CycleProfile) CycleDay(onDate time.Time) int {
	elapsed := DaysBetween(p.lastPeriodStart, onDate)
	return floorMod(elapsed, p.averageCycleLength) + 1
}

// CycleStartFor returns the start of the projected cycle containing onDate.
func (p CycleProfile) CycleStartFor(onDate time.Time) time.Time {
	return AddDays(onDate, -(p.CycleDay(onDate) - 1))
}

func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
