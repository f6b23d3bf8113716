// Package cycle implements the cycle phase and prediction engine. Every
// function here is pure: no clock reads, no I/O and no shared state.
package cycle

import (
	"time"

	"github.com/caresync/backend/internal/domain/valueobject"
)

// DayInfo describes a single calendar day relative to a profile.
type DayInfo struct {
	Date                time.Time
	CycleDay            int
	Phase               valueobject.Phase
	IsPMS               bool
	DaysUntilNextPeriod int
}

// PhaseWindow is the inclusive range of cycle days a phase covers.
type PhaseWindow struct {
	Phase    valueobject.Phase
	StartDay int
	EndDay   int
}

// Length returns the number of days in the window.
func (w PhaseWindow) Length() int {
	return w.EndDay - w.StartDay + 1
}

// Classify returns the phase onDate falls in.
func Classify(profile valueobject.CycleProfile, onDate time.Time) valueobject.Phase {
	return phaseForDay(profile, profile.CycleDay(onDate))
}

// phaseForDay applies the phase boundaries in order; the first match wins, so
// a degenerate profile with PeriodDuration >= follicularEnd simply has empty
// follicular and ovulation ranges.
func phaseForDay(profile valueobject.CycleProfile, day int) valueobject.Phase {
	follicularEnd := profile.FollicularEnd()

	switch {
	case day <= profile.PeriodDuration():
		return valueobject.PhaseMenstrual
	case day <= follicularEnd:
		return valueobject.PhaseFollicular
	case day <= follicularEnd+valueobject.OvulationWindowDays:
		return valueobject.PhaseOvulation
	default:
		return valueobject.PhaseLuteal
	}
}

// isPMSDay reports whether day is one of the final luteal days.
func isPMSDay(profile valueobject.CycleProfile, day int) bool {
	if phaseForDay(profile, day) != valueobject.PhaseLuteal {
		return false
	}
	return day > profile.AverageCycleLength()-valueobject.PMSDays
}

// Describe returns the display information for onDate.
func Describe(profile valueobject.CycleProfile, onDate time.Time) DayInfo {
	day := profile.CycleDay(onDate)

	return DayInfo{
		Date:                valueobject.DateOf(onDate),
		CycleDay:            day,
		Phase:               phaseForDay(profile, day),
		IsPMS:               isPMSDay(profile, day),
		DaysUntilNextPeriod: daysUntilNextPeriod(profile, onDate, day),
	}
}

// daysUntilNextPeriod counts from onDate to the next projected start of the
// cycle containing it. A projected start after the anchor is itself the next
// period (0 days); the anchor day looks a full cycle ahead.
func daysUntilNextPeriod(profile valueobject.CycleProfile, onDate time.Time, cycleDay int) int {
	length := profile.AverageCycleLength()
	if cycleDay == 1 && valueobject.DateOf(onDate).After(profile.LastPeriodStart()) {
		return 0
	}
	return length - cycleDay + 1
}

// PhaseWindows returns the non-empty phase ranges of a profile in cycle order.
// Together they cover every day from 1 to the cycle length exactly once.
func PhaseWindows(profile valueobject.CycleProfile) []PhaseWindow {
	length := profile.AverageCycleLength()
	windows := make([]PhaseWindow, 0, len(valueobject.Phases))

	start := 1
	for start <= length {
		phase := phaseForDay(profile, start)
		end := start
		for end < length && phaseForDay(profile, end+1) == phase {
			end++
		}
		windows = append(windows, PhaseWindow{Phase: phase, StartDay: start, EndDay: end})
		start = end + 1
	}

	return windows
}
