package cycle

import (
	"math"
	"time"

	"github.com/caresync/backend/internal/domain/valueobject"
)

// Confidence policy constants.
const (
	baseConfidence       = 0.35
	historyConfidence    = 0.6
	fullHistoryIntervals = 6
	sparseHistoryCap     = 0.5

	fertileConfidenceFactor   = 0.98
	ovulationConfidenceFactor = 0.96
)

// ProjectedCycle is one repetition of a profile on the calendar.
type ProjectedCycle struct {
	// Index is the number of whole cycles after the profile anchor; 0 is the
	// anchor cycle, negative values lie before it.
	Index              int
	Start              time.Time
	End                time.Time
	PeriodEnd          time.Time
	OvulationDate      time.Time
	FertileWindowStart time.Time
	FertileWindowEnd   time.Time
}

// Contains reports whether day lies inside the cycle.
func (c ProjectedCycle) Contains(day time.Time) bool {
	return valueobject.BetweenInclusive(day, c.Start, c.End)
}

// IsPeriodDay reports whether day is one of the cycle's period days.
func (c ProjectedCycle) IsPeriodDay(day time.Time) bool {
	return valueobject.BetweenInclusive(day, c.Start, c.PeriodEnd)
}

// IsFertileDay reports whether day lies in the cycle's fertile window.
func (c ProjectedCycle) IsFertileDay(day time.Time) bool {
	return valueobject.BetweenInclusive(day, c.FertileWindowStart, c.FertileWindowEnd)
}

// Predict estimates the next period, ovulation and fertile window with no
// observed history.
func Predict(profile valueobject.CycleProfile, today time.Time) valueobject.PredictionResult {
	return PredictWithHistory(profile, today, AggregateResult{})
}

// PredictWithHistory estimates the next period, ovulation and fertile window,
// scaling the probabilities by how much regular history backs the profile.
func PredictWithHistory(profile valueobject.CycleProfile, today time.Time, history AggregateResult) valueobject.PredictionResult {
	next := nextPeriodStart(profile, today)
	ovulation := valueobject.AddDays(next, -profile.LutealPhaseLength())
	nextProb, fertileProb, ovulationProb := confidence(history.SampleSize, history.RegularityScore)

	return valueobject.PredictionResult{
		NextPeriodDate:           next,
		NextPeriodProbability:    nextProb,
		OvulationDate:            ovulation,
		OvulationProbability:     ovulationProb,
		FertileWindowStart:       valueobject.AddDays(ovulation, -valueobject.FertileDaysBeforeOvulation),
		FertileWindowEnd:         valueobject.AddDays(ovulation, valueobject.FertileDaysAfterOvulation),
		FertileWindowProbability: fertileProb,
	}
}

// nextPeriodStart returns anchor + k*L with k the smallest positive integer
// giving a date on or after today.
func nextPeriodStart(profile valueobject.CycleProfile, today time.Time) time.Time {
	length := profile.AverageCycleLength()
	elapsed := valueobject.DaysBetween(profile.LastPeriodStart(), today)

	k := 1
	if elapsed > 0 {
		k = (elapsed + length - 1) / length
	}

	return valueobject.AddDays(profile.LastPeriodStart(), k*length)
}

func confidence(intervals int, regularity float64) (next, fertile, ovulation float64) {
	regularity = clamp(regularity, 0, 1)
	if intervals < 0 {
		intervals = 0
	}

	weight := float64(min(intervals, fullHistoryIntervals)) / fullHistoryIntervals
	base := baseConfidence + historyConfidence*weight*regularity
	if intervals < 2 {
		base = math.Min(base, sparseHistoryCap)
	}
	base = clamp(base, 0, 1)

	return roundTo(base, 2),
		roundTo(base*fertileConfidenceFactor, 2),
		roundTo(base*ovulationConfidenceFactor, 2)
}

// ProjectCycles returns every projected cycle whose days, including a fertile
// window that may start before the cycle itself, overlap [from, to].
func ProjectCycles(profile valueobject.CycleProfile, from, to time.Time) []ProjectedCycle {
	from, to = valueobject.DateOf(from), valueobject.DateOf(to)
	if to.Before(from) {
		return nil
	}

	length := profile.AverageCycleLength()
	first := floorDiv(valueobject.DaysBetween(profile.LastPeriodStart(), from), length) - 1
	last := floorDiv(valueobject.DaysBetween(profile.LastPeriodStart(), to), length) + 1

	cycles := make([]ProjectedCycle, 0, last-first+1)
	for k := first; k <= last; k++ {
		c := projectCycle(profile, k)
		earliest := c.Start
		if c.FertileWindowStart.Before(earliest) {
			earliest = c.FertileWindowStart
		}
		if c.End.Before(from) || earliest.After(to) {
			continue
		}
		cycles = append(cycles, c)
	}

	return cycles
}

func projectCycle(profile valueobject.CycleProfile, k int) ProjectedCycle {
	length := profile.AverageCycleLength()
	start := valueobject.AddDays(profile.LastPeriodStart(), k*length)
	ovulation := valueobject.AddDays(start, length-profile.LutealPhaseLength())

	return ProjectedCycle{
		Index:              k,
		Start:              start,
		End:                valueobject.AddDays(start, length-1),
		PeriodEnd:          valueobject.AddDays(start, profile.PeriodDuration()-1),
		OvulationDate:      ovulation,
		FertileWindowStart: valueobject.AddDays(ovulation, -valueobject.FertileDaysBeforeOvulation),
		FertileWindowEnd:   valueobject.AddDays(ovulation, valueobject.FertileDaysAfterOvulation),
	}
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
