package cycle

import (
	"math"
	"sort"
	"time"

	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
)

const (
	// MinFlowFreeGapDays is the number of flow-free days that separates two periods.
	MinFlowFreeGapDays = 5
	// MaxAggregatedCycles bounds how much log history feeds an aggregate.
	MaxAggregatedCycles = 12
)

// AggregateResult summarizes observed cycle history.
type AggregateResult struct {
	AverageCycleLength int
	PeriodDuration     int
	RegularityScore    float64
	// IrregularCycle is set when the raw mean cycle length fell outside the
	// supported range and AverageCycleLength was clamped.
	IrregularCycle  bool
	SampleSize      int
	CycleLengths    []int
	PeriodStarts    []time.Time
	LastPeriodStart time.Time
}

// Sufficient reports whether at least one full cycle was observed.
func (r AggregateResult) Sufficient() bool {
	return r.SampleSize > 0
}

// Aggregate derives average cycle length and regularity from period start
// dates. Input is normalized to calendar days, sorted and de-duplicated.
//
// With fewer than two distinct dates Aggregate returns the fallback values
// together with an error wrapping domainerror.ErrInsufficientHistory. The
// result is usable in that case; callers treat the error as a warning.
func Aggregate(periodStarts []time.Time, fallback valueobject.CycleProfile) (AggregateResult, error) {
	starts := normalizeDates(periodStarts)

	result := AggregateResult{
		AverageCycleLength: fallback.AverageCycleLength(),
		PeriodDuration:     fallback.PeriodDuration(),
		PeriodStarts:       starts,
		CycleLengths:       []int{},
	}
	if len(starts) > 0 {
		result.LastPeriodStart = starts[len(starts)-1]
	}

	if len(starts) < 2 {
		return result, domainerror.NewCycleError(
			domainerror.ErrCodeInsufficientHistory,
			"at least two period start dates are needed to aggregate cycle history",
			domainerror.ErrInsufficientHistory,
		)
	}

	deltas := make([]int, 0, len(starts)-1)
	for i := 1; i < len(starts); i++ {
		deltas = append(deltas, valueobject.DaysBetween(starts[i-1], starts[i]))
	}

	mean, stddev := meanAndStddev(deltas)
	average := int(math.Round(mean))
	if average < valueobject.MinCycleLength || average > valueobject.MaxCycleLength {
		result.IrregularCycle = true
	}

	result.AverageCycleLength = clampInt(average, valueobject.MinCycleLength, valueobject.MaxCycleLength)
	result.RegularityScore = clamp(1-stddev/mean, 0, 1)
	result.SampleSize = len(deltas)
	result.CycleLengths = deltas

	return result, nil
}

// AggregateLogs detects period starts and period lengths from daily log
// entries and aggregates the most recent cycles. When history is sufficient
// the estimated period duration replaces the fallback's.
func AggregateLogs(entries []*entity.LogEntry, fallback valueobject.CycleProfile) (AggregateResult, error) {
	sorted := sortEntries(entries)

	starts := DetectPeriodStarts(sorted)
	if len(starts) > MaxAggregatedCycles+1 {
		starts = starts[len(starts)-(MaxAggregatedCycles+1):]
	}

	result, err := Aggregate(starts, fallback)
	if err != nil {
		return result, err
	}

	runs := make([]flowRun, 0)
	for _, r := range flowRuns(sorted) {
		if !r.end.Before(starts[0]) {
			runs = append(runs, r)
		}
	}
	if len(runs) > 0 {
		total := 0
		for _, r := range runs {
			total += min(r.length(), valueobject.MaxPeriodDuration)
		}
		estimate := int(math.Round(float64(total) / float64(len(runs))))
		result.PeriodDuration = clampInt(estimate, valueobject.MinPeriodDuration, valueobject.MaxPeriodDuration)
	}

	return result, nil
}

// DetectPeriodStarts returns the dates that begin a period: the first flow or
// flagged day after at least MinFlowFreeGapDays flow-free days. A flag inside
// a bleed that is already running moves that period's start to the flagged
// day instead of opening a new period.
func DetectPeriodStarts(entries []*entity.LogEntry) []time.Time {
	sorted := sortEntries(entries)
	starts := make([]time.Time, 0)
	var previousFlowDay time.Time

	for _, e := range sorted {
		day := valueobject.DateOf(e.Date)
		newPeriod := previousFlowDay.IsZero() ||
			valueobject.DaysBetween(previousFlowDay, day)-1 >= MinFlowFreeGapDays

		switch {
		case e.IsPeriodStart && !newPeriod && len(starts) > 0:
			starts[len(starts)-1] = day
		case e.IsPeriodStart, e.HasFlow() && newPeriod:
			starts = append(starts, day)
		}

		if e.HasFlow() || e.IsPeriodStart {
			previousFlowDay = day
		}
	}

	return normalizeDates(starts)
}

type flowRun struct {
	start time.Time
	end   time.Time
}

func (r flowRun) length() int {
	return valueobject.DaysBetween(r.start, r.end) + 1
}

// flowRuns groups consecutive flow days. Entries must be sorted by date.
func flowRuns(sorted []*entity.LogEntry) []flowRun {
	runs := make([]flowRun, 0)
	for _, e := range sorted {
		if !e.HasFlow() {
			continue
		}
		day := valueobject.DateOf(e.Date)
		if n := len(runs); n > 0 && valueobject.DaysBetween(runs[n-1].end, day) == 1 {
			runs[n-1].end = day
			continue
		}
		runs = append(runs, flowRun{start: day, end: day})
	}
	return runs
}

// sortEntries returns a date-ordered copy keeping the last entry per date.
func sortEntries(entries []*entity.LogEntry) []*entity.LogEntry {
	byDate := make(map[time.Time]*entity.LogEntry, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		byDate[valueobject.DateOf(e.Date)] = e
	}

	sorted := make([]*entity.LogEntry, 0, len(byDate))
	for _, e := range byDate {
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

func normalizeDates(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	result := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := valueobject.DateOf(d)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		result = append(result, day)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Before(result[j])
	})
	return result
}

func meanAndStddev(values []int) (mean, stddev float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
	}
	mean = sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
