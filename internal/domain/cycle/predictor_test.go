package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/domain/valueobject"
)

func TestPredict(t *testing.T) {
	profile := mustProfile(t, 28, 5, 14, "2024-01-15")

	result := Predict(profile, date(t, "2024-01-20"))

	assert.Equal(t, date(t, "2024-02-12"), result.NextPeriodDate)
	assert.Equal(t, date(t, "2024-01-29"), result.OvulationDate)
	assert.Equal(t, date(t, "2024-01-24"), result.FertileWindowStart)
	assert.Equal(t, date(t, "2024-01-30"), result.FertileWindowEnd)
	assert.Equal(t, 0.35, result.NextPeriodProbability)
	assert.Equal(t, 0.34, result.FertileWindowProbability)
	assert.Equal(t, 0.34, result.OvulationProbability)
}

func TestPredict_NextPeriodSelection(t *testing.T) {
	profile := mustProfile(t, 28, 5, 14, "2024-01-15")

	tests := []struct {
		name     string
		today    string
		expected string
	}{
		{name: "today is the anchor", today: "2024-01-15", expected: "2024-02-12"},
		{name: "today is a projected start", today: "2024-02-12", expected: "2024-02-12"},
		{name: "day after projected start", today: "2024-02-13", expected: "2024-03-11"},
		{name: "today before the anchor", today: "2023-12-01", expected: "2024-02-12"},
		{name: "far future", today: "2030-06-01", expected: "2030-06-24"},
		{name: "centuries ahead", today: "2790-08-28", expected: "2790-09-24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today := date(t, tt.today)
			result := Predict(profile, today)
			assert.Equal(t, date(t, tt.expected), result.NextPeriodDate)
			assert.Equal(t, result.NextPeriodDate.AddDate(0, 0, -14), result.OvulationDate)
		})
	}
}

func TestPredict_NextPeriodNeverBeforeToday(t *testing.T) {
	profile := mustProfile(t, 31, 4, 11, "2024-05-03")
	start := date(t, "2024-01-01")

	for i := 0; i < 400; i++ {
		today := start.AddDate(0, 0, i)
		next := Predict(profile, today).NextPeriodDate
		assert.False(t, next.Before(today), "next period %s before today %s", next, today)
		assert.Zero(t, valueobject.DaysBetween(profile.LastPeriodStart(), next)%31)
	}
}

func TestPredictWithHistory_Confidence(t *testing.T) {
	profile := mustProfile(t, 28, 5, 14, "2024-01-15")
	today := date(t, "2024-01-20")

	t.Run("six regular cycles", func(t *testing.T) {
		result := PredictWithHistory(profile, today, AggregateResult{SampleSize: 6, RegularityScore: 1})
		assert.Equal(t, 0.95, result.NextPeriodProbability)
		assert.Equal(t, 0.93, result.FertileWindowProbability)
		assert.Equal(t, 0.91, result.OvulationProbability)
		assert.GreaterOrEqual(t, result.OvulationProbability, 0.85)
	})

	t.Run("cycles varying by two days stay regular", func(t *testing.T) {
		starts := []time.Time{date(t, "2023-07-03")}
		for i, gap := range []int{26, 30, 26, 30, 26, 30} {
			starts = append(starts, valueobject.AddDays(starts[i], gap))
		}
		history, err := Aggregate(starts, profile)
		require.NoError(t, err)
		require.Equal(t, 6, history.SampleSize)

		result := PredictWithHistory(profile, today, history)
		assert.GreaterOrEqual(t, result.NextPeriodProbability, 0.85)
		assert.GreaterOrEqual(t, result.FertileWindowProbability, 0.85)
		assert.GreaterOrEqual(t, result.OvulationProbability, 0.85)
	})

	t.Run("lowest regularity that still clears the bar", func(t *testing.T) {
		result := PredictWithHistory(profile, today, AggregateResult{SampleSize: 6, RegularityScore: 0.9})
		assert.GreaterOrEqual(t, result.OvulationProbability, 0.85)
	})

	t.Run("single interval is capped", func(t *testing.T) {
		result := PredictWithHistory(profile, today, AggregateResult{SampleSize: 1, RegularityScore: 1})
		assert.LessOrEqual(t, result.NextPeriodProbability, 0.5)
		assert.LessOrEqual(t, result.FertileWindowProbability, 0.5)
		assert.LessOrEqual(t, result.OvulationProbability, 0.5)
	})

	t.Run("non-increasing as sample size shrinks", func(t *testing.T) {
		prev := 2.0
		for n := 12; n >= 0; n-- {
			result := PredictWithHistory(profile, today, AggregateResult{SampleSize: n, RegularityScore: 0.9})
			assert.LessOrEqual(t, result.NextPeriodProbability, prev, "n=%d", n)
			prev = result.NextPeriodProbability
		}
	})

	t.Run("non-increasing as regularity drops", func(t *testing.T) {
		prev := 2.0
		for i := 10; i >= 0; i-- {
			result := PredictWithHistory(profile, today, AggregateResult{SampleSize: 6, RegularityScore: float64(i) / 10})
			assert.LessOrEqual(t, result.NextPeriodProbability, prev)
			assert.LessOrEqual(t, result.OvulationProbability, result.FertileWindowProbability)
			prev = result.NextPeriodProbability
		}
	})

	t.Run("probabilities stay in bounds", func(t *testing.T) {
		for _, h := range []AggregateResult{
			{SampleSize: -3, RegularityScore: -1},
			{SampleSize: 100, RegularityScore: 7},
			{},
		} {
			result := PredictWithHistory(profile, today, h)
			for _, p := range []float64{result.NextPeriodProbability, result.FertileWindowProbability, result.OvulationProbability} {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
			}
		}
	})
}

func TestProjectCycles(t *testing.T) {
	profile := mustProfile(t, 28, 5, 14, "2024-01-15")

	cycles := ProjectCycles(profile, date(t, "2024-02-01"), date(t, "2024-02-29"))
	require.Len(t, cycles, 2)

	assert.Equal(t, 0, cycles[0].Index)
	assert.Equal(t, date(t, "2024-01-15"), cycles[0].Start)
	assert.Equal(t, date(t, "2024-02-11"), cycles[0].End)

	assert.Equal(t, 1, cycles[1].Index)
	assert.Equal(t, date(t, "2024-02-12"), cycles[1].Start)
	assert.Equal(t, date(t, "2024-02-16"), cycles[1].PeriodEnd)
	assert.Equal(t, date(t, "2024-02-26"), cycles[1].OvulationDate)
	assert.Equal(t, date(t, "2024-02-21"), cycles[1].FertileWindowStart)
	assert.Equal(t, date(t, "2024-02-27"), cycles[1].FertileWindowEnd)
}

func TestProjectCycles_IncludesFertileWindowSpill(t *testing.T) {
	// Ovulation on cycle day 4 opens the fertile window two days before the
	// cycle begins.
	profile := mustProfile(t, 21, 2, 18, "2024-01-01")

	cycles := ProjectCycles(profile, date(t, "2024-01-21"), date(t, "2024-01-21"))
	require.Len(t, cycles, 2)
	assert.Equal(t, date(t, "2024-01-01"), cycles[0].Start)
	assert.Equal(t, date(t, "2024-01-22"), cycles[1].Start)
	assert.Equal(t, date(t, "2024-01-20"), cycles[1].FertileWindowStart)
}

func TestProjectCycles_MatchesPredict(t *testing.T) {
	profile := mustProfile(t, 30, 6, 13, "2024-04-02")
	today := date(t, "2024-09-17")

	prediction := Predict(profile, today)
	cycles := ProjectCycles(profile, prediction.NextPeriodDate, prediction.NextPeriodDate)

	var found bool
	for _, c := range cycles {
		if c.Start.Equal(prediction.NextPeriodDate) {
			found = true
			assert.Equal(t, prediction.OvulationDate, c.OvulationDate)
			assert.Equal(t, prediction.FertileWindowStart, c.FertileWindowStart)
			assert.Equal(t, prediction.FertileWindowEnd, c.FertileWindowEnd)
		}
	}
	assert.True(t, found)
}

func TestProjectCycles_EmptyRange(t *testing.T) {
	profile := mustProfile(t, 28, 5, 14, "2024-01-15")
	assert.Empty(t, ProjectCycles(profile, date(t, "2024-03-01"), date(t, "2024-02-01")))
}
