package cycle

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
)

func TestAggregate(t *testing.T) {
	fallback := mustProfile(t, 30, 5, 14, "2024-01-01")

	result, err := Aggregate([]time.Time{
		date(t, "2024-01-01"),
		date(t, "2024-01-29"),
		date(t, "2024-02-26"),
	}, fallback)

	require.NoError(t, err)
	assert.Equal(t, 28, result.AverageCycleLength)
	assert.Equal(t, 1.0, result.RegularityScore)
	assert.Equal(t, 2, result.SampleSize)
	assert.Equal(t, []int{28, 28}, result.CycleLengths)
	assert.Equal(t, date(t, "2024-02-26"), result.LastPeriodStart)
	assert.False(t, result.IrregularCycle)
	assert.Equal(t, 5, result.PeriodDuration)
	assert.True(t, result.Sufficient())
}

func TestAggregate_NormalizesInput(t *testing.T) {
	fallback := mustProfile(t, 30, 5, 14, "2024-01-01")
	loc := time.FixedZone("UTC+9", 9*60*60)

	result, err := Aggregate([]time.Time{
		time.Date(2024, 2, 26, 7, 30, 0, 0, loc),
		date(t, "2024-01-01"),
		time.Date(2024, 1, 29, 23, 0, 0, 0, time.UTC),
		date(t, "2024-01-29"),
		date(t, "2024-01-01"),
	}, fallback)

	require.NoError(t, err)
	assert.Equal(t, []int{28, 28}, result.CycleLengths)
	assert.Len(t, result.PeriodStarts, 3)
	assert.Equal(t, date(t, "2024-02-26"), result.LastPeriodStart)
}

func TestAggregate_InsufficientHistory(t *testing.T) {
	fallback := mustProfile(t, 31, 6, 13, "2024-01-01")

	tests := []struct {
		name  string
		dates []time.Time
	}{
		{name: "no dates", dates: nil},
		{name: "single date", dates: []time.Time{date(t, "2024-03-05")}},
		{name: "duplicates of one date", dates: []time.Time{date(t, "2024-03-05"), date(t, "2024-03-05")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Aggregate(tt.dates, fallback)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerror.ErrInsufficientHistory))

			var cycleErr *domainerror.CycleError
			require.True(t, errors.As(err, &cycleErr))
			assert.Equal(t, domainerror.ErrCodeInsufficientHistory, cycleErr.Code)

			assert.Equal(t, 31, result.AverageCycleLength)
			assert.Equal(t, 6, result.PeriodDuration)
			assert.Zero(t, result.RegularityScore)
			assert.Zero(t, result.SampleSize)
			assert.False(t, result.Sufficient())
		})
	}
}

func TestAggregate_IrregularIsClampedAndFlagged(t *testing.T) {
	fallback := mustProfile(t, 28, 5, 14, "2024-01-01")

	tests := []struct {
		name     string
		dates    []string
		expected int
	}{
		{name: "too long", dates: []string{"2024-01-01", "2024-03-01"}, expected: 45},
		{name: "too short", dates: []string{"2024-01-01", "2024-01-16", "2024-01-31"}, expected: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := make([]time.Time, 0, len(tt.dates))
			for _, d := range tt.dates {
				dates = append(dates, date(t, d))
			}

			result, err := Aggregate(dates, fallback)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.AverageCycleLength)
			assert.True(t, result.IrregularCycle)
		})
	}
}

func TestAggregate_Regularity(t *testing.T) {
	fallback := mustProfile(t, 28, 5, 14, "2024-01-01")

	// Deltas 26 and 30: mean 28, population stddev 2.
	result, err := Aggregate([]time.Time{
		date(t, "2024-01-01"),
		date(t, "2024-01-27"),
		date(t, "2024-02-26"),
	}, fallback)

	require.NoError(t, err)
	assert.Equal(t, 28, result.AverageCycleLength)
	assert.InDelta(t, 1-2.0/28, result.RegularityScore, 1e-9)
	assert.GreaterOrEqual(t, result.RegularityScore, 0.0)
	assert.LessOrEqual(t, result.RegularityScore, 1.0)
}

func TestAggregate_Idempotent(t *testing.T) {
	fallback := mustProfile(t, 28, 5, 14, "2024-01-01")
	input := []time.Time{
		date(t, "2024-03-30"),
		date(t, "2024-01-01"),
		date(t, "2024-02-02"),
		date(t, "2024-03-01"),
	}

	first, err := Aggregate(input, fallback)
	require.NoError(t, err)
	second, err := Aggregate(first.PeriodStarts, fallback)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAggregateLogs(t *testing.T) {
	userID := uuid.New()
	fallback := mustProfile(t, 30, 3, 14, "2024-01-01")

	entries := flowEntries(t, userID, "2024-01-01", 5)
	entries = append(entries, flowEntries(t, userID, "2024-01-29", 4)...)
	entries = append(entries, flowEntries(t, userID, "2024-02-26", 5)...)

	mood := 3
	quiet := entity.NewLogEntry(userID, date(t, "2024-01-12"))
	quiet.Mood = &mood
	entries = append(entries, quiet)

	result, err := AggregateLogs(entries, fallback)

	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(t, "2024-01-01"), date(t, "2024-01-29"), date(t, "2024-02-26")}, result.PeriodStarts)
	assert.Equal(t, 28, result.AverageCycleLength)
	assert.Equal(t, 5, result.PeriodDuration)
	assert.Equal(t, 2, result.SampleSize)
}

func TestAggregateLogs_InsufficientKeepsFallbackDuration(t *testing.T) {
	fallback := mustProfile(t, 30, 3, 14, "2024-01-01")

	result, err := AggregateLogs(flowEntries(t, uuid.New(), "2024-01-01", 7), fallback)

	assert.True(t, errors.Is(err, domainerror.ErrInsufficientHistory))
	assert.Equal(t, 3, result.PeriodDuration)
	assert.Equal(t, date(t, "2024-01-01"), result.LastPeriodStart)
}

func TestAggregateLogs_UsesRecentCycles(t *testing.T) {
	userID := uuid.New()
	fallback := mustProfile(t, 28, 5, 14, "2024-01-01")

	entries := make([]*entity.LogEntry, 0, 20)
	start := date(t, "2022-01-01")
	for i := 0; i < 20; i++ {
		e := entity.NewLogEntry(userID, start.AddDate(0, 0, i*30))
		e.IsPeriodStart = true
		entries = append(entries, e)
	}

	result, err := AggregateLogs(entries, fallback)

	require.NoError(t, err)
	assert.Equal(t, MaxAggregatedCycles, result.SampleSize)
	assert.Equal(t, 30, result.AverageCycleLength)
	assert.Equal(t, start.AddDate(0, 0, 19*30), result.LastPeriodStart)
}

func TestDetectPeriodStarts(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		entries  func() []*entity.LogEntry
		expected []string
	}{
		{
			name:     "no entries",
			entries:  func() []*entity.LogEntry { return nil },
			expected: []string{},
		},
		{
			name: "short gap continues the period",
			entries: func() []*entity.LogEntry {
				e := flowEntries(t, userID, "2024-01-01", 3)
				return append(e, flowEntries(t, userID, "2024-01-07", 1)...)
			},
			expected: []string{"2024-01-01"},
		},
		{
			name: "five flow-free days start a new period",
			entries: func() []*entity.LogEntry {
				e := flowEntries(t, userID, "2024-01-01", 3)
				return append(e, flowEntries(t, userID, "2024-01-09", 2)...)
			},
			expected: []string{"2024-01-01", "2024-01-09"},
		},
		{
			name: "flag inside a running bleed moves the start",
			entries: func() []*entity.LogEntry {
				e := flowEntries(t, userID, "2024-01-15", 5)
				e[0].IsPeriodStart = true
				e[1].IsPeriodStart = true
				return e
			},
			expected: []string{"2024-01-16"},
		},
		{
			name: "flag after spotting moves the start",
			entries: func() []*entity.LogEntry {
				spotting := flowEntries(t, userID, "2024-01-13", 1)
				bleed := flowEntries(t, userID, "2024-01-15", 4)
				bleed[0].IsPeriodStart = true
				return append(spotting, bleed...)
			},
			expected: []string{"2024-01-15"},
		},
		{
			name: "explicit flag without flow",
			entries: func() []*entity.LogEntry {
				e := entity.NewLogEntry(userID, date(t, "2024-02-14"))
				e.IsPeriodStart = true
				return []*entity.LogEntry{e}
			},
			expected: []string{"2024-02-14"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			starts := DetectPeriodStarts(tt.entries())
			expected := make([]time.Time, 0, len(tt.expected))
			for _, d := range tt.expected {
				expected = append(expected, date(t, d))
			}
			assert.Equal(t, expected, starts)
		})
	}
}
