package valueobject

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/caresync/backend/internal/domain/error"
)

func TestNewCycleProfile(t *testing.T) {
	anchor := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		params  CycleParams
		wantErr bool
	}{
		{name: "standard profile", params: CycleParams{AverageCycleLength: 28, PeriodDuration: 5, LutealPhaseLength: 14, LastPeriodStart: anchor}},
		{name: "range minimums", params: CycleParams{AverageCycleLength: 21, PeriodDuration: 1, LutealPhaseLength: 8, LastPeriodStart: anchor}},
		{name: "range maximums", params: CycleParams{AverageCycleLength: 45, PeriodDuration: 10, LutealPhaseLength: 18, LastPeriodStart: anchor}},
		{name: "luteal overlapping period is accepted", params: CycleParams{AverageCycleLength: 21, PeriodDuration: 10, LutealPhaseLength: 18, LastPeriodStart: anchor}},
		{name: "zero cycle length", params: CycleParams{AverageCycleLength: 0, PeriodDuration: 5, LutealPhaseLength: 14, LastPeriodStart: anchor}, wantErr: true},
		{name: "cycle too short", params: CycleParams{AverageCycleLength: 20, PeriodDuration: 5, LutealPhaseLength: 14, LastPeriodStart: anchor}, wantErr: true},
		{name: "cycle too long", params: CycleParams{AverageCycleLength: 46, PeriodDuration: 5, LutealPhaseLength: 14, LastPeriodStart: anchor}, wantErr: true},
		{name: "negative period", params: CycleParams{AverageCycleLength: 28, PeriodDuration: -1, LutealPhaseLength: 14, LastPeriodStart: anchor}, wantErr: true},
		{name: "period too long", params: CycleParams{AverageCycleLength: 28, PeriodDuration: 11, LutealPhaseLength: 14, LastPeriodStart: anchor}, wantErr: true},
		{name: "luteal too short", params: CycleParams{AverageCycleLength: 28, PeriodDuration: 5, LutealPhaseLength: 7, LastPeriodStart: anchor}, wantErr: true},
		{name: "luteal too long", params: CycleParams{AverageCycleLength: 28, PeriodDuration: 5, LutealPhaseLength: 19, LastPeriodStart: anchor}, wantErr: true},
		{name: "missing last period start", params: CycleParams{AverageCycleLength: 28, PeriodDuration: 5, LutealPhaseLength: 14}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, err := NewCycleProfile(tt.params)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainerror.ErrInvalidCycleParameters))

				var cycleErr *domainerror.CycleError
				require.True(t, errors.As(err, &cycleErr))
				assert.Equal(t, domainerror.ErrCodeInvalidCycleParameters, cycleErr.Code)
				assert.NotEmpty(t, cycleErr.Message)
				assert.True(t, profile.IsZero())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.AverageCycleLength, profile.AverageCycleLength())
			assert.Equal(t, tt.params.PeriodDuration, profile.PeriodDuration())
			assert.Equal(t, tt.params.LutealPhaseLength, profile.LutealPhaseLength())
			assert.Equal(t, tt.params, profile.Params())
		})
	}
}

func TestNewCycleProfile_NormalizesLastPeriodStart(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	profile, err := NewCycleProfile(CycleParams{
		AverageCycleLength: 28,
		PeriodDuration:     5,
		LutealPhaseLength:  14,
		LastPeriodStart:    time.Date(2024, 1, 15, 22, 45, 0, 0, loc),
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), profile.LastPeriodStart())
}

func TestCycleProfile_CycleDay(t *testing.T) {
	profile, err := NewCycleProfile(CycleParams{
		AverageCycleLength: 28,
		PeriodDuration:     5,
		LutealPhaseLength:  14,
		LastPeriodStart:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		onDate   time.Time
		expected int
	}{
		{name: "anchor", onDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), expected: 1},
		{name: "last day of cycle", onDate: time.Date(2024, 2, 11, 0, 0, 0, 0, time.UTC), expected: 28},
		{name: "next cycle", onDate: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), expected: 1},
		{name: "day before anchor", onDate: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), expected: 28},
		{name: "far past", onDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := profile.CycleDay(tt.onDate)
			assert.Equal(t, tt.expected, day)
			assert.GreaterOrEqual(t, day, 1)
			assert.LessOrEqual(t, day, 28)
		})
	}

	assert.Equal(t, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC), profile.CycleStartFor(time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	b := time.Date(2024, 3, 11, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysBetween_FarApartDates(t *testing.T) {
	anchor := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	far := anchor.AddDate(0, 0, 28*10000)
	require.Equal(t, 2790, far.Year())

	assert.Equal(t, 280000, DaysBetween(anchor, far))
	assert.Equal(t, -280000, DaysBetween(far, anchor))

	ancient := time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 738899, DaysBetween(ancient, anchor))

	profile, err := NewCycleProfile(CycleParams{AverageCycleLength: 28, PeriodDuration: 5, LutealPhaseLength: 14, LastPeriodStart: anchor})
	require.NoError(t, err)
	assert.Equal(t, 1, profile.CycleDay(far))
	assert.Equal(t, 2, profile.CycleDay(far.AddDate(0, 0, 1)))
	assert.Equal(t, far, profile.CycleStartFor(far.AddDate(0, 0, 27)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", FormatDate(d))

	_, err = ParseDate("2024-02-30")
	assert.Error(t, err)
	_, err = ParseDate("29/02/2024")
	assert.Error(t, err)
}
