package cycle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/domain/entity"
	"github.com/caresync/backend/internal/domain/valueobject"
)

func TestMonthGrid(t *testing.T) {
	tests := []struct {
		name     string
		month    string
		firstDay time.Weekday
		start    string
		end      string
	}{
		{name: "february sunday start", month: "2024-02-01", firstDay: time.Sunday, start: "2024-01-28", end: "2024-03-02"},
		{name: "february monday start", month: "2024-02-01", firstDay: time.Monday, start: "2024-01-29", end: "2024-03-03"},
		{name: "month starting on first weekday", month: "2024-09-15", firstDay: time.Sunday, start: "2024-09-01", end: "2024-10-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := MonthGrid(date(t, tt.month), tt.firstDay)
			assert.Equal(t, date(t, tt.start), start)
			assert.Equal(t, date(t, tt.end), end)
			assert.Equal(t, tt.firstDay, start.Weekday())
			assert.Zero(t, (valueobject.DaysBetween(start, end)+1)%7)
		})
	}
}

func TestBuildCalendar(t *testing.T) {
	profile := mustProfile(t, 28, 5, 14, "2024-01-15")
	userID := uuid.New()

	logged := entity.NewLogEntry(userID, date(t, "2024-02-01"))
	logged.Symptoms = []string{"cramps"}
	period := entity.NewLogEntry(userID, date(t, "2024-01-29"))
	period.FlowIntensity = entity.FlowLight

	days := BuildCalendar(profile, date(t, "2024-02-01"), time.Sunday, date(t, "2024-02-01"), []*entity.LogEntry{logged, period})
	require.Len(t, days, 35)

	byDate := make(map[string]CalendarDay, len(days))
	for _, d := range days {
		byDate[valueobject.FormatDate(d.Date)] = d
	}

	first := byDate["2024-01-28"]
	assert.False(t, first.InMonth)
	assert.Equal(t, 14, first.CycleDay)
	assert.Equal(t, valueobject.PhaseFollicular, first.Phase)

	pastOvulation := byDate["2024-01-29"]
	assert.Equal(t, valueobject.PhaseOvulation, pastOvulation.Phase)
	assert.False(t, pastOvulation.IsOvulation, "predicted markers are not set before today")
	assert.True(t, pastOvulation.IsLoggedPeriod)

	today := byDate["2024-02-01"]
	assert.True(t, today.IsToday)
	assert.True(t, today.InMonth)
	assert.True(t, today.HasLog)
	assert.False(t, today.IsLoggedPeriod)

	pms := byDate["2024-02-11"]
	assert.True(t, pms.IsPMS)
	assert.False(t, pms.IsPredictedPeriod)

	for _, d := range []string{"2024-02-12", "2024-02-13", "2024-02-14", "2024-02-15", "2024-02-16"} {
		assert.True(t, byDate[d].IsPredictedPeriod, d)
		assert.Equal(t, valueobject.PhaseMenstrual, byDate[d].Phase, d)
	}
	assert.False(t, byDate["2024-02-17"].IsPredictedPeriod)

	ovulation := byDate["2024-02-26"]
	assert.True(t, ovulation.IsOvulation)
	assert.False(t, ovulation.IsFertile)

	for _, d := range []string{"2024-02-21", "2024-02-22", "2024-02-23", "2024-02-24", "2024-02-25", "2024-02-27"} {
		assert.True(t, byDate[d].IsFertile, d)
	}
	assert.False(t, byDate["2024-02-20"].IsFertile)
	assert.False(t, byDate["2024-02-28"].IsFertile)
}

func TestBuildCalendar_NoPredictedPeriodInAnchorCycle(t *testing.T) {
	profile := mustProfile(t, 28, 5, 14, "2024-02-05")

	days := BuildCalendar(profile, date(t, "2024-02-01"), time.Monday, date(t, "2024-02-01"), nil)

	for _, d := range days {
		if valueobject.BetweenInclusive(d.Date, date(t, "2024-02-05"), date(t, "2024-02-09")) {
			assert.False(t, d.IsPredictedPeriod, valueobject.FormatDate(d.Date))
			assert.Equal(t, valueobject.PhaseMenstrual, d.Phase)
		}
		assert.False(t, d.HasLog)
	}
}
