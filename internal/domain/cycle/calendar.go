package cycle

import (
	"time"

	"github.com/caresync/backend/internal/domain/entity"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date              time.Time
	InMonth           bool
	IsToday           bool
	CycleDay          int
	Phase             valueobject.Phase
	IsPMS             bool
	IsLoggedPeriod    bool
	IsPredictedPeriod bool
	IsFertile         bool
	IsOvulation       bool
	HasLog            bool
}

// MonthGrid returns the first and last day of the whole weeks covering the
// month that contains month, with weeks starting on firstDay.
func MonthGrid(month time.Time, firstDay time.Weekday) (time.Time, time.Time) {
	y, m, _ := month.Date()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	lead := (int(monthStart.Weekday()) - int(firstDay) + 7) % 7
	lastDay := (int(firstDay) + 6) % 7
	trail := (lastDay - int(monthEnd.Weekday()) + 7) % 7

	return monthStart.AddDate(0, 0, -lead), monthEnd.AddDate(0, 0, trail)
}

// BuildCalendar lays out the month containing month. Cycle day, phase and PMS
// come from the profile for every cell; predicted period, fertile and
// ovulation markers are only set from today onwards, and predicted periods
// only for cycles after the profile anchor. Ovulation days are not marked
// fertile.
func BuildCalendar(
	profile valueobject.CycleProfile,
	month time.Time,
	firstDay time.Weekday,
	today time.Time,
	entries []*entity.LogEntry,
) []CalendarDay {
	gridStart, gridEnd := MonthGrid(month, firstDay)
	today = valueobject.DateOf(today)
	_, currentMonth, _ := month.Date()

	logs := make(map[time.Time]*entity.LogEntry, len(entries))
	for _, e := range sortEntries(entries) {
		logs[valueobject.DateOf(e.Date)] = e
	}

	cycles := ProjectCycles(profile, gridStart, gridEnd)

	days := make([]CalendarDay, 0, valueobject.DaysBetween(gridStart, gridEnd)+1)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		info := Describe(profile, day)
		cell := CalendarDay{
			Date:     day,
			InMonth:  day.Month() == currentMonth,
			IsToday:  day.Equal(today),
			CycleDay: info.CycleDay,
			Phase:    info.Phase,
			IsPMS:    info.IsPMS,
		}

		if e, ok := logs[day]; ok {
			cell.HasLog = e.HasData()
			cell.IsLoggedPeriod = e.HasFlow() || e.IsPeriodStart
		}

		if !day.Before(today) {
			for _, c := range cycles {
				if c.Index >= 1 && c.IsPeriodDay(day) {
					cell.IsPredictedPeriod = true
				}
				if c.OvulationDate.Equal(day) {
					cell.IsOvulation = true
				}
				if c.IsFertileDay(day) {
					cell.IsFertile = true
				}
			}
			if cell.IsOvulation {
				cell.IsFertile = false
			}
		}

		days = append(days, cell)
	}

	return days
}
