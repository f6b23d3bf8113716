package cycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
	domaincycle "github.com/caresync/backend/internal/domain/cycle"
)

// GetCalendarInput represents the input for the month view.
type GetCalendarInput struct {
	UserID uuid.UUID
	// Month is any date inside the requested month.
	Month time.Time
	Today *time.Time
}

// GetCalendarOutput is a month grid of whole weeks.
type GetCalendarOutput struct {
	Month     time.Time
	GridStart time.Time
	GridEnd   time.Time
	Today     time.Time
	Days      []domaincycle.CalendarDay
	Profile   ProfileSummary
}

// GetCalendarUseCase builds the month view.
type GetCalendarUseCase struct {
	resolver *ProfileResolver
	clock    adapter.Clock
}

// NewGetCalendarUseCase creates a new GetCalendarUseCase instance.
func NewGetCalendarUseCase(resolver *ProfileResolver, clock adapter.Clock) *GetCalendarUseCase {
	return &GetCalendarUseCase{resolver: resolver, clock: clock}
}

// Execute builds the calendar. Weeks start on the user's preferred day.
func (uc *GetCalendarUseCase) Execute(ctx context.Context, input GetCalendarInput) (*GetCalendarOutput, error) {
	today := resolveToday(input.Today, uc.clock)
	month := input.Month
	if month.IsZero() {
		month = today
	}
	y, m, _ := month.Date()
	month = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)

	resolved, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	firstDay := resolved.User.FirstDayOfWeek.Weekday()
	gridStart, gridEnd := domaincycle.MonthGrid(month, firstDay)

	return &GetCalendarOutput{
		Month:     month,
		GridStart: gridStart,
		GridEnd:   gridEnd,
		Today:     today,
		Days:      domaincycle.BuildCalendar(resolved.Profile, month, firstDay, today, resolved.Entries),
		Profile:   resolved.Summary(),
	}, nil
}
