package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/application/adapter/fake"
	"github.com/caresync/backend/internal/application/usecase/cycle"
	"github.com/caresync/backend/internal/domain/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func onboarded(email string) *entity.User {
	lastStart := day(2024, 1, 15)
	user := entity.NewUser(email, "Ana", "hash", lastStart)
	user.CompleteOnboarding(28, 5, 14, lastStart, lastStart)
	return user
}

type fixture struct {
	users  *fake.UserRepository
	emails *fake.EmailService
	uc     *ScheduleRemindersUseCase
}

func newFixture(users ...*entity.User) *fixture {
	f := &fixture{
		users:  fake.NewUserRepository(users...),
		emails: fake.NewEmailService(),
	}
	resolver := cycle.NewProfileResolver(f.users, fake.NewLogEntryRepository())
	f.uc = NewScheduleRemindersUseCase(f.users, resolver, f.emails, fake.NewClock(day(2024, 2, 10)), 0)
	return f
}

func TestScheduleReminders_PeriodReminder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(onboarded("ana@example.com"))

	out, err := f.uc.Execute(ctx, ScheduleRemindersInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Users)
	assert.Equal(t, 1, out.PeriodQueued)
	assert.Equal(t, 0, out.FertileQueued)
	require.Len(t, f.emails.PeriodReminders, 1)
	reminder := f.emails.PeriodReminders[0]
	assert.Equal(t, day(2024, 2, 12), reminder.NextPeriodDate)
	assert.Equal(t, 2, reminder.DaysUntil)
	assert.Equal(t, "ana@example.com", reminder.UserEmail)

	t.Run("second run does not queue again", func(t *testing.T) {
		out, err := f.uc.Execute(ctx, ScheduleRemindersInput{})
		require.NoError(t, err)
		assert.Equal(t, 0, out.PeriodQueued)
		assert.Equal(t, 1, out.AlreadyQueued)
		assert.Len(t, f.emails.PeriodReminders, 1)
	})
}

func TestScheduleReminders_NothingDue(t *testing.T) {
	f := newFixture(onboarded("ana@example.com"))
	today := day(2024, 2, 5)

	out, err := f.uc.Execute(context.Background(), ScheduleRemindersInput{Today: &today})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Users)
	assert.Zero(t, out.PeriodQueued)
	assert.Empty(t, f.emails.PeriodReminders)
}

func TestScheduleReminders_FertileWindow(t *testing.T) {
	user := onboarded("ana@example.com")
	user.FertileWindowReminders = true
	f := newFixture(user)
	today := day(2024, 1, 24)

	out, err := f.uc.Execute(context.Background(), ScheduleRemindersInput{Today: &today})

	require.NoError(t, err)
	assert.Equal(t, 1, out.FertileQueued)
	require.Len(t, f.emails.FertileReminders, 1)
	reminder := f.emails.FertileReminders[0]
	assert.Equal(t, day(2024, 1, 24), reminder.WindowStart)
	assert.Equal(t, day(2024, 1, 30), reminder.WindowEnd)
	assert.Equal(t, day(2024, 1, 29), reminder.OvulationDate)
}

func TestScheduleReminders_RespectsPreferences(t *testing.T) {
	optedOut := onboarded("optout@example.com")
	optedOut.EmailNotifications = false
	noPeriod := onboarded("noperiod@example.com")
	noPeriod.PeriodReminders = false
	pending := entity.NewUser("pending@example.com", "Bea", "hash", day(2024, 1, 1))

	f := newFixture(optedOut, noPeriod, pending)

	out, err := f.uc.Execute(context.Background(), ScheduleRemindersInput{})

	require.NoError(t, err)
	assert.Equal(t, 0, out.Users)
	assert.Empty(t, f.emails.PeriodReminders)
}

func TestScheduleReminders_FailuresAreCounted(t *testing.T) {
	f := newFixture(onboarded("a@example.com"), onboarded("b@example.com"))
	f.emails.Err = errors.New("queue down")

	out, err := f.uc.Execute(context.Background(), ScheduleRemindersInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Users)
	assert.Equal(t, 2, out.Failed)
}

func TestScheduleReminders_ListFailure(t *testing.T) {
	f := newFixture(onboarded("a@example.com"))
	f.users.Err = errors.New("db down")

	_, err := f.uc.Execute(context.Background(), ScheduleRemindersInput{})

	require.Error(t, err)
}
