package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caresync/backend/internal/application/usecase/reminder"
)

type reminderRunnerStub struct {
	calls int
	err   error
}

func (r *reminderRunnerStub) Execute(_ context.Context, input reminder.ScheduleRemindersInput) (*reminder.ScheduleRemindersOutput, error) {
	r.calls++
	if input.Today != nil {
		return nil, errors.New("scheduled runs use the clock")
	}
	return &reminder.ScheduleRemindersOutput{}, r.err
}

type tokenPurgerStub struct {
	before time.Time
	err    error
}

func (p *tokenPurgerStub) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	p.before = before
	return 3, p.err
}

type emailPurgerStub struct {
	days int
}

func (p *emailPurgerStub) CleanupSentJobs(_ context.Context, olderThanDays int) {
	p.days = olderThanDays
}

func TestStartRejectsInvalidSpec(t *testing.T) {
	s := New(time.UTC, Job{Name: "broken", Spec: "every tuesday", Run: func(context.Context) error { return nil }})

	err := s.Start()

	assert.ErrorContains(t, err, "broken")
}

func TestStartAndStop(t *testing.T) {
	runner := &reminderRunnerStub{}
	s := New(nil, ReminderJob("0 8 * * *", runner))

	require.NoError(t, s.Start())
	s.Stop()
	assert.Zero(t, runner.calls)
}

func TestRunNow(t *testing.T) {
	runner := &reminderRunnerStub{}
	s := New(time.UTC, ReminderJob("0 8 * * *", runner))

	require.NoError(t, s.RunNow(context.Background(), ReminderJobName))
	assert.Equal(t, 1, runner.calls)

	runner.err = errors.New("list failed")
	assert.ErrorContains(t, s.RunNow(context.Background(), ReminderJobName), "list failed")

	assert.ErrorContains(t, s.RunNow(context.Background(), "missing"), "unknown job")
}

func TestRunNowAppliesTimeout(t *testing.T) {
	var deadline bool
	s := New(time.UTC, Job{
		Name:    "timed",
		Spec:    "@daily",
		Timeout: time.Minute,
		Run: func(ctx context.Context) error {
			_, deadline = ctx.Deadline()
			return nil
		},
	})

	require.NoError(t, s.RunNow(context.Background(), "timed"))
	assert.True(t, deadline)
}

func TestCleanupJob(t *testing.T) {
	tokens := &tokenPurgerStub{}
	emails := &emailPurgerStub{}
	s := New(time.UTC, CleanupJob("30 3 * * *", tokens, emails, 30))

	require.NoError(t, s.RunNow(context.Background(), CleanupJobName))
	assert.False(t, tokens.before.IsZero())
	assert.Equal(t, 30, emails.days)

	tokens.err = errors.New("db down")
	assert.ErrorContains(t, s.RunNow(context.Background(), CleanupJobName), "db down")
}
