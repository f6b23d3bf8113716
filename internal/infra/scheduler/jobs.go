package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/caresync/backend/internal/application/usecase/reminder"
)

// Job names.
const (
	ReminderJobName = "cycle_reminders"
	CleanupJobName  = "cleanup"
)

// ReminderRunner queues the reminder emails due today.
type ReminderRunner interface {
	Execute(ctx context.Context, input reminder.ScheduleRemindersInput) (*reminder.ScheduleRemindersOutput, error)
}

// ExpiredTokenPurger deletes refresh tokens that expired before a time.
type ExpiredTokenPurger interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SentEmailPurger deletes delivered email jobs older than a number of days.
type SentEmailPurger interface {
	CleanupSentJobs(ctx context.Context, olderThanDays int)
}

// ReminderJob runs the reminder use case for the current day.
func ReminderJob(spec string, runner ReminderRunner) Job {
	return Job{
		Name:    ReminderJobName,
		Spec:    spec,
		Timeout: 10 * time.Minute,
		Run: func(ctx context.Context) error {
			_, err := runner.Execute(ctx, reminder.ScheduleRemindersInput{})
			return err
		},
	}
}

// CleanupJob removes expired refresh tokens and old sent emails.
func CleanupJob(spec string, tokens ExpiredTokenPurger, emails SentEmailPurger, retentionDays int) Job {
	return Job{
		Name:    CleanupJobName,
		Spec:    spec,
		Timeout: 5 * time.Minute,
		Run: func(ctx context.Context) error {
			var errs []error
			if tokens != nil {
				deleted, err := tokens.DeleteExpired(ctx, time.Now().UTC())
				if err != nil {
					errs = append(errs, err)
				} else if deleted > 0 {
					slog.Info("Deleted expired refresh tokens", "deleted", deleted)
				}
			}
			if emails != nil && retentionDays > 0 {
				emails.CleanupSentJobs(ctx, retentionDays)
			}
			return errors.Join(errs...)
		},
	}
}
