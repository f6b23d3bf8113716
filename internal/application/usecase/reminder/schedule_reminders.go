// Package reminder contains the daily reminder scheduling use case.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/application/usecase/cycle"
	domaincycle "github.com/caresync/backend/internal/domain/cycle"
	"github.com/caresync/backend/internal/domain/entity"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// DefaultLeadDays is how many days before the predicted period the period
// reminder goes out.
const DefaultLeadDays = 2

// ScheduleRemindersInput represents the input for one scheduling run.
type ScheduleRemindersInput struct {
	// Today overrides the clock when set.
	Today *time.Time
}

// ScheduleRemindersOutput counts what a run did.
type ScheduleRemindersOutput struct {
	Today         time.Time
	Users         int
	PeriodQueued  int
	FertileQueued int
	AlreadyQueued int
	Failed        int
}

// ScheduleRemindersUseCase queues the reminder emails due today.
type ScheduleRemindersUseCase struct {
	userRepo     adapter.UserRepository
	resolver     *cycle.ProfileResolver
	emailService adapter.EmailService
	clock        adapter.Clock
	leadDays     int
}

// NewScheduleRemindersUseCase creates a new ScheduleRemindersUseCase instance.
// A non-positive leadDays falls back to DefaultLeadDays.
func NewScheduleRemindersUseCase(
	userRepo adapter.UserRepository,
	resolver *cycle.ProfileResolver,
	emailService adapter.EmailService,
	clock adapter.Clock,
	leadDays int,
) *ScheduleRemindersUseCase {
	if leadDays <= 0 {
		leadDays = DefaultLeadDays
	}
	return &ScheduleRemindersUseCase{
		userRepo:     userRepo,
		resolver:     resolver,
		emailService: emailService,
		clock:        clock,
		leadDays:     leadDays,
	}
}

// Execute runs one scheduling pass. Failures for a single user are logged and
// counted; only a failure to list recipients aborts the run.
func (uc *ScheduleRemindersUseCase) Execute(ctx context.Context, input ScheduleRemindersInput) (*ScheduleRemindersOutput, error) {
	today := uc.clock.Today()
	if input.Today != nil && !input.Today.IsZero() {
		today = valueobject.DateOf(*input.Today)
	}

	users, err := uc.userRepo.ListReminderRecipients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder recipients: %w", err)
	}

	output := &ScheduleRemindersOutput{Today: today}
	for _, user := range users {
		if ctx.Err() != nil {
			return output, ctx.Err()
		}
		if !user.HasBaseline() || !user.WantsReminders() {
			continue
		}
		output.Users++

		if err := uc.scheduleForUser(ctx, user, today, output); err != nil {
			output.Failed++
			slog.Error("Failed to schedule reminders",
				"user_id", user.ID,
				"date", valueobject.FormatDate(today),
				"error", err,
			)
		}
	}

	slog.Info("Reminder scheduling finished",
		"date", valueobject.FormatDate(today),
		"users", output.Users,
		"period_queued", output.PeriodQueued,
		"fertile_queued", output.FertileQueued,
		"already_queued", output.AlreadyQueued,
		"failed", output.Failed,
	)

	return output, nil
}

func (uc *ScheduleRemindersUseCase) scheduleForUser(ctx context.Context, user *entity.User, today time.Time, output *ScheduleRemindersOutput) error {
	resolved, err := uc.resolver.ResolveUser(ctx, user)
	if err != nil {
		return err
	}

	prediction := domaincycle.PredictWithHistory(resolved.Profile, today, resolved.History)

	if daysUntil := valueobject.DaysBetween(today, prediction.NextPeriodDate); user.PeriodReminders && daysUntil == uc.leadDays {
		queued, err := uc.emailService.QueuePeriodReminder(ctx, adapter.QueuePeriodReminderInput{
			UserID:         user.ID,
			UserEmail:      user.Email,
			UserName:       user.Name,
			NextPeriodDate: prediction.NextPeriodDate,
			DaysUntil:      daysUntil,
			Probability:    prediction.NextPeriodProbability,
		})
		if err != nil {
			return fmt.Errorf("failed to queue period reminder: %w", err)
		}
		count(output, queued, &output.PeriodQueued)
	}

	if user.FertileWindowReminders && valueobject.SameDay(prediction.FertileWindowStart, today) {
		queued, err := uc.emailService.QueueFertileWindowReminder(ctx, adapter.QueueFertileWindowReminderInput{
			UserID:        user.ID,
			UserEmail:     user.Email,
			UserName:      user.Name,
			WindowStart:   prediction.FertileWindowStart,
			WindowEnd:     prediction.FertileWindowEnd,
			OvulationDate: prediction.OvulationDate,
		})
		if err != nil {
			return fmt.Errorf("failed to queue fertile window reminder: %w", err)
		}
		count(output, queued, &output.FertileQueued)
	}

	return nil
}

func count(output *ScheduleRemindersOutput, queued bool, counter *int) {
	if queued {
		*counter++
		return
	}
	output.AlreadyQueued++
}
