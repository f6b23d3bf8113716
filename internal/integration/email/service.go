package email

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: strings.TrimRight(appBaseURL, "/"),
	}
}

// QueuePeriodReminder queues a reminder that the next period is close.
func (s *Service) QueuePeriodReminder(ctx context.Context, input adapter.QueuePeriodReminderInput) (bool, error) {
	subject := fmt.Sprintf("Your period is expected in %d days", input.DaysUntil)
	if input.DaysUntil == 1 {
		subject = "Your period is expected tomorrow"
	}

	templateData := map[string]interface{}{
		"user_name":           input.UserName,
		"next_period_date":    valueobject.FormatDate(input.NextPeriodDate),
		"days_until":          input.DaysUntil,
		"probability_percent": int(math.Round(input.Probability * 100)),
		"dashboard_url":       s.appBaseURL + "/dashboard",
	}

	job := entity.NewEmailJob(
		input.UserID,
		entity.TemplatePeriodReminder,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	).WithDedupKey(dedupKey(entity.TemplatePeriodReminder, input.UserID.String(), valueobject.FormatDate(input.NextPeriodDate)))

	return s.enqueue(ctx, job)
}

// QueueFertileWindowReminder queues a reminder that the fertile window starts today.
func (s *Service) QueueFertileWindowReminder(ctx context.Context, input adapter.QueueFertileWindowReminderInput) (bool, error) {
	templateData := map[string]interface{}{
		"user_name":      input.UserName,
		"window_start":   valueobject.FormatDate(input.WindowStart),
		"window_end":     valueobject.FormatDate(input.WindowEnd),
		"ovulation_date": valueobject.FormatDate(input.OvulationDate),
		"calendar_url":   s.appBaseURL + "/calendar",
	}

	job := entity.NewEmailJob(
		input.UserID,
		entity.TemplateFertileWindowReminder,
		input.UserEmail,
		input.UserName,
		"Your fertile window starts today",
		templateData,
	).WithDedupKey(dedupKey(entity.TemplateFertileWindowReminder, input.UserID.String(), valueobject.FormatDate(input.WindowStart)))

	return s.enqueue(ctx, job)
}

// enqueue creates the job unless one with the same dedup key exists.
func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob) (bool, error) {
	exists, err := s.queue.ExistsByDedupKey(ctx, job.DedupKey)
	if err != nil {
		return false, domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to check for queued reminder",
			err,
		)
	}
	if exists {
		slog.Debug("Reminder already queued", "dedup_key", job.DedupKey)
		return false, nil
	}

	if err := s.queue.Create(ctx, job); err != nil {
		return false, domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email", job.TemplateType),
			err,
		)
	}

	return true, nil
}

func dedupKey(template entity.EmailTemplateType, userID, date string) string {
	return string(template) + ":" + userID + ":" + date
}

var _ adapter.EmailService = (*Service)(nil)
