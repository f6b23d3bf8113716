package email

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/integration/email/templates"
)

// WorkerConfig tunes the queue poller. Zero values fall back to
// DefaultWorkerConfig.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{PollInterval: 5 * time.Second, BatchSize: 10}
}

// Worker drains the email queue: each due job is rendered, handed to the
// sender and marked sent, retried or failed.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	cfg      WorkerConfig
}

func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, cfg WorkerConfig) *Worker {
	defaults := DefaultWorkerConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaults.PollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	return &Worker{queue: queue, sender: sender, renderer: renderer, cfg: cfg}
}

// Start polls until ctx is cancelled. The first batch runs immediately.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("email worker started", "poll_interval", w.cfg.PollInterval, "batch_size", w.cfg.BatchSize)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		w.drain(ctx)
		select {
		case <-ctx.Done():
			slog.Info("email worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessNow runs a single batch synchronously.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.drain(ctx)
}

// CleanupSentJobs drops sent jobs older than the retention window.
func (w *Worker) CleanupSentJobs(ctx context.Context, olderThanDays int) {
	deleted, err := w.queue.DeleteOldSentJobs(ctx, olderThanDays)
	if err != nil {
		slog.Error("email queue cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("email queue cleaned", "deleted", deleted, "older_than_days", olderThanDays)
	}
}

func (w *Worker) drain(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.cfg.BatchSize)
	if err != nil {
		slog.Error("could not load pending emails", "error", err)
		return
	}
	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	log := slog.With("job_id", job.ID, "template", job.TemplateType, "user_id", job.UserID)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		log.Error("could not claim email job", "error", err)
		return
	}

	html, text, err := w.render(job)
	if err != nil {
		log.Error("email template failed", "error", err)
		w.fail(ctx, log, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		var emailErr *domainerror.EmailError
		permanent := errors.As(err, &emailErr) && emailErr.Permanent()
		log.Error("email send failed", "error", err, "permanent", permanent)
		w.fail(ctx, log, job, err, permanent)
		return
	}

	job.MarkSent(result.ResendID)
	if err := w.queue.Update(ctx, job); err != nil {
		log.Error("could not mark email sent", "error", err)
		return
	}
	log.Info("email sent", "resend_id", result.ResendID)
}

func (w *Worker) fail(ctx context.Context, log *slog.Logger, job *entity.EmailJob, cause error, permanent bool) {
	job.MarkFailed(cause, permanent)
	if err := w.queue.Update(ctx, job); err != nil {
		log.Error("could not record email failure", "error", err)
	}
	if job.Status == entity.EmailStatusFailed {
		log.Warn("email job gave up", "attempts", job.Attempts, "last_error", job.LastError)
		return
	}
	log.Info("email job rescheduled", "attempts", job.Attempts, "scheduled_at", job.ScheduledAt)
}

// render decodes the stored template data into the typed payload of the
// job's template and executes it.
func (w *Worker) render(job *entity.EmailJob) (string, string, error) {
	var data any
	switch job.TemplateType {
	case entity.TemplatePeriodReminder:
		data = &templates.PeriodReminderData{}
	case entity.TemplateFertileWindowReminder:
		data = &templates.FertileWindowReminderData{}
	default:
		return "", "", domainerror.NewEmailError(domainerror.ErrCodeInvalidTemplate, "unknown template type", domainerror.ErrInvalidTemplate)
	}

	raw, err := json.Marshal(job.TemplateData)
	if err == nil {
		err = json.Unmarshal(raw, data)
	}
	if err != nil {
		return "", "", domainerror.NewEmailError(domainerror.ErrCodeInvalidTemplate, "malformed template data", err)
	}
	return w.renderer.Render(string(job.TemplateType), data)
}
