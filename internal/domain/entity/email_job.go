package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailStatus is the queue state of an EmailJob. Jobs move
// pending -> processing -> sent, or back to pending for a retry, or to
// failed once they give up.
type EmailStatus string

const (
	EmailStatusPending    EmailStatus = "pending"
	EmailStatusProcessing EmailStatus = "processing"
	EmailStatusSent       EmailStatus = "sent"
	EmailStatusFailed     EmailStatus = "failed"
)

// EmailTemplateType names one of the embedded reminder templates.
type EmailTemplateType string

const (
	TemplatePeriodReminder        EmailTemplateType = "period_reminder"
	TemplateFertileWindowReminder EmailTemplateType = "fertile_window_reminder"
)

// IsValid reports whether t names an embedded template.
func (t EmailTemplateType) IsValid() bool {
	switch t {
	case TemplatePeriodReminder, TemplateFertileWindowReminder:
		return true
	}
	return false
}

// DefaultMaxEmailAttempts is how many sends a job gets before it is marked failed.
const DefaultMaxEmailAttempts = 3

// Backoff after the n-th failed attempt; the last value repeats.
var retryDelays = [...]time.Duration{0, time.Minute, 5 * time.Minute}

// EmailJob is one reminder waiting in, or already through, the queue.
// DedupKey is unique per logical reminder.
type EmailJob struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	DedupKey       string
	TemplateType   EmailTemplateType
	RecipientEmail string
	RecipientName  string
	Subject        string
	TemplateData   map[string]interface{}
	Status         EmailStatus
	Attempts       int
	MaxAttempts    int
	LastError      string
	ResendID       string
	CreatedAt      time.Time
	ScheduledAt    time.Time
	ProcessedAt    *time.Time
}

// NewEmailJob returns a pending job due immediately.
func NewEmailJob(userID uuid.UUID, templateType EmailTemplateType, recipientEmail, recipientName, subject string, data map[string]interface{}) *EmailJob {
	created := time.Now().UTC()
	return &EmailJob{
		ID:             uuid.New(),
		UserID:         userID,
		TemplateType:   templateType,
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		Subject:        subject,
		TemplateData:   data,
		Status:         EmailStatusPending,
		MaxAttempts:    DefaultMaxEmailAttempts,
		CreatedAt:      created,
		ScheduledAt:    created,
	}
}

// WithDedupKey sets the key that keeps the same reminder from being queued twice.
func (e *EmailJob) WithDedupKey(key string) *EmailJob {
	e.DedupKey = key
	return e
}

func (e *EmailJob) MarkProcessing() {
	e.Status = EmailStatusProcessing
}

func (e *EmailJob) MarkSent(resendID string) {
	e.ResendID = resendID
	e.finish(EmailStatusSent)
}

// MarkFailed records an attempt. The job is rescheduled with backoff unless
// the failure is permanent or the attempts are used up.
func (e *EmailJob) MarkFailed(err error, permanent bool) {
	e.Attempts++
	e.LastError = err.Error()

	if permanent || !e.CanRetry() {
		e.finish(EmailStatusFailed)
		return
	}
	e.Status = EmailStatusPending
	e.ScheduledAt = time.Now().UTC().Add(RetryDelay(e.Attempts))
}

func (e *EmailJob) finish(status EmailStatus) {
	at := time.Now().UTC()
	e.Status = status
	e.ProcessedAt = &at
}

// RetryDelay is the wait before the next send after attempts failures.
func RetryDelay(attempts int) time.Duration {
	switch {
	case attempts <= 0:
		return retryDelays[0]
	case attempts >= len(retryDelays):
		return retryDelays[len(retryDelays)-1]
	}
	return retryDelays[attempts]
}

func (e *EmailJob) CanRetry() bool {
	return e.Attempts < e.MaxAttempts
}

// IsReadyToProcess is true for pending jobs whose schedule has arrived.
func (e *EmailJob) IsReadyToProcess() bool {
	return e.Status == EmailStatusPending && !time.Now().UTC().Before(e.ScheduledAt)
}
