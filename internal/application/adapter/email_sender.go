// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing emails.
type EmailService interface {
	// QueuePeriodReminder queues a reminder that the next period is close.
	// It reports false when the same reminder was already queued.
	QueuePeriodReminder(ctx context.Context, input QueuePeriodReminderInput) (bool, error)

	// QueueFertileWindowReminder queues a reminder that the fertile window starts today.
	// It reports false when the same reminder was already queued.
	QueueFertileWindowReminder(ctx context.Context, input QueueFertileWindowReminderInput) (bool, error)
}

// QueuePeriodReminderInput represents the input for queueing a period reminder.
type QueuePeriodReminderInput struct {
	UserID         uuid.UUID
	UserEmail      string
	UserName       string
	NextPeriodDate time.Time
	DaysUntil      int
	Probability    float64
}

// QueueFertileWindowReminderInput represents the input for queueing a fertile window reminder.
type QueueFertileWindowReminderInput struct {
	UserID        uuid.UUID
	UserEmail     string
	UserName      string
	WindowStart   time.Time
	WindowEnd     time.Time
	OvulationDate time.Time
}
