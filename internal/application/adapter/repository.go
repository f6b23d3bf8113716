package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/domain/entity"
)

// UserRepository persists accounts together with their cycle baseline and
// notification preferences.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByID returns domainerror.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// FindByEmail returns domainerror.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete removes the user and their refresh tokens.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListReminderRecipients returns onboarded users with email notifications
	// and at least one reminder type switched on.
	ListReminderRecipients(ctx context.Context) ([]*entity.User, error)
}

// LogEntryRepository persists daily logs. There is at most one entry per user
// and calendar date.
type LogEntryRepository interface {
	// Upsert inserts the entry or replaces the one already stored for the
	// same user and date.
	Upsert(ctx context.Context, entry *entity.LogEntry) error
	// FindByDate returns domainerror.ErrLogEntryNotFound when nothing is logged.
	FindByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*entity.LogEntry, error)
	// ListByRange returns entries dated within [start, end], oldest first.
	ListByRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.LogEntry, error)
	// ListByUser returns every entry for the user, oldest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.LogEntry, error)
	// DeleteByDate returns domainerror.ErrLogEntryNotFound when nothing is logged.
	DeleteByDate(ctx context.Context, userID uuid.UUID, date time.Time) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// EmailQueueRepository persists outgoing reminder emails until the worker
// has delivered them.
type EmailQueueRepository interface {
	Create(ctx context.Context, job *entity.EmailJob) error
	// GetPendingJobs returns up to limit pending jobs whose scheduled time has
	// passed, oldest first.
	GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error)
	Update(ctx context.Context, job *entity.EmailJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)
	GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error)
	// ExistsByDedupKey reports whether a reminder with this key was queued before.
	ExistsByDedupKey(ctx context.Context, key string) (bool, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	// DeleteOldSentJobs removes sent jobs processed more than olderThanDays ago.
	DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error)
}
