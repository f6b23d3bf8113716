package fake

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
)

// EmailQueueRepository is an in-memory adapter.EmailQueueRepository.
type EmailQueueRepository struct {
	mu   sync.Mutex
	jobs []*entity.EmailJob
	Err  error
}

// NewEmailQueueRepository creates an empty queue.
func NewEmailQueueRepository() *EmailQueueRepository {
	return &EmailQueueRepository{}
}

func (r *EmailQueueRepository) Create(_ context.Context, job *entity.EmailJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	copied := *job
	r.jobs = append(r.jobs, &copied)
	return nil
}

func (r *EmailQueueRepository) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	result := make([]*entity.EmailJob, 0)
	for _, j := range r.jobs {
		if len(result) == limit {
			break
		}
		if j.IsReadyToProcess() {
			copied := *j
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *EmailQueueRepository) Update(_ context.Context, job *entity.EmailJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, j := range r.jobs {
		if j.ID == job.ID {
			copied := *job
			r.jobs[i] = &copied
			return nil
		}
	}
	return domainerror.ErrEmailJobNotFound
}

func (r *EmailQueueRepository) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ID == id {
			copied := *j
			return &copied, nil
		}
	}
	return nil, domainerror.ErrEmailJobNotFound
}

func (r *EmailQueueRepository) GetByRecipient(_ context.Context, email string) ([]*entity.EmailJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.EmailJob, 0)
	for _, j := range r.jobs {
		if j.RecipientEmail == email {
			copied := *j
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *EmailQueueRepository) ExistsByDedupKey(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, j := range r.jobs {
		if j.DedupKey != "" && j.DedupKey == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *EmailQueueRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	kept := r.jobs[:0]
	for _, j := range r.jobs {
		if j.UserID != userID {
			kept = append(kept, j)
		}
	}
	r.jobs = kept
	return nil
}

func (r *EmailQueueRepository) DeleteOldSentJobs(_ context.Context, olderThanDays int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	kept := r.jobs[:0]
	var deleted int64
	for _, j := range r.jobs {
		if j.Status == entity.EmailStatusSent && j.ProcessedAt != nil && j.ProcessedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, j)
	}
	r.jobs = kept
	return deleted, nil
}

// Jobs returns a snapshot of every queued job.
func (r *EmailQueueRepository) Jobs() []*entity.EmailJob {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.EmailJob, 0, len(r.jobs))
	for _, j := range r.jobs {
		copied := *j
		result = append(result, &copied)
	}
	return result
}

// EmailService records queued reminders.
type EmailService struct {
	mu               sync.Mutex
	PeriodReminders  []adapter.QueuePeriodReminderInput
	FertileReminders []adapter.QueueFertileWindowReminderInput
	seen             map[string]bool
	Err              error
}

// NewEmailService creates an empty recorder.
func NewEmailService() *EmailService {
	return &EmailService{seen: make(map[string]bool)}
}

func (s *EmailService) QueuePeriodReminder(_ context.Context, input adapter.QueuePeriodReminderInput) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	key := "period:" + input.UserID.String() + ":" + input.NextPeriodDate.Format("2006-01-02")
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	s.PeriodReminders = append(s.PeriodReminders, input)
	return true, nil
}

func (s *EmailService) QueueFertileWindowReminder(_ context.Context, input adapter.QueueFertileWindowReminderInput) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	key := "fertile:" + input.UserID.String() + ":" + input.WindowStart.Format("2006-01-02")
	if s.seen[key] {
		return false, nil
	}
	s.seen[key] = true
	s.FertileReminders = append(s.FertileReminders, input)
	return true, nil
}

// EmailSender records sent emails.
type EmailSender struct {
	mu   sync.Mutex
	Sent []adapter.SendEmailInput
	// Err, when set, is returned instead of sending.
	Err error
}

func (s *EmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Sent = append(s.Sent, input)
	return &adapter.SendEmailResult{ResendID: "fake-" + uuid.NewString()}, nil
}
