package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/entity"
	domainerror "github.com/caresync/backend/internal/domain/error"
	"github.com/caresync/backend/internal/integration/persistence/model"
)

type emailQueueRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEmailQueueRepository returns the email_queue table as an
// adapter.EmailQueueRepository.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func dueBefore(at time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ? AND scheduled_at <= ?", entity.EmailStatusPending, at)
	}
}

func sentBefore(at time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ? AND processed_at < ?", entity.EmailStatusSent, at)
	}
}

func (r *emailQueueRepository) jobs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.EmailQueueModel{})
}

func (r *emailQueueRepository) Create(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to create email job", err)
	}
	return nil
}

// GetPendingJobs returns up to limit due jobs, oldest schedule first.
func (r *emailQueueRepository) GetPendingJobs(ctx context.Context, limit int) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	err := r.jobs(ctx).
		Scopes(dueBefore(r.now())).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toEmailJobs(rows), nil
}

func (r *emailQueueRepository) Update(ctx context.Context, job *entity.EmailJob) error {
	return r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error
}

func (r *emailQueueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	var row model.EmailQueueModel
	err := r.jobs(ctx).Where("id = ?", id).First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, domainerror.ErrEmailJobNotFound
	case err != nil:
		return nil, err
	}
	return row.ToEntity(), nil
}

// GetByRecipient lists jobs for an address, newest first.
func (r *emailQueueRepository) GetByRecipient(ctx context.Context, email string) ([]*entity.EmailJob, error) {
	var rows []model.EmailQueueModel
	if err := r.jobs(ctx).Where("recipient_email = ?", email).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEmailJobs(rows), nil
}

// ExistsByDedupKey counts jobs in any status, so a failed reminder is
// never queued again under a new job. The empty key never matches.
func (r *emailQueueRepository) ExistsByDedupKey(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	var count int64
	if err := r.jobs(ctx).Where("dedup_key = ?", key).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *emailQueueRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.EmailQueueModel{}).Error
}

func (r *emailQueueRepository) DeleteOldSentJobs(ctx context.Context, olderThanDays int) (int64, error) {
	result := r.db.WithContext(ctx).
		Scopes(sentBefore(r.now().AddDate(0, 0, -olderThanDays))).
		Delete(&model.EmailQueueModel{})
	return result.RowsAffected, result.Error
}

func toEmailJobs(rows []model.EmailQueueModel) []*entity.EmailJob {
	jobs := make([]*entity.EmailJob, len(rows))
	for i := range rows {
		jobs[i] = rows[i].ToEntity()
	}
	return jobs
}
