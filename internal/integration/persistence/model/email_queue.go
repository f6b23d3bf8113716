package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/domain/entity"
)

// EmailQueueModel is a row of the email_queue table. TemplateData is kept
// as a JSON document.
type EmailQueueModel struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID      `gorm:"type:uuid;index"`
	DedupKey       string         `gorm:"type:varchar(150);index"`
	TemplateType   string         `gorm:"type:varchar(50);not null"`
	RecipientEmail string         `gorm:"type:varchar(255);not null"`
	RecipientName  string         `gorm:"type:varchar(255)"`
	Subject        string         `gorm:"type:varchar(500);not null"`
	TemplateData   map[string]any `gorm:"type:text;serializer:json"`
	Status         string         `gorm:"type:varchar(20);not null;index"`
	Attempts       int            `gorm:"not null"`
	MaxAttempts    int            `gorm:"not null"`
	LastError      string         `gorm:"type:text"`
	ResendID       string         `gorm:"type:varchar(100)"`
	CreatedAt      time.Time      `gorm:"not null"`
	ScheduledAt    time.Time      `gorm:"not null;index"`
	ProcessedAt    *time.Time
}

func (EmailQueueModel) TableName() string {
	return "email_queue"
}

// ToEntity maps the row back to a queued job. TemplateData is never nil.
func (m *EmailQueueModel) ToEntity() *entity.EmailJob {
	data := m.TemplateData
	if data == nil {
		data = map[string]any{}
	}
	return &entity.EmailJob{
		ID:             m.ID,
		UserID:         m.UserID,
		DedupKey:       m.DedupKey,
		TemplateType:   entity.EmailTemplateType(m.TemplateType),
		RecipientEmail: m.RecipientEmail,
		RecipientName:  m.RecipientName,
		Subject:        m.Subject,
		TemplateData:   data,
		Status:         entity.EmailStatus(m.Status),
		Attempts:       m.Attempts,
		MaxAttempts:    m.MaxAttempts,
		LastError:      m.LastError,
		ResendID:       m.ResendID,
		CreatedAt:      m.CreatedAt.UTC(),
		ScheduledAt:    m.ScheduledAt.UTC(),
		ProcessedAt:    utc(m.ProcessedAt),
	}
}

func EmailQueueModelFromEntity(job *entity.EmailJob) *EmailQueueModel {
	return &EmailQueueModel{
		ID:             job.ID,
		UserID:         job.UserID,
		DedupKey:       job.DedupKey,
		TemplateType:   string(job.TemplateType),
		RecipientEmail: job.RecipientEmail,
		RecipientName:  job.RecipientName,
		Subject:        job.Subject,
		TemplateData:   job.TemplateData,
		Status:         string(job.Status),
		Attempts:       job.Attempts,
		MaxAttempts:    job.MaxAttempts,
		LastError:      job.LastError,
		ResendID:       job.ResendID,
		CreatedAt:      job.CreatedAt.UTC(),
		ScheduledAt:    job.ScheduledAt.UTC(),
		ProcessedAt:    utc(job.ProcessedAt),
	}
}
