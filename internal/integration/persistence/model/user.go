// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/domain/entity"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID                     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email                  string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                   string     `gorm:"type:varchar(100);not null"`
	PasswordHash           string     `gorm:"type:varchar(255);not null"`
	CycleLength            int        `gorm:"not null;default:0"`
	PeriodDuration         int        `gorm:"not null;default:0"`
	LutealPhaseLength      int        `gorm:"not null;default:0"`
	LastPeriodStart        *time.Time `gorm:"type:date"`
	OnboardingCompletedAt  *time.Time `gorm:"index"`
	FirstDayOfWeek         string     `gorm:"type:varchar(10);default:'sunday'"`
	EmailNotifications     bool       `gorm:"default:true"`
	PeriodReminders        bool       `gorm:"default:true"`
	FertileWindowReminders bool       `gorm:"default:false"`
	TermsAcceptedAt        time.Time  `gorm:"not null"`
	CreatedAt              time.Time  `gorm:"not null"`
	UpdatedAt              time.Time  `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:                     m.ID,
		Email:                  m.Email,
		Name:                   m.Name,
		PasswordHash:           m.PasswordHash,
		CycleLength:            m.CycleLength,
		PeriodDuration:         m.PeriodDuration,
		LutealPhaseLength:      m.LutealPhaseLength,
		LastPeriodStart:        dateOnly(m.LastPeriodStart),
		OnboardingCompletedAt:  utc(m.OnboardingCompletedAt),
		FirstDayOfWeek:         entity.FirstDayOfWeek(m.FirstDayOfWeek),
		EmailNotifications:     m.EmailNotifications,
		PeriodReminders:        m.PeriodReminders,
		FertileWindowReminders: m.FertileWindowReminders,
		TermsAcceptedAt:        m.TermsAcceptedAt,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:                     user.ID,
		Email:                  user.Email,
		Name:                   user.Name,
		PasswordHash:           user.PasswordHash,
		CycleLength:            user.CycleLength,
		PeriodDuration:         user.PeriodDuration,
		LutealPhaseLength:      user.LutealPhaseLength,
		LastPeriodStart:        user.LastPeriodStart,
		OnboardingCompletedAt:  user.OnboardingCompletedAt,
		FirstDayOfWeek:         string(user.FirstDayOfWeek),
		EmailNotifications:     user.EmailNotifications,
		PeriodReminders:        user.PeriodReminders,
		FertileWindowReminders: user.FertileWindowReminders,
		TermsAcceptedAt:        user.TermsAcceptedAt,
		CreatedAt:              user.CreatedAt,
		UpdatedAt:              user.UpdatedAt,
	}
}

// RefreshTokenModel represents the refresh_tokens table for token invalidation tracking.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:char(64);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// dateOnly normalizes a date column to UTC midnight.
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

// All returns every model managed by migrations, in creation order.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&LogEntryModel{},
		&EmailQueueModel{},
	}
}
