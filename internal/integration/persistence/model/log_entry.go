package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/caresync/backend/internal/domain/entity"
)

// LogEntryModel represents the log_entries table. Symptoms are stored in
// Postgres array literal form so the column works on both supported drivers.
type LogEntryModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_log_entries_user_date"`
	Date          time.Time           `gorm:"type:date;not null;uniqueIndex:idx_log_entries_user_date"`
	FlowIntensity string              `gorm:"type:varchar(10);not null;default:'none'"`
	IsPeriodStart bool                `gorm:"not null;default:false"`
	Symptoms      pq.StringArray      `gorm:"type:text"`
	Mood          *int                `gorm:"type:smallint"`
	Temperature   decimal.NullDecimal `gorm:"type:numeric(5,2)"`
	Notes         string              `gorm:"type:text"`
	CreatedAt     time.Time           `gorm:"not null"`
	UpdatedAt     time.Time           `gorm:"not null"`
}

// TableName returns the table name for the LogEntryModel.
func (LogEntryModel) TableName() string {
	return "log_entries"
}

// ToEntity converts a LogEntryModel to a domain LogEntry entity.
func (m *LogEntryModel) ToEntity() *entity.LogEntry {
	y, mo, d := m.Date.Date()

	var temperature *decimal.Decimal
	if m.Temperature.Valid {
		t := m.Temperature.Decimal
		temperature = &t
	}

	symptoms := make([]string, len(m.Symptoms))
	copy(symptoms, m.Symptoms)

	return &entity.LogEntry{
		ID:            m.ID,
		UserID:        m.UserID,
		Date:          time.Date(y, mo, d, 0, 0, 0, 0, time.UTC),
		FlowIntensity: entity.FlowIntensity(m.FlowIntensity),
		IsPeriodStart: m.IsPeriodStart,
		Symptoms:      symptoms,
		Mood:          m.Mood,
		Temperature:   temperature,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// LogEntryModelFromEntity creates a LogEntryModel from a domain LogEntry entity.
func LogEntryModelFromEntity(e *entity.LogEntry) *LogEntryModel {
	var temperature decimal.NullDecimal
	if e.Temperature != nil {
		temperature = decimal.NewNullDecimal(*e.Temperature)
	}

	flow := string(e.FlowIntensity)
	if flow == "" {
		flow = string(entity.FlowNone)
	}

	return &LogEntryModel{
		ID:            e.ID,
		UserID:        e.UserID,
		Date:          e.Date,
		FlowIntensity: flow,
		IsPeriodStart: e.IsPeriodStart,
		Symptoms:      pq.StringArray(e.Symptoms),
		Mood:          e.Mood,
		Temperature:   temperature,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
