package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/caresync/backend/internal/domain/entity"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// SaveLogEntryRequest represents the body of PUT /logs/:date. Temperature is
// accepted as a JSON number or string and kept exact.
type SaveLogEntryRequest struct {
	FlowIntensity string           `json:"flow_intensity"`
	IsPeriodStart bool             `json:"is_period_start"`
	Symptoms      []string         `json:"symptoms"`
	Mood          *int             `json:"mood"`
	Temperature   *decimal.Decimal `json:"temperature"`
	Notes         string           `json:"notes"`
}

// LogEntryResponse represents a daily log entry.
type LogEntryResponse struct {
	ID            string           `json:"id"`
	Date          string           `json:"date"`
	FlowIntensity string           `json:"flow_intensity"`
	IsPeriodStart bool             `json:"is_period_start"`
	Symptoms      []string         `json:"symptoms"`
	Mood          *int             `json:"mood"`
	Temperature   *decimal.Decimal `json:"temperature"`
	Notes         string           `json:"notes"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// LogEntryListResponse represents the entries of a date range.
type LogEntryListResponse struct {
	Start   string             `json:"start"`
	End     string             `json:"end"`
	Entries []LogEntryResponse `json:"entries"`
}

// ToLogEntryResponse converts a domain LogEntry entity to a LogEntryResponse DTO.
func ToLogEntryResponse(e *entity.LogEntry) LogEntryResponse {
	symptoms := e.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	flow := string(e.FlowIntensity)
	if flow == "" {
		flow = string(entity.FlowNone)
	}
	return LogEntryResponse{
		ID:            e.ID.String(),
		Date:          valueobject.FormatDate(e.Date),
		FlowIntensity: flow,
		IsPeriodStart: e.IsPeriodStart,
		Symptoms:      symptoms,
		Mood:          e.Mood,
		Temperature:   e.Temperature,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// ToLogEntryListResponse converts entries of a range to a LogEntryListResponse DTO.
func ToLogEntryListResponse(start, end time.Time, entries []*entity.LogEntry) LogEntryListResponse {
	items := make([]LogEntryResponse, len(entries))
	for i, e := range entries {
		items[i] = ToLogEntryResponse(e)
	}
	return LogEntryListResponse{
		Start:   valueobject.FormatDate(start),
		End:     valueobject.FormatDate(end),
		Entries: items,
	}
}
