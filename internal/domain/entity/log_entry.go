package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FlowIntensity represents the menstrual flow recorded for a day.
type FlowIntensity string

const (
	FlowNone   FlowIntensity = "none"
	FlowLight  FlowIntensity = "light"
	FlowMedium FlowIntensity = "medium"
	FlowHeavy  FlowIntensity = "heavy"
)

// IsValid reports whether f is a known flow intensity.
func (f FlowIntensity) IsValid() bool {
	switch f {
	case FlowNone, FlowLight, FlowMedium, FlowHeavy:
		return true
	}
	return false
}

// Mood bounds, on a 1 to 5 scale.
const (
	MinMood = 1
	MaxMood = 5
)

// Basal body temperature bounds in degrees Celsius.
var (
	MinTemperature = decimal.NewFromInt(35)
	MaxTemperature = decimal.NewFromInt(42)
)

// LogEntry is a single day of tracked data for a user. A user has at most one
// entry per calendar date.
type LogEntry struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Date          time.Time
	FlowIntensity FlowIntensity
	IsPeriodStart bool
	Symptoms      []string
	Mood          *int
	Temperature   *decimal.Decimal
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewLogEntry creates an empty log entry for the given user and date.
func NewLogEntry(userID uuid.UUID, date time.Time) *LogEntry {
	now := time.Now().UTC()
	y, m, d := date.Date()
	return &LogEntry{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		FlowIntensity: FlowNone,
		Symptoms:      []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// HasFlow reports whether any menstrual flow was recorded.
func (e *LogEntry) HasFlow() bool {
	return e.FlowIntensity != "" && e.FlowIntensity != FlowNone
}

// HasData reports whether the entry carries anything beyond its date.
func (e *LogEntry) HasData() bool {
	return e.HasFlow() ||
		e.IsPeriodStart ||
		len(e.Symptoms) > 0 ||
		e.Mood != nil ||
		e.Temperature != nil ||
		strings.TrimSpace(e.Notes) != ""
}

// NormalizeSymptoms lowercases, trims, de-duplicates and sorts symptom names.
func NormalizeSymptoms(symptoms []string) []string {
	seen := make(map[string]struct{}, len(symptoms))
	result := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		name := strings.ToLower(strings.TrimSpace(s))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
