package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewLogEntry_NormalizesDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	entry := NewLogEntry(uuid.New(), time.Date(2024, 5, 2, 1, 30, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), entry.Date)
	assert.Equal(t, FlowNone, entry.FlowIntensity)
	assert.False(t, entry.HasData())
}

func TestLogEntry_HasData(t *testing.T) {
	mood := 4
	temp := decimal.RequireFromString("36.55")

	tests := []struct {
		name   string
		modify func(e *LogEntry)
		want   bool
	}{
		{name: "empty", modify: func(e *LogEntry) {}, want: false},
		{name: "whitespace notes", modify: func(e *LogEntry) { e.Notes = "   " }, want: false},
		{name: "flow", modify: func(e *LogEntry) { e.FlowIntensity = FlowHeavy }, want: true},
		{name: "period start flag", modify: func(e *LogEntry) { e.IsPeriodStart = true }, want: true},
		{name: "symptoms", modify: func(e *LogEntry) { e.Symptoms = []string{"bloating"} }, want: true},
		{name: "mood", modify: func(e *LogEntry) { e.Mood = &mood }, want: true},
		{name: "temperature", modify: func(e *LogEntry) { e.Temperature = &temp }, want: true},
		{name: "notes", modify: func(e *LogEntry) { e.Notes = "tired" }, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewLogEntry(uuid.New(), time.Now())
			tt.modify(e)
			assert.Equal(t, tt.want, e.HasData())
		})
	}
}

func TestFlowIntensity_IsValid(t *testing.T) {
	for _, f := range []FlowIntensity{FlowNone, FlowLight, FlowMedium, FlowHeavy} {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, FlowIntensity("spotting").IsValid())
	assert.False(t, FlowIntensity("").IsValid())
}

func TestNormalizeSymptoms(t *testing.T) {
	got := NormalizeSymptoms([]string{" Headache", "cramps", "CRAMPS", "", "acne "})
	assert.Equal(t, []string{"acne", "cramps", "headache"}, got)
	assert.Empty(t, NormalizeSymptoms(nil))
}
