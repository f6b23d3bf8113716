package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_CompleteOnboarding(t *testing.T) {
	user := NewUser("ana@example.com", "Ana", "hash", time.Now().UTC())
	assert.False(t, user.HasBaseline())

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	at := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	user.CompleteOnboarding(29, 5, 14, start, at)

	assert.True(t, user.HasBaseline())
	assert.Equal(t, 29, user.CycleLength)
	assert.Equal(t, start, *user.LastPeriodStart)
	assert.Equal(t, at, *user.OnboardingCompletedAt)

	// A second call updates the baseline but keeps the original completion time.
	later := at.Add(48 * time.Hour)
	user.CompleteOnboarding(30, 4, 13, start, later)
	assert.Equal(t, at, *user.OnboardingCompletedAt)
	assert.Equal(t, 30, user.CycleLength)
}

func TestUser_WantsReminders(t *testing.T) {
	user := NewUser("ana@example.com", "Ana", "hash", time.Now().UTC())
	assert.True(t, user.WantsReminders())

	user.PeriodReminders = false
	assert.False(t, user.WantsReminders())

	user.FertileWindowReminders = true
	assert.True(t, user.WantsReminders())

	user.EmailNotifications = false
	assert.False(t, user.WantsReminders())
}

func TestFirstDayOfWeek(t *testing.T) {
	assert.Equal(t, time.Monday, FirstDayOfWeekMonday.Weekday())
	assert.Equal(t, time.Sunday, FirstDayOfWeekSunday.Weekday())
	assert.Equal(t, time.Sunday, FirstDayOfWeek("").Weekday())
	assert.False(t, FirstDayOfWeek("friday").IsValid())
}
