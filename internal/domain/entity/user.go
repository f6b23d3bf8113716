// Package entity holds the CareSync domain records and their state rules.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FirstDayOfWeek represents the user's preferred first day of the week.
type FirstDayOfWeek string

const (
	FirstDayOfWeekSunday FirstDayOfWeek = "sunday"
	FirstDayOfWeekMonday FirstDayOfWeek = "monday"
)

// IsValid reports whether d is a supported first day of week.
func (d FirstDayOfWeek) IsValid() bool {
	return d == FirstDayOfWeekSunday || d == FirstDayOfWeekMonday
}

// Weekday converts the preference to a time.Weekday.
func (d FirstDayOfWeek) Weekday() time.Weekday {
	if d == FirstDayOfWeekMonday {
		return time.Monday
	}
	return time.Sunday
}

// User represents a user in the CareSync system, including the baseline cycle
// settings captured during onboarding.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string

	// Baseline cycle settings. Zero until onboarding is completed.
	CycleLength           int
	PeriodDuration        int
	LutealPhaseLength     int
	LastPeriodStart       *time.Time
	OnboardingCompletedAt *time.Time

	FirstDayOfWeek         FirstDayOfWeek
	EmailNotifications     bool
	PeriodReminders        bool
	FertileWindowReminders bool

	TermsAcceptedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a new User with default preferences.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:                     uuid.New(),
		Email:                  email,
		Name:                   name,
		PasswordHash:           passwordHash,
		FirstDayOfWeek:         FirstDayOfWeekSunday,
		EmailNotifications:     true,
		PeriodReminders:        true,
		FertileWindowReminders: false,
		TermsAcceptedAt:        termsAcceptedAt,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

// HasBaseline reports whether onboarding data is present.
func (u *User) HasBaseline() bool {
	return u.OnboardingCompletedAt != nil &&
		u.LastPeriodStart != nil &&
		u.CycleLength > 0 &&
		u.PeriodDuration > 0
}

// CompleteOnboarding stores the baseline cycle settings.
func (u *User) CompleteOnboarding(cycleLength, periodDuration, lutealPhaseLength int, lastPeriodStart, at time.Time) {
	u.CycleLength = cycleLength
	u.PeriodDuration = periodDuration
	u.LutealPhaseLength = lutealPhaseLength
	u.LastPeriodStart = &lastPeriodStart
	if u.OnboardingCompletedAt == nil {
		u.OnboardingCompletedAt = &at
	}
	u.UpdatedAt = at
}

// WantsReminders reports whether any reminder email may be sent to the user.
func (u *User) WantsReminders() bool {
	return u.EmailNotifications && (u.PeriodReminders || u.FertileWindowReminders)
}
