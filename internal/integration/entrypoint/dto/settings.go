package dto

import (
	"github.com/caresync/backend/internal/domain/entity"
)

// OnboardingRequest represents the request body for completing onboarding.
type OnboardingRequest struct {
	CycleLength       int    `json:"cycle_length" binding:"required"`
	PeriodDuration    int    `json:"period_duration" binding:"required"`
	LutealPhaseLength *int   `json:"luteal_phase_length"`
	LastPeriodStart   string `json:"last_period_start" binding:"required"`
}

// UpdateSettingsRequest represents a partial settings update. Omitted fields
// are left unchanged.
type UpdateSettingsRequest struct {
	Name                   *string `json:"name"`
	CycleLength            *int    `json:"cycle_length"`
	PeriodDuration         *int    `json:"period_duration"`
	LutealPhaseLength      *int    `json:"luteal_phase_length"`
	LastPeriodStart        *string `json:"last_period_start"`
	FirstDayOfWeek         *string `json:"first_day_of_week"`
	EmailNotifications     *bool   `json:"email_notifications"`
	PeriodReminders        *bool   `json:"period_reminders"`
	FertileWindowReminders *bool   `json:"fertile_window_reminders"`
}

// SettingsResponse represents the user's baseline and preferences.
type SettingsResponse struct {
	User                   UserResponse `json:"user"`
	CycleLength            int          `json:"cycle_length"`
	PeriodDuration         int          `json:"period_duration"`
	LutealPhaseLength      int          `json:"luteal_phase_length"`
	LastPeriodStart        *string      `json:"last_period_start"`
	FirstDayOfWeek         string       `json:"first_day_of_week"`
	EmailNotifications     bool         `json:"email_notifications"`
	PeriodReminders        bool         `json:"period_reminders"`
	FertileWindowReminders bool         `json:"fertile_window_reminders"`
}

// ToSettingsResponse converts a domain User entity to a SettingsResponse DTO.
func ToSettingsResponse(user *entity.User) SettingsResponse {
	return SettingsResponse{
		User:                   ToUserResponse(user),
		CycleLength:            user.CycleLength,
		PeriodDuration:         user.PeriodDuration,
		LutealPhaseLength:      user.LutealPhaseLength,
		LastPeriodStart:        formatOptionalDate(user.LastPeriodStart),
		FirstDayOfWeek:         string(user.FirstDayOfWeek),
		EmailNotifications:     user.EmailNotifications,
		PeriodReminders:        user.PeriodReminders,
		FertileWindowReminders: user.FertileWindowReminders,
	}
}
