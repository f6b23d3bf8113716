package dto

import (
	"time"

	"github.com/caresync/backend/internal/domain/entity"
)

// RegisterRequest creates an account. Email and password rules are checked
// by the use case so their failures carry AUTH codes.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Password      string `json:"password" binding:"required"`
	TermsAccepted bool   `json:"terms_accepted"`
	RememberMe    bool   `json:"remember_me"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest carries the refresh token for both rotation and logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest = RefreshTokenRequest

// DeleteAccountRequest requires the current password and the literal
// confirmation "DELETE".
type DeleteAccountRequest struct {
	Password     string `json:"password" binding:"required"`
	Confirmation string `json:"confirmation" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

type UserResponse struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	OnboardedAt         *time.Time `json:"onboarded_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                  user.ID.String(),
		Email:               user.Email,
		Name:                user.Name,
		OnboardingCompleted: user.HasBaseline(),
		OnboardedAt:         user.OnboardingCompletedAt,
		CreatedAt:           user.CreatedAt,
	}
}
