package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PasswordService hashes and checks account passwords.
type PasswordService interface {
	HashPassword(password string) (string, error)
	// VerifyPassword returns an error when password does not match hashedPassword.
	VerifyPassword(hashedPassword, password string) error
	// ValidatePasswordStrength enforces the minimum and maximum password length.
	ValidatePasswordStrength(password string) error
}

// TokenPair is what a successful login or refresh hands back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims identifies the caller behind a token.
type TokenClaims struct {
	UserID     uuid.UUID
	Email      string
	RememberMe bool
	ExpiresAt  time.Time
}

// TokenService issues and checks session tokens. Refresh tokens are stored so
// they can be revoked on logout, rotation and account deletion.
type TokenService interface {
	// GenerateTokenPair issues a new pair; rememberMe selects the long expiries.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)
	InvalidateRefreshToken(ctx context.Context, token string) error
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error
	// IsRefreshTokenValid reports whether a stored refresh token is still usable.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
}
