// Package adapters implements the application ports on top of concrete
// libraries: JWT sessions and bcrypt passwords.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/integration/persistence"
)

const tokenIssuer = "caresync"

type tokenKind string

const (
	accessKind  tokenKind = "access"
	refreshKind tokenKind = "refresh"
)

// TokenDurations sets session lifetimes. The RememberMe pair is used when
// the user asked to stay signed in. Zero fields take the defaults.
type TokenDurations struct {
	Access            time.Duration
	Refresh           time.Duration
	RememberMeAccess  time.Duration
	RememberMeRefresh time.Duration
}

func DefaultTokenDurations() TokenDurations {
	return TokenDurations{
		Access:            15 * time.Minute,
		Refresh:           7 * 24 * time.Hour,
		RememberMeAccess:  7 * 24 * time.Hour,
		RememberMeRefresh: 30 * 24 * time.Hour,
	}
}

func (d TokenDurations) withDefaults() TokenDurations {
	def := DefaultTokenDurations()
	pick := func(v, fallback time.Duration) time.Duration {
		if v > 0 {
			return v
		}
		return fallback
	}
	return TokenDurations{
		Access:            pick(d.Access, def.Access),
		Refresh:           pick(d.Refresh, def.Refresh),
		RememberMeAccess:  pick(d.RememberMeAccess, def.RememberMeAccess),
		RememberMeRefresh: pick(d.RememberMeRefresh, def.RememberMeRefresh),
	}
}

func (d TokenDurations) lifetimes(rememberMe bool) (access, refresh time.Duration) {
	if rememberMe {
		return d.RememberMeAccess, d.RememberMeRefresh
	}
	return d.Access, d.Refresh
}

type sessionClaims struct {
	Email      string    `json:"email"`
	Kind       tokenKind `json:"token_type"`
	RememberMe bool      `json:"remember_me,omitempty"`
	jwt.RegisteredClaims
}

// tokenService signs HS256 JWTs. Refresh tokens are additionally recorded
// in the TokenRepository so they can be rotated and revoked.
type tokenService struct {
	secret    []byte
	durations TokenDurations
	store     persistence.TokenRepository
	now       func() time.Time
}

func NewTokenService(secret string, durations TokenDurations, store persistence.TokenRepository) adapter.TokenService {
	return &tokenService{
		secret:    []byte(secret),
		durations: durations.withDefaults(),
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	now := s.now()
	accessTTL, refreshTTL := s.durations.lifetimes(rememberMe)

	access, err := s.sign(userID, email, accessKind, rememberMe, now, accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.sign(userID, email, refreshKind, rememberMe, now, refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	if err := s.store.SaveRefreshToken(ctx, refresh, userID, now.Add(refreshTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, accessKind)
}

func (s *tokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.verify(token, refreshKind)
}

func (s *tokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return s.store.InvalidateRefreshToken(ctx, token)
}

func (s *tokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return s.store.InvalidateAllUserRefreshTokens(ctx, userID)
}

func (s *tokenService) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	return s.store.IsRefreshTokenValid(ctx, token)
}

// sign issues a token with a random jti, so two tokens minted in the same
// second still differ.
func (s *tokenService) sign(userID uuid.UUID, email string, kind tokenKind, rememberMe bool, now time.Time, ttl time.Duration) (string, error) {
	claims := sessionClaims{
		Email:      email,
		Kind:       kind,
		RememberMe: rememberMe,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *tokenService) verify(raw string, kind tokenKind) (*adapter.TokenClaims, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("expected a %s token", kind)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.New("token subject is not a user id")
	}
	return &adapter.TokenClaims{
		UserID:     userID,
		Email:      claims.Email,
		RememberMe: claims.RememberMe,
		ExpiresAt:  claims.ExpiresAt.Time,
	}, nil
}
