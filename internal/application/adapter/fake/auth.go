package fake

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/application/adapter"
)

// ErrInvalidToken is returned by TokenService for unknown tokens.
var ErrInvalidToken = errors.New("fake: invalid token")

// TokenService issues opaque sequential tokens.
type TokenService struct {
	mu          sync.Mutex
	seq         int
	access      map[string]adapter.TokenClaims
	refresh     map[string]adapter.TokenClaims
	invalidated map[string]bool
}

// NewTokenService creates an empty token service.
func NewTokenService() *TokenService {
	return &TokenService{
		access:      make(map[string]adapter.TokenClaims),
		refresh:     make(map[string]adapter.TokenClaims),
		invalidated: make(map[string]bool),
	}
}

func (s *TokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	claims := adapter.TokenClaims{UserID: userID, Email: email, RememberMe: rememberMe, ExpiresAt: time.Now().Add(time.Hour)}
	pair := &adapter.TokenPair{
		AccessToken:  fmt.Sprintf("access-%d", s.seq),
		RefreshToken: fmt.Sprintf("refresh-%d", s.seq),
	}
	s.access[pair.AccessToken] = claims
	s.refresh[pair.RefreshToken] = claims
	return pair, nil
}

func (s *TokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.access[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &c, nil
}

func (s *TokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.refresh[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &c, nil
}

func (s *TokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.refresh[token]; !ok {
		return ErrInvalidToken
	}
	s.invalidated[token] = true
	return nil
}

func (s *TokenService) InvalidateAllUserTokens(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, c := range s.refresh {
		if c.UserID == userID {
			s.invalidated[token] = true
		}
	}
	return nil
}

func (s *TokenService) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.invalidated[token], nil
}

// PasswordService stores passwords with a reversible prefix.
type PasswordService struct{}

// ErrPasswordMismatch is returned by VerifyPassword.
var ErrPasswordMismatch = errors.New("fake: password mismatch")

func (PasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (PasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return ErrPasswordMismatch
	}
	return nil
}

func (PasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("fake: password too short")
	}
	return nil
}
