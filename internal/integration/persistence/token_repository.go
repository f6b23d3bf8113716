package persistence

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/caresync/backend/internal/integration/persistence/model"
)

// TokenRepository stores issued refresh tokens so they can be revoked.
// Only the SHA-256 digest of a token reaches the database.
type TokenRepository interface {
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error
	// IsRefreshTokenValid is false for unknown, revoked and expired tokens.
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
	InvalidateRefreshToken(ctx context.Context, token string) error
	InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
	// DeleteExpired purges rows that expired before the cutoff and returns how many went.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type refreshTokenStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTokenRepository returns a gorm backed TokenRepository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &refreshTokenStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *refreshTokenStore) tokens(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&model.RefreshTokenModel{})
}

func (s *refreshTokenStore) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	row := &model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     digest(token),
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: s.now(),
	}
	return s.db.WithContext(ctx).Create(row).Error
}

func (s *refreshTokenStore) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	var row model.RefreshTokenModel
	err := s.tokens(ctx).
		Where("token = ? AND invalidated = ? AND expires_at > ?", digest(token), false, s.now()).
		First(&row).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

func (s *refreshTokenStore) InvalidateRefreshToken(ctx context.Context, token string) error {
	return s.tokens(ctx).Where("token = ?", digest(token)).Update("invalidated", true).Error
}

func (s *refreshTokenStore) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return s.tokens(ctx).Where("user_id = ?", userID).Update("invalidated", true).Error
}

func (s *refreshTokenStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at < ?", before.UTC()).
		Delete(&model.RefreshTokenModel{})
	return result.RowsAffected, result.Error
}
