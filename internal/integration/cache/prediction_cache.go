// Package cache implements the dashboard prediction cache on Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/caresync/backend/internal/application/adapter"
	"github.com/caresync/backend/internal/domain/valueobject"
)

// DefaultTTL bounds how long a cached dashboard survives without writes.
const DefaultTTL = 24 * time.Hour

// redisPredictionCache stores one hash per user, keyed by date, so a single
// DEL drops every cached day when the user's data changes.
type redisPredictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPredictionCache creates a Redis backed prediction cache.
func NewRedisPredictionCache(client *redis.Client, ttl time.Duration) adapter.PredictionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisPredictionCache{
		client: client,
		ttl:    ttl,
	}
}

func dashboardKey(userID uuid.UUID) string {
	return "dashboard:" + userID.String()
}

// GetDashboard decodes the cached dashboard for the day into dest.
func (c *redisPredictionCache) GetDashboard(ctx context.Context, userID uuid.UUID, day time.Time, dest interface{}) (bool, error) {
	data, err := c.client.HGet(ctx, dashboardKey(userID), valueobject.FormatDate(day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read dashboard cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached dashboard: %w", err)
	}
	return true, nil
}

// SetDashboard caches the dashboard for the day and refreshes the key TTL.
func (c *redisPredictionCache) SetDashboard(ctx context.Context, userID uuid.UUID, day time.Time, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}

	key := dashboardKey(userID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, valueobject.FormatDate(day), data)
		pipe.Expire(ctx, key, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write dashboard cache: %w", err)
	}
	return nil
}

// InvalidateUser removes every cached day for the user.
func (c *redisPredictionCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, dashboardKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	return nil
}

// noopPredictionCache is used when Redis is disabled.
type noopPredictionCache struct{}

// NewNoopPredictionCache returns a cache that never stores anything.
func NewNoopPredictionCache() adapter.PredictionCache {
	return noopPredictionCache{}
}

func (noopPredictionCache) GetDashboard(context.Context, uuid.UUID, time.Time, interface{}) (bool, error) {
	return false, nil
}

func (noopPredictionCache) SetDashboard(context.Context, uuid.UUID, time.Time, interface{}) error {
	return nil
}

func (noopPredictionCache) InvalidateUser(context.Context, uuid.UUID) error {
	return nil
}
