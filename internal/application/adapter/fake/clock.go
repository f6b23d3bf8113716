package fake

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/backend/internal/domain/valueobject"
)

// Clock is a fixed adapter.Clock.
type Clock struct {
	T time.Time
}

// NewClock returns a clock stopped at t.
func NewClock(t time.Time) *Clock {
	return &Clock{T: t}
}

func (c *Clock) Now() time.Time   { return c.T }
func (c *Clock) Today() time.Time { return valueobject.DateOf(c.T) }

// PredictionCache is a map-backed adapter.PredictionCache storing JSON.
type PredictionCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	Hits    int
	Err     error
}

// NewPredictionCache creates an empty cache.
func NewPredictionCache() *PredictionCache {
	return &PredictionCache{entries: make(map[string][]byte)}
}

func cacheKey(userID uuid.UUID, day time.Time) string {
	return userID.String() + ":" + valueobject.FormatDate(day)
}

func (c *PredictionCache) GetDashboard(_ context.Context, userID uuid.UUID, day time.Time, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return false, c.Err
	}
	data, ok := c.entries[cacheKey(userID, day)]
	if !ok {
		return false, nil
	}
	c.Hits++
	return true, json.Unmarshal(data, dest)
}

func (c *PredictionCache) SetDashboard(_ context.Context, userID uuid.UUID, day time.Time, value interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[cacheKey(userID, day)] = data
	return nil
}

func (c *PredictionCache) InvalidateUser(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	prefix := userID.String() + ":"
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
	return nil
}

// Len returns the number of cached entries.
func (c *PredictionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
