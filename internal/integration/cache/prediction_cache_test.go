package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Phase    string `json:"phase"`
	CycleDay int    `json:"cycle_day"`
}

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redisPredictionCache) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, NewRedisPredictionCache(client, time.Hour).(*redisPredictionCache)
}

func TestRedisPredictionCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	server, c := newTestCache(t)
	userID := uuid.New()
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	var got cachedValue
	hit, err := c.GetDashboard(ctx, userID, day, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetDashboard(ctx, userID, day, cachedValue{Phase: "luteal", CycleDay: 18}))

	hit, err = c.GetDashboard(ctx, userID, day, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, cachedValue{Phase: "luteal", CycleDay: 18}, got)

	assert.True(t, server.Exists("dashboard:"+userID.String()))
	assert.Equal(t, time.Hour, server.TTL("dashboard:"+userID.String()))

	t.Run("other day misses", func(t *testing.T) {
		hit, err := c.GetDashboard(ctx, userID, day.AddDate(0, 0, 1), &got)
		require.NoError(t, err)
		assert.False(t, hit)
	})

	t.Run("ttl expiry", func(t *testing.T) {
		server.FastForward(2 * time.Hour)
		hit, err := c.GetDashboard(ctx, userID, day, &got)
		require.NoError(t, err)
		assert.False(t, hit)
	})
}

func TestRedisPredictionCache_InvalidateUser(t *testing.T) {
	ctx := context.Background()
	_, c := newTestCache(t)
	userID := uuid.New()
	otherID := uuid.New()
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, c.SetDashboard(ctx, userID, day, cachedValue{Phase: "menstrual"}))
	require.NoError(t, c.SetDashboard(ctx, userID, day.AddDate(0, 0, 1), cachedValue{Phase: "menstrual"}))
	require.NoError(t, c.SetDashboard(ctx, otherID, day, cachedValue{Phase: "follicular"}))

	require.NoError(t, c.InvalidateUser(ctx, userID))

	var got cachedValue
	hit, err := c.GetDashboard(ctx, userID, day, &got)
	require.NoError(t, err)
	assert.False(t, hit)

	hit, err = c.GetDashboard(ctx, otherID, day, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "follicular", got.Phase)
}

func TestRedisPredictionCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	server, c := newTestCache(t)
	server.Close()

	var got cachedValue
	_, err := c.GetDashboard(ctx, uuid.New(), time.Now(), &got)
	assert.Error(t, err)
	assert.Error(t, c.SetDashboard(ctx, uuid.New(), time.Now(), cachedValue{}))
}

func TestNoopPredictionCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoopPredictionCache()
	userID := uuid.New()

	require.NoError(t, c.SetDashboard(ctx, userID, time.Now(), cachedValue{Phase: "luteal"}))
	var got cachedValue
	hit, err := c.GetDashboard(ctx, userID, time.Now(), &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.InvalidateUser(ctx, userID))
}
