package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assessment-report-engine/pkg/external"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	_, err := NewMemoryCache(0, time.Minute)
	assert.Error(t, err)
	_, err = NewMemoryCache(10, 0)
	assert.Error(t, err)

	c, err := NewMemoryCache(2, time.Minute)
	require.NoError(t, err)

	c.Set(ctx, "a", "1")
	c.Set(ctx, "b", "2")
	c.Set(ctx, "c", "3")

	_, ok := c.Get(ctx, "a")
	assert.False(t, ok, "least recently used entry should be evicted")
	v, ok := c.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
	assert.Equal(t, 2, c.Len())

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c, err := NewMemoryCache(10, 20*time.Millisecond)
	require.NoError(t, err)

	c.Set(context.Background(), "k", "v")
	assert.Eventually(t, func() bool {
		_, ok := c.Get(context.Background(), "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestTieredCache_WithRedis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	shared := external.NewCacheClientWithRedis(client, time.Minute, testLogger())

	mem, err := NewMemoryCache(10, time.Minute)
	require.NoError(t, err)
	tiered := NewTieredCache(testLogger(), mem, shared)

	tiered.Set(ctx, "section", "rendered")
	v, ok := shared.Get(ctx, "section")
	require.True(t, ok)
	assert.Equal(t, "rendered", v)

	// A fresh memory tier is filled from the shared tier
	mem2, err := NewMemoryCache(10, time.Minute)
	require.NoError(t, err)
	other := NewTieredCache(testLogger(), mem2, shared)

	v, ok = other.Get(ctx, "section")
	require.True(t, ok)
	assert.Equal(t, "rendered", v)
	assert.Equal(t, 1, mem2.Len())

	_, ok = other.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestTieredCache_MemoryOnly(t *testing.T) {
	mem, err := NewMemoryCache(10, time.Minute)
	require.NoError(t, err)
	tiered := NewTieredCache(testLogger(), mem, nil)

	tiered.Set(context.Background(), "k", "v")
	v, ok := tiered.Get(context.Background(), "k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	_, ok = tiered.Get(context.Background(), "x")
	assert.False(t, ok)
}
