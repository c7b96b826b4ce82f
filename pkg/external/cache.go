package external

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/domain"
)

const cacheKeyPrefix = "assessment-report:"

// CacheClient wraps a Redis client as a shared string cache for rendered and enhanced sections
type CacheClient struct {
	redis      *redis.Client
	logger     *logrus.Logger
	defaultTTL time.Duration
}

// CachedEntry is the envelope stored in Redis
type CachedEntry struct {
	Value     string    `json:"value"`
	CachedAt  time.Time `json:"cached_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewCacheClient connects to Redis and verifies the connection
func NewCacheClient(config domain.CacheConfig, logger *logrus.Logger) (*CacheClient, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewCacheClientWithRedis(client, config.TTL, logger), nil
}

// NewCacheClientWithRedis wraps an existing Redis client
func NewCacheClientWithRedis(client *redis.Client, ttl time.Duration, logger *logrus.Logger) *CacheClient {
	return &CacheClient{
		redis:      client,
		logger:     logger,
		defaultTTL: ttl,
	}
}

// Get retrieves a cached value. Redis errors are logged and reported as a miss.
func (c *CacheClient) Get(ctx context.Context, key string) (string, bool) {
	redisKey := cacheKeyPrefix + key

	val, err := c.redis.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Redis cache read failed")
		return "", false
	}

	var cached CachedEntry
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		// Remove corrupted cache entry
		c.redis.Del(ctx, redisKey)
		return "", false
	}

	if time.Now().After(cached.ExpiresAt) {
		c.redis.Del(ctx, redisKey)
		return "", false
	}

	return cached.Value, true
}

// Set caches a value for the default TTL. Failures are logged, never returned.
func (c *CacheClient) Set(ctx context.Context, key, value string) {
	if err := c.SetWithTTL(ctx, key, value, c.defaultTTL); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Redis cache write failed")
	}
}

// SetWithTTL caches a value for ttl, or the default TTL when ttl is zero
func (c *CacheClient) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	now := time.Now()
	jsonData, err := json.Marshal(CachedEntry{
		Value:     value,
		CachedAt:  now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	return c.redis.Set(ctx, cacheKeyPrefix+key, jsonData, ttl).Err()
}

// Ping checks the Redis connection
func (c *CacheClient) Ping(ctx context.Context) error {
	return c.redis.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *CacheClient) Close() error {
	return c.redis.Close()
}
