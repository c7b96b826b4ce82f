package cache

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/domain"
)

// TieredCache checks the in-memory tier before a shared tier such as Redis,
// and writes through to both.
type TieredCache struct {
	logger *logrus.Logger
	memory domain.Cache
	shared domain.Cache
}

// NewTieredCache creates a two-tier cache. shared may be nil.
func NewTieredCache(logger *logrus.Logger, memory, shared domain.Cache) *TieredCache {
	return &TieredCache{
		logger: logger,
		memory: memory,
		shared: shared,
	}
}

// Get looks in memory first and promotes shared-tier hits into memory
func (c *TieredCache) Get(ctx context.Context, key string) (string, bool) {
	if v, ok := c.memory.Get(ctx, key); ok {
		return v, true
	}
	if c.shared == nil {
		return "", false
	}
	v, ok := c.shared.Get(ctx, key)
	if ok {
		c.logger.WithField("key", key).Debug("Promoting shared cache hit to memory")
		c.memory.Set(ctx, key, v)
	}
	return v, ok
}

// Set writes through to both tiers
func (c *TieredCache) Set(ctx context.Context, key, value string) {
	c.memory.Set(ctx, key, value)
	if c.shared != nil {
		c.shared.Set(ctx, key, value)
	}
}
