// Package cache provides the bounded-lifetime caches injected into the template
// manager and the enhancement client.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is an in-process LRU cache whose entries expire after a fixed TTL
type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

// NewMemoryCache creates a memory cache holding at most maxItems entries for ttl each
func NewMemoryCache(maxItems int, ttl time.Duration) (*MemoryCache, error) {
	if maxItems <= 0 {
		return nil, fmt.Errorf("cache max items must be positive, got %d", maxItems)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}
	return &MemoryCache{lru: expirable.NewLRU[string, string](maxItems, nil, ttl)}, nil
}

// Get returns the cached value for key
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	return c.lru.Get(key)
}

// Set stores value under key, evicting the least recently used entry when full
func (c *MemoryCache) Set(_ context.Context, key, value string) {
	c.lru.Add(key, value)
}

// Len returns the number of live entries
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// Purge removes every entry
func (c *MemoryCache) Purge() {
	c.lru.Purge()
}
