// Package bootstrap assembles the report engine and its collaborators from
// configuration. The HTTP and MCP servers share it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/archive"
	"github.com/assessment-report-engine/internal/cache"
	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/metrics"
	"github.com/assessment-report-engine/internal/report"
	"github.com/assessment-report-engine/pkg/external"
)

// Components are the long-lived objects built from configuration
type Components struct {
	Engine   *report.Engine
	Store    archive.Store // nil when the archive is disabled
	Cache    domain.Cache  // nil when caching is disabled
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	closers []func() error
}

// Close releases the archive and cache connections
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewLogger creates the process logger. Output goes to stderr so stdio
// transports keep stdout for protocol traffic.
func NewLogger(config domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if config.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// Build wires the engine from configuration. On error, anything already
// opened is closed.
func Build(ctx context.Context, config *domain.Config, logger *logrus.Logger) (*Components, error) {
	c := &Components{Registry: prometheus.NewRegistry()}

	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(c.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	c.Metrics = m

	if config.Cache.Enabled {
		if err := c.buildCache(config.Cache, logger); err != nil {
			c.Close()
			return nil, err
		}
	}

	collab := report.Collaborators{
		Cache:   c.Cache,
		Metrics: c.Metrics,
	}
	if config.Enhancement.Enabled {
		collab.Enhancer = newEnhancer(config.Enhancement, c.Cache, logger)
		collab.EnhanceTimeout = config.Enhancement.Timeout
		logger.WithField("base_url", config.Enhancement.BaseURL).Info("Text enhancement enabled")
	}

	c.Engine, err = report.NewEngine(logger, config.Report, collab)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to create report engine: %w", err)
	}

	store, err := archive.Open(ctx, config.Archive, logger)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to open report archive: %w", err)
	}
	if store != nil {
		c.Store = store
		c.closers = append(c.closers, store.Close)
	}

	return c, nil
}

// buildCache creates the memory tier and, when a Redis URL is configured, a
// shared Redis tier behind it. An unreachable Redis degrades to memory only.
func (c *Components) buildCache(config domain.CacheConfig, logger *logrus.Logger) error {
	memory, err := cache.NewMemoryCache(config.MaxItems, config.TTL)
	if err != nil {
		return fmt.Errorf("failed to create memory cache: %w", err)
	}

	if config.RedisURL == "" {
		c.Cache = memory
		return nil
	}

	redisCache, err := external.NewCacheClient(config, logger)
	if err != nil {
		logger.WithError(err).Warn("Redis cache unavailable, using memory cache only")
		c.Cache = memory
		return nil
	}
	c.closers = append(c.closers, redisCache.Close)
	c.Cache = cache.NewTieredCache(logger, memory, redisCache)
	logger.Info("Using memory cache with Redis shared tier")
	return nil
}

func newEnhancer(config domain.EnhancementConfig, c domain.Cache, logger *logrus.Logger) domain.TextEnhancer {
	breaker := external.DefaultCircuitBreakerConfig()
	if config.MaxRequests > 0 {
		breaker.MaxRequests = config.MaxRequests
	}
	return external.NewEnhancementClient(external.EnhancementConfig{
		BaseURL:        config.BaseURL,
		APIKey:         config.APIKey,
		Timeout:        config.Timeout,
		RateLimit:      config.RateLimit,
		CircuitBreaker: breaker,
	}, c, logger)
}
