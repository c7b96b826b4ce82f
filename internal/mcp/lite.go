package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/archive"
	"github.com/assessment-report-engine/internal/cache"
	"github.com/assessment-report-engine/internal/config"
	"github.com/assessment-report-engine/internal/database"
	"github.com/assessment-report-engine/internal/report"
	"github.com/assessment-report-engine/pkg/external"
)

// LiteOption is a functional option for NewLiteServer.
type LiteOption func(*liteBuild)

type liteBuild struct {
	logger *logrus.Logger
	store  archive.Store
}

// WithLogger sets a custom logger.
func WithLogger(logger *logrus.Logger) LiteOption {
	return func(b *liteBuild) {
		b.logger = logger
	}
}

// WithArchive sets a custom report archive instead of the configured one.
func WithArchive(store archive.Store) LiteOption {
	return func(b *liteBuild) {
		b.store = store
	}
}

// NewLiteServer builds a self-contained MCP server from environment-driven
// configuration: an in-memory cache, a SQLite archive under the data directory
// (or PostgreSQL when a URL is set) and an optional enhancement client.
func NewLiteServer(ctx context.Context, cfg *config.LiteConfig, opts ...LiteOption) (*Server, error) {
	b := &liteBuild{}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = newLiteLogger(cfg)
	}
	logger := b.logger

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	memCache, err := cache.NewMemoryCache(cfg.CacheMaxItems, cfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	collab := report.Collaborators{Cache: memCache}
	if cfg.EnhancementEnabled() {
		collab.Enhancer = external.NewEnhancementClient(external.EnhancementConfig{
			BaseURL: cfg.EnhancementURL,
			APIKey:  cfg.EnhancementKey,
		}, memCache, logger)
		logger.WithField("base_url", cfg.EnhancementURL).Info("Text enhancement enabled")
	}

	engine, err := report.NewEngine(logger, cfg.ReportConfig(), collab)
	if err != nil {
		return nil, fmt.Errorf("failed to create report engine: %w", err)
	}

	if b.store == nil {
		b.store, err = openLiteArchive(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	return NewServer(engine, logger, WithStore(b.store), WithExportDir(cfg.ExportDir()))
}

func openLiteArchive(ctx context.Context, cfg *config.LiteConfig, logger *logrus.Logger) (archive.Store, error) {
	if cfg.PostgresURL == "" {
		store, err := archive.NewSQLiteStore(cfg.ArchiveDBPath())
		if err != nil {
			return nil, fmt.Errorf("failed to create report archive: %w", err)
		}
		logger.WithField("path", cfg.ArchiveDBPath()).Info("Using SQLite report archive")
		return store, nil
	}

	if err := database.Migrate(ctx, cfg.PostgresURL, logger); err != nil {
		return nil, fmt.Errorf("failed to migrate report archive: %w", err)
	}
	store, err := archive.NewPostgresStoreFromURL(cfg.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect report archive: %w", err)
	}
	logger.Info("Using PostgreSQL report archive")
	return store, nil
}

// newLiteLogger writes to stderr; stdout carries the MCP protocol.
func newLiteLogger(cfg *config.LiteConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if cfg.LogFormat == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
