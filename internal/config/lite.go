// Package config provides configuration management for the report engine.
// This file contains the lightweight configuration for standalone operation.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/assessment-report-engine/internal/domain"
)

// LiteConfig is a simplified configuration for standalone operation.
// It requires no external services and uses sensible defaults.
type LiteConfig struct {
	// Data storage
	DataDir     string // Base directory for data files
	PostgresURL string // Optional: archive reports in PostgreSQL instead of SQLite

	// Cache settings
	CacheMaxItems int           // Maximum items in memory cache
	CacheTTL      time.Duration // Default cache TTL

	// Report defaults
	DetailLevel string
	Format      string
	RateTable   string

	// Optional text enhancement service
	EnhancementURL string
	EnhancementKey string

	// Logging
	LogLevel  string // Log level: debug, info, warn, error
	LogFormat string // Log format: json, text
}

// DefaultLiteConfig returns a configuration with sensible defaults.
func DefaultLiteConfig() *LiteConfig {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".assessment-report")

	return &LiteConfig{
		DataDir:       dataDir,
		CacheMaxItems: 1000,
		CacheTTL:      time.Hour,
		DetailLevel:   "standard",
		Format:        "plain",
		RateTable:     "current",
		LogLevel:      "info",
		LogFormat:     "json",
	}
}

// LoadLiteConfig loads configuration from environment variables.
// Falls back to defaults if not set.
func LoadLiteConfig() *LiteConfig {
	cfg := DefaultLiteConfig()

	if v := os.Getenv("REPORT_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	cfg.PostgresURL = os.Getenv("REPORT_POSTGRES_URL")

	if v := os.Getenv("REPORT_CACHE_MAX_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheMaxItems = n
		}
	}
	if v := os.Getenv("REPORT_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CacheTTL = d
		}
	}

	if v := os.Getenv("REPORT_DETAIL_LEVEL"); v != "" {
		cfg.DetailLevel = v
	}
	if v := os.Getenv("REPORT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("REPORT_RATE_TABLE"); v != "" {
		cfg.RateTable = v
	}

	cfg.EnhancementURL = os.Getenv("REPORT_ENHANCEMENT_URL")
	cfg.EnhancementKey = os.Getenv("REPORT_ENHANCEMENT_API_KEY")

	if v := os.Getenv("REPORT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("REPORT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	return cfg
}

// ArchiveDBPath returns the path to the report archive SQLite database.
func (c *LiteConfig) ArchiveDBPath() string {
	return filepath.Join(c.DataDir, "reports.db")
}

// ExportDir returns the directory for JSON exports.
func (c *LiteConfig) ExportDir() string {
	return filepath.Join(c.DataDir, "exports")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *LiteConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}
	return os.MkdirAll(c.ExportDir(), 0755)
}

// ReportConfig returns the report defaults as a domain.ReportConfig
func (c *LiteConfig) ReportConfig() domain.ReportConfig {
	return domain.ReportConfig{
		DetailLevel:    c.DetailLevel,
		Format:         c.Format,
		RateTable:      c.RateTable,
		CurrencyLocale: "en-US",
	}
}

// EnhancementEnabled reports whether an enhancement service is configured
func (c *LiteConfig) EnhancementEnabled() bool {
	return strings.TrimSpace(c.EnhancementURL) != ""
}
