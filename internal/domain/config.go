package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Report      ReportConfig      `mapstructure:"report"`
	Enhancement EnhancementConfig `mapstructure:"enhancement"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Archive     ArchiveConfig     `mapstructure:"archive"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ReportConfig holds the default generation options
type ReportConfig struct {
	DetailLevel       string   `mapstructure:"detail_level"`
	Format            string   `mapstructure:"format"`
	IncludeAppendices bool     `mapstructure:"include_appendices"`
	CustomSections    []string `mapstructure:"custom_sections"`
	Workers           int      `mapstructure:"workers"`
	RateTable         string   `mapstructure:"rate_table"` // "current" or "historical"
	CurrencyLocale    string   `mapstructure:"currency_locale"`
}

// EnhancementConfig configures the external text-enhancement service
type EnhancementConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	RateLimit   int           `mapstructure:"rate_limit"`
	MaxRequests uint32        `mapstructure:"max_requests"`
}

// CacheConfig represents render/enhancement cache configuration
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	MaxItems int           `mapstructure:"max_items"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

// ArchiveConfig selects where generated reports are stored
type ArchiveConfig struct {
	Driver      string `mapstructure:"driver"` // "sqlite", "postgres" or "none"
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresURL string `mapstructure:"postgres_url"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
