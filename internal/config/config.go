package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/reference"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	v      *viper.Viper
	config *domain.Config
}

// NewManager creates a new configuration manager
func NewManager() (*Manager, error) {
	return NewManagerWithFile("")
}

// NewManagerWithFile loads configuration from an explicit file instead of the search paths
func NewManagerWithFile(path string) (*Manager, error) {
	m := &Manager{v: viper.New()}
	if path != "" {
		m.v.SetConfigFile(path)
	}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	v := m.v
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/assessment-report/")
	}

	v.SetEnvPrefix("ASSESSMENT_REPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and environment variables apply without one
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

// setDefaults sets default configuration values
func (m *Manager) setDefaults() {
	v := m.v

	v.SetDefault("environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "60s")

	// Report defaults
	v.SetDefault("report.detail_level", "standard")
	v.SetDefault("report.format", "plain")
	v.SetDefault("report.include_appendices", false)
	v.SetDefault("report.custom_sections", []string{})
	v.SetDefault("report.workers", 4)
	v.SetDefault("report.rate_table", "current")
	v.SetDefault("report.currency_locale", "en-US")

	// Enhancement defaults
	v.SetDefault("enhancement.enabled", false)
	v.SetDefault("enhancement.base_url", "http://localhost:9000")
	v.SetDefault("enhancement.api_key", "")
	v.SetDefault("enhancement.timeout", "15s")
	v.SetDefault("enhancement.rate_limit", 5)
	v.SetDefault("enhancement.max_requests", 5)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.max_items", 1000)
	v.SetDefault("cache.ttl", "1h")
	v.SetDefault("cache.redis_url", "")

	// Archive defaults
	v.SetDefault("archive.driver", "sqlite")
	v.SetDefault("archive.sqlite_path", "./data/reports.db")
	v.SetDefault("archive.postgres_url", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetReportConfig returns the default report options
func (m *Manager) GetReportConfig() *domain.ReportConfig {
	return &m.config.Report
}

// Reload reloads the configuration
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	return Validate(m.config)
}

// Validate checks a configuration for unusable values
func Validate(config *domain.Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if _, err := domain.ParseDetailLevel(config.Report.DetailLevel); err != nil {
		return err
	}
	if _, err := domain.ParseOutputFormat(config.Report.Format); err != nil {
		return err
	}
	if config.Report.Workers < 0 {
		return fmt.Errorf("invalid report workers: %d", config.Report.Workers)
	}
	if _, err := reference.RatesByName(config.Report.RateTable); err != nil {
		return err
	}

	if config.Enhancement.Enabled && config.Enhancement.BaseURL == "" {
		return fmt.Errorf("enhancement base URL is required when enhancement is enabled")
	}

	if config.Cache.Enabled && (config.Cache.MaxItems <= 0 || config.Cache.TTL <= 0) {
		return fmt.Errorf("cache max_items and ttl must be positive when the cache is enabled")
	}

	switch strings.ToLower(config.Archive.Driver) {
	case "", "none":
	case "sqlite":
		if config.Archive.SQLitePath == "" {
			return fmt.Errorf("archive sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if config.Archive.PostgresURL == "" {
			return fmt.Errorf("archive postgres_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid archive driver: %s", config.Archive.Driver)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(m.config.Environment) == "production"
}

// IsDevelopment returns true if running in development mode
func (m *Manager) IsDevelopment() bool {
	env := strings.ToLower(m.config.Environment)
	return env == "development" || env == "dev" || env == ""
}
