package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var liteEnvVars = []string{
	"REPORT_DATA_DIR",
	"REPORT_POSTGRES_URL",
	"REPORT_CACHE_MAX_ITEMS",
	"REPORT_CACHE_TTL",
	"REPORT_DETAIL_LEVEL",
	"REPORT_FORMAT",
	"REPORT_RATE_TABLE",
	"REPORT_ENHANCEMENT_URL",
	"REPORT_ENHANCEMENT_API_KEY",
	"REPORT_LOG_LEVEL",
	"REPORT_LOG_FORMAT",
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range liteEnvVars {
		t.Setenv(v, "")
	}
}

func TestDefaultLiteConfig(t *testing.T) {
	cfg := DefaultLiteConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "standard", cfg.DetailLevel)
	assert.Equal(t, "plain", cfg.Format)
	assert.Equal(t, "current", cfg.RateTable)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.EnhancementEnabled())
}

func TestLoadLiteConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	cfg := LoadLiteConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Empty(t, cfg.PostgresURL)
}

func TestLoadLiteConfig_EnvironmentOverrides(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("REPORT_DATA_DIR", "/tmp/test-reports")
	t.Setenv("REPORT_CACHE_MAX_ITEMS", "500")
	t.Setenv("REPORT_CACHE_TTL", "12h")
	t.Setenv("REPORT_DETAIL_LEVEL", "detailed")
	t.Setenv("REPORT_FORMAT", "markdown")
	t.Setenv("REPORT_RATE_TABLE", "historical")
	t.Setenv("REPORT_ENHANCEMENT_URL", "http://enhancer:9000")
	t.Setenv("REPORT_LOG_LEVEL", "debug")

	cfg := LoadLiteConfig()

	assert.Equal(t, "/tmp/test-reports", cfg.DataDir)
	assert.Equal(t, 500, cfg.CacheMaxItems)
	assert.Equal(t, 12*time.Hour, cfg.CacheTTL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.EnhancementEnabled())

	rc := cfg.ReportConfig()
	assert.Equal(t, "detailed", rc.DetailLevel)
	assert.Equal(t, "markdown", rc.Format)
	assert.Equal(t, "historical", rc.RateTable)
}

func TestLoadLiteConfig_InvalidValues(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("REPORT_CACHE_MAX_ITEMS", "invalid")
	t.Setenv("REPORT_CACHE_TTL", "forever")

	cfg := LoadLiteConfig()

	assert.Equal(t, 1000, cfg.CacheMaxItems)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestLiteConfig_Paths(t *testing.T) {
	cfg := &LiteConfig{DataDir: "/data"}

	assert.Equal(t, filepath.Join("/data", "reports.db"), cfg.ArchiveDBPath())
	assert.Equal(t, filepath.Join("/data", "exports"), cfg.ExportDir())
}

func TestLiteConfig_EnsureDataDir(t *testing.T) {
	cfg := &LiteConfig{DataDir: filepath.Join(t.TempDir(), "nested", "data")}

	require.NoError(t, cfg.EnsureDataDir())

	info, err := os.Stat(cfg.ExportDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
