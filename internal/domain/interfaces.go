package domain

import (
	"context"
)

// EnhanceOptions are passed to the text-enhancement collaborator
type EnhanceOptions struct {
	DetailLevel DetailLevel  `json:"detail_level"`
	Format      OutputFormat `json:"format"`
}

// TextEnhancer post-processes a fully generated section. Failures are never fatal;
// callers fall back to the raw content.
type TextEnhancer interface {
	Enhance(ctx context.Context, sectionName, rawContent string, opts EnhanceOptions) (string, error)
}

// Cache is a bounded-lifetime string cache injected into the template manager
// and enhancement client. Implementations must tolerate concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetReportConfig() *ReportConfig
	Reload() error
	Validate() error
	IsProduction() bool
	IsDevelopment() bool
}
