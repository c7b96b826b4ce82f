package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/assessment-report-engine/internal/bootstrap"
	"github.com/assessment-report-engine/internal/config"
	"github.com/assessment-report-engine/internal/mcp"
)

func main() {
	// Load configuration
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := bootstrap.NewLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	components, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize report engine")
	}
	defer components.Close()

	opts := []mcp.Option{}
	if components.Store != nil {
		opts = append(opts, mcp.WithStore(components.Store))
	}

	mcpServer, err := mcp.NewServer(components.Engine, logger, opts...)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create MCP server")
	}

	if err := mcpServer.Run(ctx); err != nil {
		logger.WithError(err).Error("MCP server stopped with error")
		return
	}

	logger.Info("MCP server stopped")
}
