package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/assessment-report-engine/internal/api"
	"github.com/assessment-report-engine/internal/bootstrap"
	"github.com/assessment-report-engine/internal/config"
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

	server := api.NewServer(configManager, components.Engine, logger, api.Options{
		Store:    components.Store,
		Gatherer: components.Registry,
		Metrics:  components.Metrics,
	})

	logger.WithField("port", cfg.Server.Port).Info("Starting assessment report server")
	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Error("Server failed")
		return
	}

	logger.Info("Server stopped")
}
