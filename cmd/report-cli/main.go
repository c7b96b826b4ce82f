package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/archive"
	"github.com/assessment-report-engine/internal/cli"
	"github.com/assessment-report-engine/internal/config"
	"github.com/assessment-report-engine/internal/report"
	"github.com/assessment-report-engine/pkg/external"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadLiteConfig()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil || level > logrus.WarnLevel {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	collab := report.Collaborators{}
	if cfg.EnhancementEnabled() {
		collab.Enhancer = external.NewEnhancementClient(external.EnhancementConfig{
			BaseURL: cfg.EnhancementURL,
			APIKey:  cfg.EnhancementKey,
		}, nil, logger)
	}

	engine, err := report.NewEngine(logger, cfg.ReportConfig(), collab)
	if err != nil {
		return fmt.Errorf("creating report engine: %w", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	store, err := archive.NewSQLiteStore(cfg.ArchiveDBPath())
	if err != nil {
		return fmt.Errorf("opening report archive: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(&cli.App{Engine: engine, Store: store, Logger: logger}).ExecuteContext(ctx)
}
