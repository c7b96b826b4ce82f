// Package main provides the lightweight MCP entry point. It needs no external
// services: reports are archived in SQLite under the data directory.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/assessment-report-engine/internal/config"
	"github.com/assessment-report-engine/internal/mcp"
	"github.com/assessment-report-engine/internal/setup"
)

func main() {
	// Check for setup subcommand
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		cmd := setup.NewCommand()
		cmd.SetArgs(os.Args[2:])
		if err := cmd.Execute(); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		return
	}

	// Load lightweight configuration
	cfg := config.LoadLiteConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := mcp.NewLiteServer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}
	defer server.Close()

	if err := server.Run(ctx); err != nil {
		log.Printf("MCP server failed: %v", err)
		return
	}
}
