// Package mcp exposes the report engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/archive"
	"github.com/assessment-report-engine/internal/report"
)

const (
	serverName    = "assessment-report-engine"
	serverVersion = "v1.0.0"
)

// Server wraps an MCP SDK server whose tools call into the report engine
type Server struct {
	engine    *report.Engine
	store     archive.Store
	exportDir string
	mcpServer *mcp.Server
	logger    *logrus.Logger
	tools     []string
}

// Option is a functional option for Server.
type Option func(*Server)

// WithStore enables the archive tools backed by store.
func WithStore(store archive.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithExportDir sets the directory export_reports writes into.
func WithExportDir(dir string) Option {
	return func(s *Server) {
		s.exportDir = dir
	}
}

// NewServer creates an MCP server and registers its tools.
func NewServer(engine *report.Engine, logger *logrus.Logger, opts ...Option) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("report engine is required")
	}

	s := &Server{
		engine: engine,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)

	s.registerTools()

	s.logger.WithField("tool_count", len(s.tools)).Info("MCP server initialized")
	return s, nil
}

func (s *Server) registerTools() {
	addTool(s, "generate_report",
		"Generate a formatted assessment report from an assessment record. Sections that fail are marked in place; the rest of the report is still returned.",
		s.handleGenerateReport)
	addTool(s, "validate_assessment",
		"Check an assessment record for out-of-range enum values such as severity, frequency or independence level.",
		s.handleValidateAssessment)
	addTool(s, "calculate_care_costs",
		"Compute daily and monthly attendant-care hours and costs per care level from itemized care tasks.",
		s.handleCalculateCareCosts)

	if s.store == nil {
		s.logger.Debug("Archive disabled, skipping archive tools")
		return
	}

	addTool(s, "get_report",
		"Fetch a previously generated report from the archive by ID.",
		s.handleGetReport)
	addTool(s, "list_reports",
		"List archived reports, newest first, with pagination.",
		s.handleListReports)
	addTool(s, "delete_report",
		"Delete an archived report by ID.",
		s.handleDeleteReport)
	if s.exportDir != "" {
		addTool(s, "export_reports",
			"Export all archived reports to a JSON file for backup.",
			s.handleExportReports)
	}
	addTool(s, "import_reports",
		"Import reports from a JSON backup file. Reports whose ID already exists are skipped.",
		s.handleImportReports)
}

func addTool[In any](s *Server, name, description string, handler mcp.ToolHandlerFor[In, any]) {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        name,
		Description: description,
	}, handler)
	s.tools = append(s.tools, name)
	s.logger.WithField("tool_name", name).Debug("Registered MCP tool")
}

// Tools returns the names of the registered tools in registration order
func (s *Server) Tools() []string {
	return append([]string(nil), s.tools...)
}

// Run serves MCP over stdio until ctx is canceled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting MCP server on stdio")
	if err := s.mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// Close releases the archive store.
func (s *Server) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		s.logger.WithError(err).Error("Failed to close report archive")
		return err
	}
	return nil
}
