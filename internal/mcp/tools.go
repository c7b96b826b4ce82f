package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/assessment-report-engine/internal/archive"
	"github.com/assessment-report-engine/internal/domain"
)

const defaultListLimit = 50

// GenerateReportParams defines parameters for the generate_report tool
type GenerateReportParams struct {
	Assessment *domain.AssessmentRecord `json:"assessment"`
	Options    *domain.ReportOptions    `json:"options,omitempty"`
	Save       bool                     `json:"save,omitempty"`
}

// GenerateReportResult defines the result of generate_report
type GenerateReportResult struct {
	ReportID string                  `json:"report_id"`
	Archived bool                    `json:"archived"`
	Sections int                     `json:"sections"`
	Failures []domain.SectionFailure `json:"failures,omitempty"`
	Content  string                  `json:"content"`
}

// ValidateAssessmentParams defines parameters for the validate_assessment tool
type ValidateAssessmentParams struct {
	Assessment *domain.AssessmentRecord `json:"assessment"`
}

// CareCostsParams defines parameters for the calculate_care_costs tool
type CareCostsParams struct {
	Tasks []domain.CareTask `json:"tasks"`
}

// ReportIDParams identifies one archived report
type ReportIDParams struct {
	ID string `json:"id"`
}

// ListReportsParams defines parameters for the list_reports tool
type ListReportsParams struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ListReportsResult defines the result of list_reports
type ListReportsResult struct {
	Reports []*archive.StoredReport `json:"reports"`
	Total   int64                   `json:"total"`
	Limit   int                     `json:"limit"`
	Offset  int                     `json:"offset"`
}

// ExportReportsParams is empty; export_reports takes no arguments
type ExportReportsParams struct{}

// ExportReportsResult defines the result of export_reports
type ExportReportsResult struct {
	FilePath string `json:"file_path"`
	Count    int64  `json:"count"`
}

// ImportReportsParams defines parameters for the import_reports tool
type ImportReportsParams struct {
	FilePath string `json:"file_path"`
}

// ImportReportsResult defines the result of import_reports
type ImportReportsResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

func (s *Server) handleGenerateReport(ctx context.Context, _ *mcp.CallToolRequest, params GenerateReportParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", "generate_report").Info("Tool invoked")

	if params.Assessment == nil {
		return errorResult("Missing required parameter", fmt.Errorf("assessment is required")), nil, nil
	}

	opts := s.engine.DefaultOptions()
	if params.Options != nil {
		opts = s.engine.MergeOptions(*params.Options)
	}

	generated, err := s.engine.Generate(ctx, params.Assessment, opts)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailed) {
			return errorResult("Assessment failed validation; set options.acknowledge_invalid to generate anyway", err), nil, nil
		}
		return errorResult("Report generation failed", err), nil, nil
	}

	result := GenerateReportResult{
		ReportID: generated.ID,
		Sections: len(generated.Sections),
		Failures: generated.Failures,
		Content:  generated.Content,
	}

	if params.Save && s.store != nil {
		if err := s.store.Save(ctx, archive.FromReport(generated)); err != nil {
			s.logger.WithError(err).WithField("report_id", generated.ID).Error("Failed to archive report")
			return errorResult("Failed to archive report", err), nil, nil
		}
		result.Archived = true
	}

	return textResult(generated.Content), result, nil
}

func (s *Server) handleValidateAssessment(_ context.Context, _ *mcp.CallToolRequest, params ValidateAssessmentParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", "validate_assessment").Info("Tool invoked")

	if params.Assessment == nil {
		return errorResult("Missing required parameter", fmt.Errorf("assessment is required")), nil, nil
	}

	result := s.engine.Validate(params.Assessment)
	text := "Assessment is valid"
	if !result.Valid {
		text = fmt.Sprintf("Assessment has %d invalid value(s)", len(result.Errors))
	}
	return textResult(text), result, nil
}

func (s *Server) handleCalculateCareCosts(_ context.Context, _ *mcp.CallToolRequest, params CareCostsParams) (*mcp.CallToolResult, any, error) {
	s.logger.WithField("tool", "calculate_care_costs").Info("Tool invoked")

	summary := s.engine.CareCosts(params.Tasks)
	text := fmt.Sprintf("Total monthly attendant care: %.2f hours, $%.2f", summary.TotalMonthlyHours, summary.TotalMonthly)
	return textResult(text), summary, nil
}

func (s *Server) handleGetReport(ctx context.Context, _ *mcp.CallToolRequest, params ReportIDParams) (*mcp.CallToolResult, any, error) {
	if params.ID == "" {
		return errorResult("Missing required parameter", fmt.Errorf("id is required")), nil, nil
	}

	stored, err := s.store.Get(ctx, params.ID)
	if err != nil {
		return errorResult("Failed to fetch report", err), nil, nil
	}
	return textResult(stored.Content), stored, nil
}

func (s *Server) handleListReports(ctx context.Context, _ *mcp.CallToolRequest, params ListReportsParams) (*mcp.CallToolResult, any, error) {
	limit, offset := params.Limit, params.Offset
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	reports, err := s.store.List(ctx, limit, offset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list reports")
		return errorResult("Failed to list reports", err), nil, nil
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return errorResult("Failed to count reports", err), nil, nil
	}

	result := ListReportsResult{Reports: reports, Total: total, Limit: limit, Offset: offset}
	return textResult(fmt.Sprintf("%d of %d archived reports", len(reports), total)), result, nil
}

func (s *Server) handleDeleteReport(ctx context.Context, _ *mcp.CallToolRequest, params ReportIDParams) (*mcp.CallToolResult, any, error) {
	if params.ID == "" {
		return errorResult("Missing required parameter", fmt.Errorf("id is required")), nil, nil
	}
	if err := s.store.Delete(ctx, params.ID); err != nil {
		return errorResult("Failed to delete report", err), nil, nil
	}
	return textResult(fmt.Sprintf("Deleted report %s", params.ID)), nil, nil
}

func (s *Server) handleExportReports(ctx context.Context, _ *mcp.CallToolRequest, _ ExportReportsParams) (*mcp.CallToolResult, any, error) {
	if err := os.MkdirAll(s.exportDir, 0755); err != nil {
		return errorResult("Failed to create export directory", err), nil, nil
	}

	filename := fmt.Sprintf("reports_export_%s.json", time.Now().Format("20060102_150405"))
	filePath := filepath.Join(s.exportDir, filename)

	file, err := os.Create(filePath)
	if err != nil {
		return errorResult("Failed to create export file", err), nil, nil
	}
	defer file.Close()

	if err := s.store.ExportJSON(ctx, file); err != nil {
		s.logger.WithError(err).Error("Failed to export reports")
		return errorResult("Failed to export reports", err), nil, nil
	}

	count, _ := s.store.Count(ctx)
	result := ExportReportsResult{FilePath: filePath, Count: count}
	return textResult(fmt.Sprintf("Exported %d reports to %s", count, filePath)), result, nil
}

func (s *Server) handleImportReports(ctx context.Context, _ *mcp.CallToolRequest, params ImportReportsParams) (*mcp.CallToolResult, any, error) {
	if params.FilePath == "" {
		return errorResult("Missing required parameter", fmt.Errorf("file_path is required")), nil, nil
	}

	file, err := os.Open(params.FilePath)
	if err != nil {
		return errorResult("Failed to open file", err), nil, nil
	}
	defer file.Close()

	imported, skipped, err := s.store.ImportJSON(ctx, file)
	if err != nil {
		s.logger.WithError(err).Error("Failed to import reports")
		return errorResult("Failed to import reports", err), nil, nil
	}

	result := ImportReportsResult{Imported: imported, Skipped: skipped}
	return textResult(fmt.Sprintf("Imported %d reports, skipped %d duplicates", imported, skipped)), result, nil
}


func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// errorResult creates a standardized error result for tool calls
func errorResult(message string, err error) *mcp.CallToolResult {
	errorText := fmt.Sprintf("Error: %s", message)
	if err != nil {
		errorText += fmt.Sprintf(" - %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: errorText},
		},
		IsError: true,
	}
}
