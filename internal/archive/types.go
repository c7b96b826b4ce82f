// Package archive stores generated reports as opaque content with metadata.
package archive

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/assessment-report-engine/internal/domain"
)

// ErrNotFound is returned when no report exists for an ID
var ErrNotFound = errors.New("report not found")

// StoredReport is an archived report. Content is stored verbatim.
type StoredReport struct {
	ID           string    `json:"id"`
	AssessmentID string    `json:"assessment_id,omitempty"`
	DetailLevel  string    `json:"detail_level"`
	Format       string    `json:"format"`
	SectionCount int       `json:"section_count"`
	FailureCount int       `json:"failure_count"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

// FromReport converts an assembled report into its archived form
func FromReport(r *domain.Report) *StoredReport {
	return &StoredReport{
		ID:           r.ID,
		AssessmentID: r.AssessmentID,
		DetailLevel:  string(r.DetailLevel),
		Format:       string(r.Format),
		SectionCount: len(r.Sections),
		FailureCount: len(r.Failures),
		Content:      r.Content,
		CreatedAt:    r.GeneratedAt,
	}
}

// Store defines the report archive operations.
type Store interface {
	// Save stores a report, replacing any report with the same ID.
	Save(ctx context.Context, report *StoredReport) error

	// Get returns the report with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*StoredReport, error)

	// List returns reports newest first with pagination.
	List(ctx context.Context, limit, offset int) ([]*StoredReport, error)

	// Count returns the total number of archived reports.
	Count(ctx context.Context) (int64, error)

	// Delete removes a report by ID. Missing reports yield ErrNotFound.
	Delete(ctx context.Context, id string) error

	// ExportJSON writes every archived report to writer.
	ExportJSON(ctx context.Context, writer io.Writer) error

	// ImportJSON loads reports from an export, skipping IDs that already exist.
	ImportJSON(ctx context.Context, reader io.Reader) (imported int, skipped int, err error)

	// Close releases resources.
	Close() error
}

// Export is the JSON export format
type Export struct {
	Version    string          `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	Count      int             `json:"count"`
	Reports    []*StoredReport `json:"reports"`
}

const (
	exportVersion  = "1.0"
	maxExportLimit = 1000000
)

// lister is the subset of Store used by the shared JSON helpers
type lister interface {
	List(ctx context.Context, limit, offset int) ([]*StoredReport, error)
	Get(ctx context.Context, id string) (*StoredReport, error)
	Save(ctx context.Context, report *StoredReport) error
}
