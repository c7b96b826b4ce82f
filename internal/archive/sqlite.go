package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite report archive.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// scanner is an interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

const reportColumns = `id, assessment_id, detail_level, format, section_count, failure_count, content, created_at`

func scanReport(s scanner) (*StoredReport, error) {
	r := &StoredReport{}
	err := s.Scan(
		&r.ID, &r.AssessmentID, &r.DetailLevel, &r.Format,
		&r.SectionCount, &r.FailureCount, &r.Content, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		assessment_id TEXT NOT NULL DEFAULT '',
		detail_level TEXT NOT NULL,
		format TEXT NOT NULL,
		section_count INTEGER NOT NULL DEFAULT 0,
		failure_count INTEGER NOT NULL DEFAULT 0,
		content TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_assessment_id ON reports(assessment_id);
	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Save stores a report, replacing any report with the same ID.
func (s *SQLiteStore) Save(ctx context.Context, report *StoredReport) error {
	if report.ID == "" {
		return errors.New("report ID is required")
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			assessment_id = excluded.assessment_id,
			detail_level = excluded.detail_level,
			format = excluded.format,
			section_count = excluded.section_count,
			failure_count = excluded.failure_count,
			content = excluded.content
	`,
		report.ID,
		report.AssessmentID,
		report.DetailLevel,
		report.Format,
		report.SectionCount,
		report.FailureCount,
		report.Content,
		report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Get returns the report with the given ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (*StoredReport, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = ?`, id)

	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan: %w", err)
	}
	return r, nil
}

// List returns reports newest first with pagination.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*StoredReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var result []*StoredReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// Count returns the total number of archived reports.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports").Scan(&count)
	return count, err
}

// Delete removes a report by ID.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ExportJSON writes every archived report to writer.
func (s *SQLiteStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return exportJSON(ctx, s, writer)
}

// ImportJSON loads reports from an export, skipping IDs that already exist.
func (s *SQLiteStore) ImportJSON(ctx context.Context, reader io.Reader) (int, int, error) {
	return importJSON(ctx, s, reader)
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
