package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore implements the Store interface using PostgreSQL.
// The reports table is created by the database migrations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL report archive on an open connection
func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// NewPostgresStoreFromURL opens a lib/pq connection and creates the archive on it
func NewPostgresStoreFromURL(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	store, err := NewPostgresStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Save stores a report, replacing any report with the same ID.
func (s *PostgresStore) Save(ctx context.Context, report *StoredReport) error {
	if report.ID == "" {
		return errors.New("report ID is required")
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			assessment_id = EXCLUDED.assessment_id,
			detail_level = EXCLUDED.detail_level,
			format = EXCLUDED.format,
			section_count = EXCLUDED.section_count,
			failure_count = EXCLUDED.failure_count,
			content = EXCLUDED.content
		RETURNING created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		report.ID,
		report.AssessmentID,
		report.DetailLevel,
		report.Format,
		report.SectionCount,
		report.FailureCount,
		report.Content,
		report.CreatedAt,
	).Scan(&report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Get returns the report with the given ID.
func (s *PostgresStore) Get(ctx context.Context, id string) (*StoredReport, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id)

	r, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return r, nil
}

// List returns reports newest first with pagination.
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*StoredReport, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
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
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

// Delete removes a report by ID.
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = $1", id)
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
func (s *PostgresStore) ExportJSON(ctx context.Context, writer io.Writer) error {
	return exportJSON(ctx, s, writer)
}

// ImportJSON loads reports from an export, skipping IDs that already exist.
func (s *PostgresStore) ImportJSON(ctx context.Context, reader io.Reader) (int, int, error) {
	return importJSON(ctx, s, reader)
}

// Close closes the store and releases resources.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
