package database

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNoVersion is returned by Version when no migration has been applied
var ErrNoVersion = migrate.ErrNilVersion

// MigrationRunner handles database migrations
type MigrationRunner struct {
	migrate *migrate.Migrate
	log     *logrus.Logger
}

// NewMigrationRunner creates a migration runner over the embedded archive schema
func NewMigrationRunner(databaseURL string, logger *logrus.Logger) (*MigrationRunner, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("loading embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating migration instance: %w", err)
	}

	return &MigrationRunner{
		migrate: m,
		log:     logger,
	}, nil
}

// Up runs all pending migrations
func (mr *MigrationRunner) Up(ctx context.Context) error {
	mr.log.Info("Running database migrations up")

	if err := mr.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mr.log.Info("No pending migrations to run")
			return nil
		}
		return fmt.Errorf("running migrations up: %w", err)
	}

	mr.logVersion("Migrations completed successfully")
	return nil
}

// Down rolls back one migration
func (mr *MigrationRunner) Down(ctx context.Context) error {
	mr.log.Info("Rolling back one migration")

	if err := mr.migrate.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mr.log.Info("No migrations to roll back")
			return nil
		}
		return fmt.Errorf("rolling back migration: %w", err)
	}

	mr.logVersion("Migration rolled back successfully")
	return nil
}

func (mr *MigrationRunner) logVersion(msg string) {
	version, dirty, err := mr.migrate.Version()
	if err != nil {
		mr.log.WithError(err).Warn("Could not get migration version")
		return
	}
	mr.log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info(msg)
}

// Version returns the current migration version
func (mr *MigrationRunner) Version() (uint, bool, error) {
	return mr.migrate.Version()
}

// Close closes the migration runner
func (mr *MigrationRunner) Close() error {
	sourceErr, dbErr := mr.migrate.Close()
	if sourceErr != nil {
		return fmt.Errorf("closing migration source: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("closing migration database: %w", dbErr)
	}
	return nil
}

// Migrate applies every pending migration to the database at databaseURL
func Migrate(ctx context.Context, databaseURL string, logger *logrus.Logger) error {
	runner, err := NewMigrationRunner(databaseURL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close migration runner")
		}
	}()
	return runner.Up(ctx)
}
