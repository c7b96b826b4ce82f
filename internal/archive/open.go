package archive

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/database"
	"github.com/assessment-report-engine/internal/domain"
)

// Archive drivers
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// pooledStore closes the pgx pool together with the store
type pooledStore struct {
	*PostgresStore
	conn *database.DB
}

func (p *pooledStore) Close() error {
	err := p.PostgresStore.Close()
	p.conn.Close()
	return err
}

// Open creates the archive selected by configuration. The Postgres archive runs
// the embedded migrations and uses a pgx connection pool. A nil Store is returned
// for the "none" driver.
func Open(ctx context.Context, config domain.ArchiveConfig, logger *logrus.Logger) (Store, error) {
	switch strings.ToLower(config.Driver) {
	case "", DriverNone:
		logger.Info("Report archive disabled")
		return nil, nil
	case DriverSQLite:
		store, err := NewSQLiteStore(config.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.WithField("path", config.SQLitePath).Info("SQLite report archive opened")
		return store, nil
	case DriverPostgres:
		if err := database.Migrate(ctx, config.PostgresURL, logger); err != nil {
			return nil, fmt.Errorf("failed to migrate archive schema: %w", err)
		}
		conn, err := database.NewConnection(ctx, database.DefaultConfig(config.PostgresURL), logger)
		if err != nil {
			return nil, err
		}
		store, err := NewPostgresStore(conn.SQL())
		if err != nil {
			conn.Close()
			return nil, err
		}
		return &pooledStore{PostgresStore: store, conn: conn}, nil
	default:
		return nil, fmt.Errorf("unknown archive driver %q", config.Driver)
	}
}
