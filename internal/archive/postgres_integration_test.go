package archive

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/assessment-report-engine/internal/domain"
)

// startPostgres runs a disposable PostgreSQL container and returns its URL.
// The test is skipped when Docker is not available.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("reports"),
		postgres.WithUsername("reports"),
		postgres.WithPassword("reports"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("PostgreSQL container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	url, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return url
}

func TestOpen_PostgresArchive(t *testing.T) {
	url := startPostgres(t)
	ctx := context.Background()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	store, err := Open(ctx, domain.ArchiveConfig{Driver: DriverPostgres, PostgresURL: url}, logger)
	require.NoError(t, err)
	defer store.Close()

	report := &StoredReport{
		ID:           "pg-1",
		AssessmentID: "a-1",
		DetailLevel:  "standard",
		Format:       "plain",
		SectionCount: 8,
		Content:      "DEMOGRAPHICS\nName: Jane Doe",
	}
	require.NoError(t, store.Save(ctx, report))
	assert.False(t, report.CreatedAt.IsZero())

	got, err := store.Get(ctx, "pg-1")
	require.NoError(t, err)
	assert.Equal(t, report.Content, got.Content)

	report.Content = "replaced"
	require.NoError(t, store.Save(ctx, report))
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.Delete(ctx, "pg-1"))
	assert.ErrorIs(t, store.Delete(ctx, "pg-1"), ErrNotFound)

	// lite mode reaches the same schema through lib/pq
	pqStore, err := NewPostgresStoreFromURL(url)
	require.NoError(t, err)
	defer pqStore.Close()
	count, err = pqStore.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
