package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assessment-report-engine/internal/domain"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "archive", "reports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReport(id string, created time.Time) *StoredReport {
	return &StoredReport{
		ID:           id,
		AssessmentID: "assessment-" + id,
		DetailLevel:  "standard",
		Format:       "plain",
		SectionCount: 8,
		Content:      "DEMOGRAPHICS\nName: Jane Doe",
		CreatedAt:    created,
	}
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	report := sampleReport("r1", time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "assessment-r1", got.AssessmentID)
	assert.Equal(t, "DEMOGRAPHICS\nName: Jane Doe", got.Content)
	assert.Equal(t, 8, got.SectionCount)
	assert.True(t, report.CreatedAt.Equal(got.CreatedAt))
}

func TestSQLiteStore_SaveReplaces(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	report := sampleReport("r1", time.Now().UTC())
	require.NoError(t, store.Save(ctx, report))

	report.Content = "updated"
	report.FailureCount = 1
	require.NoError(t, store.Save(ctx, report))

	got, err := store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Content)
	assert.Equal(t, 1, got.FailureCount)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSQLiteStore_SaveRequiresID(t *testing.T) {
	store := newTestSQLiteStore(t)
	assert.Error(t, store.Save(context.Background(), &StoredReport{Content: "x"}))
}

func TestSQLiteStore_GetNotFound(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_ListNewestFirst(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.Save(ctx, sampleReport(id, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].ID)
	assert.Equal(t, "a", all[2].ID)

	page, err := store.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].ID)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleReport("r1", time.Now().UTC())))
	require.NoError(t, store.Delete(ctx, "r1"))

	_, err := store.Get(ctx, "r1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "r1"), ErrNotFound)
}

func TestSQLiteStore_ExportImport(t *testing.T) {
	source := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, source.Save(ctx, sampleReport("r1", time.Now().UTC())))
	require.NoError(t, source.Save(ctx, sampleReport("r2", time.Now().UTC())))

	var buf bytes.Buffer
	require.NoError(t, source.ExportJSON(ctx, &buf))

	var export Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &export))
	assert.Equal(t, "1.0", export.Version)
	assert.Equal(t, 2, export.Count)

	target := newTestSQLiteStore(t)
	require.NoError(t, target.Save(ctx, sampleReport("r1", time.Now().UTC())))

	imported, skipped, err := target.ImportJSON(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, skipped)

	count, err := target.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSQLiteStore_ImportInvalidJSON(t *testing.T) {
	store := newTestSQLiteStore(t)
	_, _, err := store.ImportJSON(context.Background(), bytes.NewReader([]byte("not json")))
	assert.Error(t, err)
}

func TestFromReport(t *testing.T) {
	generated := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	stored := FromReport(&domain.Report{
		ID:           "r1",
		AssessmentID: "a1",
		GeneratedAt:  generated,
		DetailLevel:  domain.DetailBrief,
		Format:       domain.FormatMarkdown,
		Sections:     []domain.ReportSection{{Key: domain.SectionSymptoms}},
		Failures:     []domain.SectionFailure{{Key: domain.SectionADL}},
		Content:      "# SYMPTOMS",
	})

	assert.Equal(t, "r1", stored.ID)
	assert.Equal(t, "brief", stored.DetailLevel)
	assert.Equal(t, "markdown", stored.Format)
	assert.Equal(t, 1, stored.SectionCount)
	assert.Equal(t, 1, stored.FailureCount)
	assert.Equal(t, generated, stored.CreatedAt)
}

func TestOpen(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	ctx := context.Background()

	store, err := Open(ctx, domain.ArchiveConfig{Driver: "none"}, logger)
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = Open(ctx, domain.ArchiveConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "r.db")}, logger)
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, store.Close())

	_, err = Open(ctx, domain.ArchiveConfig{Driver: "mongo"}, logger)
	assert.Error(t, err)
}
