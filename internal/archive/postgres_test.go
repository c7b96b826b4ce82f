package archive

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	store, err := NewPostgresStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store, mock
}

var columns = []string{"id", "assessment_id", "detail_level", "format", "section_count", "failure_count", "content", "created_at"}

func TestNewPostgresStore_NilDB(t *testing.T) {
	_, err := NewPostgresStore(nil)
	assert.Error(t, err)
}

func TestPostgresStore_Save(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	report := sampleReport("r1", created)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reports")).
		WithArgs("r1", "assessment-r1", "standard", "plain", 8, 0, report.Content, created).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	require.NoError(t, store.Save(context.Background(), report))
	assert.Equal(t, created, report.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reports")).
		WillReturnError(errors.New("connection reset"))

	err := store.Save(context.Background(), sampleReport("r1", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save report")
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reports WHERE id = $1")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("r1", "a1", "detailed", "html", 9, 0, "<h1>DEMOGRAPHICS</h1>", created))

	got, err := store.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "a1", got.AssessmentID)
	assert.Equal(t, "html", got.Format)
	assert.Equal(t, 9, got.SectionCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reports WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresStore_List(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id")).
		WithArgs(2, 0).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("r2", "", "brief", "plain", 8, 0, "two", now).
			AddRow("r1", "", "brief", "plain", 8, 1, "one", now.Add(-time.Hour)))

	reports, err := store.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[0].ID)
	assert.Equal(t, 1, reports[1].FailureCount)
}

func TestPostgresStore_Count(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reports")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
}

func TestPostgresStore_Delete(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reports WHERE id = $1")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reports WHERE id = $1")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Delete(context.Background(), "r1"))
	assert.ErrorIs(t, store.Delete(context.Background(), "r1"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
