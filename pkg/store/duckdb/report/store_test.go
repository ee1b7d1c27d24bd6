package report

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/services/scoring"
	"github.com/novamkr/web-vitals/pkg/store/duckdb"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: store}
}

func sampleReport(id string) domain.Report {
	created := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	r := domain.Report{
		ID:     id,
		Title:  "Acme",
		URL:    "https://acme.com",
		Author: domain.DefaultAuthor,
		Issues: map[domain.Category][]domain.Issue{
			domain.CategoryBrokenLinks: {
				{
					Category:    domain.CategoryBrokenLinks,
					Description: "Broken link: https://acme.com/gone (404)",
					Detail:      &domain.IssueDetail{URL: "https://acme.com/gone", StatusCode: 404, Reason: "404"},
					Note:        "moved in March",
				},
				{
					Category:    domain.CategoryBrokenLinks,
					Description: "Broken link: https://slow.example (timeout)",
					Detail:      &domain.IssueDetail{URL: "https://slow.example", Reason: "timeout"},
				},
			},
			domain.CategoryOutdatedHTML: {
				{Category: domain.CategoryOutdatedHTML, Description: "Deprecated tag <font> found."},
			},
		},
		SkippedChecks: []domain.SkippedCheck{{Name: "large_images", Reason: "offline"}},
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	scoring.Apply(&r)
	return r
}

func TestNewStore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setupFixture(t)
		assert.NotNil(t, f.store)
	})

	t.Run("nil db", func(t *testing.T) {
		store, err := NewStore(nil)
		assert.Error(t, err)
		assert.Nil(t, store)
	})
}

func TestStore_SaveAndGet(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	want := sampleReport("r1")

	require.NoError(t, f.store.Save(ctx, want))

	got, err := f.store.Get(ctx, "r1")
	require.NoError(t, err)

	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.URL, got.URL)
	assert.Equal(t, want.Score, got.Score)
	assert.Equal(t, want.Deductions, got.Deductions)
	assert.Equal(t, want.SkippedChecks, got.SkippedChecks)
	assert.Equal(t, want.Issues[domain.CategoryBrokenLinks], got.Issues[domain.CategoryBrokenLinks])
	assert.Equal(t, want.Issues[domain.CategoryOutdatedHTML], got.Issues[domain.CategoryOutdatedHTML])
	assert.Empty(t, got.Issues[domain.CategoryExposedKeys])
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))

	t.Run("save replaces", func(t *testing.T) {
		edited := want.Clone()
		edited.Issues[domain.CategoryOutdatedHTML] = nil
		scoring.Apply(&edited)
		require.NoError(t, f.store.Save(ctx, edited))

		got, err := f.store.Get(ctx, "r1")
		require.NoError(t, err)
		assert.Empty(t, got.Issues[domain.CategoryOutdatedHTML])
		assert.Equal(t, edited.Score, got.Score)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := f.store.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})
}

func TestStore_GetRescores(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Save(ctx, sampleReport("r1")))

	_, err := f.db.Exec(`UPDATE reports SET score = 3 WHERE id = ?`, "r1")
	require.NoError(t, err)

	got, err := f.store.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 90, got.Score)
}

func TestStore_ListAndDelete(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	older := sampleReport("r1")
	newer := sampleReport("r2")
	newer.UpdatedAt = older.UpdatedAt.Add(time.Hour)
	require.NoError(t, f.store.Save(ctx, older))
	require.NoError(t, f.store.Save(ctx, newer))

	reports, err := f.store.List(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "r2", reports[0].ID)
	assert.Len(t, reports[1].Issues[domain.CategoryBrokenLinks], 2)

	require.NoError(t, f.store.Delete(ctx, "r1"))
	assert.ErrorIs(t, f.store.Delete(ctx, "r1"), domain.ErrReportNotFound)

	reports, err = f.store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestStore_SaveWithContextTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	tx, err := f.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, f.store.Save(duckdb.WithTransaction(ctx, tx), sampleReport("r1")))
	require.NoError(t, tx.Rollback())

	_, err = f.store.Get(ctx, "r1")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestStore_SaveRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteIssuesQuery)).WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteReportQuery)).WithArgs("r1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertReportQuery)).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	store, err := NewStore(db)
	require.NoError(t, err)

	err = store.Save(context.Background(), sampleReport("r1"))
	assert.ErrorContains(t, err, "insert report")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectReportColumns)).
		WithArgs("r1").
		WillReturnError(errors.New("connection reset"))

	store, err := NewStore(db)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "r1")
	assert.ErrorContains(t, err, "connection reset")
	assert.NotErrorIs(t, err, domain.ErrReportNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveRequiresID(t *testing.T) {
	f := setupFixture(t)
	assert.Error(t, f.store.Save(context.Background(), domain.Report{}))
}
