package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novamkr/web-vitals/pkg/fetch"
	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/services/config"
	"github.com/novamkr/web-vitals/pkg/services/scoring"
)

func setupEnv(t *testing.T) *Env {
	t.Helper()
	t.Setenv("WEBVITALS_STORE_PATH", filepath.Join(t.TempDir(), "webvitals.db"))
	cfg, err := config.Load("")
	require.NoError(t, err)
	return &Env{Config: cfg, Output: &bytes.Buffer{}}
}

func TestEnv_NewFetcher(t *testing.T) {
	tests := []struct {
		backend string
		wantErr bool
	}{
		{backend: "none"},
		{backend: ""},
		{backend: "memory"},
		{backend: "carrier-pigeon", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			env := setupEnv(t)
			env.Config.Cache.Backend = tc.backend

			f, closeFetcher, err := env.NewFetcher(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer closeFetcher()

			// Concurrent requests are collapsed even when nothing is cached.
			assert.IsType(t, &fetch.CachingFetcher{}, f)
		})
	}
}

func TestEnv_OpenReviews(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	report := domain.Report{
		ID:        "r-env",
		Title:     "Env",
		CreatedAt: now,
		UpdatedAt: now,
		Issues: map[domain.Category][]domain.Issue{
			domain.CategoryMissingAlt: {{Category: domain.CategoryMissingAlt, Description: "Image missing alt text: a.png"}},
		},
	}
	scoring.Apply(&report)

	reviews, closeDB, err := env.OpenReviews()
	require.NoError(t, err)
	_, err = reviews.Create(ctx, report)
	require.NoError(t, err)
	closeDB()

	reviews, closeDB, err = env.OpenReviews()
	require.NoError(t, err)
	defer closeDB()

	got, err := reviews.Get(ctx, "r-env")
	require.NoError(t, err)
	assert.Equal(t, 95, got.Score)

	require.NoError(t, reviews.Delete(ctx, "r-env"))
	_, err = reviews.Get(ctx, "r-env")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}
