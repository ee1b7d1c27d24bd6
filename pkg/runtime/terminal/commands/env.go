package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/novamkr/web-vitals/pkg/cache"
	"github.com/novamkr/web-vitals/pkg/fetch"
	"github.com/novamkr/web-vitals/pkg/services/config"
	"github.com/novamkr/web-vitals/pkg/services/review"
	"github.com/novamkr/web-vitals/pkg/store/duckdb"
	reportstore "github.com/novamkr/web-vitals/pkg/store/duckdb/report"
)

// Env is the state shared by every command once the root command has
// loaded configuration.
type Env struct {
	Config *config.Config
	Output io.Writer
}

// NewFetcher builds the network client, wrapped in the configured probe
// cache. The returned close func releases the cache backend.
func (e *Env) NewFetcher(ctx context.Context) (fetch.Fetcher, func(), error) {
	var fetcher fetch.Fetcher = fetch.NewClient(e.Config.FetchConfig())

	settings := e.Config.CacheSettings()
	backend, err := cache.New(settings)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create probe cache: %w", err)
	}

	// Without a backend the wrapper still collapses concurrent requests.
	closeBackend := func() {}
	if backend != nil {
		zerolog.Ctx(ctx).Debug().Str("backend", settings.Backend).Msg("probe cache enabled")
		closeBackend = func() { _ = backend.Close() }
	}
	return fetch.NewCachingFetcher(fetcher, backend, settings.TTL), closeBackend, nil
}

// OpenStore opens the DuckDB report store.
func (e *Env) OpenStore() (reportstore.Store, *sql.DB, error) {
	db, err := duckdb.NewDB(e.Config.StoreSettings())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	store, err := reportstore.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to create report store: %w", err)
	}
	return store, db, nil
}

// OpenReviews opens the report store behind a review manager. The returned
// func closes the database.
func (e *Env) OpenReviews() (*review.Manager, func(), error) {
	store, db, err := e.OpenStore()
	if err != nil {
		return nil, nil, err
	}
	mgr, err := review.NewManager(store)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return mgr, func() { _ = db.Close() }, nil
}
