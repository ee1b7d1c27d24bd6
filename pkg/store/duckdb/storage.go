package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReportsTableSchema = `
	CREATE TABLE IF NOT EXISTS reports (
		id VARCHAR NOT NULL,
		title VARCHAR NOT NULL,
		url VARCHAR NOT NULL,
		author VARCHAR NOT NULL,
		score INTEGER NOT NULL,
		deductions JSON,
		skipped_checks JSON,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`
const IssuesTableSchema = `
	CREATE TABLE IF NOT EXISTS report_issues (
		report_id VARCHAR NOT NULL,
		category VARCHAR NOT NULL,
		position INTEGER NOT NULL,
		description VARCHAR NOT NULL,
		detail JSON,
		note VARCHAR
	);
`

var bootQueries = []string{
	ReportsTableSchema,
	IssuesTableSchema,
}

type Settings struct {
	DbPath string
}

func DefaultSettings() Settings {
	return Settings{DbPath: "webvitals.db"}
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb at %s: %w", settings.DbPath, err)
	}

	db := sql.OpenDB(c)
	return db, nil
}
