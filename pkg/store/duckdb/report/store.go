package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/novamkr/web-vitals/pkg/adapters"
	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/models/store"
	"github.com/novamkr/web-vitals/pkg/services/scoring"
	"github.com/novamkr/web-vitals/pkg/store/duckdb"
)

// Store persists reports in DuckDB. Reads always rescore the loaded issues;
// the stored score is informational only.
type Store interface {
	Save(ctx context.Context, report domain.Report) error
	Get(ctx context.Context, id string) (domain.Report, error)
	List(ctx context.Context) ([]domain.Report, error)
	Delete(ctx context.Context, id string) error
}

type reportStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *reportStore) conn(ctx context.Context) queryer {
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		return tx
	}
	return s.db
}

func (s *reportStore) inTx(ctx context.Context, fn func(q queryer) error) error {
	return duckdb.InTransaction(ctx, s.db, func(_ context.Context, tx *sql.Tx) error {
		return fn(tx)
	})
}

const (
	deleteIssuesQuery = `DELETE FROM report_issues WHERE report_id = ?`
	deleteReportQuery = `DELETE FROM reports WHERE id = ?`
	insertReportQuery = `
		INSERT INTO reports (
			id, title, url, author, score, deductions, skipped_checks, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertIssueQuery = `
		INSERT INTO report_issues (
			report_id, category, position, description, detail, note
		) VALUES (?, ?, ?, ?, ?, ?)`
	selectReportColumns = `
		SELECT id, title, url, author, score,
			CAST(deductions AS VARCHAR), CAST(skipped_checks AS VARCHAR),
			created_at, updated_at
		FROM reports`
	selectIssueColumns = `
		SELECT report_id, category, position, description, CAST(detail AS VARCHAR), note
		FROM report_issues`
)

func (s *reportStore) Save(ctx context.Context, r domain.Report) error {
	if r.ID == "" {
		return fmt.Errorf("report id is required")
	}
	row, issues := adapters.MapReportDomainToStore(r)

	deductions, err := json.Marshal(row.Deductions)
	if err != nil {
		return fmt.Errorf("marshal deductions: %w", err)
	}
	skipped, err := json.Marshal(row.SkippedChecks)
	if err != nil {
		return fmt.Errorf("marshal skipped checks: %w", err)
	}

	return s.inTx(ctx, func(q queryer) error {
		if _, err := q.ExecContext(ctx, deleteIssuesQuery, row.ID); err != nil {
			return fmt.Errorf("delete issues: %w", err)
		}
		if _, err := q.ExecContext(ctx, deleteReportQuery, row.ID); err != nil {
			return fmt.Errorf("delete report: %w", err)
		}
		if _, err := q.ExecContext(ctx, insertReportQuery,
			row.ID, row.Title, row.URL, row.Author, row.Score,
			string(deductions), string(skipped), row.CreatedAt, row.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		for _, issue := range issues {
			var detail sql.NullString
			if issue.Detail != nil {
				raw, err := json.Marshal(issue.Detail)
				if err != nil {
					return fmt.Errorf("marshal issue detail: %w", err)
				}
				detail = sql.NullString{String: string(raw), Valid: true}
			}
			if _, err := q.ExecContext(ctx, insertIssueQuery,
				issue.ReportID, issue.Category, issue.Position, issue.Description, detail, issue.Note,
			); err != nil {
				return fmt.Errorf("insert issue: %w", err)
			}
		}
		return nil
	})
}

func (s *reportStore) Get(ctx context.Context, id string) (domain.Report, error) {
	q := s.conn(ctx)
	row, err := scanReport(q.QueryRowContext(ctx, selectReportColumns+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Report{}, fmt.Errorf("report %s: %w", id, domain.ErrReportNotFound)
	}
	if err != nil {
		return domain.Report{}, fmt.Errorf("get report: %w", err)
	}

	rows, err := q.QueryContext(ctx, selectIssueColumns+` WHERE report_id = ? ORDER BY category, position`, id)
	if err != nil {
		return domain.Report{}, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()
	issues, err := scanIssues(rows)
	if err != nil {
		return domain.Report{}, err
	}

	report := adapters.MapReportStoreToDomain(row, issues)
	scoring.Apply(&report)
	return report, nil
}

func (s *reportStore) List(ctx context.Context) ([]domain.Report, error) {
	q := s.conn(ctx)
	rows, err := q.QueryContext(ctx, selectReportColumns+` ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	var reports []store.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	issueRows, err := q.QueryContext(ctx, selectIssueColumns+` ORDER BY report_id, category, position`)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer issueRows.Close()
	issues, err := scanIssues(issueRows)
	if err != nil {
		return nil, err
	}
	byReport := make(map[string][]store.Issue, len(reports))
	for _, i := range issues {
		byReport[i.ReportID] = append(byReport[i.ReportID], i)
	}

	res := make([]domain.Report, 0, len(reports))
	for _, r := range reports {
		report := adapters.MapReportStoreToDomain(r, byReport[r.ID])
		scoring.Apply(&report)
		res = append(res, report)
	}
	return res, nil
}

func (s *reportStore) Delete(ctx context.Context, id string) error {
	return s.inTx(ctx, func(q queryer) error {
		if _, err := q.ExecContext(ctx, deleteIssuesQuery, id); err != nil {
			return fmt.Errorf("delete issues: %w", err)
		}
		res, err := q.ExecContext(ctx, deleteReportQuery, id)
		if err != nil {
			return fmt.Errorf("delete report: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("report %s: %w", id, domain.ErrReportNotFound)
		}
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(row scanner) (store.Report, error) {
	var (
		r                   store.Report
		deductions, skipped sql.NullString
	)
	if err := row.Scan(&r.ID, &r.Title, &r.URL, &r.Author, &r.Score, &deductions, &skipped, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return store.Report{}, err
	}
	r.Deductions = map[string]int{}
	if deductions.Valid && deductions.String != "" {
		if err := json.Unmarshal([]byte(deductions.String), &r.Deductions); err != nil {
			return store.Report{}, fmt.Errorf("unmarshal deductions: %w", err)
		}
	}
	if skipped.Valid && skipped.String != "" && skipped.String != "null" {
		if err := json.Unmarshal([]byte(skipped.String), &r.SkippedChecks); err != nil {
			return store.Report{}, fmt.Errorf("unmarshal skipped checks: %w", err)
		}
	}
	return r, nil
}

func scanIssues(rows *sql.Rows) ([]store.Issue, error) {
	issues := make([]store.Issue, 0)
	for rows.Next() {
		var (
			i      store.Issue
			detail sql.NullString
			note   sql.NullString
		)
		if err := rows.Scan(&i.ReportID, &i.Category, &i.Position, &i.Description, &detail, &note); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		if detail.Valid && detail.String != "" {
			i.Detail = &store.IssueDetail{}
			if err := json.Unmarshal([]byte(detail.String), i.Detail); err != nil {
				return nil, fmt.Errorf("unmarshal issue detail: %w", err)
			}
		}
		i.Note = note.String
		issues = append(issues, i)
	}
	return issues, rows.Err()
}
