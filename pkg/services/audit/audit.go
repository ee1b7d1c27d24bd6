package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/novamkr/web-vitals/pkg/document"
	"github.com/novamkr/web-vitals/pkg/fetch"
	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/services/checks"
	"github.com/novamkr/web-vitals/pkg/services/scoring"
)

// Auditor turns a document into an initial, scored report.
type Auditor struct {
	registry checks.Registry
	fetcher  fetch.Fetcher
	settings checks.Settings
	author   string
	now      func() time.Time
	newID    func() string
}

type Option func(*Auditor)

func WithRegistry(r checks.Registry) Option {
	return func(a *Auditor) { a.registry = r }
}

func WithSettings(s checks.Settings) Option {
	return func(a *Auditor) { a.settings = s }
}

func WithAuthor(author string) Option {
	return func(a *Auditor) {
		if author != "" {
			a.author = author
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Auditor) { a.now = now }
}

// NewAuditor builds an auditor over fetcher. A nil fetcher runs offline:
// network-bound checks are reported as skipped.
func NewAuditor(fetcher fetch.Fetcher, opts ...Option) *Auditor {
	a := &Auditor{
		registry: checks.DefaultRegistry(),
		fetcher:  fetcher,
		settings: checks.DefaultSettings(),
		author:   domain.DefaultAuthor,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AuditFile loads path and audits it. An unreadable document fails the run.
func (a *Auditor) AuditFile(ctx context.Context, path string) (domain.Report, error) {
	doc, err := document.Load(path)
	if err != nil {
		return domain.Report{}, fmt.Errorf("failed to load document: %w", err)
	}
	return a.Audit(ctx, doc), nil
}

// Audit runs every registered check against doc and scores the result.
func (a *Auditor) Audit(ctx context.Context, doc *document.Document) domain.Report {
	logger := zerolog.Ctx(ctx)
	start := a.now()

	result := checks.Run(ctx, a.registry, doc, a.fetcher, a.settings)
	meta := doc.Metadata(domain.UntitledWebsite, domain.URLNotFound)

	report := domain.Report{
		ID:            a.newID(),
		Title:         meta.Title,
		URL:           meta.URL,
		Author:        a.author,
		Issues:        result.Issues,
		SkippedChecks: result.Skipped,
		CreatedAt:     start.UTC(),
		UpdatedAt:     start.UTC(),
	}
	scoring.Apply(&report)

	logger.Info().
		Str("report_id", report.ID).
		Str("title", report.Title).
		Int("score", report.Score).
		Int("issues", report.IssueCount()).
		Int("skipped", len(report.SkippedChecks)).
		Msg("audit complete")
	return report
}
