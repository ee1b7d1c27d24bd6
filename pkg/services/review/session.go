package review

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/services/scoring"
)

// RemoveRequest lists, per category, the descriptions of issues to delete.
type RemoveRequest map[domain.Category][]string

// AnnotateRequest maps category and description to the note to store. An
// empty note clears an existing one.
type AnnotateRequest map[domain.Category]map[string]string

// CommitFunc persists an edited report before it becomes visible. A
// failing commit discards the edit.
type CommitFunc func(ctx context.Context, report domain.Report) error

// Session serializes review edits against a single report. Every edit is
// validated, applied to a copy, rescored and committed before the copy
// replaces the current state, so readers never see a partial edit.
type Session struct {
	mu     sync.Mutex
	report domain.Report
	commit CommitFunc
	now    func() time.Time
}

type SessionOption func(*Session)

func WithCommit(fn CommitFunc) SessionOption {
	return func(s *Session) { s.commit = fn }
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession takes ownership of a copy of report and rescores it.
func NewSession(report domain.Report, opts ...SessionOption) *Session {
	s := &Session{report: report.Clone(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.report.Issues == nil {
		s.report.Issues = map[domain.Category][]domain.Issue{}
	}
	scoring.Apply(&s.report)
	return s
}

// Snapshot returns a deep copy of the current report.
func (s *Session) Snapshot() domain.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report.Clone()
}

// RemoveIssues deletes every issue whose description is listed for its
// category. Descriptions that match nothing are ignored.
func (s *Session) RemoveIssues(ctx context.Context, req RemoveRequest) (domain.Report, error) {
	for category := range req {
		if !category.Valid() {
			return domain.Report{}, fmt.Errorf("remove issues: %w: %q", domain.ErrUnknownCategory, category)
		}
	}

	removed := 0
	report, err := s.edit(ctx, func(r *domain.Report) {
		for category, descriptions := range req {
			drop := make(map[string]bool, len(descriptions))
			for _, d := range descriptions {
				drop[d] = true
			}
			kept := make([]domain.Issue, 0, len(r.Issues[category]))
			for _, issue := range r.Issues[category] {
				if drop[issue.Description] {
					removed++
					continue
				}
				kept = append(kept, issue)
			}
			r.Issues[category] = kept
		}
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("remove issues: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("report_id", report.ID).
		Int("removed", removed).
		Int("score", report.Score).
		Msg("issues removed")
	return report, nil
}

// Annotate sets the note of every issue matching category and description.
// Score and deductions are unaffected.
func (s *Session) Annotate(ctx context.Context, req AnnotateRequest) (domain.Report, error) {
	for category := range req {
		if !category.Valid() {
			return domain.Report{}, fmt.Errorf("annotate: %w: %q", domain.ErrUnknownCategory, category)
		}
	}

	annotated := 0
	report, err := s.edit(ctx, func(r *domain.Report) {
		for category, notes := range req {
			issues := r.Issues[category]
			for i := range issues {
				if note, ok := notes[issues[i].Description]; ok {
					issues[i].Note = note
					annotated++
				}
			}
		}
	})
	if err != nil {
		return domain.Report{}, fmt.Errorf("annotate: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("report_id", report.ID).
		Int("annotated", annotated).
		Msg("issues annotated")
	return report, nil
}

func (s *Session) edit(ctx context.Context, mutate func(*domain.Report)) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.report.Clone()
	mutate(&next)
	scoring.Apply(&next)
	next.UpdatedAt = s.now().UTC()

	if s.commit != nil {
		if err := s.commit(ctx, next.Clone()); err != nil {
			return domain.Report{}, fmt.Errorf("failed to commit report: %w", err)
		}
	}
	s.report = next
	return next.Clone(), nil
}
