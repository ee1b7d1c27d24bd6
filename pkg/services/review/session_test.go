package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/services/scoring"
)

func issue(c domain.Category, desc string) domain.Issue {
	return domain.Issue{Category: c, Description: desc}
}

func sampleReport() domain.Report {
	return domain.Report{
		ID:    "r1",
		Title: "Sample",
		Issues: map[domain.Category][]domain.Issue{
			domain.CategoryExposedKeys: {
				issue(domain.CategoryExposedKeys, "Exposed JWT: a"),
				issue(domain.CategoryExposedKeys, "Exposed JWT: b"),
				issue(domain.CategoryExposedKeys, "Exposed JWT: b"),
			},
			domain.CategoryAccessibility508: {
				issue(domain.CategoryAccessibility508, "Missing 'lang' attribute in <html>."),
			},
			domain.CategoryMissingAlt: {
				issue(domain.CategoryMissingAlt, "Image missing alt text: a.png"),
			},
		},
	}
}

func TestNewSession_Rescores(t *testing.T) {
	r := sampleReport()
	r.Score = 99
	s := NewSession(r)

	snap := s.Snapshot()
	assert.Equal(t, 100-35-10-5, snap.Score)
	assert.Equal(t, scoring.Score(snap.Issues).Deductions, snap.Deductions)
}

func TestSession_RemoveIssues(t *testing.T) {
	clock := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	s := NewSession(sampleReport(), WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	report, err := s.RemoveIssues(ctx, RemoveRequest{
		domain.CategoryExposedKeys: {"Exposed JWT: b", "Exposed JWT: never"},
		domain.CategoryMissingAlt:  {"Image missing alt text: a.png"},
	})
	require.NoError(t, err)

	assert.Len(t, report.Issues[domain.CategoryExposedKeys], 1)
	assert.Empty(t, report.Issues[domain.CategoryMissingAlt])
	assert.Equal(t, 17, report.Deductions[domain.CategoryExposedKeys])
	assert.Equal(t, 0, report.Deductions[domain.CategoryMissingAlt])
	assert.Equal(t, 100-17-10, report.Score)
	assert.Equal(t, clock, report.UpdatedAt)

	// Removing then scoring equals scoring the remainder.
	assert.Equal(t, scoring.Score(report.Issues), scoring.Result{Score: report.Score, Deductions: report.Deductions})
	assert.Equal(t, report, s.Snapshot())
}

func TestSession_RemoveNeverLowersScore(t *testing.T) {
	s := NewSession(sampleReport())
	before := s.Snapshot().Score

	for _, c := range []domain.Category{domain.CategoryExposedKeys, domain.CategoryAccessibility508, domain.CategoryMissingAlt} {
		for _, i := range s.Snapshot().Issues[c] {
			after, err := s.RemoveIssues(context.Background(), RemoveRequest{c: {i.Description}})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, after.Score, before)
			before = after.Score
		}
	}
	assert.Equal(t, 100, before)
}

func TestSession_Annotate(t *testing.T) {
	s := NewSession(sampleReport())
	before := s.Snapshot()

	report, err := s.Annotate(context.Background(), AnnotateRequest{
		domain.CategoryExposedKeys: {"Exposed JWT: b": "test fixture", "missing": "ignored"},
	})
	require.NoError(t, err)

	keys := report.Issues[domain.CategoryExposedKeys]
	assert.Equal(t, "", keys[0].Note)
	assert.Equal(t, "test fixture", keys[1].Note)
	assert.Equal(t, "test fixture", keys[2].Note)
	assert.Equal(t, before.Score, report.Score)
	assert.Equal(t, before.Deductions, report.Deductions)

	report, err = s.Annotate(context.Background(), AnnotateRequest{
		domain.CategoryExposedKeys: {"Exposed JWT: b": ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "", report.Issues[domain.CategoryExposedKeys][1].Note)
}

func TestSession_UnknownCategoryAppliesNothing(t *testing.T) {
	s := NewSession(sampleReport())
	before := s.Snapshot()

	_, err := s.RemoveIssues(context.Background(), RemoveRequest{
		domain.CategoryExposedKeys: {"Exposed JWT: a"},
		"grammar":                  {"typo"},
	})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = s.Annotate(context.Background(), AnnotateRequest{"grammar": {"typo": "x"}})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	assert.Equal(t, before, s.Snapshot())
}

func TestSession_FailedCommitAppliesNothing(t *testing.T) {
	commitErr := errors.New("disk full")
	s := NewSession(sampleReport(), WithCommit(func(context.Context, domain.Report) error { return commitErr }))
	before := s.Snapshot()

	_, err := s.RemoveIssues(context.Background(), RemoveRequest{domain.CategoryExposedKeys: {"Exposed JWT: a"}})
	assert.ErrorIs(t, err, commitErr)
	assert.Equal(t, before, s.Snapshot())
}

func TestSession_SnapshotIsIsolated(t *testing.T) {
	s := NewSession(sampleReport())
	snap := s.Snapshot()
	snap.Issues[domain.CategoryExposedKeys][0].Note = "mutated"
	snap.Issues[domain.CategoryMissingAlt] = nil

	again := s.Snapshot()
	assert.Equal(t, "", again.Issues[domain.CategoryExposedKeys][0].Note)
	assert.Len(t, again.Issues[domain.CategoryMissingAlt], 1)
}

func TestSession_ConcurrentEdits(t *testing.T) {
	const n = 50
	r := domain.Report{ID: "r1", Issues: map[domain.Category][]domain.Issue{}}
	for i := 0; i < n; i++ {
		r.Issues[domain.CategoryExposedKeys] = append(r.Issues[domain.CategoryExposedKeys],
			issue(domain.CategoryExposedKeys, fmt.Sprintf("Exposed JWT: %d", i)))
	}
	r.Issues[domain.CategoryAccessibility508] = []domain.Issue{
		issue(domain.CategoryAccessibility508, "Missing 'lang' attribute in <html>."),
	}

	var commits atomic.Int32
	s := NewSession(r, WithCommit(func(context.Context, domain.Report) error {
		commits.Add(1)
		return nil
	}))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			got, err := s.RemoveIssues(ctx, RemoveRequest{
				domain.CategoryExposedKeys: {fmt.Sprintf("Exposed JWT: %d", i)},
			})
			if assert.NoError(t, err) {
				assert.Equal(t, scoring.Score(got.Issues).Score, got.Score)
			}
		}(i)
		go func(i int) {
			defer wg.Done()
			got, err := s.Annotate(ctx, AnnotateRequest{
				domain.CategoryAccessibility508: {"Missing 'lang' attribute in <html>.": fmt.Sprintf("note %d", i)},
			})
			if assert.NoError(t, err) {
				assert.Equal(t, scoring.Score(got.Issues).Score, got.Score)
			}
		}(i)
	}
	wg.Wait()

	final := s.Snapshot()
	assert.Empty(t, final.Issues[domain.CategoryExposedKeys])
	assert.Len(t, final.Issues[domain.CategoryAccessibility508], 1)
	assert.NotEmpty(t, final.Issues[domain.CategoryAccessibility508][0].Note)
	assert.Equal(t, 90, final.Score)
	assert.Equal(t, scoring.Score(final.Issues), scoring.Result{Score: final.Score, Deductions: final.Deductions})
	assert.EqualValues(t, 2*n, commits.Load())
}
