package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/novamkr/web-vitals/pkg/document"
	"github.com/novamkr/web-vitals/pkg/fetch"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

// Result is the outcome of a full detection pass.
type Result struct {
	Issues  map[domain.Category][]domain.Issue
	Skipped []domain.SkippedCheck
}

type checkOutcome struct {
	issues []domain.Issue
	err    error
}

// Run executes every check of the registry concurrently. A failing or
// panicking check is logged and reported in Skipped; it never cancels the
// others. Every category appears in Issues, empty when clean.
func Run(ctx context.Context, reg Registry, doc *document.Document, fetcher fetch.Fetcher, settings Settings) Result {
	logger := zerolog.Ctx(ctx)
	env := Env{Document: doc, Fetcher: fetcher, Settings: settings.withDefaults()}
	list := reg.Checks()
	outcomes := make([]checkOutcome, len(list))

	var g errgroup.Group
	for i, c := range list {
		g.Go(func() error {
			start := time.Now()
			issues, err := runSafely(ctx, c, env)
			outcomes[i] = checkOutcome{issues: issues, err: err}
			logger.Debug().
				Str("check", c.Name).
				Int("issues", len(issues)).
				Dur("elapsed", time.Since(start)).
				Msg("check finished")
			return nil
		})
	}
	_ = g.Wait()

	result := Result{Issues: make(map[domain.Category][]domain.Issue, len(domain.Categories))}
	for _, c := range domain.Categories {
		result.Issues[c] = []domain.Issue{}
	}
	for i, c := range list {
		out := outcomes[i]
		if out.err != nil {
			logger.Warn().Err(out.err).Str("check", c.Name).Msg("check skipped")
			result.Skipped = append(result.Skipped, domain.SkippedCheck{Name: c.Name, Reason: out.err.Error()})
			continue
		}
		for j := range out.issues {
			out.issues[j].Category = c.Category
		}
		result.Issues[c.Category] = append(result.Issues[c.Category], out.issues...)
	}
	return result
}

func runSafely(ctx context.Context, c Check, env Env) (issues []domain.Issue, err error) {
	defer func() {
		if r := recover(); r != nil {
			issues, err = nil, fmt.Errorf("check %s panicked: %v", c.Name, r)
		}
	}()
	return c.Run(ctx, env)
}
