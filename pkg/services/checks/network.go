package checks

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/novamkr/web-vitals/pkg/document"
	"github.com/novamkr/web-vitals/pkg/fetch"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

func isAbsoluteHTTP(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// uniqueAttrURLs collects distinct absolute http(s) values of attr on the
// given tags, in document order.
func uniqueAttrURLs(doc *document.Document, attr string, tags ...string) []string {
	var urls []string
	seen := map[string]bool{}
	for _, n := range doc.FindAll(tags...) {
		url := strings.TrimSpace(document.AttrValue(n, attr))
		if !isAbsoluteHTTP(url) || seen[url] {
			continue
		}
		seen[url] = true
		urls = append(urls, url)
	}
	return urls
}

// probeAll calls probe for every url with at most limit in flight and
// returns the results in input order. It fails only when ctx ends.
func probeAll[T any](ctx context.Context, urls []string, limit int, probe func(context.Context, string) T) ([]T, error) {
	results := make([]T, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, url := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = probe(gctx, url)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// BrokenLinks HEAD-probes every absolute anchor href. Non-2xx responses are
// reported with their status code, transport failures with their kind.
func BrokenLinks(ctx context.Context, doc *document.Document, fetcher fetch.Fetcher, settings Settings) ([]domain.Issue, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("broken links: no fetcher configured")
	}
	settings = settings.withDefaults()
	logger := zerolog.Ctx(ctx)

	urls := uniqueAttrURLs(doc, "href", "a")
	results, err := probeAll(ctx, urls, settings.Concurrency, func(ctx context.Context, url string) *domain.IssueDetail {
		resp, err := fetcher.Head(ctx, url, settings.LinkTimeout)
		if err != nil {
			kind, ok := fetch.KindOf(err)
			if !ok {
				kind = fetch.KindUnexpected
			}
			logger.Debug().Err(err).Str("url", url).Msg("link probe failed")
			return &domain.IssueDetail{URL: url, Reason: string(kind)}
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		return &domain.IssueDetail{URL: url, StatusCode: resp.StatusCode, Reason: strconv.Itoa(resp.StatusCode)}
	})
	if err != nil {
		return nil, fmt.Errorf("broken links: %w", err)
	}

	var issues []domain.Issue
	for _, d := range results {
		if d == nil {
			continue
		}
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryBrokenLinks,
			Description: fmt.Sprintf("Broken link: %s (%s)", d.URL, d.Reason),
			Detail:      d,
		})
	}
	return issues, nil
}

// LargeImages HEAD-probes every absolute image src and flags those whose
// declared size exceeds the threshold. Failed probes are skipped.
func LargeImages(ctx context.Context, doc *document.Document, fetcher fetch.Fetcher, settings Settings) ([]domain.Issue, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("large images: no fetcher configured")
	}
	settings = settings.withDefaults()

	urls := uniqueAttrURLs(doc, "src", "img")
	results, err := probeAll(ctx, urls, settings.Concurrency, func(ctx context.Context, url string) *domain.IssueDetail {
		resp, err := fetcher.Head(ctx, url, settings.ImageTimeout)
		if err != nil || resp.StatusCode != http.StatusOK {
			return nil
		}
		size, ok := resp.ContentLength()
		if !ok || size <= settings.LargeImageBytes {
			return nil
		}
		return &domain.IssueDetail{URL: url, StatusCode: resp.StatusCode, SizeKB: float64(size) / 1024}
	})
	if err != nil {
		return nil, fmt.Errorf("large images: %w", err)
	}

	var issues []domain.Issue
	for _, d := range results {
		if d == nil {
			continue
		}
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryLargeImages,
			Description: fmt.Sprintf("Large image: %s (%.1f KB)", d.URL, d.SizeKB),
			Detail:      d,
		})
	}
	return issues, nil
}
