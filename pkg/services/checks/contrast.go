package checks

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/novamkr/web-vitals/pkg/document"
	"github.com/novamkr/web-vitals/pkg/fetch"
	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/services/contrast"
)

// ColorContrast evaluates text contrast using embedded style blocks and
// linked stylesheets. Stylesheets that cannot be fetched are skipped; a nil
// fetcher restricts the check to embedded styles.
func ColorContrast(ctx context.Context, doc *document.Document, fetcher fetch.Fetcher, settings Settings) ([]domain.Issue, error) {
	sheet, err := LoadStylesheet(ctx, doc, fetcher, settings)
	if err != nil {
		return nil, fmt.Errorf("color contrast: %w", err)
	}

	var issues []domain.Issue
	for _, f := range contrast.Analyze(doc, sheet) {
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryColorContrast,
			Description: fmt.Sprintf("Low contrast ratio (%.2f) for text: '%s'", f.Ratio, f.Snippet),
			Detail:      &domain.IssueDetail{Ratio: f.Ratio, Snippet: f.Snippet},
		})
	}
	return issues, nil
}

// LoadStylesheet indexes every <style> body followed by every linked
// stylesheet answering 200, both in document order.
func LoadStylesheet(ctx context.Context, doc *document.Document, fetcher fetch.Fetcher, settings Settings) (*contrast.Stylesheet, error) {
	settings = settings.withDefaults()
	sheet := contrast.NewStylesheet()
	for _, st := range doc.FindAll("style") {
		sheet.Add(document.Text(st))
	}
	if fetcher == nil {
		return sheet, nil
	}

	var urls []string
	seen := map[string]bool{}
	for _, link := range doc.FindAllFunc(isStylesheetLink) {
		href := strings.TrimSpace(document.AttrValue(link, "href"))
		if isAbsoluteHTTP(href) && !seen[href] {
			seen[href] = true
			urls = append(urls, href)
		}
	}

	logger := zerolog.Ctx(ctx)
	bodies, err := probeAll(ctx, urls, settings.Concurrency, func(ctx context.Context, url string) string {
		resp, err := fetcher.Get(ctx, url, settings.StylesheetTimeout)
		if err != nil {
			logger.Debug().Err(err).Str("url", url).Msg("stylesheet fetch failed")
			return ""
		}
		if resp.StatusCode != http.StatusOK {
			return ""
		}
		return string(resp.Body)
	})
	if err != nil {
		return nil, err
	}
	for _, body := range bodies {
		if body != "" {
			sheet.Add(body)
		}
	}
	return sheet, nil
}

func isStylesheetLink(n *html.Node) bool {
	if n.Data != "link" {
		return false
	}
	for _, rel := range strings.Fields(document.AttrValue(n, "rel")) {
		if strings.EqualFold(rel, "stylesheet") {
			return true
		}
	}
	return false
}
