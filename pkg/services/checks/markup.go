package checks

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/novamkr/web-vitals/pkg/document"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

var deprecatedTags = []string{"font", "center", "marquee", "blink"}

// HTTPSCompliance lists each distinct http:// URL referenced by a, img, link
// or script. href wins over src when both are set.
func HTTPSCompliance(doc *document.Document) []domain.Issue {
	var issues []domain.Issue
	seen := map[string]bool{}
	for _, n := range doc.FindAll("a", "img", "link", "script") {
		url := document.AttrValue(n, "href")
		if url == "" {
			url = document.AttrValue(n, "src")
		}
		if !strings.HasPrefix(url, "http://") || seen[url] {
			continue
		}
		seen[url] = true
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryHTTPS,
			Description: "Insecure resource: " + url,
			Detail:      &domain.IssueDetail{URL: url},
		})
	}
	return issues
}

// OutdatedHTML reports every occurrence of a deprecated presentational tag.
func OutdatedHTML(doc *document.Document) []domain.Issue {
	var issues []domain.Issue
	for _, tag := range deprecatedTags {
		for range doc.FindAll(tag) {
			issues = append(issues, domain.Issue{
				Category:    domain.CategoryOutdatedHTML,
				Description: fmt.Sprintf("Deprecated tag <%s> found.", tag),
			})
		}
	}
	return issues
}

// ResponsiveViewport checks for a viewport meta tag sized to the device.
func ResponsiveViewport(doc *document.Document) []domain.Issue {
	meta := doc.Find(func(n *html.Node) bool {
		return n.Data == "meta" && strings.EqualFold(document.AttrValue(n, "name"), "viewport")
	})
	if meta == nil {
		return []domain.Issue{{
			Category:    domain.CategoryResponsiveViewport,
			Description: "No responsive 'viewport' meta tag.",
		}}
	}
	content := strings.ToLower(document.AttrValue(meta, "content"))
	if strings.Contains(content, "width=device-width") {
		return nil
	}
	return []domain.Issue{{
		Category:    domain.CategoryResponsiveViewport,
		Description: fmt.Sprintf("Viewport meta tag present but possibly misconfigured: '%s'", content),
	}}
}

// LayoutTables flags pages with more than maxTables tables.
func LayoutTables(doc *document.Document, maxTables int) []domain.Issue {
	if len(doc.FindAll("table")) <= maxTables {
		return nil
	}
	return []domain.Issue{{
		Category:    domain.CategoryLayoutTables,
		Description: "Excessive <table> usage; possible legacy layout approach.",
	}}
}
