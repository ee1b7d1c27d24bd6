package checks

import (
	"regexp"
	"strings"

	"github.com/novamkr/web-vitals/pkg/document"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

type secretPattern struct {
	name    string
	pattern *regexp.Regexp
}

var secretPatterns = []secretPattern{
	{"AWS Access Key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"JWT", regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)},
	{"Google API Key", regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`)},
	{"Generic API Key", regexp.MustCompile(`api_key\s*=\s*['"][A-Za-z0-9_-]{16,}['"]`)},
	{"Slack Token", regexp.MustCompile(`xox[baprs]-[A-Za-z0-9-]{10,48}`)},
}

// ExposedKeys scans the raw markup for credential patterns, one issue per
// match, grouped by pattern family.
func ExposedKeys(doc *document.Document) []domain.Issue {
	var issues []domain.Issue
	raw := doc.Raw()
	for _, p := range secretPatterns {
		for _, match := range p.pattern.FindAllString(raw, -1) {
			issues = append(issues, domain.Issue{
				Category:    domain.CategoryExposedKeys,
				Description: "Exposed " + p.name + ": " + match,
				Detail:      &domain.IssueDetail{Snippet: match},
			})
		}
	}
	return issues
}

// ModernDoctype flags documents whose first prefix bytes lack the HTML5
// doctype.
func ModernDoctype(doc *document.Document, prefix int) []domain.Issue {
	if strings.Contains(strings.ToLower(doc.Prefix(prefix)), "<!doctype html>") {
		return nil
	}
	return []domain.Issue{{
		Category:    domain.CategoryModernDoctype,
		Description: "Site not using modern HTML5 doctype.",
	}}
}
