package checks

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/novamkr/web-vitals/pkg/document"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

var nativelyFocusable = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"textarea": true,
	"select":   true,
}

// Accessibility508 reports a missing html lang and a missing main landmark.
func Accessibility508(doc *document.Document) []domain.Issue {
	var issues []domain.Issue
	if root := doc.FindTag("html"); root != nil && document.AttrValue(root, "lang") == "" {
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryAccessibility508,
			Description: "Missing 'lang' attribute in <html>.",
		})
	}
	if !hasMainLandmark(doc) {
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryAccessibility508,
			Description: "Missing <main> or role='main' for primary content.",
		})
	}
	return issues
}

func hasMainLandmark(doc *document.Document) bool {
	return doc.Find(func(n *html.Node) bool {
		return n.Data == "main" || document.AttrValue(n, "role") == "main"
	}) != nil
}

// KeyboardAccessibility flags onclick handlers on elements that cannot take
// focus.
func KeyboardAccessibility(doc *document.Document) []domain.Issue {
	var issues []domain.Issue
	for _, n := range doc.FindAllFunc(func(n *html.Node) bool { return document.HasAttr(n, "onclick") }) {
		if nativelyFocusable[n.Data] || document.HasAttr(n, "tabindex") {
			continue
		}
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryKeyboardAccessibility,
			Description: fmt.Sprintf("Possible keyboard trap: <%s> has onclick, no tabIndex.", n.Data),
		})
	}
	return issues
}

// ClickableImages flags images inside an anchor without href, and images
// with onclick outside any anchor.
func ClickableImages(doc *document.Document) []domain.Issue {
	var issues []domain.Issue
	for _, img := range doc.FindAll("img") {
		src := document.AttrValue(img, "src")
		anchor := document.Ancestor(img, "a")
		switch {
		case anchor != nil && document.AttrValue(anchor, "href") == "":
			issues = append(issues, domain.Issue{
				Category:    domain.CategoryClickableImages,
				Description: "Clickable image without real link: " + src,
				Detail:      &domain.IssueDetail{URL: src},
			})
		case anchor == nil && document.AttrValue(img, "onclick") != "":
			issues = append(issues, domain.Issue{
				Category:    domain.CategoryClickableImages,
				Description: "Image onclick without anchor/href: " + src,
				Detail:      &domain.IssueDetail{URL: src},
			})
		}
	}
	return issues
}

// MissingARIA flags interactive elements with no accessible name. Anchors
// without href are not interactive and are ignored.
func MissingARIA(doc *document.Document) []domain.Issue {
	var issues []domain.Issue
	for _, n := range doc.FindAll("button", "a", "input", "select", "textarea") {
		if n.Data == "a" && document.AttrValue(n, "href") == "" {
			continue
		}
		if accessibleName(n) != "" {
			continue
		}
		issues = append(issues, domain.Issue{
			Category: domain.CategoryMissingARIA,
			Description: fmt.Sprintf("Missing accessible name: <%s id='%s' class='%s'>",
				n.Data, document.AttrValue(n, "id"), strings.Join(document.Classes(n), " ")),
		})
	}
	return issues
}

func accessibleName(n *html.Node) string {
	for _, key := range []string{"aria-label", "aria-labelledby", "alt", "title"} {
		if v := document.AttrValue(n, key); v != "" {
			return v
		}
	}
	return strings.TrimSpace(document.Text(n))
}

// MissingAlt flags images without alt text that are not hidden from
// assistive technology.
func MissingAlt(doc *document.Document) []domain.Issue {
	var issues []domain.Issue
	for _, img := range doc.FindAll("img") {
		if document.AttrValue(img, "alt") != "" ||
			document.AttrValue(img, "aria-hidden") == "true" ||
			document.AttrValue(img, "role") == "presentation" {
			continue
		}
		src := document.AttrValue(img, "src")
		issues = append(issues, domain.Issue{
			Category:    domain.CategoryMissingAlt,
			Description: "Image missing alt text: " + src,
			Detail:      &domain.IssueDetail{URL: src},
		})
	}
	return issues
}
