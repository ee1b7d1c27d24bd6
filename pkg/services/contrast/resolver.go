package contrast

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/novamkr/web-vitals/pkg/document"
)

const (
	DefaultForeground = "#000"
	DefaultBackground = "#fff"

	snippetLength = 30
)

var ignoredParents = map[string]bool{
	"style":  true,
	"script": true,
	"head":   true,
	"title":  true,
	"meta":   true,
}

// Resolver computes an element's own color declarations from a stylesheet.
// Only bare tag, #id and .class selectors are matched and nothing is
// inherited from ancestors.
type Resolver struct {
	sheet *Stylesheet
}

func NewResolver(sheet *Stylesheet) *Resolver {
	if sheet == nil {
		sheet = NewStylesheet()
	}
	return &Resolver{sheet: sheet}
}

// ComputedStyle merges declarations for n. Later layers override earlier
// ones per property: tag, then id, then class rules in stylesheet order,
// then the inline style attribute.
func (r *Resolver) ComputedStyle(n *html.Node) map[string]string {
	style := map[string]string{}
	merge := func(decls map[string]string) {
		for k, v := range decls {
			style[k] = v
		}
	}

	if decls, ok := r.sheet.Lookup(n.Data); ok {
		merge(decls)
	}
	if id := document.AttrValue(n, "id"); id != "" {
		if decls, ok := r.sheet.Lookup("#" + id); ok {
			merge(decls)
		}
	}
	if classes := document.Classes(n); len(classes) > 0 {
		has := make(map[string]bool, len(classes))
		for _, c := range classes {
			has[c] = true
		}
		for _, rule := range r.sheet.Rules() {
			if strings.HasPrefix(rule.Selector, ".") && has[rule.Selector[1:]] {
				merge(rule.Declarations)
			}
		}
	}
	if inline, ok := document.Attr(n, "style"); ok {
		merge(ParseDeclarations(inline))
	}
	return style
}

// Colors returns the resolved foreground and background of n. ok is false
// when either value cannot be parsed.
func (r *Resolver) Colors(n *html.Node) (fg, bg RGB, ok bool) {
	style := r.ComputedStyle(n)
	fgValue, bgValue := style["color"], style["background-color"]
	if fgValue == "" {
		fgValue = DefaultForeground
	}
	if bgValue == "" {
		bgValue = DefaultBackground
	}
	fg, fgOK := ParseColor(fgValue)
	bg, bgOK := ParseColor(bgValue)
	return fg, bg, fgOK && bgOK
}

// Finding is one text run below the contrast threshold.
type Finding struct {
	Ratio   float64
	Snippet string
	FG, BG  RGB
}

// Container returns main, else [role=main], else body.
func Container(doc *document.Document) *html.Node {
	if n := doc.FindTag("main"); n != nil {
		return n
	}
	if n := doc.Find(func(n *html.Node) bool { return document.AttrValue(n, "role") == "main" }); n != nil {
		return n
	}
	return doc.FindTag("body")
}

// Analyze evaluates every non-blank text node in the document's content
// container against the colors of its parent element.
func Analyze(doc *document.Document, sheet *Stylesheet) []Finding {
	container := Container(doc)
	if container == nil {
		return nil
	}
	resolver := NewResolver(sheet)

	var findings []Finding
	for _, txt := range document.TextNodes(container) {
		text := strings.TrimSpace(txt.Data)
		if text == "" {
			continue
		}
		parent := txt.Parent
		if parent == nil || parent.Type != html.ElementNode || ignoredParents[parent.Data] {
			continue
		}
		fg, bg, ok := resolver.Colors(parent)
		if !ok {
			continue
		}
		if ratio, fails := Fails(fg, bg); fails {
			findings = append(findings, Finding{Ratio: ratio, Snippet: snippet(text), FG: fg, BG: bg})
		}
	}
	return findings
}

func snippet(s string) string {
	r := []rune(s)
	if len(r) > snippetLength {
		r = r[:snippetLength]
	}
	return string(r)
}
