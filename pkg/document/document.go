package document

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page together with the raw markup it came from.
type Document struct {
	raw  string
	root *html.Node
}

// Parse builds a Document from markup. The HTML5 parser recovers from
// malformed input, so an error means the reader itself failed.
func Parse(raw string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{raw: raw, root: root}, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return Parse(string(b))
}

// Raw returns the unparsed markup.
func (d *Document) Raw() string {
	return d.raw
}

// Prefix returns at most the first n bytes of the raw markup.
func (d *Document) Prefix(n int) string {
	if len(d.raw) <= n {
		return d.raw
	}
	return d.raw[:n]
}

func (d *Document) Root() *html.Node {
	return d.root
}

// FindAll returns every element whose tag is one of tags, in document order.
func (d *Document) FindAll(tags ...string) []*html.Node {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[strings.ToLower(t)] = true
	}
	return d.FindAllFunc(func(n *html.Node) bool {
		return want[n.Data]
	})
}

// FindAllFunc returns every element matching pred, in document order.
func (d *Document) FindAllFunc(pred func(*html.Node) bool) []*html.Node {
	return FindAllUnder(d.root, pred)
}

// Find returns the first element matching pred, or nil.
func (d *Document) Find(pred func(*html.Node) bool) *html.Node {
	return FindUnder(d.root, pred)
}

// FindTag returns the first element with the given tag, or nil.
func (d *Document) FindTag(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return d.Find(func(n *html.Node) bool { return n.Data == tag })
}

// FindAllUnder walks the subtree below root (root excluded) and collects
// matching elements.
func FindAllUnder(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && pred(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}

// FindUnder returns the first element below root matching pred.
func FindUnder(root *html.Node, pred func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && pred(c) {
			return c
		}
		if found := FindUnder(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// TextNodes returns every text node below root in document order.
func TextNodes(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return out
}
