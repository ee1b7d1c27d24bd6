package document

import (
	"strings"

	"golang.org/x/net/html"
)

// Attr returns the value of attribute key on n and whether it is present.
// Attribute names are matched case-insensitively.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// AttrValue returns the attribute value or "" when absent.
func AttrValue(n *html.Node, key string) string {
	v, _ := Attr(n, key)
	return v
}

func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// Classes splits the class attribute into its names.
func Classes(n *html.Node) []string {
	return strings.Fields(AttrValue(n, "class"))
}

// Text concatenates every text node below n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Ancestor returns the closest enclosing element with the given tag, or nil.
func Ancestor(n *html.Node, tag string) *html.Node {
	if n == nil {
		return nil
	}
	tag = strings.ToLower(tag)
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return p
		}
	}
	return nil
}
