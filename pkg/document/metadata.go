package document

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

const urlNotFound = "URL not found"

var representativeURL = regexp.MustCompile(`^https://.*\.(com|org|gov|edu|net)(/.*)?$`)

// Metadata describes the audited page.
type Metadata struct {
	Title string
	URL   string
}

// Metadata extracts the page title and the best guess at its canonical URL:
// link[rel=canonical], then meta[property=og:url], then the first anchor.
// Missing values are replaced with untitled and notFound.
func (d *Document) Metadata(untitled, notFound string) Metadata {
	meta := Metadata{Title: untitled, URL: urlNotFound}

	if t := d.FindTag("title"); t != nil {
		meta.Title = strings.TrimSpace(Text(t))
	}

	if link := d.Find(func(n *html.Node) bool {
		return n.Data == "link" && hasToken(AttrValue(n, "rel"), "canonical")
	}); link != nil {
		if href, ok := Attr(link, "href"); ok {
			meta.URL = href
		}
	} else if og := d.Find(func(n *html.Node) bool {
		return n.Data == "meta" && AttrValue(n, "property") == "og:url"
	}); og != nil {
		if content, ok := Attr(og, "content"); ok {
			meta.URL = content
		}
	} else if a := d.Find(func(n *html.Node) bool {
		return n.Data == "a" && HasAttr(n, "href")
	}); a != nil {
		meta.URL = AttrValue(a, "href")
	}

	if !representativeURL.MatchString(meta.URL) {
		if strings.Contains(meta.URL, urlNotFound) || strings.HasPrefix(meta.URL, "#") {
			meta.URL = notFound
		}
	}
	return meta
}

func hasToken(list, token string) bool {
	for _, f := range strings.Fields(list) {
		if strings.EqualFold(f, token) {
			return true
		}
	}
	return false
}
