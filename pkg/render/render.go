package render

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/novamkr/web-vitals/pkg/models/domain"
)

type Format string

const (
	FormatHTML Format = "html"
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Renderer writes a projection of a final report. Renderers never modify
// the report.
type Renderer interface {
	Render(w io.Writer, report domain.Report) error
	Extension() string
}

func New(format Format) (Renderer, error) {
	switch format {
	case FormatHTML, "":
		return NewHTMLRenderer(), nil
	case FormatText:
		return NewTextRenderer(DefaultTableConfig()), nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatYAML:
		return &YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

var nonWord = regexp.MustCompile(`\W+`)

// BaseName derives a file stem from the report title: runs of non-word
// characters become underscores and "_report" is appended. Pages without a
// title are named after the "website_report" placeholder.
func BaseName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" || title == domain.UntitledWebsite {
		title = "website_report"
	}
	return nonWord.ReplaceAllString(title, "_") + "_report"
}

// FileName is BaseName plus the renderer's extension.
func FileName(title string, r Renderer) string {
	return BaseName(title) + r.Extension()
}

// FinalPath returns where a reviewed copy of path is written:
// "<base>_final<ext>" next to it.
func FinalPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_final" + ext
}
