package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// NotesRenderer turns reviewer notes written in Markdown into sanitized
// HTML fragments. Raw HTML is passed through by goldmark and filtered by the
// bluemonday policy.
type NotesRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewNotesRenderer() *NotesRenderer {
	return &NotesRenderer{
		md:     goldmark.New(goldmark.WithRendererOptions(gmhtml.WithUnsafe())),
		policy: bluemonday.UGCPolicy(),
	}
}

func (n *NotesRenderer) Render(note string) template.HTML {
	note = strings.TrimSpace(note)
	if note == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := n.md.Convert([]byte(note), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(note)) //nolint:gosec
	}
	return template.HTML(n.policy.SanitizeBytes(buf.Bytes())) //nolint:gosec
}
