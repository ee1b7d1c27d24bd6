package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/novamkr/web-vitals/pkg/adapters"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

type TableConfig struct {
	CategoryWidth  int
	CountWidth     int
	SeverityWidth  int
	DeductionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CategoryWidth:  32,
		CountWidth:     6,
		SeverityWidth:  8,
		DeductionWidth: 9,
	}
}

// TextRenderer prints a console table of categories followed by every
// issue and note.
type TextRenderer struct {
	config TableConfig
	tmpl   *template.Template
}

func NewTextRenderer(config TableConfig) *TextRenderer {
	t := &TextRenderer{config: config}
	funcMap := template.FuncMap{
		"formatRow": func(category string, count any, severity string, deduction any) string {
			return fmt.Sprintf("| %-*s | %*v | %-*s | %*v |",
				config.CategoryWidth, category,
				config.CountWidth, count,
				config.SeverityWidth, severity,
				config.DeductionWidth, deduction)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", config.CategoryWidth+2),
				strings.Repeat("-", config.CountWidth+2),
				strings.Repeat("-", config.SeverityWidth+2),
				strings.Repeat("-", config.DeductionWidth+2))
		},
	}
	t.tmpl = template.Must(template.New("report").Funcs(funcMap).Parse(textReportTemplate))
	return t
}

func (t *TextRenderer) Extension() string {
	return ".txt"
}

func (t *TextRenderer) Render(w io.Writer, report domain.Report) error {
	if err := t.tmpl.Execute(w, adapters.MapReportDomainToApi(report)); err != nil {
		return fmt.Errorf("failed to render text report: %w", err)
	}
	return nil
}

const textReportTemplate = `
Website Analysis Report: {{.Title}}
URL: {{.URL}}
Author: {{.Author}}
Health Score: {{.Score}}/100
{{if .Deductions}}
Deductions:
{{range .Deductions}}  - {{.Label}}: {{.Points}} points
{{end}}{{end}}
{{separator}}
{{formatRow "Category" "Issues" "Severity" "Deducted"}}
{{separator}}
{{range .Categories}}{{formatRow .Title (len .Issues) (printf "%s" .Severity) .Deduction}}
{{end}}{{separator}}
{{range .Categories}}{{if .Issues}}
=== {{.Title}} ===
{{.Explanation}}
{{range .Issues}}- {{.Description}}{{if .Note}}
  note: {{.Note}}{{end}}
{{end}}{{end}}{{end}}{{if .SkippedChecks}}
=== Checks Not Completed ===
{{range .SkippedChecks}}- {{.Name}}: {{.Reason}}
{{end}}{{end}}`
