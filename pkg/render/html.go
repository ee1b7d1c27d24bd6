package render

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/skip2/go-qrcode"

	"github.com/novamkr/web-vitals/pkg/adapters"
	"github.com/novamkr/web-vitals/pkg/models/api"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

var severityColors = map[api.Severity]string{
	api.SeverityHigh:   "#c0392b",
	api.SeverityMedium: "#b89a00",
	api.SeverityLow:    "#27ae60",
	api.SeverityInfo:   "#2980b9",
}

const emptyCategoryColor = "#555"

// HealthColor is red below 50, amber below 80 and green otherwise.
func HealthColor(score int) string {
	switch {
	case score < 50:
		return "#c0392b"
	case score < 80:
		return "#b89a00"
	default:
		return "#27ae60"
	}
}

type htmlIssue struct {
	Description string
	Note        template.HTML
}

type htmlCategory struct {
	Title       string
	Count       int
	Color       string
	Explanation string
	Issues      []htmlIssue
}

type htmlView struct {
	Report      api.Report
	HasURL      bool
	QRCode      template.URL
	HealthColor string
	Categories  []htmlCategory
}

type HTMLRenderer struct {
	tmpl  *template.Template
	notes *NotesRenderer
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tmpl:  template.Must(template.New("report").Parse(htmlReportTemplate)),
		notes: NewNotesRenderer(),
	}
}

func (h *HTMLRenderer) Extension() string {
	return ".html"
}

func (h *HTMLRenderer) Render(w io.Writer, report domain.Report) error {
	view := h.view(report)
	if err := h.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}
	return nil
}

func (h *HTMLRenderer) view(report domain.Report) htmlView {
	r := adapters.MapReportDomainToApi(report)
	v := htmlView{
		Report:      r,
		HasURL:      r.URL != domain.URLNotFound,
		HealthColor: HealthColor(r.Score),
	}
	if v.HasURL {
		v.QRCode = qrDataURL(r.URL)
	}
	for _, c := range r.Categories {
		hc := htmlCategory{
			Title:       c.Title,
			Count:       len(c.Issues),
			Color:       emptyCategoryColor,
			Explanation: c.Explanation,
		}
		if hc.Count > 0 {
			hc.Color = severityColors[c.Severity]
		}
		for _, i := range c.Issues {
			hc.Issues = append(hc.Issues, htmlIssue{Description: i.Description, Note: h.notes.Render(i.Note)})
		}
		v.Categories = append(v.Categories, hc)
	}
	return v
}

func qrDataURL(content string) template.URL {
	png, err := qrcode.Encode(content, qrcode.Medium, 160)
	if err != nil {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)) //nolint:gosec
}

const htmlReportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Website Analysis Report</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #1e1e1e; color: #c7c7c7; margin: 0; padding: 0; }
h1, h2, h3 { color: #fff; }
h1 { background-color: #252526; padding: 20px; margin: 0; text-align: center; }
header, main, footer { margin: 0 auto; max-width: 800px; padding: 20px; }
ul { list-style-type: none; padding: 0; }
li { background-color: #2d2d2d; margin: 5px 0; padding: 10px; border-radius: 5px; }
.description { font-style: italic; color: #9b9b9b; margin-top: 10px; }
.health-bar-container { background-color: rgba(255,255,255,0.1); border-radius: 5px; overflow: hidden; margin-top: 20px; cursor: pointer; position: relative; }
.health-bar { height: 30px; opacity: 0.8; }
.health-score-text { position: absolute; top: 0; left: 50%; transform: translateX(-50%); line-height: 30px; color: #fff; font-weight: bold; }
.collapsible { color: #fff; cursor: pointer; padding: 10px; width: 100%; border: none; text-align: left; font-size: 15px; margin-top: 10px; border-radius: 5px; }
.content { padding: 0 18px; max-height: 0; overflow: hidden; transition: max-height 0.2s ease-out; background-color: #2d2d30; margin-bottom: 10px; }
.note { font-style: italic; color: #9b9b9b; display: block; margin-top: 5px; }
.qr { float: right; }
</style>
</head>
<body>
<header><h1>Website Analysis Report</h1></header>
<main>
<h2>Website Analyzed</h2>
{{if .QRCode}}<img class="qr" src="{{.QRCode}}" alt="QR code for {{.Report.URL}}">{{end}}
<p>Title: {{.Report.Title}}</p>
<p>URL: {{if .HasURL}}<a href="{{.Report.URL}}" target="_blank" style="color: #c7c7c7;">{{.Report.URL}}</a>{{else}}{{.Report.URL}}{{end}}</p>
<p>Report generated by: {{.Report.Author}}</p>
<h2>Website Health Score</h2>
<div class="health-bar-container" onclick="toggleScoreDetails()">
<div class="health-bar" style="width: {{.Report.Score}}%; background-color: {{.HealthColor}};"></div>
<div class="health-score-text">{{.Report.Score}}/100</div>
</div>
<div id="score-details" style="display:none; margin-top: 10px;">
<p>Score is based on critical vs minor issues. Deductions below:</p>
<ul>{{range .Report.Deductions}}<li>{{.Label}}: {{.Points}} points</li>{{end}}</ul>
</div>
<p class="description">Click the bar above to view/hide deduction breakdown.</p>
{{range .Categories}}{{$cat := .}}
<button type="button" class="collapsible" style="background-color: {{.Color}};">{{.Title}} ({{.Count}})</button>
<div class="content">
{{if .Issues}}<p>{{.Count}} issue(s) found.</p>
<ul>{{range $i, $issue := .Issues}}<li>{{$issue.Description}}{{if eq $i 0}}<span class="note">{{$cat.Explanation}}</span>{{end}}{{if $issue.Note}}<span class="note">{{$issue.Note}}</span>{{end}}</li>{{end}}</ul>
{{else}}<p>0 issues found.</p>{{end}}
<p class="description">Please address these issues to improve security, compliance, and user experience.</p>
</div>
{{end}}
{{if .Report.SkippedChecks}}<h2>Checks Not Completed</h2>
<ul>{{range .Report.SkippedChecks}}<li>{{.Name}}: {{.Reason}}</li>{{end}}</ul>{{end}}
</main>
<footer><p>End of report.</p></footer>
<script>
function toggleScoreDetails() {
  var d = document.getElementById("score-details");
  d.style.display = (d.style.display === "" || d.style.display === "none") ? "block" : "none";
}
var coll = document.getElementsByClassName("collapsible");
for (var i = 0; i < coll.length; i++) {
  coll[i].addEventListener("click", function () {
    var content = this.nextElementSibling;
    content.style.maxHeight = content.style.maxHeight ? null : content.scrollHeight + "px";
  });
}
</script>
</body>
</html>
`
