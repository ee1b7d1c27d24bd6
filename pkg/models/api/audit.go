package api

import "time"

type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type IssueDetail struct {
	URL        string  `json:"url,omitempty" yaml:"url,omitempty"`
	StatusCode int     `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Reason     string  `json:"reason,omitempty" yaml:"reason,omitempty"`
	SizeKB     float64 `json:"size_kb,omitempty" yaml:"size_kb,omitempty"`
	Ratio      float64 `json:"contrast_ratio,omitempty" yaml:"contrast_ratio,omitempty"`
	Snippet    string  `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

type Issue struct {
	Description string       `json:"description" yaml:"description"`
	Detail      *IssueDetail `json:"detail,omitempty" yaml:"detail,omitempty"`
	Note        string       `json:"note,omitempty" yaml:"note,omitempty"`
}

type Category struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Explanation string   `json:"explanation" yaml:"explanation"`
	Deduction   int      `json:"deduction" yaml:"deduction"`
	Issues      []Issue  `json:"issues" yaml:"issues"`
}

type Deduction struct {
	Category string `json:"category" yaml:"category"`
	Label    string `json:"label" yaml:"label"`
	Points   int    `json:"points" yaml:"points"`
}

type SkippedCheck struct {
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
}

type Report struct {
	ID            string         `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	URL           string         `json:"url" yaml:"url"`
	Author        string         `json:"author" yaml:"author"`
	Score         int            `json:"score" yaml:"score"`
	Deductions    []Deduction    `json:"deductions" yaml:"deductions"`
	Categories    []Category     `json:"categories" yaml:"categories"`
	SkippedChecks []SkippedCheck `json:"skipped_checks,omitempty" yaml:"skipped_checks,omitempty"`
	CreatedAt     time.Time      `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" yaml:"updated_at"`
}

type ReportSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Score      int       `json:"score"`
	IssueCount int       `json:"issue_count"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RemoveIssuesRequest maps category id to the descriptions to delete.
type RemoveIssuesRequest struct {
	Issues map[string][]string `json:"issues"`
}

// AnnotateRequest maps category id and description to a note.
type AnnotateRequest struct {
	Notes map[string]map[string]string `json:"notes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
