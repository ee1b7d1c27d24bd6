package domain

import (
	"errors"
	"time"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrUnknownCategory = errors.New("unknown category")
)

const (
	DefaultAuthor   = "NOVAMKR, LLC"
	UntitledWebsite = "Untitled Website"
	URLNotFound     = "Valid URL not found"
)

// Report is the audit state handed to renderers and the review loop.
// Score and Deductions are derived from Issues by the scoring engine and must
// never be assigned anywhere else.
type Report struct {
	ID            string
	Title         string
	URL           string
	Author        string
	Issues        map[Category][]Issue
	Score         int
	Deductions    Deductions
	SkippedChecks []SkippedCheck
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SkippedCheck records a detector that failed and contributed no issues.
type SkippedCheck struct {
	Name   string
	Reason string
}

// IssueCount returns the number of issues across every category.
func (r Report) IssueCount() int {
	n := 0
	for _, issues := range r.Issues {
		n += len(issues)
	}
	return n
}

// Clone returns a deep copy that shares no mutable state with r.
func (r Report) Clone() Report {
	out := r
	out.Issues = make(map[Category][]Issue, len(r.Issues))
	for c, issues := range r.Issues {
		out.Issues[c] = cloneIssues(issues)
	}
	if r.Deductions != nil {
		out.Deductions = make(Deductions, len(r.Deductions))
		for c, p := range r.Deductions {
			out.Deductions[c] = p
		}
	}
	if r.SkippedChecks != nil {
		out.SkippedChecks = append([]SkippedCheck(nil), r.SkippedChecks...)
	}
	return out
}
