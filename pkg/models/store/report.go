package store

import "time"

type Report struct {
	ID            string
	Title         string
	URL           string
	Author        string
	Score         int
	Deductions    map[string]int
	SkippedChecks []SkippedCheck
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SkippedCheck struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

type Issue struct {
	ReportID    string
	Category    string
	Position    int
	Description string
	Detail      *IssueDetail
	Note        string
}

type IssueDetail struct {
	URL        string  `json:"url,omitempty"`
	StatusCode int     `json:"status_code,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	SizeKB     float64 `json:"size_kb,omitempty"`
	Ratio      float64 `json:"ratio,omitempty"`
	Snippet    string  `json:"snippet,omitempty"`
}
