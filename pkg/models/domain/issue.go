package domain

// Issue is a single finding. Only Note changes after detection.
type Issue struct {
	Category    Category
	Description string
	Detail      *IssueDetail
	Note        string
}

// IssueDetail carries the structured payload of network and contrast findings.
type IssueDetail struct {
	URL        string
	StatusCode int
	Reason     string // status code or transport failure kind for broken links
	SizeKB     float64
	Ratio      float64
	Snippet    string
}

func cloneIssues(src []Issue) []Issue {
	if src == nil {
		return nil
	}
	out := make([]Issue, len(src))
	for i, issue := range src {
		out[i] = issue
		if issue.Detail != nil {
			d := *issue.Detail
			out[i].Detail = &d
		}
	}
	return out
}
