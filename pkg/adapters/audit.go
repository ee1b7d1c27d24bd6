package adapters

import (
	"github.com/novamkr/web-vitals/pkg/models/api"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityLow:
		return api.SeverityLow
	case domain.SeverityMedium:
		return api.SeverityMedium
	case domain.SeverityHigh:
		return api.SeverityHigh
	default:
		return api.SeverityInfo
	}
}

func MapIssueDomainToApi(i domain.Issue) api.Issue {
	res := api.Issue{
		Description: i.Description,
		Note:        i.Note,
	}
	if i.Detail != nil {
		res.Detail = &api.IssueDetail{
			URL:        i.Detail.URL,
			StatusCode: i.Detail.StatusCode,
			Reason:     i.Detail.Reason,
			SizeKB:     i.Detail.SizeKB,
			Ratio:      i.Detail.Ratio,
			Snippet:    i.Detail.Snippet,
		}
	}
	return res
}

// MapReportDomainToApi lists every category in display order and only the
// non-zero deductions.
func MapReportDomainToApi(r domain.Report) api.Report {
	res := api.Report{
		ID:         r.ID,
		Title:      r.Title,
		URL:        r.URL,
		Author:     r.Author,
		Score:      r.Score,
		Deductions: []api.Deduction{},
		Categories: make([]api.Category, 0, len(domain.Categories)),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	for _, c := range domain.Categories {
		info := c.Info()
		points := r.Deductions[c]
		if points > 0 {
			res.Deductions = append(res.Deductions, api.Deduction{
				Category: string(c),
				Label:    info.DeductionLabel,
				Points:   points,
			})
		}

		category := api.Category{
			ID:          string(c),
			Title:       info.Title,
			Severity:    MapSeverityDomainToApi(info.Severity),
			Explanation: info.Explanation,
			Deduction:   points,
			Issues:      make([]api.Issue, 0, len(r.Issues[c])),
		}
		for _, i := range r.Issues[c] {
			category.Issues = append(category.Issues, MapIssueDomainToApi(i))
		}
		res.Categories = append(res.Categories, category)
	}
	for _, s := range r.SkippedChecks {
		res.SkippedChecks = append(res.SkippedChecks, api.SkippedCheck{Name: s.Name, Reason: s.Reason})
	}
	return res
}

func MapReportSummaryDomainToApi(r domain.Report) api.ReportSummary {
	return api.ReportSummary{
		ID:         r.ID,
		Title:      r.Title,
		URL:        r.URL,
		Score:      r.Score,
		IssueCount: r.IssueCount(),
		UpdatedAt:  r.UpdatedAt,
	}
}

func MapRemoveIssuesApiToDomain(req api.RemoveIssuesRequest) map[domain.Category][]string {
	res := make(map[domain.Category][]string, len(req.Issues))
	for c, descriptions := range req.Issues {
		res[domain.Category(c)] = descriptions
	}
	return res
}

func MapAnnotateApiToDomain(req api.AnnotateRequest) map[domain.Category]map[string]string {
	res := make(map[domain.Category]map[string]string, len(req.Notes))
	for c, notes := range req.Notes {
		res[domain.Category(c)] = notes
	}
	return res
}
