package adapters

import (
	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/models/store"
)

func MapReportDomainToStore(r domain.Report) (store.Report, []store.Issue) {
	res := store.Report{
		ID:         r.ID,
		Title:      r.Title,
		URL:        r.URL,
		Author:     r.Author,
		Score:      r.Score,
		Deductions: make(map[string]int, len(r.Deductions)),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	for c, points := range r.Deductions {
		res.Deductions[string(c)] = points
	}
	for _, s := range r.SkippedChecks {
		res.SkippedChecks = append(res.SkippedChecks, store.SkippedCheck{Name: s.Name, Reason: s.Reason})
	}

	var issues []store.Issue
	for _, c := range domain.Categories {
		for pos, i := range r.Issues[c] {
			issues = append(issues, MapIssueDomainToStore(r.ID, c, pos, i))
		}
	}
	return res, issues
}

func MapIssueDomainToStore(reportID string, category domain.Category, position int, i domain.Issue) store.Issue {
	res := store.Issue{
		ReportID:    reportID,
		Category:    string(category),
		Position:    position,
		Description: i.Description,
		Note:        i.Note,
	}
	if i.Detail != nil {
		res.Detail = &store.IssueDetail{
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

// MapReportStoreToDomain rebuilds the issue map with every category
// present. Score and Deductions are copied as stored; callers rescore.
func MapReportStoreToDomain(r store.Report, issues []store.Issue) domain.Report {
	res := domain.Report{
		ID:         r.ID,
		Title:      r.Title,
		URL:        r.URL,
		Author:     r.Author,
		Score:      r.Score,
		Issues:     make(map[domain.Category][]domain.Issue, len(domain.Categories)),
		Deductions: make(domain.Deductions, len(r.Deductions)),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	for c, points := range r.Deductions {
		res.Deductions[domain.Category(c)] = points
	}
	for _, s := range r.SkippedChecks {
		res.SkippedChecks = append(res.SkippedChecks, domain.SkippedCheck{Name: s.Name, Reason: s.Reason})
	}
	for _, c := range domain.Categories {
		res.Issues[c] = []domain.Issue{}
	}
	for _, i := range issues {
		c := domain.Category(i.Category)
		res.Issues[c] = append(res.Issues[c], MapIssueStoreToDomain(i))
	}
	return res
}

func MapIssueStoreToDomain(i store.Issue) domain.Issue {
	res := domain.Issue{
		Category:    domain.Category(i.Category),
		Description: i.Description,
		Note:        i.Note,
	}
	if i.Detail != nil {
		res.Detail = &domain.IssueDetail{
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
