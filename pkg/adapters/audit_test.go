package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novamkr/web-vitals/pkg/models/api"
	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/services/scoring"
)

func TestMapReportDomainToApi(t *testing.T) {
	r := domain.Report{
		ID: "r-1",
		Issues: map[domain.Category][]domain.Issue{
			domain.CategoryLayoutTables: {{Description: "Excessive <table> usage; possible legacy layout approach."}},
			domain.CategoryBrokenLinks: {{
				Description: "Broken link: https://x.com/a (404)",
				Detail:      &domain.IssueDetail{URL: "https://x.com/a", StatusCode: 404, Reason: "404"},
			}},
		},
		SkippedChecks: []domain.SkippedCheck{{Name: "large_images", Reason: "timeout"}},
	}
	scoring.Apply(&r)

	got := MapReportDomainToApi(r)

	require.Len(t, got.Categories, len(domain.Categories))
	for i, c := range domain.Categories {
		assert.Equal(t, string(c), got.Categories[i].ID)
	}
	assert.Equal(t, []api.Deduction{
		{Category: "broken_links", Label: "Broken Links Deducted", Points: 5},
		{Category: "layout_tables", Label: "Layout Tables Deducted", Points: 5},
	}, got.Deductions)
	assert.Equal(t, api.SeverityHigh, got.Categories[3].Severity)
	assert.Equal(t, &api.IssueDetail{URL: "https://x.com/a", StatusCode: 404, Reason: "404"}, got.Categories[3].Issues[0].Detail)
	assert.Equal(t, []api.SkippedCheck{{Name: "large_images", Reason: "timeout"}}, got.SkippedChecks)
	assert.Equal(t, 90, got.Score)
}

func TestMapReportStoreRoundTrip(t *testing.T) {
	r := domain.Report{
		ID: "r-2",
		Issues: map[domain.Category][]domain.Issue{
			domain.CategoryMissingAlt: {
				{Category: domain.CategoryMissingAlt, Description: "Image missing alt text: a.png", Note: "logo"},
				{Category: domain.CategoryMissingAlt, Description: "Image missing alt text: b.png"},
			},
		},
	}
	scoring.Apply(&r)

	row, issues := MapReportDomainToStore(r)
	require.Len(t, issues, 2)
	assert.Equal(t, 0, issues[0].Position)
	assert.Equal(t, 1, issues[1].Position)
	assert.Equal(t, "missing_alt", issues[1].Category)

	back := MapReportStoreToDomain(row, issues)
	assert.Len(t, back.Issues, len(domain.Categories))
	assert.Equal(t, r.Issues[domain.CategoryMissingAlt], back.Issues[domain.CategoryMissingAlt])
	assert.Equal(t, 5, back.Deductions[domain.CategoryMissingAlt])
}

func TestMapReviewRequests(t *testing.T) {
	remove := MapRemoveIssuesApiToDomain(api.RemoveIssuesRequest{Issues: map[string][]string{"missing_alt": {"a"}}})
	assert.Equal(t, []string{"a"}, remove[domain.CategoryMissingAlt])

	notes := MapAnnotateApiToDomain(api.AnnotateRequest{Notes: map[string]map[string]string{"https_compliance": {"a": "n"}}})
	assert.Equal(t, "n", notes[domain.CategoryHTTPS]["a"])
}
