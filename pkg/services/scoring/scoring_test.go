package scoring

import (
	"fmt"
	"testing"

	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issuesOf(category domain.Category, n int) []domain.Issue {
	out := make([]domain.Issue, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Issue{Category: category, Description: fmt.Sprintf("%s #%d", category, i)})
	}
	return out
}

func brokenLink(url, reason string) domain.Issue {
	return domain.Issue{
		Category:    domain.CategoryBrokenLinks,
		Description: fmt.Sprintf("Broken link: %s (%s)", url, reason),
		Detail:      &domain.IssueDetail{URL: url, Reason: reason},
	}
}

func TestScore_Empty(t *testing.T) {
	res := Score(nil)

	assert.Equal(t, 100, res.Score)
	require.Len(t, res.Deductions, len(domain.Categories))
	for _, c := range domain.Categories {
		assert.Zero(t, res.Deductions[c], c.String())
	}
}

func TestScore_ExposedKeysAndMissingLang(t *testing.T) {
	res := Score(map[domain.Category][]domain.Issue{
		domain.CategoryExposedKeys:      issuesOf(domain.CategoryExposedKeys, 2),
		domain.CategoryAccessibility508: issuesOf(domain.CategoryAccessibility508, 1),
	})

	assert.Equal(t, 34, res.Deductions[domain.CategoryExposedKeys])
	assert.Equal(t, 10, res.Deductions[domain.CategoryAccessibility508])
	assert.Equal(t, 56, res.Score)
}

func TestDeduct_CappedCategories(t *testing.T) {
	tests := []struct {
		category domain.Category
		count    int
		expected int
	}{
		{domain.CategoryExposedKeys, 1, 17},
		{domain.CategoryExposedKeys, 3, 35},
		{domain.CategoryExposedKeys, 50, 35},
		{domain.CategoryAccessibility508, 1, 10},
		{domain.CategoryAccessibility508, 4, 20},
		{domain.CategoryKeyboardAccessibility, 2, 20},
		{domain.CategoryKeyboardAccessibility, 9, 20},
		{domain.CategoryClickableImages, 1, 5},
		{domain.CategoryClickableImages, 7, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d", tt.category, tt.count), func(t *testing.T) {
			assert.Equal(t, tt.expected, Deduct(tt.category, issuesOf(tt.category, tt.count)))
		})
	}
}

func TestDeduct_FlatCategories(t *testing.T) {
	flat := []domain.Category{
		domain.CategoryMissingARIA,
		domain.CategoryMissingAlt,
		domain.CategoryHTTPS,
		domain.CategoryOutdatedHTML,
		domain.CategoryLargeImages,
		domain.CategoryColorContrast,
		domain.CategoryResponsiveViewport,
		domain.CategoryModernDoctype,
		domain.CategoryLayoutTables,
	}

	for _, c := range flat {
		t.Run(c.String(), func(t *testing.T) {
			assert.Equal(t, 0, Deduct(c, nil))
			assert.Equal(t, 5, Deduct(c, issuesOf(c, 1)))
			assert.Equal(t, 5, Deduct(c, issuesOf(c, 1000)))
		})
	}
}

func TestDeduct_BrokenLinksCountOnlyNotFound(t *testing.T) {
	issues := []domain.Issue{
		brokenLink("https://a.example", "404"),
		brokenLink("https://b.example", "500"),
		brokenLink("https://c.example", "timeout"),
		brokenLink("https://d.example", "security"),
		{Category: domain.CategoryBrokenLinks, Description: "no detail"},
	}
	assert.Equal(t, 5, Deduct(domain.CategoryBrokenLinks, issues))

	many := make([]domain.Issue, 0, 10)
	for i := 0; i < 10; i++ {
		many = append(many, brokenLink(fmt.Sprintf("https://%d.example", i), "404"))
	}
	assert.Equal(t, 25, Deduct(domain.CategoryBrokenLinks, many))
}

func TestScore_ClampsAtZero(t *testing.T) {
	issues := map[domain.Category][]domain.Issue{}
	for _, c := range domain.Categories {
		issues[c] = issuesOf(c, 10)
	}
	issues[domain.CategoryBrokenLinks] = []domain.Issue{
		brokenLink("https://a.example", "404"), brokenLink("https://b.example", "404"),
		brokenLink("https://c.example", "404"), brokenLink("https://d.example", "404"),
		brokenLink("https://e.example", "404"),
	}

	res := Score(issues)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 35+25+20+20+10+9*5, res.Deductions.Total())
}

func TestScore_BoundedAndMonotone(t *testing.T) {
	for _, c := range domain.Categories {
		t.Run(c.String(), func(t *testing.T) {
			base := map[domain.Category][]domain.Issue{
				domain.CategoryExposedKeys: issuesOf(domain.CategoryExposedKeys, 1),
				domain.CategoryMissingAlt:  issuesOf(domain.CategoryMissingAlt, 2),
			}
			prev := Score(base).Score
			for n := 1; n <= 12; n++ {
				next := map[domain.Category][]domain.Issue{}
				for k, v := range base {
					next[k] = v
				}
				if c == domain.CategoryBrokenLinks {
					links := make([]domain.Issue, 0, n)
					for i := 0; i < n; i++ {
						links = append(links, brokenLink(fmt.Sprintf("https://%d.example", i), "404"))
					}
					next[c] = links
				} else {
					next[c] = issuesOf(c, n)
				}

				score := Score(next).Score
				assert.GreaterOrEqual(t, score, MinScore)
				assert.LessOrEqual(t, score, MaxScore)
				assert.LessOrEqual(t, score, prev, "count %d", n)
				prev = score
			}
		})
	}
}

func TestScore_Idempotent(t *testing.T) {
	issues := map[domain.Category][]domain.Issue{
		domain.CategoryExposedKeys:  issuesOf(domain.CategoryExposedKeys, 2),
		domain.CategoryOutdatedHTML: issuesOf(domain.CategoryOutdatedHTML, 3),
	}

	assert.Equal(t, Score(issues), Score(issues))
}

func TestApply(t *testing.T) {
	r := &domain.Report{Issues: map[domain.Category][]domain.Issue{
		domain.CategoryLayoutTables: issuesOf(domain.CategoryLayoutTables, 1),
	}}

	Apply(r)

	assert.Equal(t, 95, r.Score)
	assert.Equal(t, 5, r.Deductions[domain.CategoryLayoutTables])
}
