package scoring

import (
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

const (
	MaxScore = 100
	MinScore = 0
)

// Result is the outcome of scoring an issue set.
type Result struct {
	Score      int
	Deductions domain.Deductions
}

// Score computes the health score of issues. It starts from MaxScore,
// subtracts each category's deduction and clamps the total into
// [MinScore, MaxScore]. Every known category appears in the breakdown,
// with 0 for empty ones.
func Score(issues map[domain.Category][]domain.Issue) Result {
	deductions := make(domain.Deductions, len(domain.Categories))
	for _, category := range domain.Categories {
		deductions[category] = Deduct(category, issues[category])
	}

	score := MaxScore - deductions.Total()
	if score < MinScore {
		score = MinScore
	}
	if score > MaxScore {
		score = MaxScore
	}

	return Result{Score: score, Deductions: deductions}
}

// Deduct returns the points removed for a single category.
func Deduct(category domain.Category, issues []domain.Issue) int {
	rule, ok := category.Rule()
	if !ok {
		return 0
	}

	count := 0
	for _, issue := range issues {
		if rule.Counts == nil || rule.Counts(issue) {
			count++
		}
	}
	if count == 0 {
		return 0
	}

	if rule.Flat > 0 {
		return rule.Flat
	}
	return min(count*rule.PerIssue, rule.Cap)
}

// Apply recomputes r's score and deductions from its issues.
func Apply(r *domain.Report) {
	res := Score(r.Issues)
	r.Score = res.Score
	r.Deductions = res.Deductions
}
