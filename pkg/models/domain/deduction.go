package domain

// DeductionRule describes how a category's issue count turns into points
// removed from the health score. A rule is either capped-linear (PerIssue and
// Cap) or flat (Flat points once the category is non-empty).
type DeductionRule struct {
	PerIssue int
	Cap      int
	Flat     int
	// Counts filters the issues that contribute to the deduction. Nil counts
	// every issue.
	Counts func(Issue) bool
}

// Deductions maps each category to the points actually deducted for it.
type Deductions map[Category]int

// Total sums every deduction.
func (d Deductions) Total() int {
	total := 0
	for _, points := range d {
		total += points
	}
	return total
}

// BrokenLinkNotFound is the reason recorded for links answering 404. Only
// those links count toward the broken-link deduction; every other failure is
// listed but unscored.
const BrokenLinkNotFound = "404"

var deductionRules = map[Category]DeductionRule{
	CategoryExposedKeys:           {PerIssue: 17, Cap: 35},
	CategoryBrokenLinks:           {PerIssue: 5, Cap: 25, Counts: isNotFoundLink},
	CategoryAccessibility508:      {PerIssue: 10, Cap: 20},
	CategoryKeyboardAccessibility: {PerIssue: 10, Cap: 20},
	CategoryClickableImages:       {PerIssue: 5, Cap: 10},

	CategoryMissingARIA:        {Flat: 5},
	CategoryMissingAlt:         {Flat: 5},
	CategoryHTTPS:              {Flat: 5},
	CategoryOutdatedHTML:       {Flat: 5},
	CategoryLargeImages:        {Flat: 5},
	CategoryColorContrast:      {Flat: 5},
	CategoryResponsiveViewport: {Flat: 5},
	CategoryModernDoctype:      {Flat: 5},
	CategoryLayoutTables:       {Flat: 5},
}

// Rule returns the deduction rule for c.
func (c Category) Rule() (DeductionRule, bool) {
	rule, ok := deductionRules[c]
	return rule, ok
}

func isNotFoundLink(issue Issue) bool {
	return issue.Detail != nil && issue.Detail.Reason == BrokenLinkNotFound
}
