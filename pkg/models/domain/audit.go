package domain

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	default:
		return "info"
	}
}

// Category is one of the fixed defect classes audited on a page.
type Category string

const (
	CategoryExposedKeys           Category = "exposed_keys"
	CategoryAccessibility508      Category = "accessibility_508"
	CategoryKeyboardAccessibility Category = "keyboard_accessibility"
	CategoryBrokenLinks           Category = "broken_links"
	CategoryClickableImages       Category = "clickable_images"
	CategoryColorContrast         Category = "color_contrast"
	CategoryMissingARIA           Category = "missing_aria"
	CategoryLargeImages           Category = "large_images"
	CategoryHTTPS                 Category = "https_compliance"
	CategoryOutdatedHTML          Category = "outdated_html"
	CategoryMissingAlt            Category = "missing_alt"
	CategoryResponsiveViewport    Category = "responsive_viewport"
	CategoryModernDoctype         Category = "modern_doctype"
	CategoryLayoutTables          Category = "layout_tables"
)

// Categories lists every category in report display order.
var Categories = []Category{
	CategoryExposedKeys,
	CategoryAccessibility508,
	CategoryKeyboardAccessibility,
	CategoryBrokenLinks,
	CategoryClickableImages,
	CategoryColorContrast,
	CategoryMissingARIA,
	CategoryLargeImages,
	CategoryHTTPS,
	CategoryOutdatedHTML,
	CategoryMissingAlt,
	CategoryResponsiveViewport,
	CategoryModernDoctype,
	CategoryLayoutTables,
}

// CategoryInfo holds the display-only attributes of a category.
type CategoryInfo struct {
	Title          string
	DeductionLabel string
	Explanation    string
	Severity       Severity
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryExposedKeys: {
		Title:          "Exposed API Keys/JWTs",
		DeductionLabel: "Exposed API Keys/JWTs Deducted",
		Explanation:    "Exposed keys/tokens let attackers access private resources.",
		Severity:       SeverityHigh,
	},
	CategoryAccessibility508: {
		Title:          "508 Accessibility Issues",
		DeductionLabel: "508 Accessibility Issues Deducted",
		Explanation:    "Accessibility shortfalls affect disabled users.",
		Severity:       SeverityHigh,
	},
	CategoryKeyboardAccessibility: {
		Title:          "Keyboard Accessibility Issues",
		DeductionLabel: "Keyboard Accessibility Issues Deducted",
		Explanation:    "All features must be usable without a mouse.",
		Severity:       SeverityHigh,
	},
	CategoryBrokenLinks: {
		Title:          "Broken Links",
		DeductionLabel: "Broken Links Deducted",
		Explanation:    "Dead links frustrate users and harm credibility.",
		Severity:       SeverityHigh,
	},
	CategoryClickableImages: {
		Title:          "Clickable Image Issues",
		DeductionLabel: "Clickable Image Issues Deducted",
		Explanation:    "Images that appear clickable but do nothing confuse visitors.",
		Severity:       SeverityMedium,
	},
	CategoryColorContrast: {
		Title:          "Color Contrast Issues",
		DeductionLabel: "Color Contrast Issues Deducted",
		Explanation:    "Low contrast text is hard to read.",
		Severity:       SeverityMedium,
	},
	CategoryMissingARIA: {
		Title:          "Missing ARIA Labels",
		DeductionLabel: "Missing ARIA Labels Deducted",
		Explanation:    "Screen readers rely on ARIA for clarity.",
		Severity:       SeverityMedium,
	},
	CategoryLargeImages: {
		Title:          "Large Images (over 200KB)",
		DeductionLabel: "Large Images Deducted",
		Explanation:    "Huge images slow page loads.",
		Severity:       SeverityLow,
	},
	CategoryHTTPS: {
		Title:          "HTTPS Compliance",
		DeductionLabel: "HTTPS Compliance Issues Deducted",
		Explanation:    "Insecure HTTP can expose user data.",
		Severity:       SeverityLow,
	},
	CategoryOutdatedHTML: {
		Title:          "Outdated HTML Tags",
		DeductionLabel: "Outdated HTML Tags Deducted",
		Explanation:    "Deprecated tags may break in modern browsers.",
		Severity:       SeverityLow,
	},
	CategoryMissingAlt: {
		Title:          "Missing Alt Text",
		DeductionLabel: "Missing Alt Text Deducted",
		Explanation:    "Alt text is crucial for accessibility.",
		Severity:       SeverityInfo,
	},
	CategoryResponsiveViewport: {
		Title:          "Responsive Viewport",
		DeductionLabel: "Responsive Viewport Deducted",
		Explanation:    "Mobile usability requires a proper viewport tag.",
		Severity:       SeverityLow,
	},
	CategoryModernDoctype: {
		Title:          "Modern Doctype",
		DeductionLabel: "Modern Doctype Deducted",
		Explanation:    "HTML5 doctype recommended for modern standards.",
		Severity:       SeverityLow,
	},
	CategoryLayoutTables: {
		Title:          "Layout Tables",
		DeductionLabel: "Layout Tables Deducted",
		Explanation:    "Tables for layout hamper responsiveness.",
		Severity:       SeverityLow,
	},
}

// Info returns the display attributes of c. Unknown categories yield a zero
// value with the raw identifier as title.
func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return CategoryInfo{Title: string(c), DeductionLabel: string(c), Severity: SeverityInfo}
}

func (c Category) Valid() bool {
	_, ok := categoryInfo[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}
