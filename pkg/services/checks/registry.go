package checks

import (
	"context"
	"fmt"
	"sync"

	"github.com/novamkr/web-vitals/pkg/document"
	"github.com/novamkr/web-vitals/pkg/fetch"
	"github.com/novamkr/web-vitals/pkg/models/domain"
)

// Env is everything a check may read.
type Env struct {
	Document *document.Document
	Fetcher  fetch.Fetcher
	Settings Settings
}

// Func detects the issues of one category.
type Func func(ctx context.Context, env Env) ([]domain.Issue, error)

// Check is a named detector bound to a category.
type Check struct {
	Name     string
	Category domain.Category
	Run      Func
}

// Registry holds checks in registration order.
type Registry interface {
	// Register appends a check; names must be unique
	Register(check Check) error
	// Checks returns the registered checks in order
	Checks() []Check
	// Get looks up a check by name
	Get(name string) (Check, bool)
}

type registry struct {
	mu     sync.RWMutex
	checks []Check
	byName map[string]int
}

func NewRegistry() Registry {
	return &registry{byName: make(map[string]int)}
}

func (r *registry) Register(check Check) error {
	if check.Name == "" {
		return fmt.Errorf("check name cannot be empty")
	}
	if check.Run == nil {
		return fmt.Errorf("check %q has no run function", check.Name)
	}
	if !check.Category.Valid() {
		return fmt.Errorf("check %q: %w: %q", check.Name, domain.ErrUnknownCategory, check.Category)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[check.Name]; exists {
		return fmt.Errorf("check %q is already registered", check.Name)
	}
	r.byName[check.Name] = len(r.checks)
	r.checks = append(r.checks, check)
	return nil
}

func (r *registry) Checks() []Check {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Check(nil), r.checks...)
}

func (r *registry) Get(name string) (Check, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byName[name]
	if !ok {
		return Check{}, false
	}
	return r.checks[i], true
}

// documentOnly adapts a check that needs nothing but the document.
func documentOnly(fn func(*document.Document) []domain.Issue) Func {
	return func(_ context.Context, env Env) ([]domain.Issue, error) {
		return fn(env.Document), nil
	}
}

// DefaultRegistry returns the fourteen built-in checks in report order.
func DefaultRegistry() Registry {
	r := NewRegistry()
	for _, c := range []Check{
		{Name: "exposed_keys", Category: domain.CategoryExposedKeys, Run: documentOnly(ExposedKeys)},
		{Name: "accessibility_508", Category: domain.CategoryAccessibility508, Run: documentOnly(Accessibility508)},
		{Name: "keyboard_accessibility", Category: domain.CategoryKeyboardAccessibility, Run: documentOnly(KeyboardAccessibility)},
		{Name: "broken_links", Category: domain.CategoryBrokenLinks, Run: func(ctx context.Context, env Env) ([]domain.Issue, error) {
			return BrokenLinks(ctx, env.Document, env.Fetcher, env.Settings)
		}},
		{Name: "clickable_images", Category: domain.CategoryClickableImages, Run: documentOnly(ClickableImages)},
		{Name: "color_contrast", Category: domain.CategoryColorContrast, Run: func(ctx context.Context, env Env) ([]domain.Issue, error) {
			return ColorContrast(ctx, env.Document, env.Fetcher, env.Settings)
		}},
		{Name: "missing_aria", Category: domain.CategoryMissingARIA, Run: documentOnly(MissingARIA)},
		{Name: "large_images", Category: domain.CategoryLargeImages, Run: func(ctx context.Context, env Env) ([]domain.Issue, error) {
			return LargeImages(ctx, env.Document, env.Fetcher, env.Settings)
		}},
		{Name: "https_compliance", Category: domain.CategoryHTTPS, Run: documentOnly(HTTPSCompliance)},
		{Name: "outdated_html", Category: domain.CategoryOutdatedHTML, Run: documentOnly(OutdatedHTML)},
		{Name: "missing_alt", Category: domain.CategoryMissingAlt, Run: documentOnly(MissingAlt)},
		{Name: "responsive_viewport", Category: domain.CategoryResponsiveViewport, Run: documentOnly(ResponsiveViewport)},
		{Name: "modern_doctype", Category: domain.CategoryModernDoctype, Run: func(_ context.Context, env Env) ([]domain.Issue, error) {
			return ModernDoctype(env.Document, env.Settings.DoctypePrefix), nil
		}},
		{Name: "layout_tables", Category: domain.CategoryLayoutTables, Run: func(_ context.Context, env Env) ([]domain.Issue, error) {
			return LayoutTables(env.Document, env.Settings.MaxTables), nil
		}},
	} {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
	return r
}
