package classify

import (
	"strings"

	"documind/internal/model"
)

// Rule maps a keyword set to a category. Any keyword contained in the input triggers the rule.
type Rule struct {
	Category model.Category
	Keywords []string
}

// DefaultRules is the observed priority order. A title with both "financial" and "audit"
// is Financial because Financial is evaluated first.
var DefaultRules = []Rule{
	{Category: model.CategoryFinancial, Keywords: []string{"financial", "revenue", "budget"}},
	{Category: model.CategoryAuction, Keywords: []string{"auction", "property", "asset"}},
	{Category: model.CategoryCompliance, Keywords: []string{"compliance", "audit", "regulatory"}},
	{Category: model.CategoryHR, Keywords: []string{"hr", "staff", "employee"}},
}

// DefaultCategory is returned when no rule matches.
// TODO: switch to model.CategoryOther once the insights views stop assuming a financial fallback.
const DefaultCategory = model.CategoryFinancial

// Router assigns categories by case-insensitive substring matching, first match wins.
// It holds no mutable state and is safe for concurrent use.
type Router struct {
	rules []Rule
	def   model.Category
}

// Option customizes a Router.
type Option func(*Router)

// WithRules replaces the rule table.
func WithRules(rules []Rule) Option {
	return func(r *Router) { r.rules = rules }
}

// WithDefault sets the category returned when nothing matches.
func WithDefault(c model.Category) Option {
	return func(r *Router) { r.def = c }
}

// NewRouter builds a router over DefaultRules unless overridden.
func NewRouter(opts ...Option) *Router {
	r := &Router{rules: DefaultRules, def: DefaultCategory}
	for _, opt := range opts {
		opt(r)
	}
	// Keywords are lowered once so Route only lowers the input.
	lowered := make([]Rule, len(r.rules))
	for i, rule := range r.rules {
		kws := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			kws[j] = strings.ToLower(kw)
		}
		lowered[i] = Rule{Category: rule.Category, Keywords: kws}
	}
	r.rules = lowered
	return r
}

// Route returns the category for text. It is total: every string maps to a category.
func (r *Router) Route(text string) model.Category {
	c, _ := r.Matched(text)
	return c
}

// Matched reports the keyword that decided the category, or "" when the default applied.
func (r *Router) Matched(text string) (model.Category, string) {
	lower := strings.ToLower(text)
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Category, kw
			}
		}
	}
	return r.def, ""
}
