// Package selection applies a compiled tag filter to a catalog and enforces
// the occurrence limits the filter declares.
package selection

import (
	"log/slog"
	"sort"

	"github.com/boolean-maybe/tagfilter/catalog"
	"github.com/boolean-maybe/tagfilter/tagexpr"
)

// LimitViolation reports a limited tag used by more selected items than allowed
type LimitViolation struct {
	Tag   string   `yaml:"tag"`
	Limit int      `yaml:"limit"`
	Count int      `yaml:"count"`
	Items []string `yaml:"items"`
}

// Result is the outcome of running a filter over a catalog
type Result struct {
	Filter     string           `yaml:"filter"`
	Matched    []catalog.Item   `yaml:"matched"`
	Skipped    int              `yaml:"skipped"`
	Limits     map[string]int   `yaml:"limits,omitempty"`
	Counts     map[string]int   `yaml:"counts,omitempty"`
	Violations []LimitViolation `yaml:"violations,omitempty"`
}

// OK reports whether every declared limit was respected
func (r *Result) OK() bool {
	return len(r.Violations) == 0
}

// Run evaluates the filter against every item, then counts how many selected
// items carry each limited tag. A count above the limit is a violation.
func Run(items []catalog.Item, filter *tagexpr.Filter) *Result {
	limits := filter.Limits()
	result := &Result{
		Filter: filter.String(),
		Limits: limits,
		Counts: make(map[string]int, len(limits)),
	}

	users := make(map[string][]string, len(limits))
	for _, item := range items {
		tags := item.TagSet()
		if !filter.Matches(tags) {
			result.Skipped++
			continue
		}
		result.Matched = append(result.Matched, item)

		for tag := range limits {
			if tags.Contains(tag) {
				result.Counts[tag]++
				users[tag] = append(users[tag], item.Name)
			}
		}
	}

	for tag, limit := range limits {
		if count := result.Counts[tag]; count > limit {
			result.Violations = append(result.Violations, LimitViolation{
				Tag:   tag,
				Limit: limit,
				Count: count,
				Items: users[tag],
			})
		}
	}
	sort.Slice(result.Violations, func(i, j int) bool {
		return result.Violations[i].Tag < result.Violations[j].Tag
	})

	slog.Debug("selection complete",
		"filter", result.Filter,
		"matched", len(result.Matched),
		"skipped", result.Skipped,
		"violations", len(result.Violations))
	return result
}
