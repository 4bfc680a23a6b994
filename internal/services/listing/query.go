// Package listing implements the shared search, tab-filter and sort behavior
// behind every listing endpoint. Callers describe their collection with a
// Schema and the facade produces a deterministic ordered view.
package listing

import (
	"sort"
	"strings"
)

// Params is the caller-supplied view request. Zero values mean "no-op":
// empty Query matches everything, empty Filter keeps every category and an
// empty SortKey preserves insertion order.
type Params struct {
	Query   string
	Filter  string
	SortKey string
}

// Schema describes how the facade reads a collection element. SearchFields
// returns the text fields matched by Query; Category returns the value
// compared against Filter; Sorters maps sort keys to less functions.
type Schema[T any] struct {
	SearchFields func(T) []string
	Category     func(T) string
	Sorters      map[string]func(a, b T) bool
}

// FilterAll is the conventional tab value that disables category filtering.
const FilterAll = "all"

// Apply produces the filtered, sorted view of items. Search is a
// case-insensitive substring match over the schema's fields, filtering is an
// exact category match, and sorting is stable so ties keep insertion order.
// An empty result is a valid outcome, never an error.
func Apply[T any](items []T, p Params, schema Schema[T]) []T {
	out := make([]T, 0, len(items))
	query := strings.ToLower(strings.TrimSpace(p.Query))

	for _, item := range items {
		if query != "" && schema.SearchFields != nil && !matches(schema.SearchFields(item), query) {
			continue
		}
		if p.Filter != "" && p.Filter != FilterAll && schema.Category != nil {
			if !strings.EqualFold(schema.Category(item), p.Filter) {
				continue
			}
		}
		out = append(out, item)
	}

	if p.SortKey != "" {
		if less, ok := schema.Sorters[p.SortKey]; ok {
			sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
		}
	}
	return out
}

func matches(fields []string, query string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
