// Package query holds the pure filters applied to lists of names.
package query

import (
	"strings"

	"github.com/MrSnakeDoc/namax/internal/domain"
)

// Search keeps the names whose folded form contains query or starts with it.
// A blank query returns names unchanged. Relative order is preserved.
func Search(names []string, query string) []string {
	q := domain.Fold(query)
	if q == "" {
		return names
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		folded := domain.Fold(name)
		if strings.Contains(folded, q) || strings.HasPrefix(folded, q) {
			out = append(out, name)
		}
	}
	return out
}

// FilterByLength keeps names whose displayed length lies in [lo, hi].
// A nil bound leaves that side open.
func FilterByLength(names []string, lo, hi *int) []string {
	if lo == nil && hi == nil {
		return names
	}

	out := make([]string, 0, len(names))
	for _, name := range names {
		n := domain.DisplayLength(name)
		if lo != nil && n < *lo {
			continue
		}
		if hi != nil && n > *hi {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Apply runs Search, then FilterByLength with the filter bounds.
// Gender, popularity, meaning and origin carry no name metadata to match
// against and leave the result as is.
func Apply(names []string, f domain.SearchFilters) []string {
	lo, hi := f.MinLength, f.MaxLength
	return FilterByLength(Search(names, f.Query), &lo, &hi)
}

// Bounds converts optional integer bounds coming from a caller that uses
// zero as "unset".
func Bounds(minLen, maxLen int) (lo, hi *int) {
	if minLen > 0 {
		lo = &minLen
	}
	if maxLen > 0 {
		hi = &maxLen
	}
	return lo, hi
}
