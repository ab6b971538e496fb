package domain

import (
	"strings"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
)

// Fold normalizes a name for case-insensitive comparison: trimmed and
// Unicode case-folded. "LEO", " leo " and "Leo" fold to the same value.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// SameName reports whether two names are equal ignoring case and
// surrounding whitespace.
func SameName(a, b string) bool {
	return Fold(a) == Fold(b)
}

// DisplayLength counts user-perceived characters (grapheme clusters),
// so "José" is 4 whether or not the accent is precomposed.
func DisplayLength(s string) int {
	return uniseg.GraphemeClusterCount(s)
}
