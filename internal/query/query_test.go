package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/namax/internal/domain"
)

func intp(v int) *int { return &v }

func TestSearch(t *testing.T) {
	names := []string{"Anna", "Bob", "Annabelle"}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"prefix and contains", "ann", []string{"Anna", "Annabelle"}},
		{"case-insensitive", "ANN", []string{"Anna", "Annabelle"}},
		{"substring only", "belle", []string{"Annabelle"}},
		{"query is trimmed", "  bob ", []string{"Bob"}},
		{"no match", "zz", []string{}},
		{"blank query", "   ", names},
		{"empty query", "", names},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Search(names, tt.query))
		})
	}
}

func TestSearchPreservesOrderAndDuplicates(t *testing.T) {
	names := []string{"Zoe", "Anna", "zoey", "Zoe"}
	assert.Equal(t, []string{"Zoe", "zoey", "Zoe"}, Search(names, "zo"))
}

func TestFilterByLength(t *testing.T) {
	names := []string{"Al", "Ann", "Annabelle"}

	tests := []struct {
		name     string
		lo, hi   *int
		want     []string
	}{
		{"both bounds", intp(3), intp(5), []string{"Ann"}},
		{"inclusive", intp(2), intp(3), []string{"Al", "Ann"}},
		{"min only", intp(3), nil, []string{"Ann", "Annabelle"}},
		{"max only", nil, intp(2), []string{"Al"}},
		{"unbounded", nil, nil, names},
		{"empty range", intp(6), intp(4), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterByLength(names, tt.lo, tt.hi))
		})
	}
}

func TestFilterByLengthCountsGraphemes(t *testing.T) {
	names := []string{"José", "Josephine"}
	assert.Equal(t, []string{"José"}, FilterByLength(names, nil, intp(4)))
}

func TestApplySearchesThenFiltersLength(t *testing.T) {
	names := []string{"Anna", "Bob", "Annabelle", "Ann"}

	f := domain.DefaultSearchFilters()
	f.Query = "ann"
	f.MaxLength = 4
	f.Gender = "female"

	assert.Equal(t, []string{"Anna", "Ann"}, Apply(names, f))
}

func TestApplyDefaults(t *testing.T) {
	names := []string{"A", "Bartholomew", "Maximilianusxyz", "Maximilianusxyzw"}
	// default bounds are 1..15
	assert.Equal(t, names[:3], Apply(names, domain.DefaultSearchFilters()))
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds(0, 0)
	assert.Nil(t, lo)
	assert.Nil(t, hi)

	lo, hi = Bounds(3, 0)
	assert.Equal(t, 3, *lo)
	assert.Nil(t, hi)
}
