package domain

import (
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"Leo", "LEO", true},
		{" leo ", "Leo", true},
		{"Straße", "STRASSE", true},
		{"Anna", "Ann", false},
		{"", "   ", true},
	}

	for _, tt := range tests {
		if got := SameName(tt.a, tt.b); got != tt.same {
			t.Errorf("SameName(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}

func TestDisplayLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Al", 2},
		{"Annabelle", 9},
		{"Jos\u00e9", 4},
		{"Jose\u0301", 4},
		{"", 0},
	}

	for _, tt := range tests {
		if got := DisplayLength(tt.in); got != tt.want {
			t.Errorf("DisplayLength(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDefaultSearchFilters(t *testing.T) {
	f := DefaultSearchFilters()
	if f.Query != "" || f.MinLength != 1 || f.MaxLength != 15 {
		t.Errorf("unexpected defaults: %+v", f)
	}
	m := f.AsMap()
	if m[KeyMinLength] != 1 || m[KeyMaxLength] != 15 {
		t.Errorf("AsMap() = %v", m)
	}
}
