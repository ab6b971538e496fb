package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if got := len(c.Personal.Male); got != 10 {
		t.Errorf("male pool = %d names, want 10", got)
	}
	if got := len(c.Keyword.Variations); got != 8 {
		t.Errorf("variations = %d, want 8", got)
	}
	if _, ok := c.Keyword.Synonyms["fire"]; !ok {
		t.Error("fire synonyms missing")
	}
	if got := len(c.Featured); got != 6 {
		t.Errorf("featured = %d, want 6", got)
	}

	pet, ok := c.Pool("pet")
	if !ok || len(pet) != 10 {
		t.Errorf("Pool(pet) = %v, %v", pet, ok)
	}
	if _, ok := c.Pool("personal"); ok {
		t.Error("personal is not a specialized pool")
	}
}

func TestCorpusDeduplicates(t *testing.T) {
	c := Default()
	corpus := c.Corpus()

	seen := map[string]bool{}
	for _, n := range corpus {
		if seen[n] {
			t.Fatalf("duplicate %q in corpus", n)
		}
		seen[n] = true
	}
	// Phoenix appears in featured, random and nickname pools
	if !seen["Phoenix"] {
		t.Error("Phoenix missing from corpus")
	}
	if corpus[0] != "Alexander" {
		t.Errorf("corpus should start with the male pool, got %q", corpus[0])
	}
}

func TestPersonalPool(t *testing.T) {
	c := Default()

	tests := []struct {
		gender string
		first  string
	}{
		{"male", "Alexander"},
		{" Female ", "Amelia"},
		{"", "Alex"},
		{"unisex", "Alex"},
	}
	for _, tt := range tests {
		if got := c.PersonalPool(tt.gender); got[0] != tt.first {
			t.Errorf("PersonalPool(%q)[0] = %q, want %q", tt.gender, got[0], tt.first)
		}
	}
}

func TestLoaderLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "catalog.yaml")

	content := `
personal:
  any: ["  Robin ", "", Sky]
keyword:
  synonyms:
    " Moon ": [Luna, Selene]
search: [Robin, ROBIN, Sky, Luna]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	l := NewLoader(path)
	if l.Source() != path {
		t.Errorf("Source() = %q", l.Source())
	}

	c, err := l.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(c.Personal.Any) != 2 || c.Personal.Any[0] != "Robin" {
		t.Errorf("personal.any = %v, want trimmed [Robin Sky]", c.Personal.Any)
	}
	if got := c.Keyword.Synonyms["moon"]; len(got) != 2 {
		t.Errorf("synonym keys should be lowercased, got %v", c.Keyword.Synonyms)
	}

	corpus := c.Corpus()
	want := []string{"Robin", "Sky", "Luna"}
	if len(corpus) != len(want) {
		t.Fatalf("Corpus() = %v, want %v", corpus, want)
	}
	for i := range want {
		if corpus[i] != want[i] {
			t.Errorf("Corpus()[%d] = %q, want %q", i, corpus[i], want[i])
		}
	}
}

func TestLoaderBuiltin(t *testing.T) {
	l := NewLoader("")
	if l.Source() != "builtin" {
		t.Errorf("Source() = %q", l.Source())
	}
	if _, err := l.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoaderErrors(t *testing.T) {
	if _, err := NewLoader("/nonexistent/catalog.yaml").Load(); err == nil {
		t.Error("expected error for missing file")
	}

	if _, err := Parse([]byte("personal: [unclosed")); err == nil {
		t.Error("expected error for invalid yaml")
	}

	if _, err := Parse([]byte("personal:\n  any: []\n")); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse(empty) error = %v, want ErrEmpty", err)
	}
}
