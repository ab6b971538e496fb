package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/namax/internal/domain"
)

//go:embed default.yaml
var defaultCatalog []byte

// ErrEmpty is returned when a catalog has no names at all
var ErrEmpty = errors.New("catalog has no names")

// Loader handles loading and parsing of the name catalog
type Loader struct {
	filePath string
}

// NewLoader creates a loader. An empty path selects the built-in catalog.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Source describes where Load reads from
func (l *Loader) Source() string {
	if l.filePath == "" {
		return "builtin"
	}
	return l.filePath
}

// Load reads, parses and normalizes the catalog
func (l *Loader) Load() (*Catalog, error) {
	data := defaultCatalog
	if l.filePath != "" {
		var err error
		data, err = os.ReadFile(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}
	return Parse(data)
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return c
}

// Parse decodes catalog YAML
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
	}

	c.normalize()
	if len(c.Corpus()) == 0 {
		return nil, ErrEmpty
	}
	return &c, nil
}

// Pool returns the specialized pool of a generator type
func (c *Catalog) Pool(typ string) ([]string, bool) {
	switch typ {
	case domain.TypeCompany:
		return c.Specialized.Company, true
	case domain.TypePet:
		return c.Specialized.Pet, true
	case domain.TypePlace:
		return c.Specialized.Place, true
	case domain.TypeGift:
		return c.Specialized.Gift, true
	case domain.TypeNickname:
		return c.Specialized.Nickname, true
	case domain.TypeLeader:
		return c.Specialized.Leader, true
	case domain.TypeRandom:
		return c.Specialized.Random, true
	}
	return nil, false
}

// PersonalPool returns the personal names for a gender, "any" for anything
// unknown
func (c *Catalog) PersonalPool(gender string) []string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "male":
		return c.Personal.Male
	case "female":
		return c.Personal.Female
	}
	return c.Personal.Any
}

// Corpus returns the searchable names, deduplicated case-insensitively in
// catalog order. It is the explicit search list when one is given.
func (c *Catalog) Corpus() []string {
	if len(c.Search) > 0 {
		return dedup(c.Search)
	}

	var all []string
	all = append(all, c.Personal.Male...)
	all = append(all, c.Personal.Female...)
	all = append(all, c.Personal.Any...)
	for _, f := range c.Featured {
		all = append(all, f.Name)
	}
	s := c.Specialized
	for _, pool := range [][]string{s.Random, s.Pet, s.Nickname, s.Leader, s.Company, s.Place} {
		all = append(all, pool...)
	}
	return dedup(all)
}

func (c *Catalog) normalize() {
	c.Personal.Male = clean(c.Personal.Male)
	c.Personal.Female = clean(c.Personal.Female)
	c.Personal.Any = clean(c.Personal.Any)

	synonyms := make(map[string][]string, len(c.Keyword.Synonyms))
	for k, v := range c.Keyword.Synonyms {
		synonyms[strings.ToLower(strings.TrimSpace(k))] = clean(v)
	}
	c.Keyword.Synonyms = synonyms
	c.Keyword.Variations = clean(c.Keyword.Variations)

	s := &c.Specialized
	for _, pool := range []*[]string{&s.Company, &s.Pet, &s.Place, &s.Gift, &s.Nickname, &s.Leader, &s.Random} {
		*pool = clean(*pool)
	}

	featured := c.Featured[:0]
	for _, f := range c.Featured {
		f.Name = strings.TrimSpace(f.Name)
		if f.Name != "" {
			featured = append(featured, f)
		}
	}
	c.Featured = featured
	c.Search = clean(c.Search)
}

func clean(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func dedup(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := domain.Fold(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	return out
}
