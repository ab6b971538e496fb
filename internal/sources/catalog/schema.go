package catalog

// Catalog is the root structure of catalog.yaml
type Catalog struct {
	Personal    PersonalPools    `yaml:"personal"`
	Keyword     KeywordPools     `yaml:"keyword"`
	Specialized SpecializedPools `yaml:"specialized"`
	Featured    []FeaturedName   `yaml:"featured"`
	// Search is the corpus the filter bar and search endpoint run over.
	// When empty, every other pool is used.
	Search []string `yaml:"search"`
}

// PersonalPools holds personal names by gender
type PersonalPools struct {
	Male   []string `yaml:"male"`
	Female []string `yaml:"female"`
	Any    []string `yaml:"any"`
}

// KeywordPools drives the keyword generator
type KeywordPools struct {
	// Synonyms maps a lowercase keyword to its brandable synonyms
	Synonyms map[string][]string `yaml:"synonyms"`
	// Variations are templates applied to unknown keywords, in output order.
	// "{kw}" stands for the keyword as typed.
	Variations []string `yaml:"variations"`
}

// SpecializedPools holds one pool per specialized generator
type SpecializedPools struct {
	Company  []string `yaml:"company"`
	Pet      []string `yaml:"pet"`
	Place    []string `yaml:"place"`
	Gift     []string `yaml:"gift"`
	Nickname []string `yaml:"nickname"`
	Leader   []string `yaml:"leader"`
	Random   []string `yaml:"random"`
}

// FeaturedName is a curated name with its personality card
type FeaturedName struct {
	Name        string   `yaml:"name" json:"name"`
	Personality string   `yaml:"personality" json:"personality"`
	Meaning     string   `yaml:"meaning" json:"meaning"`
	Origin      string   `yaml:"origin" json:"origin"`
	Traits      []string `yaml:"traits" json:"traits"`
}
