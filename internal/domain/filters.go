package domain

// SearchFilters is the filter bar record.
type SearchFilters struct {
	Query      string `json:"query"`
	MinLength  int    `json:"minLength"`
	MaxLength  int    `json:"maxLength"`
	Gender     string `json:"gender"`
	Popularity string `json:"popularity"`
	Meaning    string `json:"meaning"`
	Origin     string `json:"origin"`
}

const (
	DefaultMinLength = 1
	DefaultMaxLength = 15
)

// Filter keys. KeyLength is a pseudo-field covering both length bounds.
const (
	KeyQuery      = "query"
	KeyLength     = "length"
	KeyMinLength  = "minLength"
	KeyMaxLength  = "maxLength"
	KeyGender     = "gender"
	KeyPopularity = "popularity"
	KeyMeaning    = "meaning"
	KeyOrigin     = "origin"
)

// DefaultSearchFilters returns the filter bar's initial record.
func DefaultSearchFilters() SearchFilters {
	return SearchFilters{
		MinLength: DefaultMinLength,
		MaxLength: DefaultMaxLength,
	}
}

// AsMap renders the filters as a generic map, the shape stored in
// preferences and history criteria.
func (f SearchFilters) AsMap() map[string]any {
	return map[string]any{
		KeyQuery:      f.Query,
		KeyMinLength:  f.MinLength,
		KeyMaxLength:  f.MaxLength,
		KeyGender:     f.Gender,
		KeyPopularity: f.Popularity,
		KeyMeaning:    f.Meaning,
		KeyOrigin:     f.Origin,
	}
}
