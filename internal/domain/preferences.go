package domain

// Preferences is the decoded view of the free-form preferences object.
// Unknown keys survive in the stored JSON; only these are surfaced.
type Preferences struct {
	Theme          string         `json:"theme,omitempty"`
	Language       string         `json:"language,omitempty"`
	DefaultFilters map[string]any `json:"defaultFilters,omitempty"`
}

// Accepted themes.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// Preference keys as stored.
const (
	PrefTheme          = "theme"
	PrefLanguage       = "language"
	PrefDefaultFilters = "defaultFilters"
)
