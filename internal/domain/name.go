package domain

// FavoriteEntry is a name the user chose to keep.
//
// Name keeps the user's casing for display; uniqueness inside the
// favorites collection is decided on the folded, trimmed form.
type FavoriteEntry struct {
	// ID is generated once at creation and never changes.
	ID string `json:"id"`

	// Name is the favorited string as entered.
	Name string `json:"name"`

	// Type tags the generator that produced the name
	// (personal, keyword, featured, pet, ...). Free-form.
	Type string `json:"type"`

	// Timestamp is the creation time in milliseconds since epoch.
	Timestamp int64 `json:"timestamp"`
}

// HistoryEntry is one generated name. Entries of a single batch share
// Timestamp and Filters. Duplicate names are expected.
type HistoryEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`

	// Filters is the criteria used to produce the batch. Opaque.
	Filters map[string]any `json:"filters,omitempty"`
}

// Known generator type tags. The store does not enforce this list.
const (
	TypePersonal = "personal"
	TypeKeyword  = "keyword"
	TypeFeatured = "featured"
	TypeCompany  = "company"
	TypePet      = "pet"
	TypePlace    = "place"
	TypeGift     = "gift"
	TypeNickname = "nickname"
	TypeLeader   = "leader"
	TypeRandom   = "random"
)
