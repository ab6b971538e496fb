package filterbar

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/logger"
	"github.com/MrSnakeDoc/namax/internal/query"
)

const persistTimeout = 5 * time.Second

// Results is the Consumer used by the server. It remembers each delivered
// snapshot as the client's default filters and keeps the filtered name list
// for it.
type Results struct {
	store  *collection.Store
	corpus func() []string
	log    logger.Logger
	now    func() time.Time

	mu      sync.RWMutex
	filters domain.SearchFilters
	matched []string
	updated time.Time
}

// NewResults creates a consumer over the client's store, seeded with the
// initial filters. names returns the corpus the filters apply to.
func NewResults(store *collection.Store, names func() []string, initial domain.SearchFilters, log logger.Logger) *Results {
	r := &Results{
		store:  store,
		corpus: names,
		log:    log,
		now:    time.Now,
	}
	r.evaluate(initial)
	return r
}

// FiltersChanged implements Consumer.
func (r *Results) FiltersChanged(f domain.SearchFilters) {
	r.persist(f)
	r.evaluate(f)
}

// FiltersCleared implements Consumer.
func (r *Results) FiltersCleared(f domain.SearchFilters) {
	r.persist(f)
	r.evaluate(f)
}

// Snapshot returns the last delivered filters, their matching names and the
// delivery time.
func (r *Results) Snapshot() (domain.SearchFilters, []string, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filters, slices.Clone(r.matched), r.updated
}

// Refresh re-applies the current filters, e.g. after the corpus changed.
// Filters delivered while the corpus is being read are not overwritten.
func (r *Results) Refresh() {
	names := r.corpus()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(r.filters, query.Apply(names, r.filters))
}

func (r *Results) evaluate(f domain.SearchFilters) {
	names := r.corpus()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.set(f, query.Apply(names, f))
}

// set must be called with mu held.
func (r *Results) set(f domain.SearchFilters, matched []string) {
	r.filters = f
	r.matched = matched
	r.updated = r.now()
}

func (r *Results) persist(f domain.SearchFilters) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	err := r.store.UpdatePreferences(ctx, map[string]any{
		domain.PrefDefaultFilters: f.AsMap(),
	})
	if err != nil {
		r.log.Warn("default filters not saved", logger.Error(err))
	}
}

// StoredFilters reads the client's saved default filters, falling back to
// the defaults for missing or malformed fields.
func StoredFilters(ctx context.Context, store *collection.Store) domain.SearchFilters {
	f := domain.DefaultSearchFilters()

	raw := store.Preferences(ctx).DefaultFilters
	if len(raw) == 0 {
		return f
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return f
	}

	var saved domain.SearchFilters
	if err := json.Unmarshal(data, &saved); err != nil {
		return f
	}

	// route every field through the same validation as live updates
	for key, value := range map[string]any{
		domain.KeyQuery:      saved.Query,
		domain.KeyMinLength:  saved.MinLength,
		domain.KeyMaxLength:  saved.MaxLength,
		domain.KeyGender:     saved.Gender,
		domain.KeyPopularity: saved.Popularity,
		domain.KeyMeaning:    saved.Meaning,
		domain.KeyOrigin:     saved.Origin,
	} {
		_ = setField(&f, key, value)
	}
	return f
}
