// Package collection owns the Favorites, History and Preferences
// collections of one client scope. It is the only writer of their keys.
package collection

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/logger"
	"github.com/MrSnakeDoc/namax/internal/store"
)

// Logical storage keys.
const (
	KeyFavorites   = "favorites"
	KeyHistory     = "history"
	KeyPreferences = "preferences"
)

const (
	// MaxFavorites caps the favorites collection
	MaxFavorites = 100
	// MaxHistory caps the history collection
	MaxHistory = 500
)

var (
	// ErrCorrupt marks a stored value that does not decode.
	ErrCorrupt = errors.New("stored collection is corrupt")
	// ErrWriteFailed is returned by mutators when persisting failed.
	ErrWriteFailed = errors.New("collection write failed")
)

// Store is the name collection store for a single client scope.
type Store struct {
	kv  store.KeyValue
	log logger.Logger
	mu  *sync.Mutex

	now          func() time.Time
	ids          *idSource
	maxFavorites int
	maxHistory   int
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithEntropy replaces the random source used for entry ids.
func WithEntropy(r io.Reader) Option {
	return func(s *Store) { s.ids = newIDSource(r) }
}

// WithLimits overrides the collection caps. Non-positive values keep the default.
func WithLimits(favorites, history int) Option {
	return func(s *Store) {
		if favorites > 0 {
			s.maxFavorites = favorites
		}
		if history > 0 {
			s.maxHistory = history
		}
	}
}

// New creates a store over kv, which should already be scoped to one client.
func New(kv store.KeyValue, log logger.Logger, opts ...Option) *Store {
	return newStore(kv, log, &sync.Mutex{}, opts...)
}

func newStore(kv store.KeyValue, log logger.Logger, mu *sync.Mutex, opts ...Option) *Store {
	s := &Store{
		kv:           kv,
		log:          log,
		mu:           mu,
		now:          time.Now,
		maxFavorites: MaxFavorites,
		maxHistory:   MaxHistory,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = newIDSource(rand.Reader)
	}
	return s
}

// ─────────────────────────────────────────────────────────────────
// Favorites
// ─────────────────────────────────────────────────────────────────

// ListFavorites returns favorites newest-first. Unreadable storage yields an
// empty slice.
func (s *Store) ListFavorites(ctx context.Context) []domain.FavoriteEntry {
	favs, err := s.loadFavorites(ctx)
	if err != nil {
		s.log.Warn("favorites unreadable, returning empty", logger.Error(err))
		return []domain.FavoriteEntry{}
	}
	return favs
}

// AddToFavorites prepends name unless a case-insensitive match exists.
func (s *Store) AddToFavorites(ctx context.Context, name, typ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.loadFavoritesForWrite(ctx)
	if err != nil {
		return s.writeFailed("add favorite", err)
	}

	if indexOfFavorite(favs, name) >= 0 {
		return nil
	}

	now := s.now()
	entry := domain.FavoriteEntry{
		ID:        s.ids.next(now),
		Name:      name,
		Type:      typ,
		Timestamp: now.UnixMilli(),
	}

	favs = append([]domain.FavoriteEntry{entry}, favs...)
	if len(favs) > s.maxFavorites {
		favs = favs[:s.maxFavorites]
	}

	if err := s.save(ctx, KeyFavorites, favs); err != nil {
		return s.writeFailed("add favorite", err)
	}
	return nil
}

// RemoveFromFavorites drops every case-insensitive match of name.
// Removing an absent name does nothing.
func (s *Store) RemoveFromFavorites(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.loadFavoritesForWrite(ctx)
	if err != nil {
		return s.writeFailed("remove favorite", err)
	}

	kept := favs[:0]
	for _, f := range favs {
		if !domain.SameName(f.Name, name) {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(favs) {
		return nil
	}

	if err := s.save(ctx, KeyFavorites, kept); err != nil {
		return s.writeFailed("remove favorite", err)
	}
	return nil
}

// ClearFavorites empties the favorites collection.
func (s *Store) ClearFavorites(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, KeyFavorites); err != nil {
		return s.writeFailed("clear favorites", err)
	}
	return nil
}

// IsFavorited reports whether a case-insensitive match exists.
// Unreadable storage reports false.
func (s *Store) IsFavorited(ctx context.Context, name string) bool {
	favs, err := s.loadFavorites(ctx)
	if err != nil {
		return false
	}
	return indexOfFavorite(favs, name) >= 0
}

// ─────────────────────────────────────────────────────────────────
// History
// ─────────────────────────────────────────────────────────────────

// ListHistory returns history newest-first. Unreadable storage yields an
// empty slice.
func (s *Store) ListHistory(ctx context.Context) []domain.HistoryEntry {
	hist, err := s.loadHistory(ctx)
	if err != nil {
		s.log.Warn("history unreadable, returning empty", logger.Error(err))
		return []domain.HistoryEntry{}
	}
	return hist
}

// AddToHistory records one generated batch. All entries share a timestamp
// and filters, keep the input order, and go in front of older entries.
func (s *Store) AddToHistory(ctx context.Context, names []string, typ string, filters map[string]any) error {
	if len(names) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hist, err := s.loadHistory(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return s.writeFailed("add history", err)
		}
		s.log.Warn("history corrupt, starting over", logger.Error(err))
		hist = nil
	}

	now := s.now()
	ts := now.UnixMilli()

	batch := make([]domain.HistoryEntry, 0, len(names)+len(hist))
	for _, name := range names {
		batch = append(batch, domain.HistoryEntry{
			ID:        s.ids.next(now),
			Name:      name,
			Type:      typ,
			Timestamp: ts,
			Filters:   filters,
		})
	}
	batch = append(batch, hist...)
	if len(batch) > s.maxHistory {
		batch = batch[:s.maxHistory]
	}

	if err := s.save(ctx, KeyHistory, batch); err != nil {
		return s.writeFailed("add history", err)
	}
	return nil
}

// ClearHistory empties the history collection. Favorites are untouched.
func (s *Store) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, KeyHistory); err != nil {
		return s.writeFailed("clear history", err)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────
// internals
// ─────────────────────────────────────────────────────────────────

func (s *Store) loadFavorites(ctx context.Context) ([]domain.FavoriteEntry, error) {
	var favs []domain.FavoriteEntry
	if err := s.load(ctx, KeyFavorites, &favs); err != nil {
		return nil, err
	}
	if favs == nil {
		favs = []domain.FavoriteEntry{}
	}
	return favs, nil
}

// loadFavoritesForWrite treats a corrupt value as empty so the next write
// repairs it, but refuses to overwrite when storage could not be read.
func (s *Store) loadFavoritesForWrite(ctx context.Context) ([]domain.FavoriteEntry, error) {
	favs, err := s.loadFavorites(ctx)
	if err == nil {
		return favs, nil
	}
	if errors.Is(err, ErrCorrupt) {
		s.log.Warn("favorites corrupt, starting over", logger.Error(err))
		return []domain.FavoriteEntry{}, nil
	}
	return nil, err
}

func (s *Store) loadHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	var hist []domain.HistoryEntry
	if err := s.load(ctx, KeyHistory, &hist); err != nil {
		return nil, err
	}
	if hist == nil {
		hist = []domain.HistoryEntry{}
	}
	return hist, nil
}

func (s *Store) load(ctx context.Context, key string, into any) error {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}
	if !found || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), into); err != nil {
		return fmt.Errorf("decode %s: %w: %w", key, ErrCorrupt, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(data))
}

func (s *Store) writeFailed(op string, err error) error {
	s.log.Error("collection write failed",
		logger.String("op", op),
		logger.Error(err))
	return fmt.Errorf("%s: %w: %w", op, ErrWriteFailed, err)
}

func indexOfFavorite(favs []domain.FavoriteEntry, name string) int {
	folded := domain.Fold(name)
	for i, f := range favs {
		if domain.Fold(f.Name) == folded {
			return i
		}
	}
	return -1
}

// idSource hands out ULIDs. Monotonic entropy keeps ids unique and ordered
// inside a batch that shares one millisecond.
type idSource struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newIDSource(r io.Reader) *idSource {
	return &idSource{entropy: ulid.Monotonic(r, 0)}
}

func (g *idSource) next(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}
