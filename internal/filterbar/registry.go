package filterbar

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/logger"
)

// Session is the filter bar of one client with the consumer fed by it.
type Session struct {
	*Controller
	Results *Results

	lastSeen time.Time
}

// Registry keeps one filter bar session per client id.
type Registry struct {
	provider *collection.Provider
	corpus   func() []string
	log      logger.Logger
	opts     []Option
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. opts apply to every controller it
// creates.
func NewRegistry(provider *collection.Provider, corpus func() []string, log logger.Logger, opts ...Option) *Registry {
	return &Registry{
		provider: provider,
		corpus:   corpus,
		log:      log,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session of clientID, creating it from the client's saved
// default filters on first use.
func (r *Registry) Get(ctx context.Context, clientID string) *Session {
	if s, ok := r.lookup(clientID); ok {
		return s
	}

	// storage is read without holding mu
	store := r.provider.For(clientID)
	initial := StoredFilters(ctx, store)

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[clientID]; ok {
		s.lastSeen = r.now()
		return s
	}

	log := r.log.With(logger.String("client", clientID))
	results := NewResults(store, r.corpus, initial, log)

	opts := append([]Option{WithLogger(log), WithInitial(initial)}, r.opts...)
	s := &Session{
		Controller: New(results, opts...),
		Results:    results,
		lastSeen:   r.now(),
	}
	r.sessions[clientID] = s
	return s
}

func (r *Registry) lookup(clientID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[clientID]
	if ok {
		s.lastSeen = r.now()
	}
	return s, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep closes and forgets sessions idle for longer than idle. It returns
// how many were removed.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			s.Close()
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Refresh re-applies every session's filters, after the corpus changed.
func (r *Registry) Refresh() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.mu.Unlock()

	for _, s := range sessions {
		s.Results.Refresh()
	}
}

// CloseAll closes every session.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, s := range r.sessions {
		s.Close()
		delete(r.sessions, id)
	}
}
