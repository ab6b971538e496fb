package filterbar

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/logger"
	"github.com/MrSnakeDoc/namax/internal/store"
)

var corpus = []string{"Anna", "Bob", "Annabelle", "Ann", "Leo"}

func newRegistry(t *testing.T) (*Registry, *collection.Provider, *ManualScheduler) {
	t.Helper()
	p := collection.NewProvider(store.NewMemory(), logger.Nop())
	sched := NewManualScheduler()
	r := NewRegistry(p, func() []string { return corpus }, logger.Nop(), WithScheduler(sched))
	t.Cleanup(r.CloseAll)
	return r, p, sched
}

func TestRegistryReusesSessions(t *testing.T) {
	ctx := context.Background()
	r, _, _ := newRegistry(t)

	a := r.Get(ctx, "alice")
	assert.Same(t, a, r.Get(ctx, "alice"))
	assert.NotSame(t, a, r.Get(ctx, "bob"))
	assert.Equal(t, 2, r.Len())
}

func TestResultsFollowDebouncedFilters(t *testing.T) {
	ctx := context.Background()
	r, p, sched := newRegistry(t)

	s := r.Get(ctx, "alice")
	_, names, _ := s.Results.Snapshot()
	assert.Equal(t, corpus, names)

	require.NoError(t, s.UpdateFilter("query", "ann"))
	require.NoError(t, s.UpdateFilter("maxLength", 4))

	// not yet delivered
	_, names, _ = s.Results.Snapshot()
	assert.Len(t, names, len(corpus))

	sched.Advance(DefaultDelay)
	f, names, _ := s.Results.Snapshot()
	assert.Equal(t, "ann", f.Query)
	assert.Equal(t, []string{"Anna", "Ann"}, names)

	// snapshot is saved as the client's default filters
	saved := StoredFilters(ctx, p.For("alice"))
	assert.Equal(t, f, saved)
	assert.Equal(t, domain.DefaultSearchFilters(), StoredFilters(ctx, p.For("bob")))
}

func TestNewSessionStartsFromSavedFilters(t *testing.T) {
	ctx := context.Background()
	r, p, _ := newRegistry(t)

	require.NoError(t, p.For("carol").UpdatePreferences(ctx, map[string]any{
		"defaultFilters": map[string]any{"query": "leo", "minLength": 2, "maxLength": 15, "gender": "alien"},
	}))

	s := r.Get(ctx, "carol")
	assert.Equal(t, "leo", s.Filters().Query)
	assert.Equal(t, 2, s.Filters().MinLength)
	assert.Equal(t, "", s.Filters().Gender, "invalid saved choices fall back to any")
	assert.Equal(t, []string{"query", "length"}, s.ActiveFilters())

	_, names, _ := s.Results.Snapshot()
	assert.Equal(t, []string{"Leo"}, names)
}

func TestClearAllResetsResults(t *testing.T) {
	ctx := context.Background()
	r, p, sched := newRegistry(t)

	s := r.Get(ctx, "dave")
	require.NoError(t, s.UpdateFilter("query", "bob"))
	sched.Advance(DefaultDelay)

	s.ClearAll()
	f, names, _ := s.Results.Snapshot()
	assert.Equal(t, domain.DefaultSearchFilters(), f)
	assert.Equal(t, corpus, names)
	assert.Equal(t, domain.DefaultSearchFilters(), StoredFilters(ctx, p.For("dave")))
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	ctx := context.Background()
	r, _, sched := newRegistry(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	old := r.Get(ctx, "old")
	require.NoError(t, old.UpdateFilter("query", "x"))

	now = now.Add(20 * time.Minute)
	r.Get(ctx, "fresh")

	assert.Equal(t, 1, r.Sweep(10*time.Minute))
	assert.Equal(t, 1, r.Len())

	// the swept session's pending notification is dropped
	sched.Advance(time.Second)
	f, _, _ := old.Results.Snapshot()
	assert.Equal(t, "", f.Query)

	assert.NotSame(t, old, r.Get(ctx, "old"))
}

func TestRegistryRefreshAppliesNewCorpus(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	names := []string{"Anna", "Bob"}
	current := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return names
	}

	p := collection.NewProvider(store.NewMemory(), logger.Nop())
	sched := NewManualScheduler()
	r := NewRegistry(p, current, logger.Nop(), WithScheduler(sched))
	t.Cleanup(r.CloseAll)

	s := r.Get(ctx, "erin")
	require.NoError(t, s.UpdateFilter("query", "ann"))
	sched.Advance(DefaultDelay)

	mu.Lock()
	names = []string{"Anna", "Annika", "Bob"}
	mu.Unlock()

	r.Refresh()

	f, matched, _ := s.Results.Snapshot()
	assert.Equal(t, "ann", f.Query)
	assert.Equal(t, []string{"Anna", "Annika"}, matched)
}

func TestRefreshKeepsNewerDelivery(t *testing.T) {
	ctx := context.Background()
	p := collection.NewProvider(store.NewMemory(), logger.Nop())

	var gate atomic.Bool
	entered := make(chan struct{})
	release := make(chan struct{})
	names := func() []string {
		if gate.CompareAndSwap(true, false) {
			entered <- struct{}{}
			<-release
		}
		return []string{"Anna", "Bob"}
	}

	res := NewResults(p.For("frank"), names, domain.DefaultSearchFilters(), logger.Nop())

	gate.Store(true)
	done := make(chan struct{})
	go func() {
		res.Refresh()
		close(done)
	}()
	<-entered

	newer := domain.DefaultSearchFilters()
	newer.Query = "ann"
	res.FiltersChanged(newer)

	close(release)
	<-done

	f, matched, _ := res.Snapshot()
	assert.Equal(t, "ann", f.Query)
	assert.Equal(t, []string{"Anna"}, matched)
	assert.Equal(t, "ann", StoredFilters(ctx, p.For("frank")).Query)
}

// slowKV blocks reads of one client until released.
type slowKV struct {
	store.KeyValue
	prefix  string
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *slowKV) Get(ctx context.Context, key string) (string, bool, error) {
	if strings.HasPrefix(key, s.prefix) {
		s.once.Do(func() { close(s.entered) })
		<-s.release
	}
	return s.KeyValue.Get(ctx, key)
}

func TestRegistryGetDoesNotBlockOtherClients(t *testing.T) {
	ctx := context.Background()
	kv := &slowKV{
		KeyValue: store.NewMemory(),
		prefix:   "slow:",
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	r := NewRegistry(collection.NewProvider(kv, logger.Nop()), func() []string { return corpus }, logger.Nop(),
		WithScheduler(NewManualScheduler()))
	t.Cleanup(r.CloseAll)

	slowDone := make(chan *Session)
	go func() { slowDone <- r.Get(ctx, "slow") }()
	<-kv.entered

	fast := make(chan *Session)
	go func() { fast <- r.Get(ctx, "fast") }()

	select {
	case s := <-fast:
		assert.NotNil(t, s)
	case <-time.After(2 * time.Second):
		t.Fatal("Get for another client waited on a slow storage read")
	}

	close(kv.release)
	slow := <-slowDone
	assert.Same(t, slow, r.Get(ctx, "slow"))
	assert.Equal(t, 2, r.Len())
}
