package filterbar

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/namax/internal/domain"
)

type recorder struct {
	mu      sync.Mutex
	changed []domain.SearchFilters
	cleared []domain.SearchFilters
	events  []string
}

func (r *recorder) FiltersChanged(f domain.SearchFilters) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, f)
	r.events = append(r.events, "changed")
}

func (r *recorder) FiltersCleared(f domain.SearchFilters) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared = append(r.cleared, f)
	r.events = append(r.events, "cleared")
}

func (r *recorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.changed), len(r.cleared)
}

func newManual(t *testing.T) (*Controller, *recorder, *ManualScheduler) {
	t.Helper()
	rec := &recorder{}
	sched := NewManualScheduler()
	c := New(rec, WithScheduler(sched))
	t.Cleanup(c.Close)
	return c, rec, sched
}

func TestDefaults(t *testing.T) {
	c, _, _ := newManual(t)

	assert.Equal(t, domain.DefaultSearchFilters(), c.Filters())
	assert.Empty(t, c.ActiveFilters())
	assert.Equal(t, Idle, c.State())
}

func TestDebounceCollapsesBurst(t *testing.T) {
	c, rec, sched := newManual(t)

	require.NoError(t, c.UpdateFilter("query", "a"))
	sched.Advance(40 * time.Millisecond)
	require.NoError(t, c.UpdateFilter("query", "an"))
	sched.Advance(40 * time.Millisecond)
	require.NoError(t, c.UpdateFilter("query", "ann"))

	// 299ms after the last call nothing is delivered yet
	sched.Advance(299 * time.Millisecond)
	changed, _ := rec.counts()
	assert.Equal(t, 0, changed)

	sched.Advance(time.Millisecond)
	changed, _ = rec.counts()
	require.Equal(t, 1, changed)
	assert.Equal(t, "ann", rec.changed[0].Query)

	sched.Advance(time.Second)
	changed, _ = rec.counts()
	assert.Equal(t, 1, changed)
	assert.Equal(t, 0, sched.Pending())
}

func TestSeparateQuietWindowsDeliverEach(t *testing.T) {
	c, rec, sched := newManual(t)

	require.NoError(t, c.UpdateFilter("gender", "female"))
	sched.Advance(DefaultDelay)
	require.NoError(t, c.UpdateFilter("origin", "latin"))
	sched.Advance(DefaultDelay)

	require.Len(t, rec.changed, 2)
	assert.Equal(t, "female", rec.changed[1].Gender)
	assert.Equal(t, "latin", rec.changed[1].Origin)
}

func TestActiveFiltersCanonicalOrder(t *testing.T) {
	c, _, _ := newManual(t)

	require.NoError(t, c.UpdateFilter("origin", "greek"))
	require.NoError(t, c.UpdateFilter("maxLength", 10))
	require.NoError(t, c.UpdateFilter("gender", "male"))
	require.NoError(t, c.UpdateFilter("query", "  leo "))

	assert.Equal(t, []string{"query", "length", "gender", "origin"}, c.ActiveFilters())
	assert.Equal(t, Filtered, c.State())

	assert.Equal(t, `"  leo "`, c.DisplayText("query"))
	assert.Equal(t, "1-10 chars", c.DisplayText("length"))
	assert.Equal(t, "male", c.DisplayText("gender"))
	assert.Equal(t, "", c.DisplayText("bogus"))
}

func TestBlankQueryIsNotActive(t *testing.T) {
	c, _, _ := newManual(t)

	require.NoError(t, c.UpdateFilter("query", "   "))
	assert.Empty(t, c.ActiveFilters())
	assert.Equal(t, Idle, c.State())
}

func TestLengthActivation(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		value  any
		active bool
	}{
		{"min raised", "minLength", 2, true},
		{"min at default", "minLength", 1, false},
		{"max lowered", "maxLength", 14, true},
		{"max raised", "maxLength", 20, false},
		{"json number", "minLength", json.Number("3"), true},
		{"float from json", "maxLength", float64(12), true},
		{"numeric string", "minLength", "4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, _ := newManual(t)
			require.NoError(t, c.UpdateFilter(tt.key, tt.value))
			assert.Equal(t, tt.active, len(c.ActiveFilters()) > 0)
		})
	}
}

func TestUpdateFilterValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  error
	}{
		{"unknown key", "color", "red", ErrUnknownFilter},
		{"length is not settable", "length", 3, ErrUnknownFilter},
		{"query wrong type", "query", 3, ErrInvalidValue},
		{"min fractional", "minLength", 2.5, ErrInvalidValue},
		{"min zero", "minLength", 0, ErrInvalidValue},
		{"min over slider", "minLength", 21, ErrInvalidValue},
		{"max over slider", "maxLength", 26, ErrInvalidValue},
		{"gender not a choice", "gender", "robot", ErrInvalidValue},
		{"origin wrong type", "origin", true, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _, sched := newManual(t)
			err := c.UpdateFilter(tt.key, tt.value)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, domain.DefaultSearchFilters(), c.Filters())
			assert.Equal(t, 0, sched.Pending())
		})
	}
}

func TestChoicesAreNormalized(t *testing.T) {
	c, _, _ := newManual(t)

	require.NoError(t, c.UpdateFilter("popularity", " Trending "))
	assert.Equal(t, "trending", c.Filters().Popularity)

	require.NoError(t, c.UpdateFilter("popularity", ""))
	assert.Empty(t, c.ActiveFilters())
}

func TestRemoveLengthResetsBothBounds(t *testing.T) {
	c, rec, sched := newManual(t)

	require.NoError(t, c.UpdateFilter("minLength", 4))
	require.NoError(t, c.UpdateFilter("maxLength", 8))
	require.NoError(t, c.UpdateFilter("meaning", "joy"))

	require.NoError(t, c.RemoveFilter("length"))
	f := c.Filters()
	assert.Equal(t, 1, f.MinLength)
	assert.Equal(t, 15, f.MaxLength)
	assert.Equal(t, "joy", f.Meaning)
	assert.Equal(t, []string{"meaning"}, c.ActiveFilters())

	sched.Advance(DefaultDelay)
	require.Len(t, rec.changed, 1)
	assert.Equal(t, f, rec.changed[0])
}

func TestRemoveFilterEachKey(t *testing.T) {
	c, _, _ := newManual(t)

	require.NoError(t, c.UpdateFilter("query", "x"))
	require.NoError(t, c.UpdateFilter("gender", "unisex"))
	require.NoError(t, c.UpdateFilter("popularity", "modern"))
	require.NoError(t, c.UpdateFilter("meaning", "peace"))
	require.NoError(t, c.UpdateFilter("origin", "celtic"))

	for _, key := range []string{"query", "gender", "popularity", "meaning", "origin"} {
		require.NoError(t, c.RemoveFilter(key))
	}
	assert.Equal(t, domain.DefaultSearchFilters(), c.Filters())

	assert.True(t, errors.Is(c.RemoveFilter("nope"), ErrUnknownFilter))
}

func TestClearAllBypassesDebounce(t *testing.T) {
	c, rec, sched := newManual(t)

	require.NoError(t, c.UpdateFilter("query", "max"))
	require.NoError(t, c.UpdateFilter("origin", "latin"))

	c.ClearAll()

	changed, cleared := rec.counts()
	assert.Equal(t, 0, changed)
	require.Equal(t, 1, cleared)
	assert.Equal(t, domain.DefaultSearchFilters(), rec.cleared[0])
	assert.Empty(t, c.ActiveFilters())
	assert.Equal(t, Idle, c.State())

	// the pending change must never arrive after the clear
	sched.Advance(time.Second)
	changed, _ = rec.counts()
	assert.Equal(t, 0, changed)
	assert.Equal(t, []string{"cleared"}, rec.events)
}

func TestInitialFilters(t *testing.T) {
	rec := &recorder{}
	sched := NewManualScheduler()

	initial := domain.DefaultSearchFilters()
	initial.Query = "sa"
	c := New(rec, WithScheduler(sched), WithInitial(initial))
	defer c.Close()

	assert.Equal(t, []string{"query"}, c.ActiveFilters())
	assert.Equal(t, 0, sched.Pending())
}

func TestCloseCancelsPending(t *testing.T) {
	c, rec, sched := newManual(t)

	require.NoError(t, c.UpdateFilter("query", "x"))
	c.Close()
	sched.Advance(time.Second)

	changed, _ := rec.counts()
	assert.Equal(t, 0, changed)
	assert.True(t, errors.Is(c.UpdateFilter("query", "y"), ErrClosed))
	assert.True(t, errors.Is(c.RemoveFilter("query"), ErrClosed))
}

func TestTimerSchedulerDebounce(t *testing.T) {
	rec := &recorder{}
	c := New(rec, WithDelay(30*time.Millisecond))
	defer c.Close()

	for _, q := range []string{"l", "le", "leo"} {
		require.NoError(t, c.UpdateFilter("query", q))
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		changed, _ := rec.counts()
		return changed == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.changed, 1)
	assert.Equal(t, "leo", rec.changed[0].Query)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "filtered", Filtered.String())

	b, err := json.Marshal(map[string]State{"state": Filtered})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"filtered"}`, string(b))
}

func TestUpdateFiltersIsAtomic(t *testing.T) {
	c, rec, sched := newManual(t)

	err := c.UpdateFilters(map[string]any{"query": "ann", "gender": "robot"})
	assert.True(t, errors.Is(err, ErrInvalidValue))
	assert.Equal(t, domain.DefaultSearchFilters(), c.Filters())
	assert.Equal(t, 0, sched.Pending())

	require.NoError(t, c.UpdateFilters(map[string]any{"query": "ann", "minLength": 3, "origin": "hebrew"}))
	assert.Equal(t, []string{"query", "length", "origin"}, c.ActiveFilters())
	assert.Equal(t, 1, sched.Pending())

	sched.Advance(DefaultDelay)
	require.Len(t, rec.changed, 1)
	assert.Equal(t, 3, rec.changed[0].MinLength)
}

func TestValidateFilters(t *testing.T) {
	assert.NoError(t, ValidateFilters(map[string]any{"query": "a", "minLength": 2.0, "maxLength": "9"}))
	assert.ErrorIs(t, ValidateFilters(map[string]any{"maxLength": 26}), ErrInvalidValue)
	assert.ErrorIs(t, ValidateFilters(map[string]any{"length": 3}), ErrUnknownFilter)
}
