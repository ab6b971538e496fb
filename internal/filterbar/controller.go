// Package filterbar keeps the filter bar selection of a client and delivers
// debounced snapshots of it to a consumer.
package filterbar

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/logger"
)

// DefaultDelay is the quiet period before a change is delivered.
const DefaultDelay = 300 * time.Millisecond

// Slider ranges of the length bounds.
const (
	MaxMinLength = 20
	MaxMaxLength = 25
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrInvalidValue  = errors.New("invalid filter value")
	ErrClosed        = errors.New("filter bar closed")
)

// Canonical order of the active filter list.
var activeOrder = []string{
	domain.KeyQuery,
	domain.KeyLength,
	domain.KeyGender,
	domain.KeyPopularity,
	domain.KeyMeaning,
	domain.KeyOrigin,
}

// Choices lists the accepted values of the select filters. The empty string
// always means "any".
var Choices = map[string][]string{
	domain.KeyGender:     {"male", "female", "unisex"},
	domain.KeyPopularity: {"trending", "classic", "vintage", "modern", "contemporary"},
	domain.KeyMeaning:    {"strength", "wisdom", "beauty", "nature", "divine", "joy", "peace"},
	domain.KeyOrigin:     {"english", "arabic", "indian", "hebrew", "greek", "latin", "germanic", "celtic"},
}

// State of the bar.
type State int

const (
	Idle State = iota
	Filtered
)

func (s State) String() string {
	if s == Filtered {
		return "filtered"
	}
	return "idle"
}

// MarshalText renders the state name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Consumer receives the bar's notifications. Each call carries the full
// current record and replaces whatever the consumer saw before.
type Consumer interface {
	FiltersChanged(f domain.SearchFilters)
	FiltersCleared(f domain.SearchFilters)
}

// Option customizes a Controller.
type Option func(*Controller)

// WithDelay sets the debounce quiet period.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithScheduler replaces the timer based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithLogger attaches a logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithInitial starts the bar from f instead of the defaults. No notification
// is sent for it.
func WithInitial(f domain.SearchFilters) Option {
	return func(c *Controller) { c.filters = f }
}

// Controller is the filter bar state machine.
type Controller struct {
	mu       sync.Mutex
	filters  domain.SearchFilters
	active   []string
	pending  Task
	gen      uint64
	closed   bool
	delay    time.Duration
	sched    Scheduler
	consumer Consumer
	log      logger.Logger

	// serializes consumer calls
	deliver sync.Mutex
}

// New creates a controller that notifies consumer.
func New(consumer Consumer, opts ...Option) *Controller {
	c := &Controller{
		filters:  domain.DefaultSearchFilters(),
		delay:    DefaultDelay,
		sched:    TimerScheduler{},
		consumer: consumer,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.active = activeFilters(c.filters)
	return c
}

// Filters returns the current record.
func (c *Controller) Filters() domain.SearchFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// ActiveFilters returns the keys of the filters that differ from their
// defaults, in canonical order.
func (c *Controller) ActiveFilters() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.active)
}

// State reports Filtered when at least one filter is active.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.active) > 0 {
		return Filtered
	}
	return Idle
}

// DisplayText returns the badge label of an active filter key.
func (c *Controller) DisplayText(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return displayText(c.filters, key)
}

// UpdateFilter merges one field into the record and restarts the debounce.
func (c *Controller) UpdateFilter(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	next := c.filters
	if err := setField(&next, key, value); err != nil {
		return err
	}
	c.filters = next
	c.changed()
	return nil
}

// UpdateFilters merges several fields at once. Either every value is
// accepted or the record is left untouched. One notification is scheduled.
func (c *Controller) UpdateFilters(values map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if len(values) == 0 {
		return nil
	}

	keys := slices.Sorted(maps.Keys(values))
	next := c.filters
	for _, key := range keys {
		if err := setField(&next, key, values[key]); err != nil {
			return err
		}
	}
	c.filters = next
	c.changed()
	return nil
}

// ValidateFilters checks values the way UpdateFilters would, without any
// controller.
func ValidateFilters(values map[string]any) error {
	f := domain.DefaultSearchFilters()
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if err := setField(&f, key, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFilter resets the field(s) behind key. The "length" key resets both
// bounds.
func (c *Controller) RemoveFilter(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	def := domain.DefaultSearchFilters()
	switch key {
	case domain.KeyQuery:
		c.filters.Query = def.Query
	case domain.KeyLength:
		c.filters.MinLength = def.MinLength
		c.filters.MaxLength = def.MaxLength
	case domain.KeyMinLength:
		c.filters.MinLength = def.MinLength
	case domain.KeyMaxLength:
		c.filters.MaxLength = def.MaxLength
	case domain.KeyGender:
		c.filters.Gender = ""
	case domain.KeyPopularity:
		c.filters.Popularity = ""
	case domain.KeyMeaning:
		c.filters.Meaning = ""
	case domain.KeyOrigin:
		c.filters.Origin = ""
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}
	c.changed()
	return nil
}

// ClearAll resets the record, drops any pending notification and sends the
// clear signal right away.
func (c *Controller) ClearAll() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cancelPending()
	c.filters = domain.DefaultSearchFilters()
	c.active = nil
	snapshot := c.filters
	c.mu.Unlock()

	c.deliver.Lock()
	defer c.deliver.Unlock()
	c.log.Debug("filters cleared")
	c.consumer.FiltersCleared(snapshot)
}

// Close cancels the pending notification. Later mutations fail with ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelPending()
	c.closed = true
}

// changed recomputes the active list and reschedules. Caller holds c.mu.
func (c *Controller) changed() {
	c.active = activeFilters(c.filters)
	c.cancelPending()
	gen := c.gen
	c.pending = c.sched.AfterFunc(c.delay, func() { c.fire(gen) })
}

// cancelPending stops the scheduled task. The generation bump also voids a
// callback that already started. Caller holds c.mu.
func (c *Controller) cancelPending() {
	c.gen++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) fire(gen uint64) {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	snapshot := c.filters
	c.mu.Unlock()

	c.log.Debug("filters changed", logger.Strings("active", activeFilters(snapshot)))
	c.consumer.FiltersChanged(snapshot)
}

func activeFilters(f domain.SearchFilters) []string {
	var active []string
	for _, key := range activeOrder {
		if isActive(f, key) {
			active = append(active, key)
		}
	}
	return active
}

func isActive(f domain.SearchFilters, key string) bool {
	switch key {
	case domain.KeyQuery:
		return strings.TrimSpace(f.Query) != ""
	case domain.KeyLength:
		return f.MinLength > domain.DefaultMinLength || f.MaxLength < domain.DefaultMaxLength
	case domain.KeyGender:
		return f.Gender != ""
	case domain.KeyPopularity:
		return f.Popularity != ""
	case domain.KeyMeaning:
		return f.Meaning != ""
	case domain.KeyOrigin:
		return f.Origin != ""
	}
	return false
}

func displayText(f domain.SearchFilters, key string) string {
	switch key {
	case domain.KeyQuery:
		return strconv.Quote(f.Query)
	case domain.KeyLength:
		return fmt.Sprintf("%d-%d chars", f.MinLength, f.MaxLength)
	case domain.KeyGender:
		return f.Gender
	case domain.KeyPopularity:
		return f.Popularity
	case domain.KeyMeaning:
		return f.Meaning
	case domain.KeyOrigin:
		return f.Origin
	}
	return ""
}

func setField(f *domain.SearchFilters, key string, value any) error {
	switch key {
	case domain.KeyQuery:
		s, ok := value.(string)
		if !ok {
			return invalid(key, value)
		}
		f.Query = s
	case domain.KeyMinLength:
		n, ok := toInt(value)
		if !ok || n < 1 || n > MaxMinLength {
			return invalid(key, value)
		}
		f.MinLength = n
	case domain.KeyMaxLength:
		n, ok := toInt(value)
		if !ok || n < 1 || n > MaxMaxLength {
			return invalid(key, value)
		}
		f.MaxLength = n
	case domain.KeyGender, domain.KeyPopularity, domain.KeyMeaning, domain.KeyOrigin:
		s, ok := value.(string)
		if !ok {
			return invalid(key, value)
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" && !slices.Contains(Choices[key], s) {
			return invalid(key, value)
		}
		switch key {
		case domain.KeyGender:
			f.Gender = s
		case domain.KeyPopularity:
			f.Popularity = s
		case domain.KeyMeaning:
			f.Meaning = s
		default:
			f.Origin = s
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFilter, key)
	}
	return nil
}

func invalid(key string, value any) error {
	return fmt.Errorf("%w: %s=%v", ErrInvalidValue, key, value)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	}
	return 0, false
}
