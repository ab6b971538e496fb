// Package generator produces name batches from the catalog pools and records
// every batch in the client's history.
package generator

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/MrSnakeDoc/namax/internal/domain"
	"github.com/MrSnakeDoc/namax/internal/sources/catalog"
)

// Batch sizes per panel.
const (
	PersonalCount    = 8
	SynonymCount     = 10
	VariationCount   = 8
	SpecializedCount = 6
)

// Keyword length defaults.
const (
	DefaultKeywordMin = 3
	DefaultKeywordMax = 12
)

// Criteria keys read by the panels.
const (
	CriteriaKeyword   = "keyword"
	CriteriaGender    = "gender"
	CriteriaMinLength = "minLength"
	CriteriaMaxLength = "maxLength"
)

var (
	ErrUnknownType    = errors.New("unknown generator type")
	ErrMissingKeyword = errors.New("keyword is required")
)

// History receives generated batches.
type History interface {
	AddToHistory(ctx context.Context, names []string, typ string, filters map[string]any) error
}

// Favorites answers favorite state for featured cards.
type Favorites interface {
	IsFavorited(ctx context.Context, name string) bool
}

// Result is one generated batch.
type Result struct {
	Type     string         `json:"type"`
	Names    []string       `json:"names"`
	Criteria map[string]any `json:"criteria,omitempty"`
}

// FeaturedCard is a featured name with the client's favorite state.
type FeaturedCard struct {
	catalog.FeaturedName
	Favorited bool `json:"favorited"`
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRand sets the random source used for shuffling.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// Generator runs the panels over the current catalog.
type Generator struct {
	catalog func() *catalog.Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a generator. catalog is called on every request so reloads
// are picked up.
func New(catalog func() *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{catalog: catalog}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Types lists the generator types Generate accepts.
func Types() []string {
	return []string{
		domain.TypePersonal, domain.TypeKeyword,
		domain.TypeCompany, domain.TypePet, domain.TypePlace, domain.TypeGift,
		domain.TypeNickname, domain.TypeLeader, domain.TypeRandom,
	}
}

// Generate runs the panel typ with criteria and records a non-empty batch in
// history exactly once. When only the history write fails, the batch is
// returned together with the error.
func (g *Generator) Generate(ctx context.Context, history History, typ string, criteria map[string]any) (Result, error) {
	criteria = maps.Clone(criteria)
	if criteria == nil {
		criteria = map[string]any{}
	}

	var (
		names []string
		err   error
	)
	switch typ {
	case domain.TypePersonal:
		names = g.personal(criteria)
	case domain.TypeKeyword:
		names, err = g.keyword(criteria)
	default:
		pool, ok := g.catalog().Pool(typ)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownType, typ)
		}
		names = g.take(pool, SpecializedCount)
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{Type: typ, Names: names, Criteria: criteria}
	if len(names) == 0 {
		return res, nil
	}
	if err := history.AddToHistory(ctx, names, typ, criteria); err != nil {
		return res, fmt.Errorf("record %s batch: %w", typ, err)
	}
	return res, nil
}

// Featured returns the featured names in random order with their favorite
// state.
func (g *Generator) Featured(ctx context.Context, favorites Favorites) []FeaturedCard {
	featured := g.catalog().Featured

	g.mu.Lock()
	order := g.rng.Perm(len(featured))
	g.mu.Unlock()

	cards := make([]FeaturedCard, 0, len(featured))
	for _, i := range order {
		cards = append(cards, FeaturedCard{
			FeaturedName: featured[i],
			Favorited:    favorites.IsFavorited(ctx, featured[i].Name),
		})
	}
	return cards
}

func (g *Generator) personal(criteria map[string]any) []string {
	gender, _ := criteria[CriteriaGender].(string)
	return g.take(g.catalog().PersonalPool(gender), PersonalCount)
}

func (g *Generator) keyword(criteria map[string]any) ([]string, error) {
	kw, _ := criteria[CriteriaKeyword].(string)
	kw = strings.TrimSpace(kw)
	if kw == "" {
		return nil, ErrMissingKeyword
	}

	lo := intCriterion(criteria, CriteriaMinLength, DefaultKeywordMin)
	hi := intCriterion(criteria, CriteriaMaxLength, DefaultKeywordMax)
	criteria[CriteriaMinLength] = lo
	criteria[CriteriaMaxLength] = hi

	kws := g.catalog().Keyword
	if synonyms := kws.Synonyms[strings.ToLower(kw)]; len(synonyms) > 0 {
		return firstN(withinLength(synonyms, lo, hi), SynonymCount), nil
	}

	variations := make([]string, 0, len(kws.Variations))
	for _, tpl := range kws.Variations {
		variations = append(variations, strings.ReplaceAll(tpl, "{kw}", kw))
	}
	return firstN(withinLength(variations, lo, hi), VariationCount), nil
}

// take shuffles a copy of pool and keeps n names.
func (g *Generator) take(pool []string, n int) []string {
	shuffled := slices.Clone(pool)

	g.mu.Lock()
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	g.mu.Unlock()

	return firstN(shuffled, n)
}

func withinLength(names []string, lo, hi int) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if l := domain.DisplayLength(n); l >= lo && l <= hi {
			out = append(out, n)
		}
	}
	return out
}

func firstN(names []string, n int) []string {
	if len(names) > n {
		return names[:n]
	}
	return names
}

func intCriterion(criteria map[string]any, key string, def int) int {
	switch v := criteria[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}
