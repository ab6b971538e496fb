package generator

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/namax/internal/collection"
	"github.com/MrSnakeDoc/namax/internal/logger"
	"github.com/MrSnakeDoc/namax/internal/sources/catalog"
	"github.com/MrSnakeDoc/namax/internal/store"
)

type historyCall struct {
	names   []string
	typ     string
	filters map[string]any
}

type fakeHistory struct {
	calls []historyCall
	err   error
}

func (f *fakeHistory) AddToHistory(_ context.Context, names []string, typ string, filters map[string]any) error {
	f.calls = append(f.calls, historyCall{names, typ, filters})
	return f.err
}

func newGenerator(seed uint64) *Generator {
	c := catalog.Default()
	return New(func() *catalog.Catalog { return c }, WithRand(rand.New(rand.NewPCG(seed, seed))))
}

func TestPersonalTakesEightFromGenderPool(t *testing.T) {
	ctx := context.Background()
	g := newGenerator(1)
	h := &fakeHistory{}

	res, err := g.Generate(ctx, h, "personal", map[string]any{"gender": "female", "zodiac": "leo"})
	require.NoError(t, err)
	require.Len(t, res.Names, PersonalCount)
	assert.Subset(t, catalog.Default().Personal.Female, res.Names)

	require.Len(t, h.calls, 1)
	assert.Equal(t, res.Names, h.calls[0].names)
	assert.Equal(t, "personal", h.calls[0].typ)
	assert.Equal(t, map[string]any{"gender": "female", "zodiac": "leo"}, h.calls[0].filters)
}

func TestPersonalDefaultsToAny(t *testing.T) {
	g := newGenerator(2)
	res, err := g.Generate(context.Background(), &fakeHistory{}, "personal", nil)
	require.NoError(t, err)
	assert.Subset(t, catalog.Default().Personal.Any, res.Names)
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	ctx := context.Background()
	a, err := newGenerator(7).Generate(ctx, &fakeHistory{}, "random", nil)
	require.NoError(t, err)
	b, err := newGenerator(7).Generate(ctx, &fakeHistory{}, "random", nil)
	require.NoError(t, err)
	assert.Equal(t, a.Names, b.Names)
}

func TestSpecializedTakesSix(t *testing.T) {
	ctx := context.Background()
	g := newGenerator(3)

	for _, typ := range []string{"company", "pet", "place", "gift", "nickname", "leader", "random"} {
		t.Run(typ, func(t *testing.T) {
			h := &fakeHistory{}
			res, err := g.Generate(ctx, h, typ, map[string]any{"style": "modern"})
			require.NoError(t, err)
			assert.Len(t, res.Names, SpecializedCount)

			pool, _ := catalog.Default().Pool(typ)
			assert.Subset(t, pool, res.Names)
			require.Len(t, h.calls, 1)
			assert.Equal(t, typ, h.calls[0].typ)
		})
	}
}

func TestKeywordSynonyms(t *testing.T) {
	ctx := context.Background()
	g := newGenerator(4)
	h := &fakeHistory{}

	res, err := g.Generate(ctx, h, "keyword", map[string]any{"keyword": " Fire ", "minLength": 5, "maxLength": 6})
	require.NoError(t, err)
	// fire synonyms of 5..6 chars, catalog order
	assert.Equal(t, []string{"Blaze", "Ignite", "Flame", "Spark", "Ember", "Cinder"}, res.Names)

	require.Len(t, h.calls, 1)
	assert.Equal(t, map[string]any{"keyword": " Fire ", "minLength": 5, "maxLength": 6}, h.calls[0].filters)
}

func TestKeywordVariations(t *testing.T) {
	ctx := context.Background()
	g := newGenerator(5)
	h := &fakeHistory{}

	res, err := g.Generate(ctx, h, "keyword", map[string]any{"keyword": "Zen"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zenify", "Zenine", "ProZen", "ZenX", "ZenHub", "SmartZen", "Zenly", "MyZen"}, res.Names)

	filters := h.calls[0].filters
	assert.Equal(t, DefaultKeywordMin, filters["minLength"])
	assert.Equal(t, DefaultKeywordMax, filters["maxLength"])
}

func TestKeywordVariationsRespectLength(t *testing.T) {
	g := newGenerator(6)
	res, err := g.Generate(context.Background(), &fakeHistory{}, "keyword",
		map[string]any{"keyword": "Zen", "minLength": 3.0, "maxLength": "5"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ZenX", "Zenly", "MyZen"}, res.Names)
}

func TestEmptyBatchIsNotRecorded(t *testing.T) {
	g := newGenerator(8)
	h := &fakeHistory{}

	res, err := g.Generate(context.Background(), h, "keyword",
		map[string]any{"keyword": "Zen", "minLength": 20, "maxLength": 25})
	require.NoError(t, err)
	assert.Empty(t, res.Names)
	assert.Empty(t, h.calls)
}

func TestGenerateErrors(t *testing.T) {
	ctx := context.Background()
	g := newGenerator(9)
	h := &fakeHistory{}

	_, err := g.Generate(ctx, h, "keyword", map[string]any{"keyword": "   "})
	assert.True(t, errors.Is(err, ErrMissingKeyword))

	_, err = g.Generate(ctx, h, "spaceship", nil)
	assert.True(t, errors.Is(err, ErrUnknownType))

	_, err = g.Generate(ctx, h, "featured", nil)
	assert.True(t, errors.Is(err, ErrUnknownType))

	assert.Empty(t, h.calls)
}

func TestHistoryFailureStillReturnsBatch(t *testing.T) {
	g := newGenerator(10)
	h := &fakeHistory{err: collection.ErrWriteFailed}

	res, err := g.Generate(context.Background(), h, "pet", nil)
	assert.True(t, errors.Is(err, collection.ErrWriteFailed))
	assert.Len(t, res.Names, SpecializedCount)
}

func TestGenerateRecordsInStore(t *testing.T) {
	ctx := context.Background()
	g := newGenerator(11)
	s := collection.New(store.NewMemory(), logger.Nop())

	res, err := g.Generate(ctx, s, "nickname", nil)
	require.NoError(t, err)

	hist := s.ListHistory(ctx)
	require.Len(t, hist, SpecializedCount)
	for i, e := range hist {
		assert.Equal(t, res.Names[i], e.Name)
		assert.Equal(t, "nickname", e.Type)
	}
}

func TestFeaturedCarriesFavoriteState(t *testing.T) {
	ctx := context.Background()
	g := newGenerator(12)
	s := collection.New(store.NewMemory(), logger.Nop())
	require.NoError(t, s.AddToFavorites(ctx, "kai", "featured"))

	cards := g.Featured(ctx, s)
	require.Len(t, cards, 6)

	favorited := 0
	for _, c := range cards {
		if c.Favorited {
			favorited++
			assert.Equal(t, "Kai", c.Name)
		}
	}
	assert.Equal(t, 1, favorited)
	assert.Empty(t, s.ListHistory(ctx), "featured cards are not a generated batch")
}

func TestTypes(t *testing.T) {
	assert.Contains(t, Types(), "keyword")
	assert.NotContains(t, Types(), "featured")
}
