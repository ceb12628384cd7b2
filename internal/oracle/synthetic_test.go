package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryplan/grocery-service/internal/catalog"
)

func TestSyntheticIsDeterministic(t *testing.T) {
	s := NewSynthetic(catalog.Default())
	ctx := context.Background()

	first, err := s.Quote(ctx, "chicken breast", "Kroger")
	require.NoError(t, err)
	second, err := s.Quote(ctx, "chicken breast", "Kroger")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSyntheticQuotesStaplesEverywhere(t *testing.T) {
	cat := catalog.Default()
	s := NewSynthetic(cat)
	ctx := context.Background()

	for _, item := range []string{"milk", "chicken breast", "rice", "eggs"} {
		for _, ch := range cat.Chains() {
			res, err := s.Quote(ctx, item, ch.Name)
			require.NoError(t, err)
			require.True(t, res.Found, "%s at %s", item, ch.Name)
			assert.Greater(t, res.Quote.Price, 0.0)
			assert.NotEmpty(t, res.Quote.Unit)
			assert.NotEmpty(t, res.Quote.DeepLink)
			assert.False(t, res.Quote.Estimated)
		}
	}
}

func TestSyntheticUnknownItemIsEstimated(t *testing.T) {
	s := NewSynthetic(catalog.Default())

	// The delivery chain never misses, so an unknown item is guaranteed a
	// modeled quote there.
	res, err := s.Quote(context.Background(), "dragonfruit salsa", "Amazon Fresh")
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.True(t, res.Quote.Estimated)
	assert.Greater(t, res.Quote.Price, 0.0)
}

func TestSyntheticUnknownStoreMisses(t *testing.T) {
	s := NewSynthetic(catalog.Default())

	res, err := s.Quote(context.Background(), "milk", "Corner Bodega")
	require.NoError(t, err)
	assert.False(t, res.Found)
}

func TestSyntheticNormalizesItemNames(t *testing.T) {
	s := NewSynthetic(catalog.Default())
	ctx := context.Background()

	a, err := s.Quote(ctx, "Milk", "Kroger")
	require.NoError(t, err)
	b, err := s.Quote(ctx, "  milk  ", "Kroger")
	require.NoError(t, err)

	assert.Equal(t, a.Quote.Price, b.Quote.Price)
}

func TestSyntheticPricesVaryByStoreTier(t *testing.T) {
	s := NewSynthetic(catalog.Default())
	ctx := context.Background()

	aldi, err := s.Quote(ctx, "milk", "Aldi")
	require.NoError(t, err)
	wholeFoods, err := s.Quote(ctx, "milk", "Whole Foods")
	require.NoError(t, err)

	assert.Less(t, aldi.Quote.Price, wholeFoods.Quote.Price)
}

func TestSyntheticHistory(t *testing.T) {
	s := NewSynthetic(catalog.Default())

	points, err := s.History(context.Background(), "milk", "Kroger", 30)
	require.NoError(t, err)
	require.Len(t, points, 30)

	for i, p := range points {
		assert.Greater(t, p.Price, 0.0)
		if i > 0 {
			assert.True(t, p.Date.After(points[i-1].Date))
		}
	}
}

func TestSyntheticHistoryForMissingQuoteIsEmpty(t *testing.T) {
	s := NewSynthetic(catalog.Default())

	points, err := s.History(context.Background(), "milk", "Corner Bodega", 7)
	require.NoError(t, err)
	assert.Empty(t, points)
}
