package enhancer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

func fixedID() string { return "custom-test" }

func TestFlavorGenerator_Sweet(t *testing.T) {
	g := NewFlavorGenerator(WithFlavorIDGenerator(fixedID))
	base := sampleRecipe()

	out, ok := g.Generate(base, "Something for DESSERT")
	require.True(t, ok)

	assert.Equal(t, "custom-test", out.ID)
	assert.Equal(t, "Sweet Classic Espresso", out.Name)
	assert.Equal(t, "A concentrated shot Enhanced with rich sweetness and dessert-like qualities.", out.Description)
	assert.Equal(t, []string{"18g espresso", "2 tsp vanilla syrup", "Whipped cream", "Cinnamon dust for garnish"}, out.Ingredients)
	assert.Equal(t, []string{"intense", "sweet", "dessert"}, out.Tags)
	assert.Equal(t, []string{"18g espresso"}, base.Ingredients, "base untouched")
}

func TestFlavorGenerator_Exotic(t *testing.T) {
	g := NewFlavorGenerator(
		WithFlavorIDGenerator(fixedID),
		WithFlavorRand(func(n int) int { return 1 }),
	)

	out, ok := g.Generate(sampleRecipe(), "something unique")
	require.True(t, ok)

	assert.Equal(t, "Orange blossom Classic Espresso", out.Name)
	assert.Contains(t, out.Ingredients, "1/4 tsp orange blossom")
	assert.Equal(t, []string{"intense", "exotic", "orange blossom"}, out.Tags)
	assert.Contains(t, out.Description, "exotic orange blossom")
}

func TestFlavorGenerator_PriorityOrder(t *testing.T) {
	g := NewFlavorGenerator(WithFlavorIDGenerator(fixedID), WithFlavorRand(func(int) int { return 0 }))

	out, ok := g.Generate(sampleRecipe(), "sweet and healthy")
	require.True(t, ok)
	assert.Equal(t, "Wellness Classic Espresso", out.Name)

	out, ok = g.Generate(sampleRecipe(), "sweet, healthy and exotic")
	require.True(t, ok)
	assert.Equal(t, "Cardamom Classic Espresso", out.Name)
}

func TestFlavorGenerator_NoMatch(t *testing.T) {
	g := NewFlavorGenerator()
	base := sampleRecipe()

	out, ok := g.Generate(base, "purple elephants")
	assert.False(t, ok)
	assert.Equal(t, base, out)
}

func TestLocalEnhancer(t *testing.T) {
	e := NewLocalEnhancer(NewFlavorGenerator(WithFlavorIDGenerator(fixedID)))

	out, err := e.Enhance(context.Background(), Request{Preferences: "wellness", BaseRecipe: sampleRecipe()})
	require.NoError(t, err)
	assert.Equal(t, "Wellness Classic Espresso", out.Name)

	_, err = e.Enhance(context.Background(), Request{Preferences: "strong", BaseRecipe: sampleRecipe()})
	assert.True(t, errors.Is(err, domain.ErrEnhancementUnavailable))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Enhance(ctx, Request{Preferences: "sweet", BaseRecipe: sampleRecipe()})
	assert.True(t, errors.Is(err, domain.ErrEnhancementUnavailable))
}
