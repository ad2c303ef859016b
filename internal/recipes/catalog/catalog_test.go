package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.Local)
}

func brewingOnly() *Catalog {
	c, err := New([]domain.Recipe{
		{ID: "a", Name: "A", Category: domain.CategoryBrewing, Difficulty: domain.DifficultyEasy},
		{ID: "b", Name: "B", Category: domain.CategoryBrewing, Difficulty: domain.DifficultyMedium},
	})
	if err != nil {
		panic(err)
	}
	return c
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.GreaterOrEqual(t, c.Len(), 10)

	sel := NewSelector(c)
	assert.GreaterOrEqual(t, len(sel.ByCategory(domain.CategoryBrewing)), 5)
	assert.GreaterOrEqual(t, len(sel.ByCategory(domain.CategoryEspresso)), 5)

	r, err := c.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Classic Pour Over", r.Name)
	assert.Equal(t, []string{"clean", "bright", "filter"}, r.Tags)
	assert.Equal(t, "Total brew time: 3-4 minutes", r.Instructions[4])
}

func TestNew_Validation(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.Is(err, domain.ErrEmptyCatalog))

	_, err = New([]domain.Recipe{
		{ID: "1", Category: domain.CategoryBrewing, Difficulty: domain.DifficultyEasy},
		{ID: "1", Category: domain.CategoryBrewing, Difficulty: domain.DifficultyEasy},
	})
	assert.ErrorContains(t, err, "duplicate id")

	_, err = New([]domain.Recipe{{ID: "1", Category: "tea", Difficulty: domain.DifficultyEasy}})
	assert.True(t, errors.Is(err, domain.ErrInvalidCategory))

	_, err = New([]domain.Recipe{{ID: "1", Category: domain.CategoryEspresso, Difficulty: "Trivial"}})
	assert.True(t, errors.Is(err, domain.ErrInvalidDifficulty))

	_, err = New([]domain.Recipe{{Category: domain.CategoryEspresso, Difficulty: domain.DifficultyEasy}})
	assert.ErrorContains(t, err, "missing id")
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
recipes:
  - id: x1
    name: Moka Pot
    description: Stovetop strength
    ingredients: [coffee, water]
    instructions: [fill, heat]
    brewTime: 5 minutes
    difficulty: Medium
    icon: moka
    category: brewing
    tags: [strong]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	r, err := c.Get("x1")
	require.NoError(t, err)
	assert.Equal(t, "Moka Pot", r.Name)
	assert.Equal(t, domain.DifficultyMedium, r.Difficulty)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Parse([]byte("recipes: [: bad"))
	assert.Error(t, err)
}

func TestGet_ReturnsCopy(t *testing.T) {
	c := Default()

	r, err := c.Get("2")
	require.NoError(t, err)
	r.Tags[0] = "mutated"
	r.Ingredients = append(r.Ingredients, "sugar")

	again, err := c.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "rich", again.Tags[0])
	assert.NotContains(t, again.Ingredients, "sugar")

	_, err = c.Get("nope")
	assert.Equal(t, domain.ErrRecipeNotFound, err)
}

func TestByCategory(t *testing.T) {
	c := Default()
	sel := NewSelector(c)

	for _, cat := range domain.Categories {
		got := sel.ByCategory(cat)
		require.NotEmpty(t, got)

		var want []string
		for _, r := range c.All() {
			if r.Category == cat {
				want = append(want, r.ID)
			}
		}

		var ids []string
		for _, r := range got {
			assert.Equal(t, cat, r.Category)
			ids = append(ids, r.ID)
		}
		assert.Equal(t, want, ids, "catalog order must be preserved")
	}

	assert.Empty(t, NewSelector(brewingOnly()).ByCategory(domain.CategoryEspresso))
	assert.Len(t, sel.ByCategory(""), c.Len())
}

func TestTodayAt_KnownDays(t *testing.T) {
	sel := NewSelector(Default())

	r, err := sel.TodayAt(day(2026, time.January, 1), domain.CategoryBrewing)
	require.NoError(t, err)
	assert.Equal(t, "2", r.ID, "Jan 1 is day 1 -> index 1")

	r, err = sel.TodayAt(day(2026, time.January, 1), domain.CategoryEspresso)
	require.NoError(t, err)
	assert.Equal(t, "7", r.ID)

	r, err = sel.TodayAt(day(2026, time.January, 5), domain.CategoryBrewing)
	require.NoError(t, err)
	assert.Equal(t, "1", r.ID, "day 5 mod 5 wraps to the first entry")

	r, err = sel.TodayAt(day(2026, time.January, 3), "")
	require.NoError(t, err)
	assert.Equal(t, "4", r.ID)
}

func TestToday_StableWithinDay(t *testing.T) {
	now := time.Date(2026, time.October, 19, 8, 0, 0, 0, time.Local)
	sel := NewSelector(Default(), WithClock(func() time.Time { return now }))

	first, err := sel.Today(domain.CategoryEspresso)
	require.NoError(t, err)

	now = now.Add(10 * time.Hour)
	second, err := sel.Today(domain.CategoryEspresso)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTodayAt_Periodicity(t *testing.T) {
	sel := NewSelector(Default())

	for _, cat := range domain.Categories {
		n := len(sel.ByCategory(cat))
		start := day(2026, time.February, 10)

		a, err := sel.TodayAt(start, cat)
		require.NoError(t, err)
		b, err := sel.TodayAt(start.AddDate(0, 0, n), cat)
		require.NoError(t, err)

		assert.Equal(t, a.ID, b.ID, "category %s", cat)
	}
}

func TestTodayAndRandom_EmptyCategory(t *testing.T) {
	sel := NewSelector(brewingOnly())

	_, err := sel.Today(domain.CategoryEspresso)
	assert.Equal(t, domain.ErrEmptyCatalog, err)

	_, err = sel.Random(domain.CategoryEspresso)
	assert.Equal(t, domain.ErrEmptyCatalog, err)

	_, err = sel.Today("")
	assert.NoError(t, err)
}

func TestRandom_StaysInCategory(t *testing.T) {
	sel := NewSelector(Default())

	for _, cat := range domain.Categories {
		allowed := map[string]bool{}
		for _, r := range sel.ByCategory(cat) {
			allowed[r.ID] = true
		}

		for i := 0; i < 1000; i++ {
			r, err := sel.Random(cat)
			require.NoError(t, err)
			require.Equal(t, cat, r.Category)
			require.True(t, allowed[r.ID], "unexpected id %s", r.ID)
		}
	}
}

func TestRandom_InjectedSource(t *testing.T) {
	var gotN int
	sel := NewSelector(Default(), WithRand(func(n int) int {
		gotN = n
		return n - 1
	}))

	r, err := sel.Random(domain.CategoryEspresso)
	require.NoError(t, err)
	assert.Equal(t, len(sel.ByCategory(domain.CategoryEspresso)), gotN)
	assert.Equal(t, "10", r.ID)
}
