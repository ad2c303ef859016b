// Package catalog holds the static recipe set and answers the daily, random
// and per-category queries against it.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

//go:embed recipes.yaml
var embeddedRecipes []byte

type document struct {
	Recipes []domain.Recipe `yaml:"recipes"`
}

// Catalog is an immutable, ordered recipe list. Every accessor hands out
// deep copies so callers cannot alter the shared entries.
type Catalog struct {
	recipes []domain.Recipe
	byID    map[string]int
}

// New validates recipes and builds a catalog preserving their order.
func New(recipes []domain.Recipe) (*Catalog, error) {
	if len(recipes) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	c := &Catalog{
		recipes: make([]domain.Recipe, 0, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
	}
	for i, r := range recipes {
		if r.ID == "" {
			return nil, fmt.Errorf("recipe #%d: missing id", i)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("recipe %s: duplicate id", r.ID)
		}
		if !r.Category.Valid() {
			return nil, fmt.Errorf("recipe %s: %w: %q", r.ID, domain.ErrInvalidCategory, r.Category)
		}
		if !r.Difficulty.Valid() {
			return nil, fmt.Errorf("recipe %s: %w: %q", r.ID, domain.ErrInvalidDifficulty, r.Difficulty)
		}
		c.byID[r.ID] = len(c.recipes)
		c.recipes = append(c.recipes, r.Clone())
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(doc.Recipes)
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(embeddedRecipes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(embeddedRecipes)
	if err != nil {
		panic(errors.Join(errors.New("built-in catalog is invalid"), err))
	}
	return c
}

func (c *Catalog) Len() int { return len(c.recipes) }

// All returns every recipe in catalog order.
func (c *Catalog) All() []domain.Recipe {
	out := make([]domain.Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Get returns the recipe with the given id.
func (c *Catalog) Get(id string) (domain.Recipe, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}
	return c.recipes[i].Clone(), nil
}

// filter returns catalog entries of category cat in order; the empty
// category selects the whole catalog. Entries are not copied.
func (c *Catalog) filter(cat domain.Category) []domain.Recipe {
	if cat == "" {
		return c.recipes
	}
	var out []domain.Recipe
	for _, r := range c.recipes {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	return out
}
