package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Category partitions the catalog.
type Category string

const (
	CategoryBrewing  Category = "brewing"
	CategoryEspresso Category = "espresso"
)

// Categories lists every valid category in display order.
var Categories = []Category{CategoryBrewing, CategoryEspresso}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	return c == CategoryBrewing || c == CategoryEspresso
}

// ParseCategory validates raw at an API boundary.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}

// Difficulty of a recipe
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Recipe is a coffee or espresso recipe. Catalog entries are never mutated;
// callers that need to change one work on a Clone.
type Recipe struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Description  string     `json:"description" yaml:"description"`
	Ingredients  []string   `json:"ingredients" yaml:"ingredients"`
	Instructions []string   `json:"instructions" yaml:"instructions"`
	BrewTime     string     `json:"brewTime" yaml:"brewTime"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty"`
	Icon         string     `json:"icon" yaml:"icon"`
	Category     Category   `json:"category" yaml:"category"`
	Tags         []string   `json:"tags" yaml:"tags"`
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Instructions = slices.Clone(r.Instructions)
	r.Tags = slices.Clone(r.Tags)
	return r
}

// Complete reports whether r carries everything a client needs to render it.
func (r Recipe) Complete() bool {
	return strings.TrimSpace(r.Name) != "" &&
		r.Category.Valid() &&
		len(r.Ingredients) > 0 &&
		len(r.Instructions) > 0
}

// Recipe sources reported alongside a customized recipe
const (
	SourceEnhanced = "enhanced"
	SourceRules    = "rules"
)

// Favorite is a recipe saved by a user.
type Favorite struct {
	Recipe
	UserID  string    `json:"userId"`
	SavedAt time.Time `json:"savedAt"`
}

// HistoryEntry records a recipe generated for a signed-in user.
type HistoryEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Preferences string    `json:"preferences"`
	Recipe      Recipe    `json:"recipe"`
	CreatedAt   time.Time `json:"createdAt"`
}
