package catalog

import (
	"math/rand"
	"time"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

// Selector answers recipe queries over a Catalog. The empty category means
// "any category"; other values are expected to be validated by the caller.
type Selector struct {
	catalog *Catalog
	now     func() time.Time
	intn    func(n int) int
}

type Option func(*Selector)

// WithClock replaces time.Now, which decides the current local day.
func WithClock(now func() time.Time) Option {
	return func(s *Selector) { s.now = now }
}

// WithRand replaces the uniform index source used by Random.
func WithRand(intn func(n int) int) Option {
	return func(s *Selector) { s.intn = intn }
}

func NewSelector(c *Catalog, opts ...Option) *Selector {
	s := &Selector{
		catalog: c,
		now:     time.Now,
		intn:    rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the underlying catalog.
func (s *Selector) Catalog() *Catalog { return s.catalog }

// ByCategory returns all recipes of category cat in catalog order. It never
// fails; an unmatched category yields an empty slice.
func (s *Selector) ByCategory(cat domain.Category) []domain.Recipe {
	matched := s.catalog.filter(cat)
	out := make([]domain.Recipe, len(matched))
	for i, r := range matched {
		out[i] = r.Clone()
	}
	return out
}

// Today returns the recipe of the day for cat in the local calendar.
func (s *Selector) Today(cat domain.Category) (domain.Recipe, error) {
	return s.TodayAt(s.now(), cat)
}

// TodayAt picks entry dayOfYear mod n of the filtered list, where Jan 1 is
// day 1 in t's location. The same day always yields the same recipe and the
// pick repeats every n days.
func (s *Selector) TodayAt(t time.Time, cat domain.Category) (domain.Recipe, error) {
	matched := s.catalog.filter(cat)
	if len(matched) == 0 {
		return domain.Recipe{}, domain.ErrEmptyCatalog
	}
	return matched[t.YearDay()%len(matched)].Clone(), nil
}

// Random returns a uniformly chosen recipe of category cat.
func (s *Selector) Random(cat domain.Category) (domain.Recipe, error) {
	matched := s.catalog.filter(cat)
	if len(matched) == 0 {
		return domain.Recipe{}, domain.ErrEmptyCatalog
	}
	return matched[s.intn(len(matched))].Clone(), nil
}

// Get returns a catalog recipe by id.
func (s *Selector) Get(id string) (domain.Recipe, error) {
	return s.catalog.Get(id)
}
