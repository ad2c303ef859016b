// Package customizer derives a custom recipe from a base recipe and free-form
// preference text using an ordered keyword rule table.
package customizer

import (
	"strings"
	"unicode"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

type Customizer struct {
	rules []Rule
	newID func() string
}

type Option func(*Customizer)

// WithRules replaces the rule table.
func WithRules(rules []Rule) Option {
	return func(c *Customizer) { c.rules = rules }
}

// WithIDGenerator replaces domain.NewCustomID.
func WithIDGenerator(fn func() string) Option {
	return func(c *Customizer) { c.newID = fn }
}

func New(opts ...Option) *Customizer {
	c := &Customizer{
		rules: DefaultRules,
		newID: domain.NewCustomID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Match returns the first rule triggered by preferences, or the fallback
// rule carrying the raw text when nothing matches.
func (c *Customizer) Match(preferences string) Rule {
	words := tokenize(preferences)
	for _, r := range c.rules {
		if r.matches(words) {
			return r
		}
	}
	return fallbackRule(preferences)
}

// Customize builds a new recipe from base. base is left untouched; the
// result gets a fresh id, a "Custom " name prefix, the rule suffix appended
// to the description and the marker and rule tags appended to the base tags.
// Any preference text, including "", is accepted.
func (c *Customizer) Customize(base *domain.Recipe, preferences string) (domain.Recipe, error) {
	if base == nil {
		return domain.Recipe{}, domain.ErrNilRecipe
	}

	rule := c.Match(preferences)

	out := base.Clone()
	out.ID = c.newID()
	out.Name = "Custom " + base.Name
	out.Description = base.Description + rule.Suffix

	tags := make([]string, 0, len(base.Tags)+2)
	tags = append(tags, base.Tags...)
	out.Tags = append(tags, MarkerTag, rule.Tag)

	return out, nil
}

// tokenize trims and lower-cases text and splits it into words on anything
// that is not a letter, digit or hyphen.
func tokenize(text string) map[string]struct{} {
	normalized := strings.ToLower(strings.TrimSpace(text))
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})

	words := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		words[f] = struct{}{}
	}
	return words
}
