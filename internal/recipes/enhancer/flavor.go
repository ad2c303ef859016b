package enhancer

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

const flavorPlaceholder = "{flavor}"

// Profile is one flavor enrichment. Text fields may contain {flavor}, which
// is replaced by an entry picked at random from Flavors.
type Profile struct {
	Triggers    []string
	Flavors     []string
	NamePrefix  string
	Ingredients []string
	Sentence    string
	Tags        []string
}

// DefaultProfiles is matched in order; the first profile whose trigger occurs
// anywhere in the preference text is applied.
var DefaultProfiles = []Profile{
	{
		Triggers:    []string{"exotic", "unique"},
		Flavors:     []string{"cardamom", "orange blossom", "saffron", "coconut", "chai spices"},
		NamePrefix:  flavorPlaceholder,
		Ingredients: []string{"1/4 tsp {flavor}", "Coconut milk", "Edible flowers for garnish"},
		Sentence:    "Elevated with exotic {flavor} for a unique flavor journey.",
		Tags:        []string{"exotic", flavorPlaceholder},
	},
	{
		Triggers:    []string{"healthy", "wellness"},
		NamePrefix:  "Wellness",
		Ingredients: []string{"1 tsp MCT oil", "Collagen powder (optional)", "Oat milk instead of regular milk"},
		Sentence:    "Optimized for health and wellness benefits.",
		Tags:        []string{"healthy", "wellness"},
	},
	{
		Triggers:    []string{"sweet", "dessert"},
		NamePrefix:  "Sweet",
		Ingredients: []string{"2 tsp vanilla syrup", "Whipped cream", "Cinnamon dust for garnish"},
		Sentence:    "Enhanced with rich sweetness and dessert-like qualities.",
		Tags:        []string{"sweet", "dessert"},
	},
}

// FlavorGenerator enriches a base recipe with ingredients and tags.
type FlavorGenerator struct {
	profiles []Profile
	intn     func(n int) int
	newID    func() string
}

type FlavorOption func(*FlavorGenerator)

func WithProfiles(p []Profile) FlavorOption {
	return func(g *FlavorGenerator) { g.profiles = p }
}

func WithFlavorRand(intn func(n int) int) FlavorOption {
	return func(g *FlavorGenerator) { g.intn = intn }
}

func WithFlavorIDGenerator(fn func() string) FlavorOption {
	return func(g *FlavorGenerator) { g.newID = fn }
}

func NewFlavorGenerator(opts ...FlavorOption) *FlavorGenerator {
	g := &FlavorGenerator{
		profiles: DefaultProfiles,
		intn:     rand.Intn,
		newID:    domain.NewCustomID,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate applies the first matching profile to a copy of base. When no
// profile matches it returns an unchanged copy and false.
func (g *FlavorGenerator) Generate(base domain.Recipe, preferences string) (domain.Recipe, bool) {
	prefs := strings.ToLower(preferences)

	for _, p := range g.profiles {
		if !containsAny(prefs, p.Triggers) {
			continue
		}

		flavor := ""
		if len(p.Flavors) > 0 {
			flavor = p.Flavors[g.intn(len(p.Flavors))]
		}
		fill := func(s string) string { return strings.ReplaceAll(s, flavorPlaceholder, flavor) }

		out := base.Clone()
		out.ID = g.newID()

		prefix := p.NamePrefix
		if prefix == flavorPlaceholder {
			prefix = capitalize(flavor)
		}
		out.Name = fmt.Sprintf("%s %s", fill(prefix), base.Name)
		out.Description = fmt.Sprintf("%s %s", base.Description, fill(p.Sentence))

		for _, ing := range p.Ingredients {
			out.Ingredients = append(out.Ingredients, fill(ing))
		}
		for _, tag := range p.Tags {
			out.Tags = append(out.Tags, fill(tag))
		}
		return out, true
	}

	return base.Clone(), false
}

// LocalEnhancer adapts a FlavorGenerator to Enhancer. Text that matches no
// profile counts as unavailable so the rule-based customizer takes over.
type LocalEnhancer struct {
	gen *FlavorGenerator
}

var _ Enhancer = (*LocalEnhancer)(nil)

func NewLocalEnhancer(gen *FlavorGenerator) *LocalEnhancer {
	return &LocalEnhancer{gen: gen}
}

func (e *LocalEnhancer) Enhance(ctx context.Context, req Request) (domain.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return domain.Recipe{}, fmt.Errorf("%w: %w", domain.ErrEnhancementUnavailable, err)
	}
	out, ok := e.gen.Generate(req.BaseRecipe, req.Preferences)
	if !ok {
		return domain.Recipe{}, fmt.Errorf("%w: no flavor profile matched", domain.ErrEnhancementUnavailable)
	}
	return out, nil
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
