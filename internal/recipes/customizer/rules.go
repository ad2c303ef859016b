package customizer

import "fmt"

// Rule maps trigger keywords to a description suffix and a tag.
type Rule struct {
	Tag      string
	Keywords []string
	Suffix   string
}

// MarkerTag is appended to every customized recipe before the rule tag.
const MarkerTag = "custom"

// FallbackTag is used when no rule matches.
const FallbackTag = "custom"

// DefaultRules is evaluated top to bottom; the first rule with a matching
// keyword wins even when later rules also match.
var DefaultRules = []Rule{
	{
		Tag:      "bold",
		Keywords: []string{"strong", "bold", "intense"},
		Suffix:   " This bold preparation will deliver a rich, intense flavor profile.",
	},
	{
		Tag:      "light",
		Keywords: []string{"light", "mild", "gentle", "fruity"},
		Suffix:   " This lighter approach highlights delicate, nuanced flavors.",
	},
	{
		Tag:      "smooth",
		Keywords: []string{"sweet", "smooth", "creamy"},
		Suffix:   " Prepared to emphasize sweetness and smooth texture.",
	},
}

// fallbackRule embeds the caller's preference text verbatim.
func fallbackRule(raw string) Rule {
	return Rule{
		Tag:    FallbackTag,
		Suffix: fmt.Sprintf(" Customized for your preference: %s.", raw),
	}
}

func (r Rule) matches(words map[string]struct{}) bool {
	for _, kw := range r.Keywords {
		if _, ok := words[kw]; ok {
			return true
		}
	}
	return false
}
