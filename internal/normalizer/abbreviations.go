package normalizer

import (
	"sort"
	"strings"
)

// Dictionary maps a normalized short form to its normalized long forms.
// Entries must already be in Normalize form (lowercase, no punctuation);
// the expander does not normalize dictionary entries at lookup time.
type Dictionary map[string][]string

// DefaultDictionary returns the curated abbreviation table for Nigerian
// addresses. The list is deliberately small and checked: expansion is plain
// substring replacement, not word-boundary-aware, so every entry here has
// been vetted against false hits at the observed catalog size.
func DefaultDictionary() Dictionary {
	return Dictionary{
		"vi":          {"victoria island"},
		"v i":         {"victoria island"},
		"gra":         {"government reservation area", "government reserved area"},
		"vgc":         {"victoria garden city"},
		"lekki ph1":   {"lekki phase 1"},
		"lekki ph 1":  {"lekki phase 1"},
		"lekki ph2":   {"lekki phase 2"},
		"lekki ph 2":  {"lekki phase 2"},
		"unilag":      {"university of lagos"},
		"luth":        {"lagos university teaching hospital"},
		"mmia":        {"murtala muhammed international airport"},
		"cms":         {"church missionary society"},
		"iba lga":     {"iba local government area"},
		"anthony vil": {"anthony village"},
	}
}

// Expander produces the set of textual variants of an input string under a
// Dictionary, in both directions: short form -> long forms and long form ->
// short form.
type Expander struct {
	norm *TextNormalizer
	dict Dictionary
}

// NewExpander creates an Expander. A nil dictionary gets the default table.
func NewExpander(norm *TextNormalizer, dict Dictionary) *Expander {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Expander{norm: norm, dict: dict}
}

// Expand normalizes text and returns the deduplicated variant set, always
// including the normalized input itself. Output order is deterministic.
func (e *Expander) Expand(text string) []string {
	normalized := e.norm.Normalize(text)
	seen := map[string]struct{}{normalized: {}}

	for short, longs := range e.dict {
		if short != "" && strings.Contains(normalized, short) {
			for _, long := range longs {
				seen[strings.ReplaceAll(normalized, short, long)] = struct{}{}
			}
		}
		for _, long := range longs {
			if long != "" && strings.Contains(normalized, long) {
				seen[strings.ReplaceAll(normalized, long, short)] = struct{}{}
			}
		}
	}

	variants := make([]string, 0, len(seen))
	for v := range seen {
		variants = append(variants, v)
	}
	sort.Strings(variants)
	return variants
}
