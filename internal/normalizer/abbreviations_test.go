package normalizer

import (
	"strings"
	"testing"
)

func containsVariant(variants []string, substr string) bool {
	for _, v := range variants {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}

func TestExpand_RoundTrip(t *testing.T) {
	e := NewExpander(NewTextNormalizer(), nil)

	testCases := []struct {
		name   string
		input  string
		expect string // some variant must contain this
	}{
		{
			name:   "Short_To_Long_VI",
			input:  "VI shopping mall",
			expect: "victoria island",
		},
		{
			name:   "Long_To_Short_VI",
			input:  "Victoria Island mall",
			expect: "vi mall",
		},
		{
			name:   "Short_To_Long_GRA",
			input:  "Ikeja GRA",
			expect: "government reservation area",
		},
		{
			name:   "GRA_Second_Long_Form",
			input:  "Ikeja GRA",
			expect: "government reserved area",
		},
		{
			name:   "Lekki_Phase_Short_Form",
			input:  "Lekki Ph1 gate",
			expect: "lekki phase 1",
		},
		{
			name:   "VGC_Expansion",
			input:  "VGC estate",
			expect: "victoria garden city",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			variants := e.Expand(tc.input)
			if !containsVariant(variants, tc.expect) {
				t.Errorf("Expand(%q) = %v, no variant contains %q", tc.input, variants, tc.expect)
			}
		})
	}
}

func TestExpand_IncludesNormalizedInput(t *testing.T) {
	e := NewExpander(NewTextNormalizer(), nil)

	variants := e.Expand("Otigba Street, Computer Village")
	want := "otigba street computer village"
	found := false
	for _, v := range variants {
		if v == want {
			found = true
		}
	}
	if !found {
		t.Errorf("Expand must always include the normalized input %q, got %v", want, variants)
	}
}

func TestExpand_Deduplicates(t *testing.T) {
	dict := Dictionary{"vi": {"victoria island"}}
	e := NewExpander(NewTextNormalizer(), dict)

	variants := e.Expand("nothing to expand here")
	if len(variants) != 1 {
		t.Errorf("expected single variant for text with no dictionary hits, got %v", variants)
	}
}

func TestExpand_CustomDictionary(t *testing.T) {
	dict := Dictionary{"ph": {"phase"}}
	e := NewExpander(NewTextNormalizer(), dict)

	variants := e.Expand("Lekki Ph 2")
	if !containsVariant(variants, "phase") {
		t.Errorf("custom dictionary not applied, got %v", variants)
	}
}
