package matcher

import (
	"strings"

	"github.com/postcode-locator/internal/normalizer"
)

// Interpolation constants for the containment rule. Empirically chosen and
// preserved as-is: changing them changes matching behavior.
const (
	containmentBase  = 85.0
	containmentRange = 15.0
)

// norm is the shared text normalizer for scoring. It is stateless after
// construction and safe for concurrent use.
var norm = normalizer.NewTextNormalizer()

// Similarity scores two strings in [0, 100]. Rules in order, first match wins:
// normalized equality -> 100; substring containment -> 85 plus up to 15 as the
// shorter string approaches the longer in length; otherwise the Dice
// coefficient over word sets. Exact and containment signals are cheap and
// strong and must dominate word-overlap scoring.
func Similarity(a, b string) float64 {
	na := norm.Normalize(a)
	nb := norm.Normalize(b)
	if na == nb {
		return 100
	}

	longer, shorter := na, nb
	if len(longer) < len(shorter) {
		longer, shorter = shorter, longer
	}
	if len(longer) == 0 {
		return 100
	}
	if strings.Contains(longer, shorter) {
		return containmentBase + float64(len(shorter))/float64(len(longer))*containmentRange
	}

	wa := wordSet(na)
	wb := wordSet(nb)
	common := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			common++
		}
	}
	score := float64(2*common) / float64(len(wa)+len(wb)) * 100
	if score > 100 {
		score = 100
	}
	return score
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		set[w] = struct{}{}
	}
	return set
}
