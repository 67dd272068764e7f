package matcher

import (
	"strings"
	"time"

	"github.com/postcode-locator/app/models"
	"github.com/postcode-locator/internal/catalog"
	"github.com/postcode-locator/internal/normalizer"
	"go.uber.org/zap"
)

// Tier confidence constants. Each tier's band is clamped so a weaker tier can
// never numerically outrank a stronger one through interpolation. Empirically
// chosen in the field data; do not re-derive.
const (
	exactStreetConfidence   = 95.0
	exactLocalityConfidence = 90.0

	areaBaseConfidence   = 75.0
	areaSimilarityWeight = 0.1
	areaMaxConfidence    = 85.0

	lgaConfidence      = 55.0
	lgaFallbackCeiling = 60.0

	fuzzyBaseConfidence   = 40.0
	fuzzySimilarityWeight = 0.3
	fuzzyMaxConfidence    = 70.0

	lgaGateThreshold    = 80.0
	areaMatchThreshold  = 70.0
	fuzzyMatchThreshold = 60.0
)

// Result is the outcome of matching one address against the catalog.
// Record is nil exactly when MatchType is "none" and Confidence is 0.
type Result struct {
	Record     *models.PostalCodeRecord `json:"record"`
	Confidence float64                  `json:"confidence"`
	MatchType  string                   `json:"match_type"`
}

// Matcher resolves a noisy address string plus optionally-known LGA/area
// against the postal-code catalog. It is pure and deterministic for a given
// catalog snapshot and safe for concurrent use.
type Matcher struct {
	catalog  *catalog.Catalog
	expander *normalizer.Expander
	norm     *normalizer.TextNormalizer
	logger   *zap.Logger
}

// New creates a Matcher over a loaded catalog. A nil expander gets the
// default abbreviation dictionary.
func New(cat *catalog.Catalog, expander *normalizer.Expander, logger *zap.Logger) *Matcher {
	norm := normalizer.NewTextNormalizer()
	if expander == nil {
		expander = normalizer.NewExpander(norm, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		catalog:  cat,
		expander: expander,
		norm:     norm,
		logger:   logger,
	}
}

func noMatch() Result {
	return Result{Record: nil, Confidence: 0, MatchType: models.MatchTypeNone}
}

// Match scans the full catalog and returns the highest-confidence match.
// There is no early exit; ties keep the first record found. Absence of a
// match is a defined "none" result, never an error.
func (m *Matcher) Match(addressText, knownLGA, knownArea string) Result {
	if addressText == "" && knownLGA == "" && knownArea == "" {
		return noMatch()
	}
	start := time.Now()

	var textVariants, lgaVariants, areaVariants []string
	if addressText != "" {
		textVariants = m.expander.Expand(addressText)
	}
	if knownLGA != "" {
		lgaVariants = m.expander.Expand(knownLGA)
	}
	if knownArea != "" {
		areaVariants = m.expander.Expand(knownArea)
	}

	best := noMatch()
	records := m.catalog.Records()
	for i := range records {
		rec := &records[i]
		recLGA := m.norm.Normalize(rec.LGA)

		// Postal codes never cross LGA lines: with a known LGA the gate is a
		// hard filter. Without one there is no boundary to enforce, but the
		// LGA fallback tier then has no evidence and stays off.
		gatePassed := len(lgaVariants) == 0 || passesLGAGate(lgaVariants, recLGA)
		if !gatePassed {
			continue
		}

		recArea := m.norm.Normalize(rec.Area)
		recLocality := m.norm.Normalize(rec.Locality)
		recStreet := m.norm.Normalize(rec.Street)

		if conf, ok := exactTierScore(textVariants, recArea, recLocality, recStreet); ok && conf > best.Confidence {
			best = Result{Record: rec, Confidence: conf, MatchType: models.MatchTypeExact}
		}

		if areaMatches(areaVariants, recArea, rec.Area) {
			if conf := areaTierScore(Similarity(knownArea, rec.Area)); conf > best.Confidence {
				best = Result{Record: rec, Confidence: conf, MatchType: models.MatchTypeArea}
			}
		}

		if len(lgaVariants) > 0 && best.Confidence < lgaFallbackCeiling && lgaConfidence > best.Confidence {
			best = Result{Record: rec, Confidence: lgaConfidence, MatchType: models.MatchTypeLGA}
		}

		if sim := bestFuzzySimilarity(textVariants, rec); sim > fuzzyMatchThreshold {
			if conf := fuzzyTierScore(sim); conf > best.Confidence {
				best = Result{Record: rec, Confidence: conf, MatchType: models.MatchTypeFuzzy}
			}
		}
	}

	m.logger.Debug("postal code match completed",
		zap.String("address", addressText),
		zap.String("lga", knownLGA),
		zap.String("area", knownArea),
		zap.Float64("confidence", best.Confidence),
		zap.String("match_type", best.MatchType),
		zap.Duration("duration", time.Since(start)))

	return best
}

// passesLGAGate reports whether any LGA variant contains, is contained by, or
// scores above the gate threshold against the record's normalized LGA.
func passesLGAGate(lgaVariants []string, recLGA string) bool {
	if recLGA == "" {
		return false
	}
	for _, v := range lgaVariants {
		if v == "" {
			continue
		}
		if strings.Contains(v, recLGA) || strings.Contains(recLGA, v) {
			return true
		}
		if Similarity(v, recLGA) > lgaGateThreshold {
			return true
		}
	}
	return false
}

// exactTierScore checks every address-text variant for verbatim containment
// of the record's area together with its locality or street. Records that
// carry a street can reach the full 95 band; street-less records cap at 90
// through their locality.
func exactTierScore(textVariants []string, recArea, recLocality, recStreet string) (float64, bool) {
	if recArea == "" {
		return 0, false
	}
	best := 0.0
	for _, v := range textVariants {
		if v == "" || !strings.Contains(v, recArea) {
			continue
		}
		localityHit := recLocality != "" && strings.Contains(v, recLocality)
		streetHit := recStreet != "" && strings.Contains(v, recStreet)
		switch {
		case recStreet != "" && (localityHit || streetHit):
			if exactStreetConfidence > best {
				best = exactStreetConfidence
			}
		case localityHit:
			if exactLocalityConfidence > best {
				best = exactLocalityConfidence
			}
		}
	}
	return best, best > 0
}

// areaMatches reports whether any area variant matches the record's area by
// containment either way or by similarity above the area threshold.
func areaMatches(areaVariants []string, recArea, rawArea string) bool {
	if recArea == "" {
		return false
	}
	for _, v := range areaVariants {
		if v == "" {
			continue
		}
		if strings.Contains(v, recArea) || strings.Contains(recArea, v) {
			return true
		}
		if Similarity(v, rawArea) > areaMatchThreshold {
			return true
		}
	}
	return false
}

// areaTierScore interpolates the area band from the raw area similarity.
func areaTierScore(sim float64) float64 {
	conf := areaBaseConfidence + sim*areaSimilarityWeight
	if conf > areaMaxConfidence {
		conf = areaMaxConfidence
	}
	return conf
}

// fuzzyTierScore interpolates the fuzzy band from the best text similarity.
func fuzzyTierScore(sim float64) float64 {
	conf := fuzzyBaseConfidence + sim*fuzzySimilarityWeight
	if conf > fuzzyMaxConfidence {
		conf = fuzzyMaxConfidence
	}
	return conf
}

// bestFuzzySimilarity takes the max similarity of every text variant against
// the record's locality and area.
func bestFuzzySimilarity(textVariants []string, rec *models.PostalCodeRecord) float64 {
	max := 0.0
	for _, v := range textVariants {
		if v == "" {
			continue
		}
		if rec.Locality != "" {
			if s := Similarity(v, rec.Locality); s > max {
				max = s
			}
		}
		if rec.Area != "" {
			if s := Similarity(v, rec.Area); s > max {
				max = s
			}
		}
	}
	return max
}
