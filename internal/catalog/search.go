package catalog

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/postcode-locator/app/models"
	"github.com/postcode-locator/internal/normalizer"
	"github.com/xrash/smetrics"
)

// SearchResult is one ranked hit from a free-text catalog search.
type SearchResult struct {
	Record models.PostalCodeRecord `json:"record"`
	Score  float64                 `json:"score"`
}

var searchNorm = normalizer.NewTextNormalizer()

// Search ranks catalog records against a free-text query by the best of
// Jaro-Winkler and length-normalized Levenshtein over area, locality, street
// and LGA. Short queries need higher accuracy than long ones before a record
// is admitted. This powers the browse/search endpoint only; postal-code
// matching proper goes through the matcher.
func (c *Catalog) Search(query string, limit int) []SearchResult {
	q := searchNorm.Normalize(query)
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	results := make([]SearchResult, 0, limit)
	for _, r := range c.records {
		score := searchScore(q, r)
		if score == 0 {
			continue
		}
		results = append(results, SearchResult{Record: r, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// searchScore returns the best similarity of the query against the record's
// text fields, or 0 when it falls below the admission rule.
func searchScore(q string, r models.PostalCodeRecord) float64 {
	maxScore := 0.0
	for _, field := range []string{r.Area, r.Locality, r.Street, r.LGA} {
		if field == "" {
			continue
		}
		f := searchNorm.Normalize(field)
		if f == "" {
			continue
		}

		jw := smetrics.JaroWinkler(q, f, 0.7, 4)
		if jw > maxScore {
			maxScore = jw
		}

		dist := levenshtein.ComputeDistance(q, f)
		maxLen := math.Max(float64(len(q)), float64(len(f)))
		lev := 1.0 - float64(dist)/maxLen
		if lev > maxScore {
			maxScore = lev
		}

		if strings.Contains(f, q) && maxScore < 0.9 {
			maxScore = 0.9
		}
	}

	// Short queries need higher accuracy, long queries are more tolerant.
	if len(q) <= 10 && maxScore > 0.8 {
		return maxScore
	}
	if len(q) > 10 && maxScore > 0.6 {
		return maxScore
	}
	return 0.0
}
