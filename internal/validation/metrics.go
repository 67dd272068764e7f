package validation

import (
	"sort"

	"github.com/postcode-locator/app/models"
)

// Default viability cutoffs: the pipeline is production-ready at a 90%
// high-confidence rate and worth conditional rollout at 80%.
const (
	DefaultViableRate      = 90.0
	DefaultConditionalRate = 80.0
)

// CalculateMetrics aggregates a run into counts, the high-confidence success
// rate, and a viability verdict. Non-positive cutoffs get the defaults.
func CalculateMetrics(results []models.CoordinateResult, viableRate, conditionalRate float64) models.ValidationMetrics {
	if viableRate <= 0 {
		viableRate = DefaultViableRate
	}
	if conditionalRate <= 0 {
		conditionalRate = DefaultConditionalRate
	}

	m := models.ValidationMetrics{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case models.StatusSuccess:
			m.SuccessCount++
		case models.StatusPartial:
			m.PartialCount++
		default:
			m.FailedCount++
		}
	}

	if m.Total > 0 {
		m.SuccessRate = float64(m.SuccessCount) / float64(m.Total) * 100
	}

	switch {
	case m.Total > 0 && m.SuccessRate >= viableRate:
		m.Viability = models.VerdictViable
	case m.Total > 0 && m.SuccessRate >= conditionalRate:
		m.Viability = models.VerdictConditional
	default:
		m.Viability = models.VerdictNotViable
	}
	return m
}

// AnalyzeFailures groups failed and partial results by failure reason and
// counts occurrences, sorted descending by count. Ties order by reason for
// stable output.
func AnalyzeFailures(results []models.CoordinateResult) []models.FailureReasonCount {
	counts := make(map[string]int)
	for _, r := range results {
		if r.Status == models.StatusSuccess || r.FailureReason == "" {
			continue
		}
		counts[r.FailureReason]++
	}

	out := make([]models.FailureReasonCount, 0, len(counts))
	for reason, count := range counts {
		out = append(out, models.FailureReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}
