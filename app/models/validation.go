package models

// Per-coordinate classification in a validation run.
const (
	StatusSuccess = "success" // confidence >= high threshold
	StatusPartial = "partial" // accepted but below high threshold, needs review
	StatusFailed  = "failed"  // below accept threshold or no geocoder address
)

// Viability verdict for a whole validation run.
const (
	VerdictViable      = "viable"
	VerdictConditional = "conditional"
	VerdictNotViable   = "not-viable"
)

// CoordinateResult is the outcome of running one test coordinate through the
// geocode -> extract -> match pipeline.
type CoordinateResult struct {
	Label         string      `json:"label"`
	Coordinates   Coordinates `json:"coordinates"`
	Status        string      `json:"status"`
	PostalCode    string      `json:"postal_code,omitempty"`
	Source        string      `json:"source,omitempty"`
	MatchType     string      `json:"match_type,omitempty"`
	Confidence    float64     `json:"confidence"`
	Address       string      `json:"address,omitempty"`
	FailureReason string      `json:"failure_reason,omitempty"`
}

// ValidationMetrics aggregates a validation run.
type ValidationMetrics struct {
	Total        int     `json:"total"`
	SuccessCount int     `json:"success_count"`
	PartialCount int     `json:"partial_count"`
	FailedCount  int     `json:"failed_count"`
	SuccessRate  float64 `json:"success_rate"` // percentage of high-confidence results
	Viability    string  `json:"viability"`
}

// FailureReasonCount groups failed/partial results by reason.
type FailureReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}
