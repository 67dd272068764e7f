package responses

import (
	"github.com/postcode-locator/app/models"
	"github.com/postcode-locator/internal/catalog"
)

// LookupResponse wraps a resolved lookup with request-level metadata.
type LookupResponse struct {
	Result           *models.LocationResult `json:"result"`
	ProcessingTimeMs int64                  `json:"processing_time_ms"`
	CacheHit         bool                   `json:"cache_hit"`
}

// SearchResponse is the ranked free-text catalog search payload.
type SearchResponse struct {
	Query   string                 `json:"query"`
	Results []catalog.SearchResult `json:"results"`
	Total   int                    `json:"total"`
}

// PostcodeResponse lists every catalog record under one postal code.
type PostcodeResponse struct {
	PostalCode string                    `json:"postal_code"`
	Records    []models.PostalCodeRecord `json:"records"`
	Total      int                       `json:"total"`
}

// StatsResponse wraps the lookup usage counters.
type StatsResponse struct {
	Usage models.UsageStats `json:"usage"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// SuccessResponse is the uniform acknowledgement payload for admin actions.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HealthCheckResponse is the health probe payload.
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}
