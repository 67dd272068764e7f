package services

import (
	"context"
	"time"

	"github.com/postcode-locator/app/models"
)

// CacheStats summarizes a cache tier's activity.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService is the contract every cache tier satisfies. Keys are
// fingerprints built by helpers/utils; values are resolved lookups.
type ICacheService interface {
	// Get returns the cached result for key, and whether it was present.
	Get(ctx context.Context, key string) (*models.LocationResult, bool, error)

	// Set stores a resolved lookup under key.
	Set(ctx context.Context, key string, result *models.LocationResult) error

	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	// Exists reports whether key is cached without fetching the value.
	Exists(ctx context.Context, key string) (bool, error)

	// GetTTL returns the remaining lifetime of key, 0 when not applicable.
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	// GetStats returns tier activity counters.
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close releases the tier's connections, if any.
	Close() error
}
