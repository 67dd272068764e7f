package utils

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// CacheKey fingerprints a free-text lookup query into a stable cache key.
// Queries are case-folded and whitespace-trimmed first so trivially different
// spellings share an entry.
func CacheKey(prefix, query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	sum := sha256.Sum256([]byte(q))
	return fmt.Sprintf("%s:%x", prefix, sum[:16])
}

// CoordinateKey builds a cache key from a lat/lng pair. Five decimal places
// is roughly one metre of precision, enough that repeated lookups of the same
// spot collapse to one entry.
func CoordinateKey(prefix string, lat, lng float64) string {
	return fmt.Sprintf("%s:%.5f,%.5f", prefix, lat, lng)
}
