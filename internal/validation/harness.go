package validation

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/postcode-locator/app/models"
	"github.com/postcode-locator/internal/geocode"
	"github.com/postcode-locator/internal/matcher"
	"go.uber.org/zap"
)

// Geocoder is the upstream reverse geocoder a validation run drives.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (geocode.Result, bool, error)
}

// Coordinate is one test position in a validation run.
type Coordinate struct {
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
}

// Failure reasons are stable strings: AnalyzeFailures groups on them.
const (
	ReasonNoAddress     = "Google API did not return an address"
	ReasonNoMatch       = "no catalog record matched"
	ReasonBelowAccept   = "best match below acceptance threshold"
	ReasonLowConfidence = "match accepted below high confidence"
)

// Config tunes a Harness. Zero values get defaults.
type Config struct {
	Delay           time.Duration // pause between upstream calls
	AcceptThreshold float64       // minimum confidence to accept a match
	HighThreshold   float64       // confidence counted as success
	Clock           clockwork.Clock
}

// Harness drives the matcher across a fixed coordinate set through a real
// geocoder and classifies each outcome. Runs are strictly sequential with a
// small delay between upstream calls to respect rate limits.
type Harness struct {
	geocoder Geocoder
	matcher  *matcher.Matcher
	cfg      Config
	logger   *zap.Logger
}

// NewHarness creates a Harness.
func NewHarness(geocoder Geocoder, m *matcher.Matcher, cfg Config, logger *zap.Logger) *Harness {
	if cfg.Delay <= 0 {
		cfg.Delay = 200 * time.Millisecond
	}
	if cfg.AcceptThreshold <= 0 {
		cfg.AcceptThreshold = 50
	}
	if cfg.HighThreshold <= 0 {
		cfg.HighThreshold = 80
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{geocoder: geocoder, matcher: m, cfg: cfg, logger: logger}
}

// Run evaluates every coordinate in order. Cancellation is cooperative and
// checked between iterations; results gathered before cancellation are
// retained. A failure for one coordinate never aborts the batch.
func (h *Harness) Run(ctx context.Context, coords []Coordinate) []models.CoordinateResult {
	results := make([]models.CoordinateResult, 0, len(coords))
	for i, coord := range coords {
		if ctx.Err() != nil {
			h.logger.Info("validation run cancelled", zap.Int("completed", len(results)))
			return results
		}

		res := h.evaluate(ctx, coord)
		results = append(results, res)
		h.logger.Debug("validation coordinate evaluated",
			zap.String("label", coord.Label),
			zap.String("status", res.Status),
			zap.Float64("confidence", res.Confidence))

		if i < len(coords)-1 {
			select {
			case <-ctx.Done():
				return results
			case <-h.cfg.Clock.After(h.cfg.Delay):
			}
		}
	}
	return results
}

func (h *Harness) evaluate(ctx context.Context, coord Coordinate) models.CoordinateResult {
	res := models.CoordinateResult{
		Label:       coord.Label,
		Coordinates: models.Coordinates{Lat: coord.Lat, Lng: coord.Lng},
	}

	geoResult, found, err := h.geocoder.ReverseGeocode(ctx, coord.Lat, coord.Lng)
	if err != nil {
		h.logger.Warn("geocoder call failed", zap.String("label", coord.Label), zap.Error(err))
	}
	if err != nil || !found {
		res.Status = models.StatusFailed
		res.FailureReason = ReasonNoAddress
		return res
	}

	res.Address = geoResult.FormattedAddress
	comps := geocode.ExtractComponents(geoResult.Components)

	// A direct postal code from the geocoder is taken verbatim at full
	// confidence; the matcher is skipped entirely.
	if comps.PostalCode != "" {
		res.Status = models.StatusSuccess
		res.PostalCode = comps.PostalCode
		res.Source = models.SourceGoogle
		res.Confidence = 100
		res.MatchType = models.MatchTypeExact
		return res
	}

	match := h.matcher.Match(geoResult.FormattedAddress, comps.LGA, comps.Area)
	res.Confidence = match.Confidence
	res.MatchType = match.MatchType
	if match.Record != nil {
		res.PostalCode = match.Record.PostalCode
		res.Source = models.SourceDatabase
	}

	switch {
	case match.Confidence >= h.cfg.HighThreshold:
		res.Status = models.StatusSuccess
	case match.Confidence >= h.cfg.AcceptThreshold:
		res.Status = models.StatusPartial
		res.FailureReason = ReasonLowConfidence
	default:
		res.Status = models.StatusFailed
		res.PostalCode = ""
		res.Source = ""
		if match.MatchType == models.MatchTypeNone {
			res.FailureReason = ReasonNoMatch
		} else {
			res.FailureReason = ReasonBelowAccept
		}
	}
	return res
}
