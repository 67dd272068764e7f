package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/postcode-locator/app/models"
	"github.com/postcode-locator/internal/catalog"
	"github.com/postcode-locator/internal/geocode"
	"github.com/postcode-locator/internal/matcher"
	"github.com/postcode-locator/internal/normalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGeocoder serves canned responses keyed by coordinate label order.
type stubGeocoder struct {
	responses []stubResponse
	calls     int
}

type stubResponse struct {
	result geocode.Result
	found  bool
	err    error
}

func (s *stubGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (geocode.Result, bool, error) {
	if s.calls >= len(s.responses) {
		return geocode.Result{}, false, nil
	}
	r := s.responses[s.calls]
	s.calls++
	return r.result, r.found, r.err
}

func testMatcher(t *testing.T) *matcher.Matcher {
	t.Helper()
	cat, err := catalog.New([]models.PostalCodeRecord{
		{ID: "r1", PostalCode: "101241", State: "Lagos", LGA: "Eti-Osa", Area: "Victoria Island", Locality: "Ahmadu Bello Way"},
		{ID: "r2", PostalCode: "100282", State: "Lagos", LGA: "Ikeja", Area: "Computer Village", Locality: "Otigba"},
	})
	require.NoError(t, err)
	tn := normalizer.NewTextNormalizer()
	return matcher.New(cat, normalizer.NewExpander(tn, nil), nil)
}

func addressResult(formatted string, comps ...geocode.AddressComponent) stubResponse {
	return stubResponse{
		result: geocode.Result{FormattedAddress: formatted, Components: comps},
		found:  true,
	}
}

func runHarness(t *testing.T, h *Harness, fc *clockwork.FakeClock, coords []Coordinate) []models.CoordinateResult {
	t.Helper()
	done := make(chan []models.CoordinateResult, 1)
	go func() { done <- h.Run(context.Background(), coords) }()
	for i := 0; i < len(coords)-1; i++ {
		fc.BlockUntil(1)
		fc.Advance(time.Second)
	}
	select {
	case results := <-done:
		return results
	case <-time.After(5 * time.Second):
		t.Fatal("harness run did not complete")
		return nil
	}
}

func TestHarness_Classification(t *testing.T) {
	stub := &stubGeocoder{responses: []stubResponse{
		// Direct postal code from the geocoder: matcher skipped, full confidence.
		addressResult("Ikoyi, Lagos, Nigeria",
			geocode.AddressComponent{LongName: "106101", Types: []string{"postal_code"}},
		),
		// Exact database match: success.
		addressResult("28 Ahmadu Bello Way, Victoria Island, Lagos, Nigeria",
			geocode.AddressComponent{LongName: "Eti-Osa", Types: []string{"administrative_area_level_2"}},
			geocode.AddressComponent{LongName: "Victoria Island", Types: []string{"neighborhood"}},
		),
		// LGA-only evidence: accepted but needs review.
		addressResult("somewhere in Ikeja, Nigeria",
			geocode.AddressComponent{LongName: "Ikeja", Types: []string{"administrative_area_level_2"}},
		),
		// Nothing usable: failed.
		{found: false},
	}}

	fc := clockwork.NewFakeClock()
	h := NewHarness(stub, testMatcher(t), Config{Clock: fc}, nil)

	coords := []Coordinate{
		{Label: "ikoyi", Lat: 6.45, Lng: 3.43},
		{Label: "vi", Lat: 6.42, Lng: 3.42},
		{Label: "ikeja", Lat: 6.60, Lng: 3.35},
		{Label: "ocean", Lat: 3.0, Lng: 3.0},
	}
	results := runHarness(t, h, fc, coords)
	require.Len(t, results, 4)

	assert.Equal(t, models.StatusSuccess, results[0].Status)
	assert.Equal(t, models.SourceGoogle, results[0].Source)
	assert.Equal(t, "106101", results[0].PostalCode)
	assert.Equal(t, 100.0, results[0].Confidence)
	assert.Equal(t, models.MatchTypeExact, results[0].MatchType)

	assert.Equal(t, models.StatusSuccess, results[1].Status)
	assert.Equal(t, models.SourceDatabase, results[1].Source)
	assert.Equal(t, "101241", results[1].PostalCode)
	assert.Equal(t, models.MatchTypeExact, results[1].MatchType)

	assert.Equal(t, models.StatusPartial, results[2].Status)
	assert.Equal(t, ReasonLowConfidence, results[2].FailureReason)

	assert.Equal(t, models.StatusFailed, results[3].Status)
	assert.Equal(t, ReasonNoAddress, results[3].FailureReason)
}

func TestHarness_GeocoderErrorIsFailedResult(t *testing.T) {
	stub := &stubGeocoder{responses: []stubResponse{
		{err: errors.New("upstream timeout")},
		addressResult("28 Ahmadu Bello Way, Victoria Island, Lagos, Nigeria",
			geocode.AddressComponent{LongName: "Eti-Osa", Types: []string{"administrative_area_level_2"}},
			geocode.AddressComponent{LongName: "Victoria Island", Types: []string{"neighborhood"}},
		),
	}}

	fc := clockwork.NewFakeClock()
	h := NewHarness(stub, testMatcher(t), Config{Clock: fc}, nil)

	results := runHarness(t, h, fc, []Coordinate{
		{Label: "broken"},
		{Label: "vi"},
	})

	// The error becomes a failed result; the batch continues.
	require.Len(t, results, 2)
	assert.Equal(t, models.StatusFailed, results[0].Status)
	assert.Equal(t, ReasonNoAddress, results[0].FailureReason)
	assert.Equal(t, models.StatusSuccess, results[1].Status)
}

func TestHarness_CancellationRetainsResults(t *testing.T) {
	stub := &stubGeocoder{responses: []stubResponse{
		addressResult("28 Ahmadu Bello Way, Victoria Island, Lagos, Nigeria",
			geocode.AddressComponent{LongName: "Eti-Osa", Types: []string{"administrative_area_level_2"}},
		),
		addressResult("Otigba Street, Computer Village, Ikeja, Nigeria",
			geocode.AddressComponent{LongName: "Ikeja", Types: []string{"administrative_area_level_2"}},
		),
	}}

	fc := clockwork.NewFakeClock()
	h := NewHarness(stub, testMatcher(t), Config{Clock: fc}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan []models.CoordinateResult, 1)
	go func() { done <- h.Run(ctx, []Coordinate{{Label: "a"}, {Label: "b"}}) }()

	// Cancel while the harness waits out the inter-call delay.
	fc.BlockUntil(1)
	cancel()

	select {
	case results := <-done:
		require.Len(t, results, 1, "results gathered before cancellation are retained")
	case <-time.After(5 * time.Second):
		t.Fatal("harness did not observe cancellation")
	}
}

func TestCalculateMetrics_ViabilityThresholds(t *testing.T) {
	synthetic := func(successCount, total int) []models.CoordinateResult {
		results := make([]models.CoordinateResult, 0, total)
		for i := 0; i < successCount; i++ {
			results = append(results, models.CoordinateResult{Status: models.StatusSuccess, Confidence: 90})
		}
		for i := successCount; i < total; i++ {
			results = append(results, models.CoordinateResult{Status: models.StatusFailed, FailureReason: ReasonNoMatch})
		}
		return results
	}

	testCases := []struct {
		name    string
		success int
		total   int
		verdict string
	}{
		{"Exactly_90_Percent_Viable", 18, 20, models.VerdictViable},
		{"Exactly_85_Percent_Conditional", 17, 20, models.VerdictConditional},
		{"70_Percent_Not_Viable", 14, 20, models.VerdictNotViable},
		{"Empty_Run_Not_Viable", 0, 0, models.VerdictNotViable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := CalculateMetrics(synthetic(tc.success, tc.total), 0, 0)
			assert.Equal(t, tc.verdict, m.Viability)
			assert.Equal(t, tc.success, m.SuccessCount)
		})
	}
}

func TestAnalyzeFailures(t *testing.T) {
	results := []models.CoordinateResult{
		{Status: models.StatusFailed, FailureReason: ReasonNoAddress},
		{Status: models.StatusFailed, FailureReason: ReasonNoAddress},
		{Status: models.StatusFailed, FailureReason: ReasonNoMatch},
		{Status: models.StatusPartial, FailureReason: ReasonLowConfidence},
		{Status: models.StatusSuccess},
	}

	got := AnalyzeFailures(results)
	require.Len(t, got, 3)
	assert.Equal(t, ReasonNoAddress, got[0].Reason)
	assert.Equal(t, 2, got[0].Count)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i].Count, got[i-1].Count)
	}
}
