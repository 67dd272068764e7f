package matcher

import (
	"testing"

	"github.com/postcode-locator/app/models"
	"github.com/postcode-locator/internal/catalog"
	"github.com/postcode-locator/internal/normalizer"
)

func fixtureCatalog(t *testing.T, records []models.PostalCodeRecord) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(records)
	if err != nil {
		t.Fatalf("fixture catalog: %v", err)
	}
	return cat
}

func fixtureMatcher(t *testing.T, records []models.PostalCodeRecord) *Matcher {
	t.Helper()
	tn := normalizer.NewTextNormalizer()
	return New(fixtureCatalog(t, records), normalizer.NewExpander(tn, nil), nil)
}

func TestMatch_AllInputsEmpty(t *testing.T) {
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "r1", PostalCode: "101241", State: "Lagos", LGA: "Eti-Osa", Area: "Victoria Island"},
	})

	got := m.Match("", "", "")
	if got.Record != nil || got.Confidence != 0 || got.MatchType != models.MatchTypeNone {
		t.Errorf("expected none result for empty inputs, got %+v", got)
	}
}

func TestMatch_ExactWithLocality(t *testing.T) {
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "r1", PostalCode: "101241", State: "Lagos", LGA: "Eti-Osa", Area: "Victoria Island", Locality: "Ahmadu Bello Way"},
	})

	got := m.Match("28 Ahmadu Bello Way, Victoria Island, Lagos", "Eti-Osa", "Victoria Island")
	if got.MatchType != models.MatchTypeExact {
		t.Fatalf("expected exact match, got %+v", got)
	}
	if got.Confidence < 90 {
		t.Errorf("exact confidence %v, want >= 90", got.Confidence)
	}
	if got.Record == nil || got.Record.PostalCode != "101241" {
		t.Errorf("expected record 101241, got %+v", got.Record)
	}
}

func TestMatch_ExactWithStreet(t *testing.T) {
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "r1", PostalCode: "100282", State: "Lagos", LGA: "Ikeja", Area: "Computer Village", Locality: "Otigba", Street: "Otigba Street"},
	})

	got := m.Match("Otigba Street, Computer Village, Ikeja", "Ikeja", "Computer Village")
	if got.MatchType != models.MatchTypeExact && got.MatchType != models.MatchTypeArea {
		t.Fatalf("expected exact or area match, got %+v", got)
	}
	if got.Confidence < 85 {
		t.Errorf("confidence %v, want >= 85", got.Confidence)
	}
	if got.Record == nil || got.Record.PostalCode != "100282" {
		t.Errorf("expected record 100282, got %+v", got.Record)
	}
}

func TestMatch_LGAGateEnforced(t *testing.T) {
	// Catalog has only Eti-Osa records; a confidently-known different LGA
	// must gate them all out regardless of the address text.
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "r1", PostalCode: "101241", State: "Lagos", LGA: "Eti-Osa", Area: "Victoria Island", Locality: "Ahmadu Bello Way"},
		{ID: "r2", PostalCode: "106104", State: "Lagos", LGA: "Eti-Osa", Area: "Lekki Phase 1", Locality: "Admiralty Way"},
	})

	got := m.Match("28 Ahmadu Bello Way, Victoria Island, Lagos", "Ikeja", "Victoria Island")
	if got.MatchType != models.MatchTypeNone || got.Confidence != 0 || got.Record != nil {
		t.Errorf("LGA gate must block cross-LGA matches, got %+v", got)
	}
}

func TestMatch_NoRecordsForLGA(t *testing.T) {
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "r1", PostalCode: "100282", State: "Lagos", LGA: "Ikeja", Area: "Computer Village", Locality: "Otigba"},
	})

	got := m.Match("Somewhere Unmapped, Epe", "Epe", "Somewhere Unmapped")
	if got.Record != nil || got.Confidence != 0 || got.MatchType != models.MatchTypeNone {
		t.Errorf("expected none result, got %+v", got)
	}
}

func TestMatch_FuzzyTail(t *testing.T) {
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "r1", PostalCode: "106104", State: "Lagos", LGA: "Eti-Osa", Area: "Lekki Phase 1", Locality: "Admiralty Way"},
	})

	// "Fase" for "Phase": word overlap lands in the 60-70 band, below the
	// area tier threshold but above the fuzzy one.
	got := m.Match("Lekki Fase 1", "Eti-Osa", "Lekki Fase 1")
	if got.MatchType != models.MatchTypeFuzzy {
		t.Fatalf("expected fuzzy match, got %+v", got)
	}
	if got.Confidence < 40 || got.Confidence > 70 {
		t.Errorf("fuzzy confidence %v outside [40, 70]", got.Confidence)
	}
	if got.Record == nil || got.Record.PostalCode != "106104" {
		t.Errorf("expected record 106104, got %+v", got.Record)
	}
}

func TestMatch_LGAFallback(t *testing.T) {
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "r1", PostalCode: "104101", State: "Lagos", LGA: "Ikorodu", Area: "Ikorodu Central", Locality: "Lagos Road"},
	})

	// LGA is known and matches but nothing else does: the fallback tier
	// answers at its fixed confidence.
	got := m.Match("some unrecognizable place", "Ikorodu", "")
	if got.MatchType != models.MatchTypeLGA {
		t.Fatalf("expected lga fallback, got %+v", got)
	}
	if got.Confidence != lgaConfidence {
		t.Errorf("lga confidence %v, want %v", got.Confidence, lgaConfidence)
	}
}

func TestMatch_AreaTier(t *testing.T) {
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "r1", PostalCode: "100271", State: "Lagos", LGA: "Ikeja", Area: "Ikeja GRA", Locality: "Isaac John"},
	})

	got := m.Match("", "Ikeja", "Ikeja GRA")
	if got.MatchType != models.MatchTypeArea {
		t.Fatalf("expected area match, got %+v", got)
	}
	if got.Confidence != areaMaxConfidence {
		t.Errorf("identical area should clamp to %v, got %v", areaMaxConfidence, got.Confidence)
	}
}

func TestMatch_AbbreviationExpansion(t *testing.T) {
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "r1", PostalCode: "101241", State: "Lagos", LGA: "Eti-Osa", Area: "Victoria Island", Locality: "Adeola Odeku"},
	})

	// "VI" in the text must expand and hit the exact tier.
	got := m.Match("Adeola Odeku, VI, Lagos", "Eti-Osa", "")
	if got.MatchType != models.MatchTypeExact {
		t.Fatalf("expected exact match through abbreviation expansion, got %+v", got)
	}
	if got.Confidence < 90 {
		t.Errorf("confidence %v, want >= 90", got.Confidence)
	}
}

func TestMatch_FirstRecordWinsOnTie(t *testing.T) {
	m := fixtureMatcher(t, []models.PostalCodeRecord{
		{ID: "first", PostalCode: "106104", State: "Lagos", LGA: "Eti-Osa", Area: "Lekki Phase 1", Locality: "Admiralty Way"},
		{ID: "second", PostalCode: "106105", State: "Lagos", LGA: "Eti-Osa", Area: "Lekki Phase 1", Locality: "Admiralty Way"},
	})

	got := m.Match("Admiralty Way, Lekki Phase 1", "Eti-Osa", "Lekki Phase 1")
	if got.Record == nil || got.Record.ID != "first" {
		t.Errorf("strict-greater comparison must keep the first record, got %+v", got.Record)
	}
}

func TestTierScoreBounds(t *testing.T) {
	// Tier bands are a priority order: exact floor must clear the area cap,
	// the area floor the fuzzy cap, and clamps must hold at extreme inputs.
	if areaTierScore(100) != areaMaxConfidence {
		t.Errorf("areaTierScore(100) = %v, want clamp at %v", areaTierScore(100), areaMaxConfidence)
	}
	if got := areaTierScore(0); got != areaBaseConfidence {
		t.Errorf("areaTierScore(0) = %v, want %v", got, areaBaseConfidence)
	}
	if fuzzyTierScore(100) != fuzzyMaxConfidence {
		t.Errorf("fuzzyTierScore(100) = %v, want clamp at %v", fuzzyTierScore(100), fuzzyMaxConfidence)
	}
	if exactLocalityConfidence <= areaMaxConfidence {
		t.Error("exact floor must exceed area ceiling")
	}
	if exactLocalityConfidence <= fuzzyMaxConfidence {
		t.Error("exact floor must exceed fuzzy ceiling")
	}
	if areaBaseConfidence <= fuzzyMaxConfidence {
		t.Error("area floor must exceed fuzzy ceiling")
	}
}
