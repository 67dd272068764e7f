package catalog

import (
	"testing"

	"github.com/postcode-locator/app/models"
)

func TestLoad_EmbeddedData(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cat.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}

	for _, r := range cat.Records() {
		if len(r.PostalCode) != 6 {
			t.Errorf("record %s: postal code %q is not 6 digits", r.ID, r.PostalCode)
		}
	}

	if cat.StateSummary()["Lagos"] == 0 {
		t.Error("embedded catalog must carry Lagos records")
	}
}

func TestNew_RejectsMalformedRecords(t *testing.T) {
	_, err := New([]models.PostalCodeRecord{
		{ID: "bad", PostalCode: "101241", State: "Lagos", LGA: "", Area: "Victoria Island"},
	})
	if err == nil {
		t.Fatal("expected error for record missing lga")
	}
}

func TestFindByPostalCode_SharedCode(t *testing.T) {
	cat, err := New([]models.PostalCodeRecord{
		{ID: "a", PostalCode: "101241", State: "Lagos", LGA: "Eti-Osa", Area: "Victoria Island", Locality: "Ahmadu Bello Way"},
		{ID: "b", PostalCode: "101241", State: "Lagos", LGA: "Eti-Osa", Area: "Victoria Island", Locality: "Adeola Odeku"},
		{ID: "c", PostalCode: "100282", State: "Lagos", LGA: "Ikeja", Area: "Computer Village", Locality: "Otigba"},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got := cat.FindByPostalCode("101241")
	if len(got) != 2 {
		t.Fatalf("expected 2 records for shared code, got %d", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("records must come back in catalog order, got %s, %s", got[0].ID, got[1].ID)
	}

	if cat.FindByPostalCode("999999") != nil {
		t.Error("unknown code must return nil")
	}
}

func TestSearch_RanksCloseNamesFirst(t *testing.T) {
	cat, err := New([]models.PostalCodeRecord{
		{ID: "a", PostalCode: "106104", State: "Lagos", LGA: "Eti-Osa", Area: "Lekki Phase 1", Locality: "Admiralty Way"},
		{ID: "b", PostalCode: "100282", State: "Lagos", LGA: "Ikeja", Area: "Computer Village", Locality: "Otigba"},
		{ID: "c", PostalCode: "900211", State: "Federal Capital Territory", LGA: "Abuja Municipal", Area: "Garki", Locality: "Area 11"},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	results := cat.Search("lekki phase 1", 10)
	if len(results) == 0 {
		t.Fatal("expected at least one hit")
	}
	if results[0].Record.ID != "a" {
		t.Errorf("closest record should rank first, got %s", results[0].Record.ID)
	}
	for _, r := range results {
		if r.Score <= 0 || r.Score > 1 {
			t.Errorf("score %v outside (0, 1]", r.Score)
		}
	}
}

func TestSearch_EmptyQueryAndLimit(t *testing.T) {
	cat, err := New([]models.PostalCodeRecord{
		{ID: "a", PostalCode: "106104", State: "Lagos", LGA: "Eti-Osa", Area: "Lekki Phase 1"},
		{ID: "b", PostalCode: "106105", State: "Lagos", LGA: "Eti-Osa", Area: "Lekki Phase 2"},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if cat.Search("", 10) != nil {
		t.Error("empty query must return nil")
	}
	if got := cat.Search("lekki", 1); len(got) > 1 {
		t.Errorf("limit not applied, got %d results", len(got))
	}
}
