package models

import "time"

// Source constants for LocationResult.
const (
	SourceGoogle   = "google"   // postal code supplied directly by the geocoder
	SourceDatabase = "database" // postal code resolved against the reference catalog
)

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// AddressComponents is the transient record extracted from a geocoder's typed
// component list. Empty string means the geocoder did not supply the field.
type AddressComponents struct {
	LGA        string `json:"lga,omitempty"`
	Area       string `json:"area,omitempty"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	State      string `json:"state,omitempty"`
}

// Empty reports whether no field was extracted at all.
func (ac AddressComponents) Empty() bool {
	return ac.LGA == "" && ac.Area == "" && ac.Street == "" && ac.PostalCode == "" && ac.State == ""
}

// LocationResult is the caller-facing answer for one lookup.
type LocationResult struct {
	PostalCode  string      `json:"postal_code" bson:"postal_code"`
	Source      string      `json:"source" bson:"source"`
	Address     string      `json:"address" bson:"address"`
	LGA         string      `json:"lga,omitempty" bson:"lga,omitempty"`
	Area        string      `json:"area,omitempty" bson:"area,omitempty"`
	State       string      `json:"state,omitempty" bson:"state,omitempty"`
	Confidence  float64     `json:"confidence" bson:"confidence"`
	MatchType   string      `json:"match_type,omitempty" bson:"match_type,omitempty"`
	Coordinates Coordinates `json:"coordinates" bson:"coordinates"`
	Timestamp   time.Time   `json:"timestamp" bson:"timestamp"`
}

// UsageStats are in-process lookup counters. They are not persisted.
type UsageStats struct {
	TotalLookups   int64 `json:"total_lookups"`
	FromGoogle     int64 `json:"from_google"`
	FromDatabase   int64 `json:"from_database"`
	FailedLookups  int64 `json:"failed_lookups"`
}
