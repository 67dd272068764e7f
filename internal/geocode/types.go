package geocode

import "github.com/postcode-locator/app/models"

// Component type tags from the Google Geocoding vocabulary.
const (
	typeAdminAreaLevel1 = "administrative_area_level_1"
	typeAdminAreaLevel2 = "administrative_area_level_2"
	typeLocality        = "locality"
	typeSublocality     = "sublocality"
	typeSublocality1    = "sublocality_level_1"
	typeNeighborhood    = "neighborhood"
	typeRoute           = "route"
	typePostalCode      = "postal_code"
)

// AddressComponent is one typed entry of a geocoder response.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// Result is a single geocoder answer: the formatted address string, its
// typed components, and the resolved coordinates.
type Result struct {
	FormattedAddress string             `json:"formatted_address"`
	Components       []AddressComponent `json:"address_components"`
	Coordinates      models.Coordinates `json:"coordinates"`
}
