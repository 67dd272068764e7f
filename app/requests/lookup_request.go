package requests

// CoordinateLookupRequest asks for the postal code at a lat/lng pair.
// Pointers distinguish a missing field from a legitimate zero coordinate.
type CoordinateLookupRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// QueryLookupRequest asks for the postal code of a free-text place query.
type QueryLookupRequest struct {
	Query string `json:"query" binding:"required"`
}
