package models

// PostalCodeRecord is one row of the reference catalog: a postal code tied to
// the administrative hierarchy it serves. Several records may share the same
// postal code (one code legitimately covers multiple localities and streets
// within an area), so the catalog is never keyed uniquely by PostalCode.
type PostalCodeRecord struct {
	ID         string `yaml:"id" json:"id" bson:"id"`
	PostalCode string `yaml:"postal_code" json:"postal_code" bson:"postal_code"` // 6-digit: zone + district + area
	State      string `yaml:"state" json:"state" bson:"state"`
	LGA        string `yaml:"lga" json:"lga" bson:"lga"`
	Area       string `yaml:"area" json:"area" bson:"area"`
	Locality   string `yaml:"locality,omitempty" json:"locality,omitempty" bson:"locality,omitempty"`
	Street     string `yaml:"street,omitempty" json:"street,omitempty" bson:"street,omitempty"`
}

// MatchType constants, ordered strongest to weakest. Each tier owns a bounded
// confidence band so a weaker tier can never outrank a stronger one.
const (
	MatchTypeExact = "exact"
	MatchTypeArea  = "area"
	MatchTypeLGA   = "lga"
	MatchTypeFuzzy = "fuzzy"
	MatchTypeNone  = "none"
)

// IsValidMatchType reports whether mt is one of the five match tiers.
func IsValidMatchType(mt string) bool {
	switch mt {
	case MatchTypeExact, MatchTypeArea, MatchTypeLGA, MatchTypeFuzzy, MatchTypeNone:
		return true
	}
	return false
}
