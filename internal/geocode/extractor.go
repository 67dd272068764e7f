package geocode

import "github.com/postcode-locator/app/models"

// ExtractComponents maps a geocoder's typed component list onto the fixed
// address record. Single left-to-right pass, first match wins per field.
// Within one component the mapping priority is: administrative_area_level_2
// -> LGA; sublocality_level_1/neighborhood -> area; sublocality -> area;
// route -> street; postal_code -> postal code; administrative_area_level_1
// -> state; locality -> area (last resort). Components with missing names or
// types are skipped rather than trusted. Value shape is not validated here;
// a postal code is passed through as-is.
func ExtractComponents(components []AddressComponent) models.AddressComponents {
	var out models.AddressComponents
	for _, c := range components {
		if c.LongName == "" || len(c.Types) == 0 {
			continue
		}
		switch {
		case hasType(c, typeAdminAreaLevel2) && out.LGA == "":
			out.LGA = c.LongName
		case (hasType(c, typeSublocality1) || hasType(c, typeNeighborhood)) && out.Area == "":
			out.Area = c.LongName
		case hasType(c, typeSublocality) && out.Area == "":
			out.Area = c.LongName
		case hasType(c, typeRoute) && out.Street == "":
			out.Street = c.LongName
		case hasType(c, typePostalCode) && out.PostalCode == "":
			out.PostalCode = c.LongName
		case hasType(c, typeAdminAreaLevel1) && out.State == "":
			out.State = c.LongName
		case hasType(c, typeLocality) && out.Area == "":
			out.Area = c.LongName
		}
	}
	return out
}

func hasType(c AddressComponent, t string) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}
