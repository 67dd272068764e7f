package catalog

import (
	_ "embed"
	"fmt"

	"github.com/postcode-locator/app/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/postcodes.yaml
var embeddedData []byte

// Catalog is the immutable postal-code reference table. It is loaded once at
// startup and read concurrently by any number of callers without locking.
type Catalog struct {
	records []models.PostalCodeRecord
	byCode  map[string][]int
}

// Load parses the embedded reference data.
func Load() (*Catalog, error) {
	return Parse(embeddedData)
}

// Parse builds a Catalog from YAML bytes. Every record must carry a postal
// code, state, LGA and area; locality and street may be blank. Malformed
// entries fail the load rather than being silently skipped, so the matcher
// can assume well-formed records.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Records []models.PostalCodeRecord `yaml:"records"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog data: %w", err)
	}
	return New(doc.Records)
}

// New builds a Catalog from caller-supplied records. Tests use this to
// substitute fixture catalogs.
func New(records []models.PostalCodeRecord) (*Catalog, error) {
	byCode := make(map[string][]int, len(records))
	for i, r := range records {
		if r.PostalCode == "" || r.State == "" || r.LGA == "" || r.Area == "" {
			return nil, fmt.Errorf("catalog record %d (%s): postal_code, state, lga and area are required", i, r.ID)
		}
		byCode[r.PostalCode] = append(byCode[r.PostalCode], i)
	}
	return &Catalog{records: records, byCode: byCode}, nil
}

// Records returns the full record list in catalog order. Callers must not
// mutate it.
func (c *Catalog) Records() []models.PostalCodeRecord {
	return c.records
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// FindByPostalCode returns every record sharing the given postal code, in
// catalog order. A postal code is not a unique key.
func (c *Catalog) FindByPostalCode(code string) []models.PostalCodeRecord {
	idx := c.byCode[code]
	if len(idx) == 0 {
		return nil
	}
	out := make([]models.PostalCodeRecord, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.records[i])
	}
	return out
}

// StateSummary returns the record count per state.
func (c *Catalog) StateSummary() map[string]int {
	summary := make(map[string]int)
	for _, r := range c.records {
		summary[r.State]++
	}
	return summary
}
