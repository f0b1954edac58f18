// Package locations partitions species occurrence records into
// whole-country and province-level presence.
package locations

import (
	"github.com/sells-group/treesearch-cli/pkg/treesearch"
)

// CountryProvince is one province-level occurrence.
type CountryProvince struct {
	Country  string
	Province string
}

// Classified partitions occurrence records. Countries holds nations where
// the species occurs throughout (no province detail); Provinces holds
// specific (country, province) occurrences. A country with both kinds of
// record appears in both.
type Classified struct {
	Countries map[string]struct{}
	Provinces []CountryProvince
}

// Classify partitions records by presence granularity. Records without a
// country are skipped. Whole-country entries deduplicate; province pairs
// keep duplicates and input order, matching the source data row-for-row.
func Classify(recs []treesearch.Location) Classified {
	out := Classified{Countries: make(map[string]struct{})}

	for _, rec := range recs {
		if rec.Country == "" {
			continue
		}
		if rec.Province == "" {
			out.Countries[rec.Country] = struct{}{}
			continue
		}
		out.Provinces = append(out.Provinces, CountryProvince{
			Country:  rec.Country,
			Province: rec.Province,
		})
	}

	return out
}

// Empty reports whether no location was classified at all.
func (c Classified) Empty() bool {
	return len(c.Countries) == 0 && len(c.Provinces) == 0
}

// HasCountry reports whole-country presence.
func (c Classified) HasCountry(name string) bool {
	_, ok := c.Countries[name]
	return ok
}
