package locations

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sells-group/treesearch-cli/pkg/treesearch"
)

// CountryGroup lists the provinces recorded for one country. An empty
// province string marks a whole-country record.
type CountryGroup struct {
	Country   string
	Provinces []string
}

// GroupByCountry groups records for display. Countries and provinces are
// collate-sorted so accented names (Ceará, Côte d'Ivoire) order naturally.
func GroupByCountry(recs []treesearch.Location) []CountryGroup {
	byCountry := make(map[string][]string)
	for _, rec := range recs {
		if rec.Country == "" {
			continue
		}
		byCountry[rec.Country] = append(byCountry[rec.Country], rec.Province)
	}

	names := make([]string, 0, len(byCountry))
	for name := range byCountry {
		names = append(names, name)
	}

	coll := collate.New(language.Und)
	coll.SortStrings(names)

	groups := make([]CountryGroup, 0, len(names))
	for _, name := range names {
		provinces := byCountry[name]
		coll.SortStrings(provinces)
		groups = append(groups, CountryGroup{Country: name, Provinces: provinces})
	}
	return groups
}

// SortedProvinces returns the province pairs collate-sorted by country,
// then province, for display. Duplicates are kept.
func (c Classified) SortedProvinces() []CountryProvince {
	pairs := make([]CountryProvince, len(c.Provinces))
	copy(pairs, c.Provinces)

	coll := collate.New(language.Und)
	sort.SliceStable(pairs, func(i, j int) bool {
		if r := coll.CompareString(pairs[i].Country, pairs[j].Country); r != 0 {
			return r < 0
		}
		return coll.CompareString(pairs[i].Province, pairs[j].Province) < 0
	})
	return pairs
}

// SortedCountries returns the whole-country set collate-sorted for display.
func (c Classified) SortedCountries() []string {
	names := make([]string, 0, len(c.Countries))
	for name := range c.Countries {
		names = append(names, name)
	}
	collate.New(language.Und).SortStrings(names)
	return names
}
