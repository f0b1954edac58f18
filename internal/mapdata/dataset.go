// Package mapdata loads country and province polygon datasets from
// Natural Earth shapefiles.
package mapdata

import "github.com/twpayne/go-geom"

// Natural Earth dataset locations and the attribute fields this tool
// matches against. Countries carry NAME; provinces carry admin (owning
// country) and name.
const (
	CountriesURL = "https://naciscdn.org/naturalearth/110m/cultural/ne_110m_admin_0_countries.zip"
	ProvincesURL = "https://naciscdn.org/naturalearth/10m/cultural/ne_10m_admin_1_states_provinces.zip"

	CountryNameField   = "NAME"
	ProvinceAdminField = "admin"
	ProvinceNameField  = "name"
)

// Feature is one polygon record with its identifying attributes. Admin is
// empty for country-level datasets.
type Feature struct {
	Name  string
	Admin string
	Geom  *geom.MultiPolygon
}

// Dataset is an in-memory polygon dataset.
type Dataset struct {
	Features []Feature
}

// Bounds returns the dataset envelope as (minX, minY, maxX, maxY).
func (d *Dataset) Bounds() (float64, float64, float64, float64) {
	b := geom.NewBounds(geom.XY)
	for _, f := range d.Features {
		if f.Geom != nil {
			b.Extend(f.Geom)
		}
	}
	return b.Min(0), b.Min(1), b.Max(0), b.Max(1)
}
