package mapdata

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// LoadShapefile reads polygon features from a shapefile, capturing the
// attributes named by nameField and adminField (adminField may be empty).
// Records with missing or malformed geometry are skipped.
func LoadShapefile(path, nameField, adminField string) (*Dataset, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "mapdata: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	// Field name → index map. Attribute names come NUL-padded off disk.
	fields := reader.Fields()
	fieldIdx := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	nameIdx, ok := fieldIdx[strings.ToLower(nameField)]
	if !ok {
		return nil, eris.Errorf("mapdata: shapefile %s has no %q field", path, nameField)
	}
	adminIdx := -1
	if adminField != "" {
		adminIdx, ok = fieldIdx[strings.ToLower(adminField)]
		if !ok {
			return nil, eris.Errorf("mapdata: shapefile %s has no %q field", path, adminField)
		}
	}

	ds := &Dataset{}
	var skipped int

	for reader.Next() {
		_, shape := reader.Shape()

		poly, pok := shape.(*shp.Polygon)
		if !pok {
			skipped++
			continue
		}
		mp := polygonToMultiPolygon(poly)
		if mp == nil {
			skipped++
			continue
		}

		feat := Feature{
			Name: attribute(reader, nameIdx),
			Geom: mp,
		}
		if adminIdx >= 0 {
			feat.Admin = attribute(reader, adminIdx)
		}
		ds.Features = append(ds.Features, feat)
	}

	if skipped > 0 {
		zap.L().Debug("mapdata: skipped shapefile records",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}

	return ds, nil
}

func attribute(reader *shp.Reader, idx int) string {
	val := strings.TrimRight(reader.Attribute(idx), "\x00")
	return strings.TrimSpace(val)
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon.
// Each shapefile part becomes one single-ring polygon; ring nesting is left
// to the renderer's even-odd fill.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("mapdata: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}

		if err := mp.Push(poly); err != nil {
			zap.L().Debug("mapdata: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
