// Package render draws choropleth world maps of species distribution.
package render

import (
	"os"

	"github.com/fogleman/gg"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"

	"github.com/sells-group/treesearch-cli/internal/locations"
	"github.com/sells-group/treesearch-cli/internal/mapdata"
)

// ErrNoData is returned when the classified input has neither whole-country
// nor province-level entries; nothing is rendered in that case.
var ErrNoData = eris.New("render: no location data")

const titleBand = 50.0

// Render draws the distribution map and writes it as a PNG. Country
// features match on Name, province features on (Admin, Name); both matches
// are exact and case-sensitive. When outPath is empty the image goes to a
// temp file whose path is returned.
func Render(classified locations.Classified, countries, provinces *mapdata.Dataset, title, outPath string, style Style) (string, error) {
	if classified.Empty() {
		return "", ErrNoData
	}

	pairs := make(map[locations.CountryProvince]struct{}, len(classified.Provinces))
	for _, p := range classified.Provinces {
		pairs[p] = struct{}{}
	}

	dc := gg.NewContext(style.Width, style.Height)
	dc.SetHexColor(style.Background)
	dc.Clear()

	// The projection spans the country dataset envelope, so partial
	// datasets still fill the frame. An empty dataset falls back to the
	// full world extent.
	minX, minY, maxX, maxY := countries.Bounds()
	if !(maxX > minX && maxY > minY) {
		minX, minY, maxX, maxY = -180, -90, 180, 90
	}
	mapHeight := float64(style.Height) - titleBand
	project := func(lon, lat float64) (float64, float64) {
		x := (lon - minX) / (maxX - minX) * float64(style.Width)
		y := titleBand + (maxY-lat)/(maxY-minY)*mapHeight
		return x, y
	}

	// Base layer: every country, neutral fill.
	for _, f := range countries.Features {
		fillFeature(dc, f, style.BaseFill, style, project)
	}

	// Tier two: whole-country presence.
	for _, f := range countries.Features {
		if classified.HasCountry(f.Name) {
			fillFeature(dc, f, style.CountryFill, style, project)
		}
	}

	// Tier three: province-level presence.
	for _, f := range provinces.Features {
		if _, ok := pairs[locations.CountryProvince{Country: f.Admin, Province: f.Name}]; ok {
			fillFeature(dc, f, style.ProvinceFill, style, project)
		}
	}

	drawTitle(dc, title, style)
	drawLegend(dc, style)

	if outPath == "" {
		tmp, err := os.CreateTemp("", "treesearch-*.png")
		if err != nil {
			return "", eris.Wrap(err, "render: create temp file")
		}
		outPath = tmp.Name()
		_ = tmp.Close()
	}

	if err := dc.SavePNG(outPath); err != nil {
		return "", eris.Wrapf(err, "render: save %s", outPath)
	}

	zap.L().Info("render: map written",
		zap.String("path", outPath),
		zap.Int("countries", len(classified.Countries)),
		zap.Int("provinces", len(classified.Provinces)),
	)
	return outPath, nil
}

// fillFeature paths every ring of the feature's polygons as subpaths and
// fills even-odd so interior rings read as holes, then strokes the edges.
func fillFeature(dc *gg.Context, f mapdata.Feature, fill string, style Style, project func(lon, lat float64) (float64, float64)) {
	if f.Geom == nil {
		return
	}

	for i := 0; i < f.Geom.NumPolygons(); i++ {
		poly := f.Geom.Polygon(i)
		for j := 0; j < poly.NumLinearRings(); j++ {
			pathRing(dc, poly.LinearRing(j), project)
		}
	}

	dc.SetFillRule(gg.FillRuleEvenOdd)
	dc.SetHexColor(fill)
	dc.FillPreserve()
	dc.SetHexColor(style.EdgeColor)
	dc.SetLineWidth(style.EdgeWidth)
	dc.Stroke()
}

func pathRing(dc *gg.Context, ring *geom.LinearRing, project func(lon, lat float64) (float64, float64)) {
	coords := ring.FlatCoords()
	if len(coords) < 6 {
		return
	}

	dc.NewSubPath()
	x, y := project(coords[0], coords[1])
	dc.MoveTo(x, y)
	for k := 2; k+1 < len(coords); k += 2 {
		x, y = project(coords[k], coords[k+1])
		dc.LineTo(x, y)
	}
	dc.ClosePath()
}

func drawTitle(dc *gg.Context, title string, style Style) {
	if title == "" {
		return
	}
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetHexColor("#000000")
	w, _ := dc.MeasureString(title)
	dc.DrawString(title, (float64(style.Width)-w)/2, titleBand/2)
}

// drawLegend paints the fixed three-entry legend at the bottom left.
func drawLegend(dc *gg.Context, style Style) {
	entries := []struct {
		fill  string
		label string
	}{
		{style.CountryFill, style.LegendCountry},
		{style.ProvinceFill, style.LegendProvince},
		{style.BaseFill, style.LegendAbsent},
	}

	const (
		swatchW = 24.0
		swatchH = 14.0
		rowH    = 22.0
		margin  = 20.0
	)

	dc.SetFontFace(basicfont.Face7x13)
	baseY := float64(style.Height) - margin - rowH*float64(len(entries))

	for i, e := range entries {
		y := baseY + rowH*float64(i)

		dc.DrawRectangle(margin, y, swatchW, swatchH)
		dc.SetHexColor(e.fill)
		dc.FillPreserve()
		dc.SetHexColor(style.EdgeColor)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.SetHexColor("#000000")
		dc.DrawString(e.label, margin+swatchW+8, y+swatchH-3)
	}
}
