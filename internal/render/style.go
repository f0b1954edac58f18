package render

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Style controls the rendered map's dimensions, palette, and legend text.
type Style struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Background   string  `yaml:"background"`
	BaseFill     string  `yaml:"base_fill"`
	CountryFill  string  `yaml:"country_fill"`
	ProvinceFill string  `yaml:"province_fill"`
	EdgeColor    string  `yaml:"edge_color"`
	EdgeWidth    float64 `yaml:"edge_width"`

	LegendCountry  string `yaml:"legend_country"`
	LegendProvince string `yaml:"legend_province"`
	LegendAbsent   string `yaml:"legend_absent"`
}

// DefaultStyle returns the stock palette: dark green for whole-country
// presence, light green for province-level presence, gray base layer.
func DefaultStyle() Style {
	return Style{
		Width:          1600,
		Height:         900,
		Background:     "#ffffff",
		BaseFill:       "#d3d3d3",
		CountryFill:    "#2d8659",
		ProvinceFill:   "#5dba87",
		EdgeColor:      "#000000",
		EdgeWidth:      0.5,
		LegendCountry:  "Entire country",
		LegendProvince: "Specific provinces",
		LegendAbsent:   "Species absent",
	}
}

// LoadStyle reads YAML style overrides on top of the defaults.
func LoadStyle(path string) (Style, error) {
	style := DefaultStyle()

	data, err := os.ReadFile(path)
	if err != nil {
		return style, eris.Wrapf(err, "render: read style %s", path)
	}
	if err := yaml.Unmarshal(data, &style); err != nil {
		return style, eris.Wrapf(err, "render: parse style %s", path)
	}
	return style, nil
}
