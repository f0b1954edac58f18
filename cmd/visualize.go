package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/treesearch-cli/internal/locations"
	"github.com/sells-group/treesearch-cli/internal/mapdata"
	"github.com/sells-group/treesearch-cli/internal/render"
	"github.com/sells-group/treesearch-cli/pkg/treesearch"
)

var (
	visualizeOutput       string
	visualizeCountriesSHP string
	visualizeProvincesSHP string
	visualizeStyle        string
)

var visualizeCmd = &cobra.Command{
	Use:     "visualize <genus> <species>",
	Aliases: []string{"viz"},
	Short:   "Render a species distribution map",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		q := treesearch.Query{Genus: args[0], Species: args[1]}

		locs, ok := newClient().Lookup(ctx, q)
		if !ok {
			return eris.Errorf("no geographical data found for %s %s", q.Genus, q.Species)
		}

		classified := locations.Classify(locs)
		if classified.Empty() {
			return eris.Errorf("no location data found for %s %s", q.Genus, q.Species)
		}
		printDistribution(os.Stdout, q, classified)

		countries, provinces, err := loadDatasets(ctx)
		if err != nil {
			return err
		}

		style, err := resolveStyle()
		if err != nil {
			return err
		}

		title := fmt.Sprintf("Geographic Distribution of %s %s", q.Genus, q.Species)
		outPath, err := render.Render(classified, countries, provinces, title, visualizeOutput, style)
		if err != nil {
			return err
		}

		fmt.Printf("Map saved to %s\n", outPath)
		return nil
	},
}

func init() {
	visualizeCmd.Flags().StringVarP(&visualizeOutput, "output", "o", "", "output file path (temp file if unset)")
	visualizeCmd.Flags().StringVar(&visualizeCountriesSHP, "countries-shp", "", "local countries shapefile (skips download)")
	visualizeCmd.Flags().StringVar(&visualizeProvincesSHP, "provinces-shp", "", "local provinces shapefile (skips download)")
	visualizeCmd.Flags().StringVar(&visualizeStyle, "style", "", "YAML style file overriding the default palette")
	rootCmd.AddCommand(visualizeCmd)
}

// loadDatasets resolves the two polygon datasets, downloading the Natural
// Earth archives unless local shapefiles were given.
func loadDatasets(ctx context.Context) (*mapdata.Dataset, *mapdata.Dataset, error) {
	countriesPath := visualizeCountriesSHP
	if countriesPath == "" {
		var err error
		countriesPath, err = mapdata.Fetch(ctx, cfg.Map.CountriesURL, cfg.Map.CacheDir)
		if err != nil {
			return nil, nil, err
		}
	}

	provincesPath := visualizeProvincesSHP
	if provincesPath == "" {
		var err error
		provincesPath, err = mapdata.Fetch(ctx, cfg.Map.ProvincesURL, cfg.Map.CacheDir)
		if err != nil {
			return nil, nil, err
		}
	}

	countries, err := mapdata.LoadShapefile(countriesPath, mapdata.CountryNameField, "")
	if err != nil {
		return nil, nil, err
	}
	provinces, err := mapdata.LoadShapefile(provincesPath, mapdata.ProvinceNameField, mapdata.ProvinceAdminField)
	if err != nil {
		return nil, nil, err
	}

	zap.L().Debug("datasets loaded",
		zap.Int("countries", len(countries.Features)),
		zap.Int("provinces", len(provinces.Features)),
	)
	return countries, provinces, nil
}

func resolveStyle() (render.Style, error) {
	path := visualizeStyle
	if path == "" {
		path = cfg.Map.Style
	}
	if path == "" {
		return render.DefaultStyle(), nil
	}
	return render.LoadStyle(path)
}

func printDistribution(w io.Writer, q treesearch.Query, classified locations.Classified) {
	fmt.Fprintf(w, "%s %s distribution:\n", q.Genus, q.Species)
	if len(classified.Countries) > 0 {
		fmt.Fprint(w, "  Countries (entire):")
		for i, name := range classified.SortedCountries() {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, " %s", name)
		}
		fmt.Fprintln(w)
	}
	if len(classified.Provinces) > 0 {
		fmt.Fprintln(w, "  Specific provinces/states:")
		for _, p := range classified.SortedProvinces() {
			fmt.Fprintf(w, "    - %s: %s\n", p.Country, p.Province)
		}
	}
}
