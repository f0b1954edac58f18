package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/treesearch-cli/internal/locations"
	"github.com/sells-group/treesearch-cli/pkg/treesearch"
)

var fetchJSON bool

var fetchCmd = &cobra.Command{
	Use:   "fetch <genus> <species>",
	Short: "Fetch geographic occurrence data for a species",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := treesearch.Query{Genus: args[0], Species: args[1]}

		locs, ok := newClient().Lookup(cmd.Context(), q)
		if !ok {
			return eris.Errorf("no data found for %s %s", q.Genus, q.Species)
		}

		fmt.Printf("Geographic data for %s %s (%d locations):\n", q.Genus, q.Species, len(locs))

		if fetchJSON {
			return printLocationsJSON(os.Stdout, locs)
		}
		printLocationsGrouped(os.Stdout, locs)
		return nil
	},
}

func init() {
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(fetchCmd)
}

func printLocationsJSON(w io.Writer, locs []treesearch.Location) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(locs); err != nil {
		return eris.Wrap(err, "fetch: encode json")
	}
	return nil
}

// printLocationsGrouped writes a by-country listing; a province-less record
// reads as presence throughout the country.
func printLocationsGrouped(w io.Writer, locs []treesearch.Location) {
	for _, group := range locations.GroupByCountry(locs) {
		fmt.Fprintf(w, "  %s:\n", group.Country)
		for _, province := range group.Provinces {
			if province == "" {
				province = "(entire country)"
			}
			fmt.Fprintf(w, "    - %s\n", province)
		}
	}
}
