package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/treesearch-cli/pkg/treesearch"
)

var checkCmd = &cobra.Command{
	Use:   "check <genus> <species>",
	Short: "Check whether a species exists in the Global Tree Search database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := treesearch.Query{Genus: args[0], Species: args[1]}

		if !newClient().Exists(cmd.Context(), q) {
			return eris.Errorf("%s %s not found in the database", q.Genus, q.Species)
		}

		fmt.Printf("%s %s exists in the database\n", q.Genus, q.Species)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
