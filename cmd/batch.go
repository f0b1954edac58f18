package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/treesearch-cli/internal/specieslist"
	"github.com/sells-group/treesearch-cli/pkg/treesearch"
)

var (
	batchInput       string
	batchConcurrency int
	batchLimit       int
	batchOutput      string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Fetch occurrence data for every species in a CSV/XLSX list",
	RunE: func(cmd *cobra.Command, args []string) error {
		queries, err := specieslist.Load(batchInput)
		if err != nil {
			return err
		}
		if len(queries) == 0 {
			return eris.Errorf("batch: no species found in %s", batchInput)
		}
		if batchLimit > 0 && len(queries) > batchLimit {
			queries = queries[:batchLimit]
		}

		concurrency := resolveConcurrency(cmd.Flags().Changed("concurrency"), batchConcurrency, cfg.Batch.Concurrency)
		zap.L().Info("batch: fetching species data",
			zap.Int("species", len(queries)),
			zap.Int("concurrency", concurrency),
		)

		client := newClient(treesearch.WithConcurrency(concurrency))
		results := client.FetchAll(cmd.Context(), queries)

		if batchOutput != "" {
			if err := writeBatchJSON(batchOutput, queries, results); err != nil {
				return err
			}
			fmt.Printf("Results written to %s\n", batchOutput)
			return nil
		}

		printBatchSummary(os.Stdout, queries, results)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "species list file (.csv or .xlsx)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 10, "max concurrent API requests")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of species to fetch (0 = all)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "write results as JSON to this file")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

// resolveConcurrency prefers an explicitly set --concurrency flag over the
// configured batch.concurrency value.
func resolveConcurrency(flagSet bool, flagValue, configValue int) int {
	if flagSet {
		return flagValue
	}
	return configValue
}

// batchRecord is the JSON output shape for one species.
type batchRecord struct {
	Genus     string                `json:"genus"`
	Species   string                `json:"species"`
	Status    string                `json:"status"`
	Error     string                `json:"error,omitempty"`
	Locations []treesearch.Location `json:"locations,omitempty"`
}

func statusLabel(kind treesearch.ResultKind) string {
	switch kind {
	case treesearch.KindSuccess:
		return "ok"
	case treesearch.KindNotFound:
		return "not_found"
	default:
		return "error"
	}
}

func writeBatchJSON(path string, queries []treesearch.Query, results []treesearch.Result) error {
	records := make([]batchRecord, len(queries))
	for i, q := range queries {
		records[i] = batchRecord{
			Genus:     q.Genus,
			Species:   q.Species,
			Status:    statusLabel(results[i].Kind),
			Error:     results[i].Err,
			Locations: results[i].Locations,
		}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return eris.Wrap(err, "batch: encode results")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "batch: write %s", path)
	}
	return nil
}

func printBatchSummary(w io.Writer, queries []treesearch.Query, results []treesearch.Result) {
	for i, q := range queries {
		r := results[i]
		switch r.Kind {
		case treesearch.KindSuccess:
			fmt.Fprintf(w, "%s %s: ok (%d locations)\n", q.Genus, q.Species, len(r.Locations))
		case treesearch.KindNotFound:
			fmt.Fprintf(w, "%s %s: not found\n", q.Genus, q.Species)
		default:
			fmt.Fprintf(w, "%s %s: error: %s\n", q.Genus, q.Species, r.Err)
		}
	}
}
