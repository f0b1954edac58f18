package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/treesearch-cli/internal/config"
	"github.com/sells-group/treesearch-cli/pkg/treesearch"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "treesearch-cli",
	Short:        "Tree species distribution lookup and mapping",
	Long:         "Queries the BGCI Global Tree Search API for species occurrence data and renders choropleth distribution maps from Natural Earth polygons.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newClient builds the API client from the loaded configuration. Extra
// options are applied last so callers can override individual settings.
func newClient(extra ...treesearch.Option) treesearch.Client {
	opts := []treesearch.Option{
		treesearch.WithBaseURL(cfg.API.BaseURL),
		treesearch.WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second),
		treesearch.WithRateLimit(cfg.API.RateLimit),
		treesearch.WithConcurrency(cfg.Batch.Concurrency),
	}
	opts = append(opts, extra...)
	return treesearch.New(opts...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
