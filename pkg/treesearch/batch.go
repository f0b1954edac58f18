package treesearch

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FetchAll looks up all queries using a bounded worker pool. Each worker
// writes its result into the slot matching the query's input index, so
// output ordering never depends on completion order. Individual failures
// never abort sibling work.
func (c *client) FetchAll(ctx context.Context, queries []Query) []Result {
	results := make([]Result, len(queries))
	if len(queries) == 0 {
		return results
	}

	var bar *progressbar.ProgressBar
	if isatty.IsTerminal(os.Stderr.Fd()) {
		bar = progressbar.NewOptions(len(queries),
			progressbar.OptionSetDescription("Fetching species data"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	var succeeded, failed atomic.Int64

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			defer func() {
				// Lookup absorbs its own faults; this guards the
				// orchestration itself. A panic here must cost only
				// this slot.
				if r := recover(); r != nil {
					failed.Add(1)
					results[i] = Result{Kind: KindError, Err: fmt.Sprintf("%v", r)}
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}()

			locs, ok := c.lookup(gctx, q)
			if !ok {
				failed.Add(1)
				results[i] = Result{Kind: KindNotFound}
				return nil
			}

			succeeded.Add(1)
			results[i] = Result{Kind: KindSuccess, Locations: locs}
			return nil
		})
	}

	_ = g.Wait()

	zap.L().Info("treesearch: batch complete",
		zap.Int("total", len(queries)),
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)

	return results
}
