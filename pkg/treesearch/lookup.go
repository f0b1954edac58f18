package treesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// searchResponse is the top-level API payload. The elements of results are
// kept raw so a malformed entry degrades to not-found instead of failing
// the whole decode.
type searchResponse struct {
	Results []json.RawMessage `json:"results"`
}

// taxonResult is one search result. Only TSGeolinks is consulted.
type taxonResult struct {
	TSGeolinks []Location `json:"TSGeolinks"`
}

// Lookup fetches the occurrence list for one species. A failed request,
// a non-2xx status, or an unparseable body all read as not-found.
func (c *client) Lookup(ctx context.Context, q Query) ([]Location, bool) {
	return c.doLookup(ctx, q)
}

func (c *client) doLookup(ctx context.Context, q Query) ([]Location, bool) {
	results, err := c.fetchResults(ctx, q)
	if err != nil {
		zap.L().Warn("treesearch: lookup failed",
			zap.String("genus", q.Genus),
			zap.String("species", q.Species),
			zap.Error(err),
		)
		return nil, false
	}
	if len(results) == 0 {
		return nil, false
	}

	// Only the first search result is consulted. The API may return
	// several candidate taxa; the first is treated as authoritative.
	// Known simplification.
	var first taxonResult
	if err := json.Unmarshal(results[0], &first); err != nil {
		zap.L().Warn("treesearch: parse first result",
			zap.String("genus", q.Genus),
			zap.String("species", q.Species),
			zap.Error(err),
		)
		return nil, false
	}

	if len(first.TSGeolinks) == 0 {
		return nil, false
	}
	return first.TSGeolinks, true
}

// Exists reports whether the species has any search result. It performs
// its own round trip rather than reusing Lookup's, so both calls share
// failure modes but not state.
func (c *client) Exists(ctx context.Context, q Query) bool {
	results, err := c.fetchResults(ctx, q)
	if err != nil {
		return false
	}
	return len(results) > 0
}

// fetchResults performs the single GET for a query and returns the raw
// results sequence. Exactly one attempt; a timeout is terminal.
func (c *client) fetchResults(ctx context.Context, q Query) ([]json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "treesearch: rate limit")
	}

	url := fmt.Sprintf("%s/genus/%s/species/%s", c.baseURL, q.Genus, q.Species)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "treesearch: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "treesearch: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("treesearch: api returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "treesearch: read body")
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, eris.Wrap(err, "treesearch: parse response")
	}

	return payload.Results, nil
}
