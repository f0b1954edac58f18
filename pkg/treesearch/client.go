// Package treesearch provides a client for the BGCI Global Tree Search API.
package treesearch

import (
	"context"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production BGCI Global Tree Search endpoint.
const DefaultBaseURL = "https://data.bgci.org/treesearch"

// Query identifies a species by its binomial name.
type Query struct {
	Genus   string
	Species string
}

// Location is one country/province occurrence entry for a species.
// Province and Uncertainty are empty when the API reports them as null.
type Location struct {
	Country     string `json:"country"`
	Province    string `json:"province"`
	Uncertainty string `json:"uncertainty"`
}

// ResultKind classifies one slot of a batch result.
type ResultKind int

const (
	// KindSuccess means the lookup returned at least one location.
	KindSuccess ResultKind = iota
	// KindNotFound means the species has no data or the request failed.
	KindNotFound
	// KindError means the batch orchestration itself faulted for this slot.
	KindError
)

// Result is one slot of a FetchAll output, aligned by index with the input.
type Result struct {
	Kind      ResultKind
	Locations []Location
	Err       string
}

// Client looks up tree-species occurrence data.
type Client interface {
	// Lookup fetches the geographic occurrence list for one species.
	// The second return is false when the species is not found; transport
	// and parse faults are absorbed and reported the same way.
	Lookup(ctx context.Context, q Query) ([]Location, bool)

	// Exists reports whether the species has any record in the database.
	// It is an independent round trip; it never fails, only returns false.
	Exists(ctx context.Context, q Query) bool

	// FetchAll looks up every query concurrently. The returned slice has
	// the same length and index alignment as queries, regardless of
	// per-item failures.
	FetchAll(ctx context.Context, queries []Query) []Result
}

// Option configures the client.
type Option func(*client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(base string) Option {
	return func(c *client) {
		c.baseURL = base
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		c.httpClient.Timeout = d
	}
}

// WithRateLimit sets the requests-per-second limit for API calls. The burst
// is never below one, so fractional rates still let single requests through.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		burst := int(math.Max(1, math.Ceil(rps)))
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithConcurrency sets the worker-pool size used by FetchAll.
func WithConcurrency(n int) Option {
	return func(c *client) {
		if n >= 1 {
			c.concurrency = n
		}
	}
}

type client struct {
	httpClient  *http.Client
	baseURL     string
	limiter     *rate.Limiter
	concurrency int

	// lookup is indirected so batch tests can substitute a fake.
	lookup func(ctx context.Context, q Query) ([]Location, bool)
}

// New creates a Client with the given options.
func New(opts ...Option) Client {
	c := &client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		baseURL:     DefaultBaseURL,
		limiter:     rate.NewLimiter(10, 10),
		concurrency: 10,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lookup = c.doLookup
	return c
}
