package treesearch

import (
	"context"
	"fmt"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeQueries(n int) []Query {
	queries := make([]Query, n)
	for i := range queries {
		queries[i] = Query{Genus: "Genus", Species: fmt.Sprintf("sp%d", i)}
	}
	return queries
}

func TestFetchAll_PreservesInputOrder(t *testing.T) {
	// The fake lookup sleeps a random amount so completion order is
	// scrambled; output order must still match input order.
	queries := makeQueries(25)

	for _, concurrency := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("concurrency_%d", concurrency), func(t *testing.T) {
			c := New(WithConcurrency(concurrency)).(*client)
			c.lookup = func(_ context.Context, q Query) ([]Location, bool) {
				time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
				return []Location{{Country: q.Species}}, true
			}

			results := c.FetchAll(context.Background(), queries)
			require.Len(t, results, len(queries))
			for i, r := range results {
				assert.Equal(t, KindSuccess, r.Kind)
				require.Len(t, r.Locations, 1)
				assert.Equal(t, queries[i].Species, r.Locations[0].Country)
			}
		})
	}
}

func TestFetchAll_EmptyInput(t *testing.T) {
	c := New().(*client)
	var calls atomic.Int64
	c.lookup = func(_ context.Context, _ Query) ([]Location, bool) {
		calls.Add(1)
		return nil, false
	}

	results := c.FetchAll(context.Background(), nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Zero(t, calls.Load())
}

func TestFetchAll_IsolatesFailures(t *testing.T) {
	queries := makeQueries(10)

	c := New(WithConcurrency(4)).(*client)
	c.lookup = func(_ context.Context, q Query) ([]Location, bool) {
		if q.Species == "sp3" {
			return nil, false
		}
		return []Location{{Country: "Brazil"}}, true
	}

	results := c.FetchAll(context.Background(), queries)
	require.Len(t, results, len(queries))
	for i, r := range results {
		if i == 3 {
			assert.Equal(t, KindNotFound, r.Kind)
			continue
		}
		assert.Equal(t, KindSuccess, r.Kind, "slot %d", i)
	}
}

func TestFetchAll_CapturesPanicPerSlot(t *testing.T) {
	queries := makeQueries(6)

	c := New(WithConcurrency(3)).(*client)
	c.lookup = func(_ context.Context, q Query) ([]Location, bool) {
		if q.Species == "sp2" {
			panic("scheduling fault")
		}
		return []Location{{Country: "France"}}, true
	}

	results := c.FetchAll(context.Background(), queries)
	require.Len(t, results, len(queries))

	assert.Equal(t, KindError, results[2].Kind)
	assert.Contains(t, results[2].Err, "scheduling fault")
	for i, r := range results {
		if i == 2 {
			continue
		}
		assert.Equal(t, KindSuccess, r.Kind, "slot %d", i)
	}
}
