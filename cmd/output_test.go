package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/treesearch-cli/internal/locations"
	"github.com/sells-group/treesearch-cli/pkg/treesearch"
)

func TestPrintLocationsGrouped(t *testing.T) {
	var buf bytes.Buffer
	printLocationsGrouped(&buf, []treesearch.Location{
		{Country: "Brazil", Province: "Ceará"},
		{Country: "Brazil", Province: "Bahia"},
		{Country: "France"},
	})

	out := buf.String()
	assert.Contains(t, out, "Brazil:")
	assert.Contains(t, out, "- Bahia")
	assert.Contains(t, out, "- Ceará")
	assert.Contains(t, out, "France:")
	assert.Contains(t, out, "- (entire country)")

	// Countries sort before their provinces are listed.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Brazil")), bytes.Index(buf.Bytes(), []byte("France")))
}

func TestPrintDistribution_SortsProvincePairs(t *testing.T) {
	var buf bytes.Buffer
	classified := locations.Classify([]treesearch.Location{
		{Country: "Brazil", Province: "Ceará"},
		{Country: "Argentina", Province: "Salta"},
		{Country: "Brazil", Province: "Bahia"},
		{Country: "France"},
	})
	printDistribution(&buf, treesearch.Query{Genus: "Abarema", Species: "cochliocarpos"}, classified)

	out := buf.String()
	assert.Contains(t, out, "Abarema cochliocarpos distribution:")
	assert.Contains(t, out, "Countries (entire): France")

	// Pairs print sorted by country, then province, not in API order.
	salta := bytes.Index(buf.Bytes(), []byte("- Argentina: Salta"))
	bahia := bytes.Index(buf.Bytes(), []byte("- Brazil: Bahia"))
	ceara := bytes.Index(buf.Bytes(), []byte("- Brazil: Ceará"))
	require.NotEqual(t, -1, salta)
	require.NotEqual(t, -1, bahia)
	require.NotEqual(t, -1, ceara)
	assert.Less(t, salta, bahia)
	assert.Less(t, bahia, ceara)
}

func TestResolveConcurrency(t *testing.T) {
	assert.Equal(t, 4, resolveConcurrency(true, 4, 10))
	assert.Equal(t, 10, resolveConcurrency(false, 4, 10))
}

func TestPrintLocationsJSON(t *testing.T) {
	var buf bytes.Buffer
	locs := []treesearch.Location{{Country: "Brazil", Province: "Bahia"}}
	require.NoError(t, printLocationsJSON(&buf, locs))

	var decoded []treesearch.Location
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, locs, decoded)
}

func TestWriteBatchJSON(t *testing.T) {
	queries := []treesearch.Query{
		{Genus: "Abarema", Species: "cochliocarpos"},
		{Genus: "InvalidGenus", Species: "invalid_species"},
	}
	results := []treesearch.Result{
		{Kind: treesearch.KindSuccess, Locations: []treesearch.Location{{Country: "Brazil"}}},
		{Kind: treesearch.KindNotFound},
	}

	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, writeBatchJSON(path, queries, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []batchRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 2)

	assert.Equal(t, "ok", records[0].Status)
	assert.Len(t, records[0].Locations, 1)
	assert.Equal(t, "not_found", records[1].Status)
	assert.Empty(t, records[1].Locations)
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	printBatchSummary(&buf, []treesearch.Query{
		{Genus: "Abies", Species: "alba"},
		{Genus: "X", Species: "y"},
		{Genus: "Z", Species: "w"},
	}, []treesearch.Result{
		{Kind: treesearch.KindSuccess, Locations: make([]treesearch.Location, 3)},
		{Kind: treesearch.KindNotFound},
		{Kind: treesearch.KindError, Err: "scheduler fault"},
	})

	out := buf.String()
	assert.Contains(t, out, "Abies alba: ok (3 locations)")
	assert.Contains(t, out, "X y: not found")
	assert.Contains(t, out, "Z w: error: scheduler fault")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "ok", statusLabel(treesearch.KindSuccess))
	assert.Equal(t, "not_found", statusLabel(treesearch.KindNotFound))
	assert.Equal(t, "error", statusLabel(treesearch.KindError))
}
