package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://data.bgci.org/treesearch", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.TimeoutSecs)
	assert.Equal(t, 10.0, cfg.API.RateLimit)
	assert.Equal(t, 10, cfg.Batch.Concurrency)
	assert.Contains(t, cfg.Map.CountriesURL, "ne_110m_admin_0_countries.zip")
	assert.Contains(t, cfg.Map.ProvincesURL, "ne_10m_admin_1_states_provinces.zip")
	assert.NotEmpty(t, cfg.Map.CacheDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("TREESEARCH_API_TIMEOUT_SECS", "3")
	t.Setenv("TREESEARCH_BATCH_CONCURRENCY", "2")
	t.Setenv("TREESEARCH_API_BASE_URL", "http://localhost:8080/treesearch")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.API.TimeoutSecs)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.Equal(t, "http://localhost:8080/treesearch", cfg.API.BaseURL)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "bogus", Format: "json"}))
}
