package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	API   APIConfig   `yaml:"api" mapstructure:"api"`
	Batch BatchConfig `yaml:"batch" mapstructure:"batch"`
	Map   MapConfig   `yaml:"map" mapstructure:"map"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// APIConfig configures the Global Tree Search API client.
type APIConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// BatchConfig configures parallel batch fetching.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// MapConfig configures polygon dataset sources and renderer styling.
type MapConfig struct {
	CountriesURL string `yaml:"countries_url" mapstructure:"countries_url"`
	ProvincesURL string `yaml:"provinces_url" mapstructure:"provinces_url"`
	CacheDir     string `yaml:"cache_dir" mapstructure:"cache_dir"`
	Style        string `yaml:"style" mapstructure:"style"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TREESEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("api.base_url", "https://data.bgci.org/treesearch")
	v.SetDefault("api.timeout_secs", 10)
	v.SetDefault("api.rate_limit", 10.0)
	v.SetDefault("batch.concurrency", 10)
	v.SetDefault("map.countries_url", "https://naciscdn.org/naturalearth/110m/cultural/ne_110m_admin_0_countries.zip")
	v.SetDefault("map.provinces_url", "https://naciscdn.org/naturalearth/10m/cultural/ne_10m_admin_1_states_provinces.zip")
	v.SetDefault("map.cache_dir", filepath.Join(os.TempDir(), "treesearch"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
