// Package config loads the coinfolio configuration.
//
// Values come, by increasing priority, from defaults, an optional TOML file,
// an optional .env file, the environment and finally command line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables overriding the configuration.
const (
	EnvConfig    = "CFO_CONFIG" // configuration file, when none is given
	EnvHoldings  = "CFO_HOLDINGS"
	EnvOutputDir = "CFO_OUTPUT_DIR"
	EnvChartFile = "CFO_CHART_FILE"
	EnvBaseURL   = "CFO_COINGECKO_BASE_URL"
	EnvAPIKey    = "COINGECKO_API_KEY"
	EnvTimeout   = "CFO_TIMEOUT"
	EnvCacheTTL  = "CFO_CACHE_TTL"
	EnvLogLevel  = "CFO_LOG_LEVEL"
	EnvLogPretty = "CFO_LOG_PRETTY"
)

// DefaultFile is the configuration file read when none is given.
const DefaultFile = "coinfolio.toml"

// Config represents the application configuration.
type Config struct {
	Holdings  string            `toml:"holdings"`
	OutputDir string            `toml:"output_dir"`
	ChartFile string            `toml:"chart_file"`
	CoinGecko CoinGeckoConfig   `toml:"coingecko"`
	Log       LogConfig         `toml:"log"`
	Symbols   map[string]string `toml:"symbols"` // extra symbol -> provider id entries
}

// CoinGeckoConfig contains the price provider settings.
type CoinGeckoConfig struct {
	BaseURL  string   `toml:"base_url"`
	APIKey   string   `toml:"api_key"`
	Timeout  Duration `toml:"timeout"`
	CacheTTL Duration `toml:"cache_ttl"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// Duration is a time.Duration written as a string in TOML ("20s", "5m").
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) { return []byte(time.Duration(d).String()), nil }

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// NewDefaultConfig returns the configuration used when nothing is set.
func NewDefaultConfig() *Config {
	return &Config{
		Holdings:  "holdings.csv",
		OutputDir: ".",
		ChartFile: "portfolio_allocation.png",
		CoinGecko: CoinGeckoConfig{
			BaseURL: "https://api.coingecko.com/api/v3",
			Timeout: Duration(20 * time.Second),
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

// Load loads the configuration with priority: defaults -> file -> env.
//
// An empty path reads the file named by CFO_CONFIG, or DefaultFile if it exists. A path that was explicitly
// given must exist. A .env file in the working directory, if any, is loaded
// into the environment first without overriding it.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	config := NewDefaultConfig()
	file, required := path, true
	if file == "" {
		file = os.Getenv(EnvConfig)
	}
	if file == "" {
		file, required = DefaultFile, false
	}

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies CFO_* environment variable overrides to config.
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv(EnvHoldings); v != "" {
		config.Holdings = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		config.OutputDir = v
	}
	if v := os.Getenv(EnvChartFile); v != "" {
		config.ChartFile = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		config.CoinGecko.BaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		config.CoinGecko.APIKey = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if err := config.CoinGecko.Timeout.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if err := config.CoinGecko.CacheTTL.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Log.Level = v
	}
	if v := os.Getenv(EnvLogPretty); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Log.Pretty = b
		}
	}
	return nil
}

// Validate reports settings the application cannot run with.
func (c *Config) Validate() error {
	if c.Holdings == "" {
		return errors.New("holdings file is not set")
	}
	if c.CoinGecko.BaseURL == "" {
		return errors.New("coingecko base_url is not set")
	}
	if c.CoinGecko.Timeout <= 0 {
		return fmt.Errorf("coingecko timeout must be positive, got %v", time.Duration(c.CoinGecko.Timeout))
	}
	return nil
}
