// Package cmd implements the cfo command line application: value a crypto
// portfolio and write its reports.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/coingecko"
	"github.com/etnz/coinfolio/config"
	"github.com/etnz/coinfolio/logger"
	"github.com/google/subcommands"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&valueCmd{}, "portfolio")
	c.Register(&assistCmd{}, "portfolio")

	c.Register(&symbolsCmd{}, "symbols")
	c.Register(&searchCmd{}, "symbols")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile   = flag.String("config", "", "Path to the TOML configuration file. Defaults to "+config.DefaultFile+" if it exists.")
	holdingsFile = flag.String("holdings", "", "Path to the holdings CSV file. Overrides the configuration.")
	outputDir    = flag.String("out", "", "Directory receiving the snapshot and the chart. Overrides the configuration.")
	verbose      = flag.Bool("v", false, "Verbose output, enables debug logs.")
)

// loadConfig loads the configuration and applies the global flags on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *holdingsFile != "" {
		cfg.Holdings = *holdingsFile
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger returns the run logger. Every run is tagged with a fresh id.
func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty}).
		With().
		Str("run", uuid.NewString()).
		Logger()
}

// newResolver returns the built-in symbol table extended by the configuration.
func newResolver(cfg *config.Config) coinfolio.SymbolMap {
	return coinfolio.DefaultSymbols().With(cfg.Symbols)
}

// newClient returns the CoinGecko client described by cfg.
func newClient(cfg *config.Config, log zerolog.Logger) *coingecko.Client {
	opts := []coingecko.Option{
		coingecko.WithLogger(log),
		coingecko.WithBaseURL(cfg.CoinGecko.BaseURL),
		coingecko.WithAPIKey(cfg.CoinGecko.APIKey),
		coingecko.WithTimeout(cfg.CoinGecko.Timeout.Std()),
	}
	if ttl := cfg.CoinGecko.CacheTTL.Std(); ttl > 0 {
		dir, err := cacheDir()
		if err != nil {
			log.Warn().Err(err).Msg("price cache disabled")
		} else {
			opts = append(opts, coingecko.WithCache(dir, ttl))
		}
	}
	return coingecko.New(opts...)
}

// cacheDir returns the directory holding cached provider responses.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "coinfolio")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
