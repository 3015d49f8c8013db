package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

type searchCmd struct {
	raw   bool
	limit int
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search CoinGecko for coin ids" }
func (*searchCmd) Usage() string {
	return `cfo search [-n <limit>] <query>

  Searches CoinGecko coins by name or symbol. The id column is the value to
  add in the [symbols] section of the configuration, e.g.

  [symbols]
  DOGE = "dogecoin"
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print raw markdown instead of the terminal rendering")
	f.IntVar(&c.limit, "n", 10, "maximum number of results")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.TrimSpace(strings.Join(f.Args(), " "))
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: missing search query")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	coins, err := newClient(cfg, newLogger(cfg)).Search(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.limit > 0 && len(coins) > c.limit {
		coins = coins[:c.limit]
	}
	printMarkdown(os.Stdout, renderer.CoinsMarkdown(query, coins), c.raw)
	return subcommands.ExitSuccess
}
