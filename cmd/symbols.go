package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

type symbolsCmd struct {
	raw bool
}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "list the symbols that can be priced" }
func (*symbolsCmd) Usage() string {
	return `cfo symbols [-raw]

  Lists the ticker symbols cfo knows and the CoinGecko id used to price them:
  the built-in table extended by the [symbols] section of the configuration.
  Holdings with any other symbol are reported without a price.
`
}

func (c *symbolsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print raw markdown instead of the terminal rendering")
}

func (c *symbolsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(os.Stdout, renderer.SymbolsMarkdown(newResolver(cfg)), c.raw)
	return subcommands.ExitSuccess
}
