package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	raw     bool
	noChart bool
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "value the portfolio at current prices and write the reports" }
func (*valueCmd) Usage() string {
	return `cfo value [-raw] [-no-chart]

  Loads the holdings file, fetches current USD prices in a single request and
  prints the valuation: cost basis, value now and ROI for each holding, and
  the portfolio totals.

  It also writes a CSV snapshot report-<YYYYMMDD-HHMMSS>.csv into the output
  directory and a pie chart of the allocation (portfolio_allocation.png).

Usage Examples:
# Values holdings.csv in the current directory.
$ cfo value

# Values another file, writing the reports into reports/.
$ cfo -holdings ~/crypto.csv -out reports value

`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print raw markdown instead of the terminal rendering")
	f.BoolVar(&c.noChart, "no-chart", false, "do not draw the allocation chart")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %q\n", f.Args())
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log := newLogger(cfg)

	p := &Pipeline{
		Holdings:  cfg.Holdings,
		OutputDir: cfg.OutputDir,
		ChartFile: cfg.ChartFile,
		Symbols:   newResolver(cfg),
		Source:    newClient(cfg, log),
		Log:       log,
	}
	if c.noChart {
		p.ChartFile = ""
	}

	report, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(os.Stdout, report.Markdown, c.raw)
	return subcommands.ExitSuccess
}
