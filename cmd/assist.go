package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/coinfolio/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	raw bool
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "chat with an AI assistant about the portfolio" }
func (*assistCmd) Usage() string {
	return `cfo assist [-raw] [<question>...]

  Starts an interactive session with a Gemini assistant that can value the
  portfolio and look up the latest market news. The optional question is sent
  first. Type 'bye' to exit.

  Requires the GEMINI_API_KEY environment variable. No report file is written.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print raw markdown instead of the terminal rendering")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	log := newLogger(cfg)

	p := &Pipeline{
		Holdings: cfg.Holdings,
		Symbols:  newResolver(cfg),
		Source:   newClient(cfg, log),
		Log:      log,
	}
	valuation := func(ctx context.Context) (string, error) {
		r, err := p.Evaluate(ctx)
		if err != nil {
			return "", err
		}
		return r.Markdown, nil
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	accountant := agent.NewAccountant(valuation)
	accountant.Log = log
	a := agent.New(os.Stdout, os.Stdin, agent.NewMarketAnalyst(), accountant)
	a.Print = func(w io.Writer, answer string) { printMarkdown(w, answer, c.raw) }

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
