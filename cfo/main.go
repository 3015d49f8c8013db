// Command cfo values a crypto portfolio at current CoinGecko prices.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/coinfolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell for completion.
	completion(commander).Complete("cfo")

	flag.Parse()

	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}

func registered(c *subcommands.Commander, name string) (found bool) {
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		found = found || sub.Name() == name
	})
	return found
}

// completion describes the command line for shell completion.
func completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.toml"),
			"holdings": predict.Files("*.csv"),
			"out":      predict.Dirs("*"),
			"v":        predict.Nothing,
		},
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		flags := map[string]complete.Predictor{}
		fs.VisitAll(func(f *flag.Flag) {
			flags[f.Name] = predict.Something
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				flags[f.Name] = predict.Nothing
			}
		})
		root.Sub[sub.Name()] = &complete.Command{Flags: flags}
	})
	return root
}
