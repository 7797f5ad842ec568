package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/andresberejnoi/CryptoTaxTools/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI surface for shell completion. It must be
// invoked before flag.Parse: in completion mode it prints the candidates and
// exits.
func completion() {
	txFlags := map[string]complete.Predictor{
		"d": predict.Nothing,
		"a": predict.Nothing,
		"q": predict.Nothing,
		"m": predict.Nothing,
	}
	spec := &complete.Command{
		Sub: map[string]*complete.Command{
			"buy":      {Flags: txFlags},
			"sell":     {Flags: txFlags},
			"fee":      {Flags: txFlags},
			"transfer": {Flags: txFlags},
			"earn":     {Flags: txFlags},
			"convert":  {Flags: txFlags},
			"tx":       {},
			"holdings": {},
			"gains":    {},
			"import":   {Args: predict.Files("*.json")},
			"fmt":      {},
			"topic":    {},
		},
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.jsonl"),
			"currency":    predict.Set{"USD", "EUR", "GBP"},
		},
	}
	spec.Complete("ctt")
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "documentation")
	commander.Register(commander.FlagsCommand(), "documentation")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
