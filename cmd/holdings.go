package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andresberejnoi/CryptoTaxTools"
	"github.com/andresberejnoi/CryptoTaxTools/renderer"
	"github.com/google/subcommands"
)

type holdingsCmd struct {
	lots bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display current holdings per pool" }
func (*holdingsCmd) Usage() string {
	return `ctt holdings [-lots]

  Replays the ledger and displays the quantity and cost basis held in each
  pool, optionally down to the individual lots.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.lots, "lots", false, "Also list the individual lots of each pool.")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	holdings := cryptotax.NewHoldings()
	if _, err := ledger.Replay(holdings); err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingsMarkdown(holdings, c.lots))

	return subcommands.ExitSuccess
}
