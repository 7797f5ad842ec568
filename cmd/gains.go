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

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	start string
	end   string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized gain analysis over a reporting period" }
func (*gainsCmd) Usage() string {
	return `ctt gains [-s <date>] [-d <date>]

  Replays the ledger and displays every taxable disposal within the reporting
  period, with its holding period and realized gain or loss. Lots are always
  consumed oldest first.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "s", "", "Start date of the reporting period. Defaults to the oldest transaction.")
	f.StringVar(&c.end, "d", cryptotax.Today().String(), "End date of the reporting period.")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	endDate, err := cryptotax.ParseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	startDate := ledger.OldestTransactionDate()
	if c.start != "" {
		startDate, err = cryptotax.ParseDate(c.start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	holdings := cryptotax.NewHoldings()
	disposals, err := ledger.Replay(holdings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	report := cryptotax.NewGainsReport(disposals, startDate, endDate)
	report.Income = ledger.TotalIncome(endDate)

	printMarkdown(renderer.GainsMarkdown(report))

	return subcommands.ExitSuccess
}
