package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andresberejnoi/CryptoTaxTools"
	"github.com/google/subcommands"
)

type importCmd struct {
	records  string
	side     string
	asset    string
	quantity string
	amount   string
	date     string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades from an exchange's JSON export" }
func (*importCmd) Usage() string {
	return `ctt import [-records <path>] [-side <path>] [-asset <path>] [-q <path>] [-amount <path>] [-date <path>] <file>

  Reads a JSON trade export and appends the trades to the ledger as buy and
  sell transactions. The flags are jsonpath expressions locating each field,
  so any exchange's export format can be mapped. See 'ctt topic importing'.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.records, "records", "$[*]", "jsonpath to the list of trade records")
	f.StringVar(&c.side, "side", "$.side", "jsonpath within a record to the trade side (buy or sell)")
	f.StringVar(&c.asset, "asset", "$.asset", "jsonpath within a record to the asset ticker")
	f.StringVar(&c.quantity, "q", "$.quantity", "jsonpath within a record to the traded quantity")
	f.StringVar(&c.amount, "amount", "$.amount", "jsonpath within a record to the total amount paid or received")
	f.StringVar(&c.date, "date", "$.date", "jsonpath within a record to the trade timestamp")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening export file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	mapping := cryptotax.ImportMapping{
		Records:  c.records,
		Side:     c.side,
		Asset:    c.asset,
		Quantity: c.quantity,
		Amount:   c.amount,
		Date:     c.date,
		Currency: *currency,
	}

	txs, err := cryptotax.ImportTransactions(in, mapping)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	if len(txs) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no trades found in export.")
		return subcommands.ExitSuccess
	}

	return appendTransactions(txs...)
}
