package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/andresberejnoi/CryptoTaxTools"
	"github.com/google/subcommands"
)

// parseDate validates a date flag, reporting the error on stderr.
func parseDate(s string) (cryptotax.Date, bool) {
	day, err := cryptotax.ParseDate(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return cryptotax.Date{}, false
	}
	return day, true
}

// parseQuantity validates a quantity flag, reporting the error on stderr.
func parseQuantity(s string) (cryptotax.Quantity, bool) {
	q, err := cryptotax.ParseQuantity(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity %q: %v\n", s, err)
		return cryptotax.Quantity{}, false
	}
	return q, true
}

// parseAmount validates a monetary flag in the app reporting currency.
func parseAmount(s string) (cryptotax.Money, bool) {
	m, err := cryptotax.ParseMoney(s, *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", s, err)
		return cryptotax.Money{}, false
	}
	return m, true
}

// --- Buy Command ---

type buyCmd struct {
	date     string
	asset    string
	quantity string
	cost     string
	memo     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the acquisition of an asset" }
func (*buyCmd) Usage() string {
	return `buy -d <date> -a <asset> -q <quantity> -c <cost> [-m <memo>]

  Records the purchase of a quantity of an asset. The total cost becomes the
  cost basis of the new lot.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cryptotax.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker (e.g. BTC)")
	f.StringVar(&c.quantity, "q", "", "Quantity of asset purchased")
	f.StringVar(&c.cost, "c", "", "Total amount paid, in the reporting currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity == "" || c.cost == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDate(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	quantity, ok := parseQuantity(c.quantity)
	if !ok {
		return subcommands.ExitUsageError
	}
	cost, ok := parseAmount(c.cost)
	if !ok {
		return subcommands.ExitUsageError
	}

	return appendTransactions(cryptotax.NewBuy(day, c.memo, c.asset, quantity, cost))
}

// --- Sell Command ---

type sellCmd struct {
	date     string
	asset    string
	quantity string
	proceeds string
	memo     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the disposal of an asset" }
func (*sellCmd) Usage() string {
	return `sell -d <date> -a <asset> -q <quantity> -p <proceeds> [-m <memo>]

  Records the sale of a quantity of an asset. The oldest lots are consumed
  first when gains are computed.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cryptotax.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker (e.g. BTC)")
	f.StringVar(&c.quantity, "q", "", "Quantity of asset sold")
	f.StringVar(&c.proceeds, "p", "", "Total amount received, in the reporting currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity == "" || c.proceeds == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDate(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	quantity, ok := parseQuantity(c.quantity)
	if !ok {
		return subcommands.ExitUsageError
	}
	proceeds, ok := parseAmount(c.proceeds)
	if !ok {
		return subcommands.ExitUsageError
	}

	return appendTransactions(cryptotax.NewSell(day, c.memo, c.asset, quantity, proceeds))
}

// --- Fee Command ---

type feeCmd struct {
	date     string
	asset    string
	quantity string
	value    string
	memo     string
}

func (*feeCmd) Name() string     { return "fee" }
func (*feeCmd) Synopsis() string { return "record a fee paid in kind" }
func (*feeCmd) Usage() string {
	return `fee -d <date> -a <asset> -q <quantity> -v <value> [-m <memo>]

  Records an exchange or network fee paid in the asset itself. The quantity
  leaves the holdings and the lost market value is carried as negative
  proceeds.
`
}

func (c *feeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cryptotax.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker (e.g. BTC)")
	f.StringVar(&c.quantity, "q", "", "Quantity of asset paid as fee")
	f.StringVar(&c.value, "v", "", "Market value of the fee, in the reporting currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *feeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity == "" || c.value == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDate(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	quantity, ok := parseQuantity(c.quantity)
	if !ok {
		return subcommands.ExitUsageError
	}
	value, ok := parseAmount(c.value)
	if !ok {
		return subcommands.ExitUsageError
	}

	return appendTransactions(cryptotax.NewFee(day, c.memo, c.asset, quantity, value))
}

// --- Transfer Command ---

type transferCmd struct {
	date     string
	asset    string
	quantity string
	from     string
	to       string
	fees     string
	memo     string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "relocate an asset between two pools" }
func (*transferCmd) Usage() string {
	return `transfer -d <date> -a <asset> -q <quantity> -from <pool> -to <pool> [-fees <quantity>] [-m <memo>]

  Moves a quantity of an asset from one pool (an exchange account, a wallet)
  to another. This is not a taxable disposal: lots keep their purchase date
  and cost basis. Network fees are paid in kind from the source pool.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cryptotax.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker (e.g. BTC)")
	f.StringVar(&c.quantity, "q", "", "Quantity of asset transferred, fees excluded")
	f.StringVar(&c.from, "from", "", "Name of the source pool")
	f.StringVar(&c.to, "to", "", "Name of the target pool")
	f.StringVar(&c.fees, "fees", "0", "Network fee paid in the asset itself")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity == "" || c.from == "" || c.to == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDate(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	quantity, ok := parseQuantity(c.quantity)
	if !ok {
		return subcommands.ExitUsageError
	}
	fees, ok := parseQuantity(c.fees)
	if !ok {
		return subcommands.ExitUsageError
	}

	return appendTransactions(cryptotax.NewTransfer(day, c.memo, c.asset, quantity, c.from, c.to, fees))
}

// --- Earn Command ---

type earnCmd struct {
	date     string
	asset    string
	quantity string
	value    string
	expenses string
	memo     string
}

func (*earnCmd) Name() string     { return "earn" }
func (*earnCmd) Synopsis() string { return "record an asset received as income" }
func (*earnCmd) Usage() string {
	return `earn -d <date> -a <asset> -q <quantity> -v <value> [-e <expenses>] [-m <memo>]

  Records mining, staking or earn-program rewards. The market value at
  receipt is reportable income and becomes the cost basis of the new lot.
`
}

func (c *earnCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cryptotax.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.asset, "a", "", "Asset ticker (e.g. BTC)")
	f.StringVar(&c.quantity, "q", "", "Quantity of asset received")
	f.StringVar(&c.value, "v", "", "Market value at receipt, in the reporting currency")
	f.StringVar(&c.expenses, "e", "0", "Deductible expenses incurred to earn it")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *earnCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" || c.quantity == "" || c.value == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	day, ok := parseDate(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	quantity, ok := parseQuantity(c.quantity)
	if !ok {
		return subcommands.ExitUsageError
	}
	value, ok := parseAmount(c.value)
	if !ok {
		return subcommands.ExitUsageError
	}
	expenses, ok := parseAmount(c.expenses)
	if !ok {
		return subcommands.ExitUsageError
	}

	return appendTransactions(cryptotax.NewEarn(day, c.memo, c.asset, quantity, value, expenses)...)
}

// --- Convert Command ---

type convertCmd struct {
	date         string
	fromAsset    string
	fromQuantity string
	toAsset      string
	toQuantity   string
	value        string
	memo         string
}

func (*convertCmd) Name() string     { return "convert" }
func (*convertCmd) Synopsis() string { return "record a crypto-to-crypto trade" }
func (*convertCmd) Usage() string {
	return `convert -d <date> -from-a <asset> -from-q <quantity> -to-a <asset> -to-q <quantity> -v <value> [-m <memo>]

  Records a direct trade between two assets. For cost-basis purposes this is
  a disposal of the source asset at the trade's market value, and an
  acquisition of the destination asset with that value as cost basis.
`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", cryptotax.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.fromAsset, "from-a", "", "Source asset ticker (e.g. BTC)")
	f.StringVar(&c.fromQuantity, "from-q", "", "Quantity of the source asset traded away")
	f.StringVar(&c.toAsset, "to-a", "", "Destination asset ticker (e.g. ETH)")
	f.StringVar(&c.toQuantity, "to-q", "", "Quantity of the destination asset received")
	f.StringVar(&c.value, "v", "", "Market value of the trade, in the reporting currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.fromAsset == "" || c.fromQuantity == "" || c.toAsset == "" || c.toQuantity == "" || c.value == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if c.fromAsset == c.toAsset {
		fmt.Fprintln(os.Stderr, "Error: from and to assets cannot be the same.")
		return subcommands.ExitUsageError
	}
	day, ok := parseDate(c.date)
	if !ok {
		return subcommands.ExitUsageError
	}
	fromQuantity, ok := parseQuantity(c.fromQuantity)
	if !ok {
		return subcommands.ExitUsageError
	}
	toQuantity, ok := parseQuantity(c.toQuantity)
	if !ok {
		return subcommands.ExitUsageError
	}
	value, ok := parseAmount(c.value)
	if !ok {
		return subcommands.ExitUsageError
	}

	return appendTransactions(cryptotax.NewConvert(day, c.memo, c.fromAsset, fromQuantity, c.toAsset, toQuantity, value)...)
}
