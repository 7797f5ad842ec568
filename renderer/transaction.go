package renderer

import (
	"fmt"
	"strings"

	"github.com/andresberejnoi/CryptoTaxTools"
)

// Transactions renders a transaction list to a markdown string, one row per
// event, with a human readable description of what it did.
func Transactions(txs []cryptotax.Transaction) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Transactions\n\n")
	if len(txs) == 0 {
		fmt.Fprint(&b, "No transactions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Type | Description |")
	fmt.Fprintln(&b, "|:---|:---|:---|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", tx.When(), tx.What(), describe(tx))
	}
	return b.String()
}

func describe(tx cryptotax.Transaction) string {
	switch v := tx.(type) {
	case cryptotax.Buy:
		return fmt.Sprintf("bought %s %s for %s", v.Quantity, v.Asset, v.CostBasis)
	case cryptotax.Sell:
		if v.Proceeds.IsNegative() {
			return fmt.Sprintf("paid %s %s in fees (%s)", v.Quantity, v.Asset, v.Proceeds.Abs())
		}
		return fmt.Sprintf("sold %s %s for %s", v.Quantity, v.Asset, v.Proceeds)
	case cryptotax.Transfer:
		return fmt.Sprintf("moved %s %s from %s to %s (fees %s)", v.Quantity, v.Asset, v.SourcePool, v.TargetPool, v.NetworkFees)
	case cryptotax.Income:
		return fmt.Sprintf("received %s %s worth %s", v.Quantity, v.Asset, v.MarketValue)
	default:
		return string(tx.What())
	}
}
