package renderer

import (
	"fmt"
	"strings"

	"github.com/andresberejnoi/CryptoTaxTools"
)

// GainsMarkdown renders a realized gains report to a markdown string.
func GainsMarkdown(report *cryptotax.GainsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains Report from %s to %s\n\n", report.From, report.To)
	fmt.Fprint(&b, "Method: FIFO\n\n")

	if len(report.Disposals) == 0 {
		fmt.Fprint(&b, "No taxable disposals in the period.\n")
	} else {
		fmt.Fprint(&b, "## Disposals\n\n")
		fmt.Fprintln(&b, "| Asset | Quantity | Acquired | Disposed | Proceeds | Cost Basis | Gain | Term |")
		fmt.Fprintln(&b, "|:---|---:|:---|:---|---:|---:|---:|:---|")

		for _, d := range report.Disposals {
			term := "short"
			if d.LongTerm() {
				term = "long"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				d.Asset,
				d.Quantity,
				d.DatePurchased,
				d.DateSold,
				d.Proceeds,
				d.CostBasis,
				d.Gain().SignedString(),
				term,
			)
		}
		fmt.Fprintf(&b, "| **%s** | | | | **%s** | **%s** | **%s** | |\n",
			"Total",
			report.Proceeds,
			report.CostBasis,
			report.Gain.SignedString(),
		)

		fmt.Fprint(&b, "\n## Summary\n\n")
		fmt.Fprintln(&b, "| | Amount |")
		fmt.Fprintln(&b, "|:---|---:|")
		fmt.Fprintf(&b, "| Short-term gains | %s |\n", report.ShortTerm.SignedString())
		fmt.Fprintf(&b, "| Long-term gains | %s |\n", report.LongTerm.SignedString())
	}

	if !report.Income.IsZero() {
		fmt.Fprintf(&b, "\nReportable income to date: %s\n", report.Income)
	}

	return b.String()
}
