// Package cmd implements the CLI application to manage a crypto tax ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/andresberejnoi/CryptoTaxTools"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&feeCmd{}, "transactions")
	c.Register(&transferCmd{}, "transactions")
	c.Register(&earnCmd{}, "transactions")
	c.Register(&convertCmd{}, "transactions")

	c.Register(&txCmd{}, "reporting")
	c.Register(&holdingsCmd{}, "reporting")
	c.Register(&gainsCmd{}, "reporting")

	c.Register(&importCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var currency = flag.String("currency", "USD", "Reporting currency for amounts entered on the command line")

// DecodeLedger loads the app ledger file. A missing file is not an error: it
// yields an empty ledger so every command works on a fresh directory.
func DecodeLedger() (*cryptotax.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, ledger file %q does not exist, starting from an empty ledger", *ledgerFile)
		return cryptotax.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return cryptotax.DecodeLedger(f)
}

// appendTransactions validates and appends transactions to the app ledger file.
func appendTransactions(txs ...cryptotax.Transaction) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	for _, tx := range txs {
		if err := ledger.Validate(tx); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	for _, tx := range txs {
		if err := cryptotax.EncodeTransaction(f, tx); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Successfully appended %d transaction(s) to %s\n", len(txs), *ledgerFile)
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown for the terminal. On rendering errors the
// raw markdown is still printed, it remains readable.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
