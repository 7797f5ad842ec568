package cryptotax

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// This file contains code to persist the ledger in a way that is still
// human-readable and git-friendly: a JSONL stream, one event per line,
// tagged by its "type" property.

// DecodeLedger reads a stream of JSONL data, decodes each line into the
// appropriate transaction struct, and returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Type TxType `json:"type"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify transaction type in line %q: %w", string(lineBytes), err)
		}

		var decodedTx Transaction
		var err error

		switch identifier.Type {
		case TxBuy:
			var tx Buy
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case TxSell:
			var tx Sell
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case TxTransfer:
			var tx Transfer
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		case TxIncome:
			var tx Income
			err = json.Unmarshal(lineBytes, &tx)
			decodedTx = tx
		default:
			err = &InvalidTransactionTypeError{Type: string(identifier.Type)}
		}

		if err != nil {
			return nil, err
		}
		ledger.transactions = append(ledger.transactions, decodedTx)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	// Perform a stable sort on the ledger based on the transaction date.
	ledger.stableSort()

	return ledger, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	jsonData, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	// Write the JSON data followed by a newline to create the JSONL format.
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger reorders transactions by date and persists them to an
// io.Writer in JSONL format. The sort is stable, meaning transactions on
// the same day maintain their original relative order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	ledger.stableSort()

	for _, tx := range ledger.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
