package cryptotax

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains functions to import trade history exports from
// exchanges. Every exchange invents its own JSON shape, so the mapping from
// a record to a transaction is expressed with jsonpath queries instead of
// one hardcoded struct per exchange.

// ImportMapping describes where the fields of a trade live in an exchange's
// JSON export.
type ImportMapping struct {
	Records  string // jsonpath to the list of trade records, e.g. "$.fills[*]"
	Side     string // jsonpath within a record to the trade side ("buy" or "sell")
	Asset    string // jsonpath within a record to the asset ticker
	Quantity string // jsonpath within a record to the traded quantity
	Amount   string // jsonpath within a record to the total amount paid or received
	Date     string // jsonpath within a record to the trade timestamp
	Currency string // literal reporting currency of the amounts, e.g. "USD"
}

// ImportTransactions reads an exchange's JSON trade export and maps each
// record to a Buy or Sell event according to the mapping.
func ImportTransactions(r io.Reader, mapping ImportMapping) ([]Transaction, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse export as json: %w", err)
	}

	jrecords, err := jsonpath.Get(mapping.Records, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating records path %q: %w", mapping.Records, err)
	}
	records, ok := jrecords.([]any)
	if !ok {
		return nil, fmt.Errorf("records path %q must select a list, got %T", mapping.Records, jrecords)
	}

	txs := make([]Transaction, 0, len(records))
	for i, record := range records {
		side, err := jsonText(record, mapping.Side)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		asset, err := jsonText(record, mapping.Asset)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		quantity, err := jsonNumber(record, mapping.Quantity)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		amount, err := jsonNumber(record, mapping.Amount)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		dateText, err := jsonText(record, mapping.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		on, err := ParseDate(dateText)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		money := M(amount, mapping.Currency)
		switch strings.ToLower(side) {
		case "buy":
			txs = append(txs, NewBuy(on, "", asset, Q(quantity), money))
		case "sell":
			txs = append(txs, NewSell(on, "", asset, Q(quantity), money))
		default:
			return nil, fmt.Errorf("record %d: unknown trade side %q", i, side)
		}
	}
	return txs, nil
}

// jsonText evaluates a jsonpath expression expected to yield a string.
func jsonText(record any, path string) (string, error) {
	jval, err := jsonpath.Get(path, record)
	if err != nil {
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("path %q: expected a string, got %v", path, jval)
	}
	return s, nil
}

// jsonNumber evaluates a jsonpath expression expected to yield a number,
// accepting both json numbers and numeric strings (exchanges use both).
func jsonNumber(record any, path string) (decimal.Decimal, error) {
	jval, err := jsonpath.Get(path, record)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, fmt.Errorf("path %q: %w", path, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("path %q: expected a number, got %v", path, jval)
	}
}
