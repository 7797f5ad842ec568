package cryptotax

import (
	"fmt"
	"iter"
	"sort"
)

// Ledger represents a list of transaction events.
//
// In a Ledger transactions are always in chronological order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append appends transactions to this ledger and maintains the chronological
// order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
}

// Validate checks a transaction for correctness before it is appended.
func (l *Ledger) Validate(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("invalid %s transaction on %v: %w", tx.What(), tx.When(), err)
	}
	return nil
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// stableSort sorts the ledger by transaction date. The sort is stable,
// meaning transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Transactions returns an iterator that yields each transaction in
// chronological order. When filters are given, a transaction is yielded if
// any filter accepts it.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(tx) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// ByAsset returns a predicate that filters transactions by asset ticker.
func ByAsset(ticker string) func(Transaction) bool {
	return func(tx Transaction) bool {
		switch v := tx.(type) {
		case Buy:
			return v.Asset == ticker
		case Sell:
			return v.Asset == ticker
		case Transfer:
			return v.Asset == ticker
		case Income:
			return v.Asset == ticker
		default:
			return false
		}
	}
}

// ByType returns a predicate that filters transactions by type.
func ByType(t TxType) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.What() == t }
}

// OldestTransactionDate returns the date of the earliest transaction in the
// ledger, or the zero date if the ledger is empty.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// NewestTransactionDate returns the date of the latest transaction in the
// ledger, or the zero date if the ledger is empty.
func (l *Ledger) NewestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].When()
}

// TotalIncome sums the reportable income of all income events up to and
// including a given date.
func (l *Ledger) TotalIncome(on Date) Money {
	var total Money
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			// The ledger is sorted, so we can stop iterating.
			break
		}
		if v, ok := tx.(Income); ok {
			total = total.Add(v.ReportableIncome())
		}
	}
	return total
}

// Replay applies every transaction to the holdings through the lot engine
// and returns the resulting disposals in chronological order.
//
// Buys create lots in the asset's default pool. Sells consume lots FIFO
// from the default pool and yield one disposal per consumed lot, with
// proceeds apportioned pro rata. Transfers relocate lots between the named
// pools. Income events carry no quantity into the pools by themselves: an
// earn-style reward is recorded as an income plus an implied buy (see
// NewEarn), and only the buy creates the lot.
func (l *Ledger) Replay(h *Holdings) ([]Disposal, error) {
	var disposals []Disposal
	for _, tx := range l.transactions {
		switch v := tx.(type) {
		case Buy:
			pool := h.Pool("", v.Asset)
			pool.AddLot(NewLot(v.Quantity, v.CostBasis, v.Date))
		case Sell:
			pool := h.Pool("", v.Asset)
			lots, err := pool.Sell(v.Quantity, v.Date)
			if err != nil {
				return nil, fmt.Errorf("could not apply %s transaction on %s: %w", v.Type, v.Date, err)
			}
			disposals = append(disposals, apportion(v.Asset, lots, v.Proceeds)...)
		case Transfer:
			source := h.Pool(v.SourcePool, v.Asset)
			target := h.Pool(v.TargetPool, v.Asset)
			if err := source.Transfer(v.Quantity, target, v.Date, v.NetworkFees); err != nil {
				return nil, fmt.Errorf("could not apply %s transaction on %s: %w", v.Type, v.Date, err)
			}
		case Income:
			// Reported through TotalIncome; the implied acquisition is a
			// separate Buy event.
		default:
			return nil, &InvalidTransactionTypeError{Type: string(tx.What())}
		}
	}
	return disposals, nil
}
