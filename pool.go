package cryptotax

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Pool is a custodial grouping (an exchange account, a hardware wallet)
// holding the lots of a single asset in FIFO order.
//
// For example, buying 1 BTC on an exchange and sending half of it to a
// hardware wallet is modeled as one Lot added to the exchange's pool, then
// transferred to the wallet's pool:
//
//	coinbase := NewPool("Coinbase", "btc")
//	wallet := NewPool("Trezor", "btc")
//	coinbase.AddLot(NewLot(Q(1.0), M(4500, "USD"), MustParseDate("2017-06-01 10:30")))
//	err := coinbase.Transfer(Q(0.5), wallet, Today(), Q(0))
//
// Pool operations are not safe for concurrent use: callers must serialize
// all mutating operations per pool, and a transfer must be atomic with
// respect to both pools involved.
type Pool struct {
	name            string
	asset           string
	addresses       []string // metadata only, not used in any calculation
	lots            []*Lot   // always sorted by ascending purchase date
	decimalAccuracy int
}

// NewPool creates an empty pool for an asset with the default decimal
// accuracy. The asset ticker is upper-cased.
func NewPool(name, asset string, addresses ...string) *Pool {
	return NewPoolWithAccuracy(name, asset, DefaultDecimalAccuracy, addresses...)
}

// NewPoolWithAccuracy creates an empty pool using the given number of
// decimal digits for all quantity comparisons.
func NewPoolWithAccuracy(name, asset string, decimalAccuracy int, addresses ...string) *Pool {
	return &Pool{
		name:            name,
		asset:           strings.ToUpper(asset),
		addresses:       addresses,
		lots:            make([]*Lot, 0),
		decimalAccuracy: decimalAccuracy,
	}
}

func (p *Pool) Name() string         { return p.name }
func (p *Pool) Asset() string        { return p.asset }
func (p *Pool) Addresses() []string  { return p.addresses }
func (p *Pool) Len() int             { return len(p.lots) }
func (p *Pool) DecimalAccuracy() int { return p.decimalAccuracy }

func (p *Pool) maxDelta() Quantity { return MaxDelta(p.decimalAccuracy) }

// Quantity is the total quantity held, recomputed from the current lots on
// every call so it can never go stale after a mutation.
func (p *Pool) Quantity() Quantity {
	var total Quantity
	for _, lot := range p.lots {
		total = total.Add(lot.quantity)
	}
	return total
}

// CostBasis is the total cost basis of the current lots, recomputed on
// every call.
func (p *Pool) CostBasis() Money {
	var total Money
	for _, lot := range p.lots {
		total = total.Add(lot.costBasis)
	}
	return total
}

// Lots iterates over the pool's lots in FIFO order.
func (p *Pool) Lots() iter.Seq[*Lot] {
	return func(yield func(*Lot) bool) {
		for _, lot := range p.lots {
			if !yield(lot) {
				return
			}
		}
	}
}

// AddLot inserts a lot and restores the FIFO ordering invariant. The sort is
// stable, so lots purchased at the same instant keep their insertion order.
func (p *Pool) AddLot(lot *Lot) {
	p.lots = append(p.lots, lot)
	sort.SliceStable(p.lots, func(i, j int) bool {
		return p.lots[i].datePurchased.Before(p.lots[j].datePurchased)
	})
}

// RemoveLot removes and returns the first lot whose identifier matches, or
// nil if no lot carries that identifier.
func (p *Pool) RemoveLot(id string) *Lot {
	for i, lot := range p.lots {
		if lot.id == id {
			p.lots = slices.Delete(p.lots, i, i+1)
			return lot
		}
	}
	return nil
}

// Sell consumes the requested quantity from the pool's lots, oldest first,
// and returns the consumed lots in consumption order, each carrying the
// given disposal date. Their total quantity equals the request within
// tolerance.
//
// The request is validated against the pool's total quantity up front: an
// over-sized request returns an InsufficientBalanceError and leaves the
// pool untouched.
func (p *Pool) Sell(quantity Quantity, date Date) ([]*Lot, error) {
	maxDelta := p.maxDelta()

	if quantity.IsNegative() {
		return nil, fmt.Errorf("cannot sell a negative quantity (%s %s) from pool %q", quantity, p.asset, p.name)
	}
	if available := p.Quantity(); quantity.GreaterThan(available.Add(maxDelta)) {
		return nil, &InsufficientBalanceError{
			Pool:      p.name,
			Asset:     p.asset,
			Requested: quantity,
			Available: available,
			On:        date,
		}
	}

	var lotsSold []*Lot
	idx := 0
	for quantity.GreaterThan(maxDelta) {
		var sold *Lot
		quantity, sold = p.lots[idx].Sell(quantity, date, maxDelta)
		lotsSold = append(lotsSold, sold)
		if quantity.GreaterThan(maxDelta) {
			idx++ // only advance once this lot is depleted
		}
	}

	// Lots emptied by the walk leave the pool; the partially consumed head
	// (if any) stays, so FIFO order is preserved.
	p.lots = slices.DeleteFunc(p.lots, func(l *Lot) bool { return l.IsEmpty(maxDelta) })
	return lotsSold, nil
}

// Transfer relocates quantity from this pool into target on the given date.
//
// Fees model the network cost of the transfer: they are consumed from this
// pool first and leave circulation entirely (no lot is created anywhere for
// the fee amount). The full quantity is then consumed and its lots are
// re-parented into target with their disposal date cleared, since a
// relocation is not a taxable disposal. The source pool is therefore
// debited fees + quantity in total.
//
// Total quantity across both pools, net of fees, is checked before and
// after: a mismatch beyond tolerance returns a ConservationViolationError,
// which indicates a calculation bug rather than a bad input.
func (p *Pool) Transfer(quantity Quantity, target *Pool, date Date, fees Quantity) error {
	if target == nil {
		return ErrNilTarget
	}
	if target.asset != p.asset {
		return &TargetMismatchError{
			Source:      p.name,
			Target:      target.name,
			SourceAsset: p.asset,
			TargetAsset: target.asset,
		}
	}
	if fees.IsNegative() {
		return fmt.Errorf("transfer fees must be non-negative, got %s", fees)
	}

	maxDelta := p.maxDelta()
	needed := quantity.Add(fees)
	if available := p.Quantity(); needed.GreaterThan(available.Add(maxDelta)) {
		return &InsufficientBalanceError{
			Pool:      p.name,
			Asset:     p.asset,
			Requested: needed,
			Available: available,
			On:        date,
		}
	}

	checksumStart := p.Quantity().Add(target.Quantity())

	// Fees are discounted first, and their lots are discarded: the quantity
	// paid to the network is a disposal with no receiving side.
	if fees.GreaterThan(maxDelta) {
		if _, err := p.Sell(fees, date); err != nil {
			return err
		}
	}

	lots, err := p.Sell(quantity, date)
	if err != nil {
		return err
	}
	for _, lot := range lots {
		lot.resetDateSold()
		target.AddLot(lot)
	}

	// No quantity may be created or double-spent in the process. The fee
	// quantity left the two-pool system by design, everything else must be
	// accounted for.
	expected := checksumStart.Sub(fees)
	checksumEnd := p.Quantity().Add(target.Quantity())
	if checksumEnd.Sub(expected).Abs().GreaterThan(maxDelta) {
		return &ConservationViolationError{
			Source: p.name,
			Target: target.name,
			Before: expected,
			After:  checksumEnd,
			On:     date,
		}
	}
	return nil
}

// Receive is the reverse of Transfer, provided for convenience and clarity:
// it moves quantity from source into this pool.
func (p *Pool) Receive(quantity Quantity, source *Pool, date Date, fees Quantity) error {
	if source == nil {
		return ErrNilTarget
	}
	return source.Transfer(quantity, p, date, fees)
}

func (p *Pool) String() string {
	return fmt.Sprintf("< %s Pool (%s), quantity=%s, cost basis=%s >",
		strings.ToUpper(p.name), p.asset, p.Quantity(), p.CostBasis())
}
