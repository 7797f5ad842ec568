package cryptotax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultDecimalAccuracy is the number of decimal digits taken into account
// for quantity comparisons. 8 digits covers the satoshi granularity of most
// crypto assets.
const DefaultDecimalAccuracy = 8

// MaxDelta returns the tolerance below which a quantity difference is
// treated as zero, for a given number of decimal digits.
// An accuracy of 8 yields 0.00000001.
func MaxDelta(decimalAccuracy int) Quantity {
	return Quantity{value: decimal.New(1, int32(-decimalAccuracy))}
}

// Lot is a quantity of an asset acquired at a specific time and cost,
// tracked independently for cost-basis purposes.
//
// A lot is owned by exactly one pool at a time. Selling splits it into a
// consumed slice and a remaining slice, keeping the cost basis proportional
// to the quantity on both sides.
type Lot struct {
	quantity      Quantity
	costBasis     Money
	datePurchased Date
	dateSold      Date // set only on lots produced by a disposal
	id            string
}

// NewLot creates a lot acquired on a given date. Negative quantity or cost
// basis are recorded as their absolute value.
func NewLot(quantity Quantity, costBasis Money, purchased Date) *Lot {
	return &Lot{
		quantity:      quantity.Abs(),
		costBasis:     costBasis.Abs(),
		datePurchased: purchased,
	}
}

func (l *Lot) Quantity() Quantity  { return l.quantity }
func (l *Lot) CostBasis() Money    { return l.costBasis }
func (l *Lot) DatePurchased() Date { return l.datePurchased }

// DateSold returns the disposal date and true, or a zero date and false for
// lots still held.
func (l *Lot) DateSold() (Date, bool) { return l.dateSold, !l.dateSold.IsZero() }

// ID returns the externally assigned identifier, or "" if none was assigned.
func (l *Lot) ID() string { return l.id }

// AssignID sets the lot identifier. The identifier is settable once.
func (l *Lot) AssignID(id string) error {
	if l.id != "" {
		return fmt.Errorf("lot already has id %q, cannot assign %q", l.id, id)
	}
	l.id = id
	return nil
}

// UnitCost returns the implied cost per unit. It is undefined (and returns
// the zero Money) when the lot quantity is zero.
func (l *Lot) UnitCost() Money {
	if l.quantity.IsZero() {
		return Money{cur: l.costBasis.cur}
	}
	return l.costBasis.Div(l.quantity)
}

// IsEmpty returns true when the lot quantity is zero within tolerance.
func (l *Lot) IsEmpty(maxDelta Quantity) bool { return l.quantity.LessThanOrEqual(maxDelta) }

// Sell consumes up to the requested quantity from this lot on the given date.
//
// When the lot holds more than requested (beyond maxDelta), it keeps the
// remaining quantity with the cost basis fraction proportional to it, and a
// new lot representing the consumed slice is returned with the rest of the
// basis, the original purchase date, and dateSold set. The returned
// remainder is zero.
//
// Otherwise the lot's entire remaining content is consumed: the returned lot
// is a fresh record carrying the old values plus dateSold, this lot is
// zeroed in place, and the returned remainder is the quantity still owed by
// subsequent lots.
//
// The two post-split cost bases always sum exactly to the pre-split basis.
// A negative request consumes nothing: the lot is left untouched and no
// consumed lot is returned.
func (l *Lot) Sell(requested Quantity, date Date, maxDelta Quantity) (Quantity, *Lot) {
	if requested.IsNegative() {
		return Q(0), nil
	}
	diff := l.quantity.Sub(requested)
	if diff.GreaterThan(maxDelta) {
		// Partial sale: the basis staying behind is proportional to the
		// quantity staying behind.
		updatedCostBasis := l.costBasis.Mul(diff).Div(l.quantity)
		sold := &Lot{
			quantity:      requested,
			costBasis:     l.costBasis.Sub(updatedCostBasis),
			datePurchased: l.datePurchased,
			dateSold:      date,
		}
		l.quantity = diff
		l.costBasis = updatedCostBasis
		return Q(0), sold
	}

	// Full consumption, possibly under-filling the request.
	sold := &Lot{
		quantity:      l.quantity,
		costBasis:     l.costBasis,
		datePurchased: l.datePurchased,
		dateSold:      date,
		id:            l.id,
	}
	l.quantity = Q(0)
	l.costBasis = M(0, l.costBasis.cur)
	return diff.Abs(), sold
}

// SellAll consumes the lot entirely.
func (l *Lot) SellAll(date Date, maxDelta Quantity) (Quantity, *Lot) {
	return l.Sell(l.quantity, date, maxDelta)
}

// resetDateSold clears the disposal date on a lot that was consumed for a
// relocation rather than a real disposal.
func (l *Lot) resetDateSold() { l.dateSold = Date{} }

func (l *Lot) String() string {
	return fmt.Sprintf("< Lot id=%s quantity=%s basis=%s purchased=%s >",
		l.id, l.quantity, l.costBasis, l.datePurchased)
}
