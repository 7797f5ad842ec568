package cryptotax

import (
	"errors"
	"testing"
)

// newTestPool returns a BTC pool holding three lots purchased on successive
// days, 1 BTC each, at increasing prices.
func newTestPool() *Pool {
	p := NewPool("Coinbase", "btc")
	p.AddLot(NewLot(Q(1), USD(4500), day("2017-06-01")))
	p.AddLot(NewLot(Q(1), USD(6000), day("2017-07-01")))
	p.AddLot(NewLot(Q(1), USD(8000), day("2017-08-01")))
	return p
}

func TestPoolAggregates(t *testing.T) {
	p := newTestPool()

	if got, want := p.Quantity(), Q(3); !got.Equal(want) {
		t.Errorf("quantity = %s, want %s", got, want)
	}
	if got, want := p.CostBasis(), USD(18500); !got.Equal(want) {
		t.Errorf("cost basis = %s, want %s", got, want)
	}
	if got := p.Asset(); got != "BTC" {
		t.Errorf("asset = %q, want %q", got, "BTC")
	}
}

func TestPoolAddLotKeepsFIFOOrder(t *testing.T) {
	p := NewPool("Coinbase", "btc")
	// Insert out of order on purpose.
	p.AddLot(NewLot(Q(1), USD(8000), day("2017-08-01")))
	p.AddLot(NewLot(Q(1), USD(4500), day("2017-06-01")))
	p.AddLot(NewLot(Q(1), USD(6000), day("2017-07-01")))

	var dates []Date
	for lot := range p.Lots() {
		dates = append(dates, lot.DatePurchased())
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].Before(dates[i-1]) {
			t.Fatalf("lots out of order: %s before %s", dates[i], dates[i-1])
		}
	}
}

func TestPoolSellPartialOldestLot(t *testing.T) {
	p := newTestPool()

	sold, err := p.Sell(Q(0.5), day("2018-01-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sold) != 1 {
		t.Fatalf("sold %d lots, want 1", len(sold))
	}
	if got, want := sold[0].CostBasis(), USD(2250); !got.Equal(want) {
		t.Errorf("sold cost basis = %s, want %s", got, want)
	}
	if got, want := sold[0].DatePurchased(), day("2017-06-01"); !got.Equal(want) {
		t.Errorf("consumed the wrong lot: purchased %s, want %s", got, want)
	}
	if got, want := p.Quantity(), Q(2.5); !got.Equal(want) {
		t.Errorf("pool quantity = %s, want %s", got, want)
	}
	if got, want := p.CostBasis(), USD(16250); !got.Equal(want) {
		t.Errorf("pool cost basis = %s, want %s", got, want)
	}
}

func TestPoolSellSpansLots(t *testing.T) {
	p := newTestPool()

	sold, err := p.Sell(Q(1.5), day("2018-01-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sold) != 2 {
		t.Fatalf("sold %d lots, want 2", len(sold))
	}
	// First the entire oldest lot, then half of the second.
	if got, want := sold[0].Quantity(), Q(1); !got.Equal(want) {
		t.Errorf("first sold lot quantity = %s, want %s", got, want)
	}
	if got, want := sold[0].CostBasis(), USD(4500); !got.Equal(want) {
		t.Errorf("first sold lot basis = %s, want %s", got, want)
	}
	if got, want := sold[1].Quantity(), Q(0.5); !got.Equal(want) {
		t.Errorf("second sold lot quantity = %s, want %s", got, want)
	}
	if got, want := sold[1].CostBasis(), USD(3000); !got.Equal(want) {
		t.Errorf("second sold lot basis = %s, want %s", got, want)
	}
	if got, want := p.Len(), 2; got != want {
		t.Errorf("pool has %d lots, want %d (depleted lot pruned)", got, want)
	}
	if got, want := p.Quantity(), Q(1.5); !got.Equal(want) {
		t.Errorf("pool quantity = %s, want %s", got, want)
	}
}

func TestPoolSellEverything(t *testing.T) {
	p := newTestPool()

	sold, err := p.Sell(Q(3), day("2018-01-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sold) != 3 {
		t.Fatalf("sold %d lots, want 3", len(sold))
	}
	if p.Len() != 0 {
		t.Errorf("pool has %d lots, want 0", p.Len())
	}
	if !p.Quantity().IsZero() {
		t.Errorf("pool quantity = %s, want 0", p.Quantity())
	}
}

func TestPoolSellInsufficientBalance(t *testing.T) {
	p := newTestPool()

	_, err := p.Sell(Q(5), day("2018-01-01"))

	var insufficient *InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want InsufficientBalanceError", err)
	}
	if !insufficient.Requested.Equal(Q(5)) || !insufficient.Available.Equal(Q(3)) {
		t.Errorf("error detail = %v, want requested 5 available 3", insufficient)
	}
	// The pool must be left untouched.
	if got, want := p.Quantity(), Q(3); !got.Equal(want) {
		t.Errorf("pool quantity = %s, want %s", got, want)
	}
	if got, want := p.Len(), 3; got != want {
		t.Errorf("pool has %d lots, want %d", got, want)
	}
}

func TestPoolSellNegative(t *testing.T) {
	p := newTestPool()
	if _, err := p.Sell(Q(-1), day("2018-01-01")); err == nil {
		t.Error("selling a negative quantity should fail")
	}
}

func TestPoolSellWithinTolerance(t *testing.T) {
	// Selling a hair more than the balance is allowed within tolerance.
	p := NewPool("Coinbase", "btc")
	p.AddLot(NewLot(Q(1), USD(4500), day("2017-06-01")))

	sold, err := p.Sell(Q(1).Add(MaxDelta(10)), day("2018-01-01"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sold) != 1 {
		t.Fatalf("sold %d lots, want 1", len(sold))
	}
	if p.Len() != 0 {
		t.Errorf("pool has %d lots, want 0", p.Len())
	}
}

func TestPoolRemoveLot(t *testing.T) {
	p := NewPool("Coinbase", "btc")
	lot := NewLot(Q(1), USD(4500), day("2017-06-01"))
	if err := lot.AssignID("lot-1"); err != nil {
		t.Fatal(err)
	}
	p.AddLot(lot)

	if got := p.RemoveLot("unknown"); got != nil {
		t.Errorf("removing an unknown id returned %v, want nil", got)
	}
	if got := p.RemoveLot("lot-1"); got != lot {
		t.Errorf("removing lot-1 returned %v, want the lot", got)
	}
	if p.Len() != 0 {
		t.Errorf("pool has %d lots, want 0", p.Len())
	}
}

func TestPoolTransfer(t *testing.T) {
	source := newTestPool()
	target := NewPool("Trezor", "btc")

	if err := source.Transfer(Q(1.5), target, day("2018-01-01"), Q(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := source.Quantity(), Q(1.5); !got.Equal(want) {
		t.Errorf("source quantity = %s, want %s", got, want)
	}
	if got, want := target.Quantity(), Q(1.5); !got.Equal(want) {
		t.Errorf("target quantity = %s, want %s", got, want)
	}
	// Cost basis travels with the lots.
	if got, want := target.CostBasis(), USD(7500); !got.Equal(want) {
		t.Errorf("target cost basis = %s, want %s", got, want)
	}
	// Relocated lots keep their purchase date and are not disposals.
	for lot := range target.Lots() {
		if _, ok := lot.DateSold(); ok {
			t.Errorf("relocated lot %s carries a disposal date", lot)
		}
	}
}

func TestPoolTransferWithFees(t *testing.T) {
	source := newTestPool()
	target := NewPool("Trezor", "btc")

	if err := source.Transfer(Q(1), target, day("2018-01-01"), Q(0.001)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The source is debited the fee plus the full quantity; the fee leaves
	// circulation entirely.
	if got, want := source.Quantity(), Q(1.999); !got.Equal(want) {
		t.Errorf("source quantity = %s, want %s", got, want)
	}
	if got, want := target.Quantity(), Q(1); !got.Equal(want) {
		t.Errorf("target quantity = %s, want %s", got, want)
	}
}

func TestPoolTransferInsufficientBalance(t *testing.T) {
	source := newTestPool()
	target := NewPool("Trezor", "btc")

	err := source.Transfer(Q(3), target, day("2018-01-01"), Q(0.001))

	var insufficient *InsufficientBalanceError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want InsufficientBalanceError", err)
	}
	if got, want := source.Quantity(), Q(3); !got.Equal(want) {
		t.Errorf("source quantity = %s, want %s (untouched)", got, want)
	}
	if target.Len() != 0 {
		t.Errorf("target has %d lots, want 0", target.Len())
	}
}

func TestPoolTransferNilTarget(t *testing.T) {
	source := newTestPool()
	if err := source.Transfer(Q(1), nil, day("2018-01-01"), Q(0)); !errors.Is(err, ErrNilTarget) {
		t.Errorf("error = %v, want ErrNilTarget", err)
	}
}

func TestPoolTransferAssetMismatch(t *testing.T) {
	source := newTestPool()
	target := NewPool("Kraken", "eth")

	err := source.Transfer(Q(1), target, day("2018-01-01"), Q(0))

	var mismatch *TargetMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want TargetMismatchError", err)
	}
}

func TestPoolTransferNegativeFees(t *testing.T) {
	source := newTestPool()
	target := NewPool("Trezor", "btc")
	if err := source.Transfer(Q(1), target, day("2018-01-01"), Q(-0.001)); err == nil {
		t.Error("negative fees should fail")
	}
}

func TestPoolReceive(t *testing.T) {
	source := newTestPool()
	target := NewPool("Trezor", "btc")

	if err := target.Receive(Q(1), source, day("2018-01-01"), Q(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := target.Quantity(), Q(1); !got.Equal(want) {
		t.Errorf("target quantity = %s, want %s", got, want)
	}
	if err := target.Receive(Q(1), nil, day("2018-01-01"), Q(0)); !errors.Is(err, ErrNilTarget) {
		t.Errorf("error = %v, want ErrNilTarget", err)
	}
}

func TestPoolQuantityConservation(t *testing.T) {
	// A chain of transfers and partial sales must keep the overall quantity
	// consistent, net of fees.
	a := NewPool("Coinbase", "btc")
	b := NewPool("Trezor", "btc")
	c := NewPool("Ledger", "btc")
	a.AddLot(NewLot(Q(2), USD(20000), day("2020-01-01")))

	if err := a.Transfer(Q(1.2), b, day("2020-02-01"), Q(0.0001)); err != nil {
		t.Fatal(err)
	}
	if err := b.Transfer(Q(0.7), c, day("2020-03-01"), Q(0.0002)); err != nil {
		t.Fatal(err)
	}

	total := a.Quantity().Add(b.Quantity()).Add(c.Quantity())
	want := Q(2).Sub(Q(0.0001)).Sub(Q(0.0002))
	if total.Sub(want).Abs().GreaterThan(testDelta) {
		t.Errorf("total quantity = %s, want %s", total, want)
	}
}
