package cryptotax

import (
	"testing"
)

var testDelta = MaxDelta(DefaultDecimalAccuracy)

func TestLotPartialSell(t *testing.T) {
	lot := NewLot(Q(1.0), USD(4500), day("2017-06-01"))

	remainder, sold := lot.Sell(Q(0.5), day("2017-12-01"), testDelta)

	if !remainder.IsZero() {
		t.Errorf("remainder = %s, want 0", remainder)
	}
	if got, want := sold.Quantity(), Q(0.5); !got.Equal(want) {
		t.Errorf("sold quantity = %s, want %s", got, want)
	}
	if got, want := sold.CostBasis(), USD(2250); !got.Equal(want) {
		t.Errorf("sold cost basis = %s, want %s", got, want)
	}
	if got, want := lot.Quantity(), Q(0.5); !got.Equal(want) {
		t.Errorf("remaining quantity = %s, want %s", got, want)
	}
	if got, want := lot.CostBasis(), USD(2250); !got.Equal(want) {
		t.Errorf("remaining cost basis = %s, want %s", got, want)
	}
	if got, want := sold.DatePurchased(), day("2017-06-01"); !got.Equal(want) {
		t.Errorf("sold purchase date = %s, want %s", got, want)
	}
	if when, ok := sold.DateSold(); !ok || !when.Equal(day("2017-12-01")) {
		t.Errorf("sold disposal date = %s (%v), want 2017-12-01", when, ok)
	}
	if _, ok := lot.DateSold(); ok {
		t.Error("remaining lot must not carry a disposal date")
	}
}

func TestLotFullSell(t *testing.T) {
	lot := NewLot(Q(0.25), USD(1000), day("2020-01-15"))

	remainder, sold := lot.Sell(Q(0.75), day("2021-01-15"), testDelta)

	if got, want := remainder, Q(0.5); !got.Equal(want) {
		t.Errorf("remainder = %s, want %s", got, want)
	}
	if got, want := sold.Quantity(), Q(0.25); !got.Equal(want) {
		t.Errorf("sold quantity = %s, want %s", got, want)
	}
	if got, want := sold.CostBasis(), USD(1000); !got.Equal(want) {
		t.Errorf("sold cost basis = %s, want %s", got, want)
	}
	if !lot.IsEmpty(testDelta) {
		t.Errorf("lot should be empty after full consumption, has %s", lot.Quantity())
	}
	if !lot.CostBasis().IsZero() {
		t.Errorf("emptied lot cost basis = %s, want 0", lot.CostBasis())
	}
}

func TestLotSellWithinTolerance(t *testing.T) {
	// A request within maxDelta of the lot content consumes it entirely
	// instead of leaving a dust lot behind.
	lot := NewLot(Q(1.0), USD(4500), day("2017-06-01"))

	remainder, sold := lot.Sell(Q(1.0).Sub(MaxDelta(10)), day("2017-12-01"), testDelta)

	if remainder.GreaterThan(testDelta) {
		t.Errorf("remainder = %s, want within tolerance", remainder)
	}
	if got, want := sold.Quantity(), Q(1.0); !got.Equal(want) {
		t.Errorf("sold quantity = %s, want %s", got, want)
	}
	if !lot.IsEmpty(testDelta) {
		t.Error("lot should be empty after a within-tolerance sale")
	}
}

func TestLotBasisConservation(t *testing.T) {
	// Repeated splits must never create or destroy basis.
	lot := NewLot(Q(3), USD(1000), day("2019-03-03"))

	var totalBasis Money
	for _, q := range []float64{0.1, 0.7, 1.3} {
		_, sold := lot.Sell(Q(q), day("2020-03-03"), testDelta)
		totalBasis = totalBasis.Add(sold.CostBasis())
	}
	totalBasis = totalBasis.Add(lot.CostBasis())

	if !totalBasis.Equal(USD(1000)) {
		t.Errorf("total basis after splits = %s, want %s", totalBasis, USD(1000))
	}
}

func TestLotSellAll(t *testing.T) {
	lot := NewLot(Q(2), USD(600), day("2022-02-02"))

	remainder, sold := lot.SellAll(day("2022-08-08"), testDelta)

	if !remainder.IsZero() {
		t.Errorf("remainder = %s, want 0", remainder)
	}
	if got, want := sold.Quantity(), Q(2); !got.Equal(want) {
		t.Errorf("sold quantity = %s, want %s", got, want)
	}
	if !lot.IsEmpty(testDelta) {
		t.Error("lot should be empty after SellAll")
	}
}

func TestLotSellNegativeRequest(t *testing.T) {
	// A negative request must not grow the lot or mint a negative-quantity
	// consumed lot.
	lot := NewLot(Q(1), USD(4500), day("2017-06-01"))

	remainder, sold := lot.Sell(Q(-0.5), day("2017-12-01"), testDelta)

	if sold != nil {
		t.Errorf("sold = %s, want nil", sold)
	}
	if !remainder.IsZero() {
		t.Errorf("remainder = %s, want 0", remainder)
	}
	if got, want := lot.Quantity(), Q(1); !got.Equal(want) {
		t.Errorf("quantity = %s, want %s", got, want)
	}
	if got, want := lot.CostBasis(), USD(4500); !got.Equal(want) {
		t.Errorf("cost basis = %s, want %s", got, want)
	}
}

func TestLotNegativeInputsAreAbsolute(t *testing.T) {
	lot := NewLot(Q(-1.5), USD(-300), day("2023-01-01"))

	if got, want := lot.Quantity(), Q(1.5); !got.Equal(want) {
		t.Errorf("quantity = %s, want %s", got, want)
	}
	if got, want := lot.CostBasis(), USD(300); !got.Equal(want) {
		t.Errorf("cost basis = %s, want %s", got, want)
	}
}

func TestLotAssignID(t *testing.T) {
	lot := NewLot(Q(1), USD(100), day("2023-01-01"))

	if err := lot.AssignID("lot-1"); err != nil {
		t.Fatalf("first AssignID failed: %v", err)
	}
	if err := lot.AssignID("lot-2"); err == nil {
		t.Error("second AssignID should fail")
	}
	if got := lot.ID(); got != "lot-1" {
		t.Errorf("id = %q, want %q", got, "lot-1")
	}
}

func TestLotUnitCost(t *testing.T) {
	lot := NewLot(Q(4), USD(1000), day("2023-01-01"))
	if got, want := lot.UnitCost(), USD(250); !got.Equal(want) {
		t.Errorf("unit cost = %s, want %s", got, want)
	}

	empty := NewLot(Q(0), USD(0), day("2023-01-01"))
	if got := empty.UnitCost(); !got.IsZero() {
		t.Errorf("unit cost of empty lot = %s, want 0", got)
	}
}

func TestMaxDelta(t *testing.T) {
	if got, want := MaxDelta(8), Q(0.00000001); !got.Equal(want) {
		t.Errorf("MaxDelta(8) = %s, want %s", got, want)
	}
	if got, want := MaxDelta(2), Q(0.01); !got.Equal(want) {
		t.Errorf("MaxDelta(2) = %s, want %s", got, want)
	}
}
