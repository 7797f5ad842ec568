package cryptotax

import (
	"testing"
)

func TestParseTxType(t *testing.T) {
	for _, s := range []string{"buy", "SELL", "Transfer", "income"} {
		if _, err := ParseTxType(s); err != nil {
			t.Errorf("ParseTxType(%q): unexpected error %v", s, err)
		}
	}
	if _, err := ParseTxType("dividend"); err == nil {
		t.Error("ParseTxType should reject unknown types")
	}
}

func TestNewBuy(t *testing.T) {
	tx := NewBuy(day("2024-03-01"), "dca", "btc", Q(-0.5), USD(-21000))

	if tx.What() != TxBuy {
		t.Errorf("type = %s, want %s", tx.What(), TxBuy)
	}
	if tx.Asset != "BTC" {
		t.Errorf("asset = %q, want upper-cased ticker", tx.Asset)
	}
	// Negative inputs are recorded as absolute values.
	if !tx.Quantity.Equal(Q(0.5)) || !tx.CostBasis.Equal(USD(21000)) {
		t.Errorf("quantity=%s basis=%s, want absolute values", tx.Quantity, tx.CostBasis)
	}
	if err := tx.Validate(); err != nil {
		t.Errorf("valid buy rejected: %v", err)
	}
}

func TestNewFee(t *testing.T) {
	tx := NewFee(day("2024-03-01"), "", "btc", Q(0.0005), USD(30))

	if tx.What() != TxSell {
		t.Errorf("a fee is a sell, got %s", tx.What())
	}
	if !tx.Proceeds.Equal(USD(-30)) {
		t.Errorf("proceeds = %s, want -30 (lost market value)", tx.Proceeds)
	}
	if err := tx.Validate(); err != nil {
		t.Errorf("valid fee rejected: %v", err)
	}
}

func TestTransferReceived(t *testing.T) {
	tx := NewTransfer(day("2024-05-01"), "", "btc", Q(0.3), "Coinbase", "Trezor", Q(0.0002))
	if got, want := tx.Received(), Q(0.2998); !got.Equal(want) {
		t.Errorf("received = %s, want %s", got, want)
	}
}

func TestIncomeReportable(t *testing.T) {
	tx := NewIncome(day("2024-06-01"), "", "eth", Q(0.1), USD(350), USD(20))
	if got, want := tx.ReportableIncome(), USD(330); !got.Equal(want) {
		t.Errorf("reportable income = %s, want %s", got, want)
	}
}

func TestNewEarnPair(t *testing.T) {
	txs := NewEarn(day("2024-06-01"), "staking", "eth", Q(0.1), USD(350), USD(0))

	if len(txs) != 2 {
		t.Fatalf("NewEarn produced %d events, want 2", len(txs))
	}
	income, ok := txs[0].(Income)
	if !ok {
		t.Fatalf("first event is %T, want Income", txs[0])
	}
	buy, ok := txs[1].(Buy)
	if !ok {
		t.Fatalf("second event is %T, want Buy", txs[1])
	}
	// The implied acquisition carries the market value as cost basis.
	if !buy.CostBasis.Equal(income.MarketValue) {
		t.Errorf("buy basis %s != income market value %s", buy.CostBasis, income.MarketValue)
	}
	if !buy.Quantity.Equal(income.Quantity) {
		t.Errorf("buy quantity %s != income quantity %s", buy.Quantity, income.Quantity)
	}
}

func TestNewConvertPair(t *testing.T) {
	txs := NewConvert(day("2024-07-01"), "", "btc", Q(0.1), "eth", Q(1.8), USD(6300))

	if len(txs) != 2 {
		t.Fatalf("NewConvert produced %d events, want 2", len(txs))
	}
	sell, ok := txs[0].(Sell)
	if !ok {
		t.Fatalf("first event is %T, want Sell", txs[0])
	}
	buy, ok := txs[1].(Buy)
	if !ok {
		t.Fatalf("second event is %T, want Buy", txs[1])
	}
	if sell.Asset != "BTC" || buy.Asset != "ETH" {
		t.Errorf("assets = %s -> %s, want BTC -> ETH", sell.Asset, buy.Asset)
	}
	if !sell.Proceeds.Equal(buy.CostBasis) {
		t.Errorf("sell proceeds %s != buy basis %s", sell.Proceeds, buy.CostBasis)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		tx   Transaction
	}{
		{"zero quantity", NewBuy(day("2024-01-01"), "", "btc", Q(0), USD(100))},
		{"missing asset", NewBuy(day("2024-01-01"), "", "", Q(1), USD(100))},
		{"missing date", NewBuy(Date{}, "", "btc", Q(1), USD(100))},
		{"missing pools", Transfer{assetEvent: newAssetEvent(TxTransfer, day("2024-01-01"), "", "btc", Q(1))}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.tx.Validate(); err == nil {
				t.Errorf("Validate accepted %v", c.tx)
			}
		})
	}
}
