package cryptotax

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TxType is a typed string for identifying transaction events.
type TxType string

// Transaction types recorded in the ledger.
const (
	TxBuy      TxType = "buy"
	TxSell     TxType = "sell"
	TxTransfer TxType = "transfer"
	TxIncome   TxType = "income"
)

func txTypeList() string {
	return strings.Join([]string{string(TxBuy), string(TxSell), string(TxTransfer), string(TxIncome)}, ", ")
}

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(strings.ToLower(s)); t {
	case TxBuy, TxSell, TxTransfer, TxIncome:
		return t, nil
	default:
		return "", &InvalidTransactionTypeError{Type: s}
	}
}

// Transaction defines the common interface for all types of events that can
// be recorded in the ledger.
type Transaction interface {
	What() TxType // What returns the type of the transaction (e.g., "buy", "sell").
	When() Date   // When returns the date on which the transaction occurred.
	Validate() error
}

type baseEvent struct {
	Type TxType `json:"type"`           // Type specifies the kind of transaction (e.g., "buy", "sell").
	Date Date   `json:"date"`           // Date is the date when the transaction took place.
	Memo string `json:"memo,omitempty"` // Memo provides an optional note for the transaction.
}

// What returns the type of the transaction.
func (t baseEvent) What() TxType { return t.Type }

// When returns the date of the transaction.
func (t baseEvent) When() Date { return t.Date }

// Rationale returns the memo associated with the transaction.
func (t baseEvent) Rationale() string { return t.Memo }

// MarshalJSON implements the json.Marshaler interface for baseEvent.
func (t baseEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("type", t.Type)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

func (t baseEvent) validate() error {
	if _, err := ParseTxType(string(t.Type)); err != nil {
		return err
	}
	if t.Date.IsZero() {
		return errors.New("transaction date is missing")
	}
	return nil
}

// assetEvent is a component for single-asset transactions.
type assetEvent struct {
	baseEvent
	Asset    string   `json:"asset"`    // Asset is the ticker of the asset involved.
	Quantity Quantity `json:"quantity"` // Quantity is the amount of asset involved.
}

func (t assetEvent) validate() error {
	if err := t.baseEvent.validate(); err != nil {
		return err
	}
	if t.Asset == "" {
		return errors.New("asset ticker is missing")
	}
	if t.Quantity.IsNegative() || t.Quantity.IsZero() {
		return fmt.Errorf("%s transaction quantity must be positive, got %s", t.Type, t.Quantity)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for assetEvent.
func (t assetEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseEvent)
	w.Append("asset", t.Asset)
	w.Append("quantity", t.Quantity)
	return w.MarshalJSON()
}

// Buy records the acquisition of a quantity of an asset for a cost basis in
// the reporting currency.
type Buy struct {
	assetEvent
	CostBasis Money // CostBasis is the total amount paid for the quantity.
}

// NewBuy creates a new Buy transaction. Negative quantity or cost basis are
// recorded as their absolute value.
func NewBuy(day Date, memo, asset string, quantity Quantity, costBasis Money) Buy {
	return Buy{
		assetEvent: newAssetEvent(TxBuy, day, memo, asset, quantity),
		CostBasis:  costBasis.Abs(),
	}
}

func newAssetEvent(t TxType, day Date, memo, asset string, quantity Quantity) assetEvent {
	return assetEvent{
		baseEvent: baseEvent{Type: t, Date: day, Memo: memo},
		Asset:     strings.ToUpper(asset),
		Quantity:  quantity.Abs(),
	}
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetEvent)
	w.EmbedFrom(t.CostBasis)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetEvent
		amountAttr
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetEvent = temp.assetEvent
	t.CostBasis = temp.Money()
	return nil
}

// Validate checks the Buy transaction's fields.
func (t Buy) Validate() error {
	if err := t.assetEvent.validate(); err != nil {
		return err
	}
	if t.CostBasis.IsNegative() {
		return fmt.Errorf("buy transaction cost basis must be non-negative, got %s", t.CostBasis)
	}
	return nil
}

// Sell records the disposal of a quantity of an asset for proceeds in the
// reporting currency. A network or exchange fee paid in kind is also a Sell,
// with the lost market value as negative proceeds (see NewFee).
type Sell struct {
	assetEvent
	Proceeds Money // Proceeds is the total amount received for the quantity.
}

// NewSell creates a new Sell transaction.
func NewSell(day Date, memo, asset string, quantity Quantity, proceeds Money) Sell {
	return Sell{
		assetEvent: newAssetEvent(TxSell, day, memo, asset, quantity),
		Proceeds:   proceeds,
	}
}

// NewFee creates a Sell recording an amount paid as a fee: the quantity
// leaves the holdings and the market value lost is carried as negative
// proceeds.
func NewFee(day Date, memo, asset string, quantity Quantity, marketValue Money) Sell {
	return NewSell(day, memo, asset, quantity, marketValue.Abs().Neg())
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetEvent)
	w.EmbedFrom(t.Proceeds)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetEvent
		amountAttr
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetEvent = temp.assetEvent
	t.Proceeds = temp.Money()
	return nil
}

// Validate checks the Sell transaction's fields.
func (t Sell) Validate() error {
	return t.assetEvent.validate()
}

// Transfer records the relocation of a quantity of an asset between two
// pools. It is not a taxable disposal; fees are the network cost paid in
// kind for the relocation.
type Transfer struct {
	assetEvent
	SourcePool  string   `json:"from"` // SourcePool names the pool the quantity leaves.
	TargetPool  string   `json:"to"`   // TargetPool names the pool the quantity enters.
	NetworkFees Quantity `json:"fees"` // NetworkFees is the in-kind fee paid for the transfer.
}

// NewTransfer creates a new Transfer transaction.
func NewTransfer(day Date, memo, asset string, quantity Quantity, sourcePool, targetPool string, networkFees Quantity) Transfer {
	return Transfer{
		assetEvent:  newAssetEvent(TxTransfer, day, memo, asset, quantity),
		SourcePool:  sourcePool,
		TargetPool:  targetPool,
		NetworkFees: networkFees.Abs(),
	}
}

// Received returns the quantity arriving at the target pool.
func (t Transfer) Received() Quantity { return t.Quantity.Sub(t.NetworkFees) }

// MarshalJSON implements the json.Marshaler interface for Transfer.
func (t Transfer) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetEvent)
	w.Append("from", t.SourcePool)
	w.Append("to", t.TargetPool)
	w.Optional("fees", t.NetworkFees)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transfer.
func (t *Transfer) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetEvent
		SourcePool  string   `json:"from"`
		TargetPool  string   `json:"to"`
		NetworkFees Quantity `json:"fees"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetEvent = temp.assetEvent
	t.SourcePool = temp.SourcePool
	t.TargetPool = temp.TargetPool
	t.NetworkFees = temp.NetworkFees
	return nil
}

// Validate checks the Transfer transaction's fields.
func (t Transfer) Validate() error {
	if err := t.assetEvent.validate(); err != nil {
		return err
	}
	if t.SourcePool == "" || t.TargetPool == "" {
		return errors.New("transfer requires both a source and a target pool")
	}
	if t.NetworkFees.IsNegative() {
		return fmt.Errorf("transfer fees must be non-negative, got %s", t.NetworkFees)
	}
	return nil
}

// Income records asset received as regular income: mining, staking rewards,
// or earn programs. The market value at receipt becomes the cost basis of
// the resulting lot.
type Income struct {
	assetEvent
	MarketValue Money // MarketValue is the value of the quantity at receipt.
	Expenses    Money // Expenses are deductible costs incurred to earn it.
}

// NewIncome creates a new Income transaction.
func NewIncome(day Date, memo, asset string, quantity Quantity, marketValue, expenses Money) Income {
	return Income{
		assetEvent:  newAssetEvent(TxIncome, day, memo, asset, quantity),
		MarketValue: marketValue.Abs(),
		Expenses:    expenses.Abs(),
	}
}

// ReportableIncome returns the market value net of expenses.
func (t Income) ReportableIncome() Money { return t.MarketValue.Sub(t.Expenses) }

// MarshalJSON implements the json.Marshaler interface for Income.
func (t Income) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetEvent)
	w.EmbedFrom(t.MarketValue)
	w.Optional("expenses", t.Expenses.value)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Income.
func (t *Income) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetEvent
		amountAttr
		Expenses decimal.Decimal `json:"expenses"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetEvent = temp.assetEvent
	t.MarketValue = temp.Money()
	t.Expenses = M(temp.Expenses, temp.Currency)
	return nil
}

// Validate checks the Income transaction's fields.
func (t Income) Validate() error {
	if err := t.assetEvent.validate(); err != nil {
		return err
	}
	if t.MarketValue.IsNegative() || t.Expenses.IsNegative() {
		return errors.New("income market value and expenses must be non-negative")
	}
	return nil
}

// NewEarn decomposes an earn-style reward (mining, staking, Coinbase Earn)
// into the pair of events it implies: the income itself, and the
// acquisition of the rewarded quantity at its market value.
func NewEarn(day Date, memo, asset string, quantity Quantity, marketValue, expenses Money) []Transaction {
	return []Transaction{
		NewIncome(day, memo, asset, quantity, marketValue, expenses),
		NewBuy(day, memo, asset, quantity, marketValue),
	}
}

// NewConvert decomposes a crypto-to-crypto trade into the pair of events it
// implies for cost-basis purposes: a disposal of the source asset at the
// trade's market value, and an acquisition of the destination asset with
// that value as cost basis. A fee paid in the source asset should be folded
// into fromQuantity by the caller.
func NewConvert(day Date, memo, fromAsset string, fromQuantity Quantity, toAsset string, toQuantity Quantity, proceeds Money) []Transaction {
	return []Transaction{
		NewSell(day, memo, fromAsset, fromQuantity, proceeds),
		NewBuy(day, memo, toAsset, toQuantity, proceeds),
	}
}
