package cryptotax

// Disposal is the reporting record produced when a sell consumes a lot: the
// quantity disposed of, the proceeds attributed to it, the cost basis it
// carried, and the dates bounding the holding period. This is the data a
// tax layer needs to compute realized gain or loss per disposal.
type Disposal struct {
	Asset         string
	Quantity      Quantity
	Proceeds      Money
	CostBasis     Money
	DatePurchased Date
	DateSold      Date
}

// Gain returns the realized gain (or loss, when negative) of the disposal.
func (d Disposal) Gain() Money { return d.Proceeds.Sub(d.CostBasis) }

// LongTerm reports whether the disposal closed a holding period longer than
// one year.
func (d Disposal) LongTerm() bool {
	return d.DateSold.After(d.DatePurchased.AddDate(1, 0, 0))
}

// apportion distributes the proceeds of a sale across the lots it consumed,
// pro rata by quantity. The last lot takes the exact remainder so the
// disposal proceeds always sum back to the sale proceeds.
func apportion(asset string, lots []*Lot, proceeds Money) []Disposal {
	if len(lots) == 0 {
		return nil
	}

	var total Quantity
	for _, lot := range lots {
		total = total.Add(lot.quantity)
	}

	disposals := make([]Disposal, 0, len(lots))
	remaining := proceeds
	for i, lot := range lots {
		var share Money
		if i == len(lots)-1 {
			share = remaining
		} else {
			share = proceeds.Mul(lot.quantity).Div(total)
			remaining = remaining.Sub(share)
		}
		sold, _ := lot.DateSold()
		disposals = append(disposals, Disposal{
			Asset:         asset,
			Quantity:      lot.quantity,
			Proceeds:      share,
			CostBasis:     lot.costBasis,
			DatePurchased: lot.datePurchased,
			DateSold:      sold,
		})
	}
	return disposals
}

// GainsReport contains the results of a realized gains calculation over a
// reporting period.
type GainsReport struct {
	From, To  Date
	Disposals []Disposal

	Proceeds  Money
	CostBasis Money
	Gain      Money
	ShortTerm Money // realized gain on holdings kept one year or less
	LongTerm  Money // realized gain on holdings kept more than one year
	Income    Money // reportable income, filled in by the caller from the ledger
}

// NewGainsReport filters disposals to those sold within [from, to] and
// totals their proceeds, basis, and short/long-term gains.
func NewGainsReport(disposals []Disposal, from, to Date) *GainsReport {
	report := &GainsReport{From: from, To: to}
	for _, d := range disposals {
		if d.DateSold.Before(from) || d.DateSold.After(to) {
			continue
		}
		report.Disposals = append(report.Disposals, d)
		report.Proceeds = report.Proceeds.Add(d.Proceeds)
		report.CostBasis = report.CostBasis.Add(d.CostBasis)
		gain := d.Gain()
		report.Gain = report.Gain.Add(gain)
		if d.LongTerm() {
			report.LongTerm = report.LongTerm.Add(gain)
		} else {
			report.ShortTerm = report.ShortTerm.Add(gain)
		}
	}
	return report
}
