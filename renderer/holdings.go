package renderer

import (
	"github.com/andresberejnoi/CryptoTaxTools"
)

// holdingsView is the template-facing shape of the holdings report.
type holdingsView struct {
	Pools    []poolView
	WithLots bool
}

type poolView struct {
	Name      string
	Asset     string
	Quantity  cryptotax.Quantity
	CostBasis cryptotax.Money
	Lots      []lotView
}

type lotView struct {
	DatePurchased cryptotax.Date
	Quantity      cryptotax.Quantity
	CostBasis     cryptotax.Money
	UnitCost      cryptotax.Money
}

// HoldingsMarkdown renders the current holdings per pool to a markdown
// string, optionally down to the individual lots.
func HoldingsMarkdown(h *cryptotax.Holdings, withLots bool) string {
	view := holdingsView{WithLots: withLots}
	for pool := range h.Pools() {
		if pool.Quantity().IsZero() {
			continue
		}
		pv := poolView{
			Name:      pool.Name(),
			Asset:     pool.Asset(),
			Quantity:  pool.Quantity(),
			CostBasis: pool.CostBasis(),
		}
		if withLots {
			for lot := range pool.Lots() {
				pv.Lots = append(pv.Lots, lotView{
					DatePurchased: lot.DatePurchased(),
					Quantity:      lot.Quantity(),
					CostBasis:     lot.CostBasis(),
					UnitCost:      lot.UnitCost(),
				})
			}
		}
		view.Pools = append(view.Pools, pv)
	}

	partials := map[string]string{
		"holdings_pools": "holdings_pools.md",
		"holdings_lots":  "holdings_lots.md",
	}
	return renderTemplate("holdings", "holdings.md", partials, view)
}
