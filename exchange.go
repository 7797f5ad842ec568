package cryptotax

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Exchange bundles the pools of a real-life exchange account or wallet,
// one pool per asset.
type Exchange struct {
	name  string
	pools map[string]*Pool // indexed by upper-cased asset ticker
}

// NewExchange creates an exchange with no pools.
func NewExchange(name string) *Exchange {
	return &Exchange{
		name:  name,
		pools: make(map[string]*Pool),
	}
}

// Name returns the exchange name.
func (e *Exchange) Name() string { return e.name }

// AddPool creates a pool for an asset and registers it. Multiple pools of
// the same asset are not supported in the same exchange.
func (e *Exchange) AddPool(poolName, asset string) (*Pool, error) {
	ticker := strings.ToUpper(asset)
	if _, exists := e.pools[ticker]; exists {
		return nil, fmt.Errorf("exchange %q already has a pool for asset %q", e.name, ticker)
	}
	pool := NewPool(poolName, ticker)
	e.pools[ticker] = pool
	return pool, nil
}

// Pool returns the pool holding the given asset, or nil if unknown.
func (e *Exchange) Pool(asset string) *Pool {
	return e.pools[strings.ToUpper(asset)]
}

// Assets iterates over the asset tickers held by this exchange, sorted.
func (e *Exchange) Assets() iter.Seq[string] {
	return func(yield func(string) bool) {
		tickers := slices.Collect(maps.Keys(e.pools))
		slices.Sort(tickers)
		for _, ticker := range tickers {
			if !yield(ticker) {
				return
			}
		}
	}
}

// Pools iterates over the exchange's pools in asset order.
func (e *Exchange) Pools() iter.Seq[*Pool] {
	return func(yield func(*Pool) bool) {
		for ticker := range e.Assets() {
			if !yield(e.pools[ticker]) {
				return
			}
		}
	}
}
