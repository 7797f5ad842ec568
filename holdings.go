package cryptotax

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// Holdings tracks every pool touched while replaying a ledger, keyed by pool
// name and asset. Pools are created on demand: a buy or sell that names no
// pool lands in a default pool named after its asset, the way a transfer
// names its source and target pools explicitly.
type Holdings struct {
	pools map[string]*Pool
}

// NewHoldings creates an empty holdings set.
func NewHoldings() *Holdings {
	return &Holdings{pools: make(map[string]*Pool)}
}

func holdingsKey(name, asset string) string {
	return name + "|" + strings.ToUpper(asset)
}

// Pool returns the pool with the given name holding the given asset,
// creating it if it does not exist yet. An empty name resolves to the
// default pool named after the asset ticker.
func (h *Holdings) Pool(name, asset string) *Pool {
	if name == "" {
		name = strings.ToUpper(asset)
	}
	key := holdingsKey(name, asset)
	pool, ok := h.pools[key]
	if !ok {
		pool = NewPool(name, asset)
		h.pools[key] = pool
	}
	return pool
}

// Lookup returns the pool with the given name and asset, or nil if it was
// never created.
func (h *Holdings) Lookup(name, asset string) *Pool {
	if name == "" {
		name = strings.ToUpper(asset)
	}
	return h.pools[holdingsKey(name, asset)]
}

// Pools iterates over all pools, sorted by asset then name.
func (h *Holdings) Pools() iter.Seq[*Pool] {
	return func(yield func(*Pool) bool) {
		keys := slices.Collect(maps.Keys(h.pools))
		slices.SortFunc(keys, func(a, b string) int {
			pa, pb := h.pools[a], h.pools[b]
			if c := strings.Compare(pa.asset, pb.asset); c != 0 {
				return c
			}
			return strings.Compare(pa.name, pb.name)
		})
		for _, key := range keys {
			if !yield(h.pools[key]) {
				return
			}
		}
	}
}

// Quantity returns the total quantity of an asset held across all pools.
func (h *Holdings) Quantity(asset string) Quantity {
	var total Quantity
	ticker := strings.ToUpper(asset)
	for _, pool := range h.pools {
		if pool.asset == ticker {
			total = total.Add(pool.Quantity())
		}
	}
	return total
}
