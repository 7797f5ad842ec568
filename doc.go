// Package cryptotax provides the lot-level accounting engine needed for
// cost-basis tracking of crypto assets: every disposal (sale or transfer)
// is attributed to the specific acquisition lots it consumes, so that the
// realized cost basis and holding period are always known.
//
// The core functionalities include:
//   - Lots: immutable-intent records of a quantity acquired at a cost and a
//     time, which can be partially or fully consumed, splitting their cost
//     basis proportionally.
//   - Pools: custodial groupings (an exchange account, a hardware wallet)
//     holding FIFO-ordered lots, with sell and transfer operations that
//     deplete the oldest lots first and conserve total quantity.
//   - Exchanges: simple containers bundling one pool per asset.
//   - Transaction events: buy, sell, transfer and income records that can
//     be replayed against the holdings to rebuild pool state and produce the
//     disposal list a tax report consumes.
//   - Data Persistence: encoding and decoding of the event ledger to and
//     from a human-readable, version-controllable JSONL format.
//
// All quantity comparisons use a configurable decimal tolerance so that
// rounding noise from fixed-precision arithmetic is treated as zero.
//
// The engine is single-threaded by design: callers exposing pools to
// concurrent use must serialize all mutating operations per pool, and hold
// both pools for the duration of a transfer.
//
// This package serves as the foundational logic for the `ctt` command-line
// tool.
package cryptotax
