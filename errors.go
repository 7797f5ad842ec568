package cryptotax

import (
	"errors"
	"fmt"
)

// ErrNilTarget is returned by Transfer when the destination pool is nil.
var ErrNilTarget = errors.New("transfer target pool is nil")

// InsufficientBalanceError reports a sell or transfer request exceeding the
// total quantity available across a pool's lots. The operation fails as a
// whole and the pool is left untouched.
type InsufficientBalanceError struct {
	Pool      string   // name of the pool the request was made against
	Asset     string   // asset ticker of the pool
	Requested Quantity // quantity asked for, fees included for transfers
	Available Quantity // total quantity held by the pool
	On        Date     // date of the rejected operation
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance in pool %q: on %s requested %s %s but only %s available",
		e.Pool, e.On, e.Requested, e.Asset, e.Available)
}

// ConservationViolationError reports that a transfer created or destroyed
// quantity beyond the allowed tolerance. It signals a bug in the depletion
// arithmetic, not a bad input: callers must not proceed with the pools'
// state after receiving one.
type ConservationViolationError struct {
	Source string   // source pool name
	Target string   // target pool name
	Before Quantity // summed quantity of both pools before the transfer, net of fees
	After  Quantity // summed quantity of both pools after the transfer
	On     Date     // date of the transfer
}

func (e *ConservationViolationError) Error() string {
	return fmt.Sprintf("conservation violation transferring %q -> %q on %s: expected total %s got %s (diff %s)",
		e.Source, e.Target, e.On, e.Before, e.After, e.After.Sub(e.Before).Abs())
}

// TargetMismatchError reports a transfer between pools holding different
// assets.
type TargetMismatchError struct {
	Source      string // source pool name
	Target      string // target pool name
	SourceAsset string
	TargetAsset string
}

func (e *TargetMismatchError) Error() string {
	return fmt.Sprintf("cannot transfer from pool %q (%s) to pool %q (%s): assets differ",
		e.Source, e.SourceAsset, e.Target, e.TargetAsset)
}

// InvalidTransactionTypeError reports an attempt to build or parse a
// transaction event with an unrecognized type.
type InvalidTransactionTypeError struct {
	Type string
}

func (e *InvalidTransactionTypeError) Error() string {
	return fmt.Sprintf("invalid transaction type %q, must be one of: %s", e.Type, txTypeList())
}
