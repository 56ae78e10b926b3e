// Package database handles the lower level data model for the blockchain:
// accounts, the records that move value between them, and the blocks that
// seal those records with a proof of work.
package database

import (
	"errors"
	"math"
)

// Set of error variables for handling transaction and block failures.
var (
	ErrUnauthorizedSigner   = errors.New("signing key does not match the transaction sender")
	ErrMissingSignature     = errors.New("transaction has no signature")
	ErrMalformedTransaction = errors.New("transaction must include from and to account")
	ErrInvalidSignature     = errors.New("transaction signature is invalid")
	ErrInvalidBlock         = errors.New("block is invalid")
)

// MaxValue is the largest value a record can carry. Balances are signed
// 64 bit integers so larger values can't be replayed.
const MaxValue uint64 = math.MaxInt64

// EventHandler defines a function that is called when events occur in the
// processing of blocks.
type EventHandler func(v string, args ...any)

// safe returns a handler that can always be called.
func (ev EventHandler) safe() EventHandler {
	if ev == nil {
		return func(string, ...any) {}
	}

	return ev
}
