// Package vrf provides verifiable randomness for raffle settlement.
//
// The engine consumes randomness through the Oracle interface: an
// on-ledger handle account is bound to a request seed, and a later
// request reads back 32 bytes of verified randomness for that handle.
// Service is the reference implementation, a BLS oracle on the bn256
// pairing suite whose deterministic signatures double as proofs. Stub
// is a test double with the same pending/fulfilled lifecycle.
package vrf

import (
	"github.com/gagliardetto/solana-go"
)

// Oracle binds randomness requests to handle accounts and surfaces
// verified results.
//
// Request registers seed against the handle account. Result returns the
// 32-byte randomness once the request has been fulfilled; until then it
// fails with ErrResultPending. A handle that was never requested fails
// with ErrUnknownAccount, and a stored proof that no longer verifies
// fails with ErrBadProof.
type Oracle interface {
	Request(account solana.PublicKey, seed []byte) error
	Result(account solana.PublicKey) ([32]byte, error)
}
