// Package ledger models the host ledger the raffle engine runs against:
// addressable accounts carrying a balance and opaque data, durable
// stores, and the per-request session that stages every mutation until
// one atomic commit. The engine never touches storage directly; it only
// sees staged accounts and the session's transfer, create and clock
// capabilities.
package ledger

import "github.com/gagliardetto/solana-go"

// Account is one addressable unit of ledger state. Signer and Writable
// describe the account's role in the current request only and are never
// persisted.
type Account struct {
	Key     solana.PublicKey
	Owner   solana.PublicKey // program allowed to mutate the data
	Balance uint64
	Data    []byte

	Signer   bool
	Writable bool
}

// Exists reports whether anything is stored at the address yet.
func (a *Account) Exists() bool {
	return !a.Owner.IsZero() || a.Balance != 0 || len(a.Data) != 0
}

// OwnedBy reports whether the account data belongs to the given program.
func (a *Account) OwnedBy(program solana.PublicKey) bool {
	return a.Owner == program
}

// Clone returns a deep copy. Stores hand out clones so staged mutations
// never alias durable state.
func (a *Account) Clone() *Account {
	cp := *a
	if a.Data != nil {
		cp.Data = make([]byte, len(a.Data))
		copy(cp.Data, a.Data)
	}
	return &cp
}

// Meta identifies one account a request wants loaded, with the role
// flags the engine will enforce.
type Meta struct {
	Key      solana.PublicKey
	Signer   bool
	Writable bool
}

// Clock supplies the ambient time (unix seconds) for a request.
type Clock func() int64
