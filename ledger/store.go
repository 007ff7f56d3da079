package ledger

import "github.com/gagliardetto/solana-go"

// Store is durable account storage beneath sessions. Implementations
// must make PutAccounts atomic: either the whole batch persists or none
// of it does, since a session commit is one batch.
type Store interface {
	// GetAccount returns a copy of the stored account, or
	// ErrAccountNotFound.
	GetAccount(key solana.PublicKey) (*Account, error)

	// PutAccounts writes the batch atomically, overwriting existing
	// entries.
	PutAccounts(accounts []*Account) error

	// Close releases the store.
	Close() error
}
