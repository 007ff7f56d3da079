package ledger

import (
	"sync"

	"github.com/gagliardetto/solana-go"
)

// MemStore is an in-memory Store for tests and ephemeral hosts.
type MemStore struct {
	mu       sync.RWMutex
	accounts map[solana.PublicKey]*Account
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{accounts: make(map[solana.PublicKey]*Account)}
}

// GetAccount returns a copy of the stored account.
func (s *MemStore) GetAccount(key solana.PublicKey) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[key]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acct.Clone(), nil
}

// PutAccounts stores copies of the batch.
func (s *MemStore) PutAccounts(accounts []*Account) error {
	for _, acct := range accounts {
		if acct == nil {
			return ErrNilAccount
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acct := range accounts {
		cp := acct.Clone()
		cp.Signer, cp.Writable = false, false
		s.accounts[cp.Key] = cp
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemStore) Close() error { return nil }
