package vrf

import (
	"crypto/sha256"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// Stub is an in-memory oracle for tests. Randomness is sha256(seed),
// so outcomes are predictable, and fulfillment is an explicit step so
// tests can exercise the pending window.
type Stub struct {
	mu      sync.Mutex
	entries map[solana.PublicKey]*stubEntry
}

type stubEntry struct {
	seed      []byte
	fulfilled bool
}

var _ Oracle = (*Stub)(nil)

// NewStub creates an empty stub oracle.
func NewStub() *Stub {
	return &Stub{entries: make(map[solana.PublicKey]*stubEntry)}
}

// Request binds seed to the handle account.
func (s *Stub) Request(account solana.PublicKey, seed []byte) error {
	if len(seed) == 0 {
		return ErrEmptySeed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[account]; ok {
		return ErrDuplicateRequest
	}
	cp := make([]byte, len(seed))
	copy(cp, seed)
	s.entries[account] = &stubEntry{seed: cp}
	return nil
}

// Fulfill marks the handle account's request as fulfilled.
func (s *Stub) Fulfill(account solana.PublicKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[account]
	if !ok {
		return ErrUnknownAccount
	}
	entry.fulfilled = true
	return nil
}

// Result returns sha256(seed) once the request has been fulfilled.
func (s *Stub) Result(account solana.PublicKey) ([32]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[account]
	if !ok {
		return [32]byte{}, ErrUnknownAccount
	}
	if !entry.fulfilled {
		return [32]byte{}, ErrResultPending
	}
	return sha256.Sum256(entry.seed), nil
}

// Seed returns the seed recorded for the handle account, for assertions.
func (s *Stub) Seed(account solana.PublicKey) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[account]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(entry.seed))
	copy(cp, entry.seed)
	return cp, true
}
