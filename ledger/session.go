package ledger

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/gagliardetto/solana-go"
)

// Session stages one request's view of the ledger. Accounts are loaded
// as copies, mutated in place by the engine, and written back in a
// single atomic batch by Commit. Dropping a session without committing
// discards every staged mutation, which is the host's whole recovery
// mechanism: a failed request leaves no trace.
type Session struct {
	store   Store
	clock   Clock
	program solana.PublicKey

	staged map[solana.PublicKey]*Account
	order  []solana.PublicKey

	now       int64
	nowLoaded bool
	committed bool
}

// NewSession starts a session over the given store.
func NewSession(store Store, clock Clock, program solana.PublicKey) *Session {
	return &Session{
		store:   store,
		clock:   clock,
		program: program,
		staged:  make(map[solana.PublicKey]*Account),
	}
}

// Program returns the program identity the session runs as.
func (s *Session) Program() solana.PublicKey { return s.program }

// Now returns the request's ambient time. The clock is read once per
// session so every check inside one request sees the same instant.
func (s *Session) Now() int64 {
	if !s.nowLoaded {
		s.now = s.clock()
		s.nowLoaded = true
	}
	return s.now
}

// Load stages the requested accounts and returns them in request order.
// Addresses with nothing stored stage as empty accounts. Loading the
// same address twice yields the same staged account with the role flags
// merged.
func (s *Session) Load(metas []Meta) ([]*Account, error) {
	if s.committed {
		return nil, ErrSessionClosed
	}

	out := make([]*Account, 0, len(metas))
	for _, meta := range metas {
		acct, ok := s.staged[meta.Key]
		if !ok {
			stored, err := s.store.GetAccount(meta.Key)
			switch {
			case errors.Is(err, ErrAccountNotFound):
				stored = &Account{Key: meta.Key}
			case err != nil:
				return nil, err
			}
			acct = stored
			s.staged[meta.Key] = acct
			s.order = append(s.order, meta.Key)
		}
		acct.Signer = acct.Signer || meta.Signer
		acct.Writable = acct.Writable || meta.Writable
		out = append(out, acct)
	}
	return out, nil
}

// Transfer moves balance between two staged writable accounts. The
// total over all accounts is invariant: value only ever moves.
func (s *Session) Transfer(from, to solana.PublicKey, amount uint64) error {
	if s.committed {
		return ErrSessionClosed
	}
	src, ok := s.staged[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotInBatch, from)
	}
	dst, ok := s.staged[to]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotInBatch, to)
	}
	if !src.Writable {
		return fmt.Errorf("%w: %s", ErrReadOnly, from)
	}
	if !dst.Writable {
		return fmt.Errorf("%w: %s", ErrReadOnly, to)
	}
	if src.Balance < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, from, src.Balance, amount)
	}
	if from == to {
		return nil
	}
	sum, carry := bits.Add64(dst.Balance, amount, 0)
	if carry != 0 {
		return fmt.Errorf("%w: %s", ErrBalanceOverflow, to)
	}
	src.Balance -= amount
	dst.Balance = sum
	return nil
}

// Create assigns program ownership and zeroed data of the given size to
// a staged empty account. Provisioning a derived address happens through
// this capability; the address must have been loaded writable.
func (s *Session) Create(key solana.PublicKey, size int) error {
	if s.committed {
		return ErrSessionClosed
	}
	acct, ok := s.staged[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotInBatch, key)
	}
	if !acct.Writable {
		return fmt.Errorf("%w: %s", ErrReadOnly, key)
	}
	if !acct.Owner.IsZero() || len(acct.Data) > 0 {
		return fmt.Errorf("%w: %s", ErrAccountExists, key)
	}
	acct.Owner = s.program
	acct.Data = make([]byte, size)
	return nil
}

// Commit writes every staged account that holds state back to the store
// in one atomic batch and closes the session. Addresses that were loaded
// but never came to exist are skipped.
func (s *Session) Commit() error {
	if s.committed {
		return ErrSessionClosed
	}

	batch := make([]*Account, 0, len(s.order))
	for _, key := range s.order {
		if acct := s.staged[key]; acct.Exists() {
			batch = append(batch, acct)
		}
	}
	if err := s.store.PutAccounts(batch); err != nil {
		return err
	}
	s.committed = true
	return nil
}
