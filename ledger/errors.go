package ledger

import "errors"

var (
	// ErrAccountNotFound indicates the address holds no stored account.
	ErrAccountNotFound = errors.New("ledger: account not found")

	// ErrInsufficientFunds indicates a transfer larger than the source
	// balance.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrNotInBatch indicates an address the current request did not load.
	ErrNotInBatch = errors.New("ledger: account not in request batch")

	// ErrReadOnly indicates a mutation of an account loaded without the
	// writable flag.
	ErrReadOnly = errors.New("ledger: account not writable")

	// ErrAccountExists indicates a create against an occupied address.
	ErrAccountExists = errors.New("ledger: account already exists")

	// ErrBalanceOverflow indicates a credit that would overflow uint64.
	ErrBalanceOverflow = errors.New("ledger: balance overflow")

	// ErrSessionClosed indicates use of a session after commit.
	ErrSessionClosed = errors.New("ledger: session already committed")

	// ErrNilAccount indicates a nil account in a store batch.
	ErrNilAccount = errors.New("ledger: nil account")
)
