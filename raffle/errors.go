package raffle

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure produced by this module wraps exactly one
// of these, so callers can classify errors by kind with errors.Is
// without enumerating the concrete conditions.
var (
	// ErrAuthorization indicates a missing signature or a signer that
	// does not match the required authority.
	ErrAuthorization = errors.New("raffle: authorization error")

	// ErrState indicates an operation against a config or raffle in the
	// wrong lifecycle state.
	ErrState = errors.New("raffle: state error")

	// ErrValidation indicates out-of-range or malformed input.
	ErrValidation = errors.New("raffle: validation error")

	// ErrArithmetic indicates integer overflow in price, fee or ticket
	// arithmetic.
	ErrArithmetic = errors.New("raffle: arithmetic error")

	// ErrExternalDependency indicates the randomness oracle failed,
	// has no result, or its identity did not match.
	ErrExternalDependency = errors.New("raffle: external dependency error")

	// ErrDataIntegrity indicates persisted state that cannot be decoded
	// or whose back-references are inconsistent.
	ErrDataIntegrity = errors.New("raffle: data integrity error")
)

// Concrete conditions. Each wraps its kind, so errors.Is matches both
// the condition and the kind.
var (
	// ErrMissingSignature indicates a required signer did not sign.
	ErrMissingSignature = fmt.Errorf("%w: required signature missing", ErrAuthorization)

	// ErrAdminMismatch indicates the signer is not the config admin.
	ErrAdminMismatch = fmt.Errorf("%w: signer is not the config admin", ErrAuthorization)

	// ErrConfigInitialized indicates the config was already initialized.
	ErrConfigInitialized = fmt.Errorf("%w: config already initialized", ErrState)

	// ErrConfigUninitialized indicates the config has not been initialized.
	ErrConfigUninitialized = fmt.Errorf("%w: config not initialized", ErrState)

	// ErrRaffleInitialized indicates the account already holds a raffle.
	ErrRaffleInitialized = fmt.Errorf("%w: raffle already initialized", ErrState)

	// ErrRaffleUninitialized indicates the account holds no raffle.
	ErrRaffleUninitialized = fmt.Errorf("%w: raffle not initialized", ErrState)

	// ErrRaffleNotActive indicates the raffle is already complete.
	ErrRaffleNotActive = fmt.Errorf("%w: raffle is not active", ErrState)

	// ErrRaffleEnded indicates the purchase window has closed.
	ErrRaffleEnded = fmt.Errorf("%w: raffle has ended", ErrState)

	// ErrRaffleNotEnded indicates the purchase window is still open.
	ErrRaffleNotEnded = fmt.Errorf("%w: raffle has not ended", ErrState)

	// ErrNoTicketsSold indicates a draw was attempted with no tickets.
	ErrNoTicketsSold = fmt.Errorf("%w: no tickets sold", ErrState)

	// ErrRandomnessRequested indicates a randomness request is already
	// in progress.
	ErrRandomnessRequested = fmt.Errorf("%w: randomness request already in progress", ErrState)

	// ErrRandomnessNotRequested indicates no randomness request was made.
	ErrRandomnessNotRequested = fmt.Errorf("%w: randomness not requested", ErrState)

	// ErrAllocationsIncomplete indicates the supplied allocation set does
	// not account for every ticket sold.
	ErrAllocationsIncomplete = fmt.Errorf("%w: allocation set does not cover tickets sold", ErrState)

	// ErrDeprecatedOperation indicates a retired operation tag.
	ErrDeprecatedOperation = fmt.Errorf("%w: operation retired, use CompleteRaffleWithVrf", ErrState)

	// ErrNotProgramOwned indicates the account was not provisioned for
	// this program.
	ErrNotProgramOwned = fmt.Errorf("%w: account not owned by the program", ErrState)

	// ErrZeroTicketCount indicates a purchase of zero tickets.
	ErrZeroTicketCount = fmt.Errorf("%w: ticket count is zero", ErrValidation)

	// ErrZeroTicketPrice indicates a zero ticket price.
	ErrZeroTicketPrice = fmt.Errorf("%w: ticket price is zero", ErrValidation)

	// ErrFeeTooHigh indicates a fee rate above MaxFeeBasisPoints.
	ErrFeeTooHigh = fmt.Errorf("%w: fee rate above %d basis points", ErrValidation, MaxFeeBasisPoints)

	// ErrAddressMismatch indicates a supplied account does not sit at its
	// derived address.
	ErrAddressMismatch = fmt.Errorf("%w: derived address mismatch", ErrValidation)

	// ErrTreasuryMismatch indicates the supplied treasury is not the one
	// snapshotted into the raffle.
	ErrTreasuryMismatch = fmt.Errorf("%w: treasury does not match raffle snapshot", ErrValidation)

	// ErrWinnerMismatch indicates the supplied winner account is not the
	// drawn purchaser.
	ErrWinnerMismatch = fmt.Errorf("%w: winner account does not match drawn purchaser", ErrValidation)

	// ErrTitleTooLong indicates a title longer than TitleLen bytes.
	ErrTitleTooLong = fmt.Errorf("%w: title longer than %d bytes", ErrValidation, TitleLen)

	// ErrOverflow indicates 64-bit overflow.
	ErrOverflow = fmt.Errorf("%w: integer overflow", ErrArithmetic)

	// ErrOracleMismatch indicates the supplied oracle account is not the
	// one recorded by the randomness request.
	ErrOracleMismatch = fmt.Errorf("%w: oracle account does not match recorded request", ErrExternalDependency)

	// ErrCorruptState indicates persisted bytes that cannot be decoded.
	ErrCorruptState = fmt.Errorf("%w: undecodable persisted state", ErrDataIntegrity)

	// ErrAllocationMismatch indicates an allocation whose back-references
	// disagree with its address or with the request.
	ErrAllocationMismatch = fmt.Errorf("%w: allocation back-references do not match", ErrDataIntegrity)

	// ErrDuplicateAllocation indicates the same allocation account was
	// supplied twice.
	ErrDuplicateAllocation = fmt.Errorf("%w: duplicate allocation account", ErrDataIntegrity)

	// ErrForeignAllocation indicates an allocation that belongs to a
	// different raffle.
	ErrForeignAllocation = fmt.Errorf("%w: allocation belongs to a different raffle", ErrDataIntegrity)
)
