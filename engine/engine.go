// Package engine executes wire-encoded raffle requests against staged
// ledger accounts.
//
// The host owns durability and atomicity: it stages the request's
// accounts in a ledger.Session, hands them to Process, and commits the
// session only when Process returns nil. Any error leaves the session
// to be discarded, so a failed request never mutates the ledger. The
// engine itself is synchronous and deterministic; its only ambient
// capabilities are the session (clock, transfers, account creation) and
// the randomness oracle it was constructed with.
package engine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/solraffle/libraffle-go/ledger"
	"github.com/solraffle/libraffle-go/raffle"
	"github.com/solraffle/libraffle-go/vrf"
	"github.com/solraffle/libraffle-go/wire"
)

// Engine dispatches decoded requests to their handlers. It carries no
// mutable state of its own; everything lives in the accounts.
type Engine struct {
	program solana.PublicKey
	oracle  vrf.Oracle
	log     *logrus.Entry
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes the engine's structured logging to l instead of the
// standard logger.
func WithLogger(l *logrus.Logger) Option {
	return func(e *Engine) { e.log = l.WithField("component", "engine") }
}

// New creates an engine running as the given program, drawing
// randomness from oracle.
func New(program solana.PublicKey, oracle vrf.Oracle, opts ...Option) *Engine {
	e := &Engine{
		program: program,
		oracle:  oracle,
		log:     logrus.WithField("component", "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Program returns the program identity the engine runs as.
func (e *Engine) Program() solana.PublicKey { return e.program }

// Process executes one request: decode the payload, dispatch to the
// operation's handler, mutate the staged accounts. On error the caller
// must discard the session; on nil the staged mutations are ready to
// commit.
func (e *Engine) Process(sess *ledger.Session, accounts []*ledger.Account, payload []byte) error {
	in, err := wire.Decode(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", raffle.ErrValidation, err)
	}

	if err := e.dispatch(sess, accounts, in); err != nil {
		e.log.WithField("op", in.Opcode().String()).WithError(err).Warn("request rejected")
		return err
	}
	return nil
}

func (e *Engine) dispatch(sess *ledger.Session, accounts []*ledger.Account, in wire.Instruction) error {
	switch v := in.(type) {
	case *wire.InitializeConfig:
		return e.initializeConfig(sess, accounts, v)
	case *wire.InitializeRaffle:
		return e.initializeRaffle(sess, accounts, v)
	case *wire.PurchaseTickets:
		return e.purchaseTickets(sess, accounts, v)
	case *wire.CompleteRaffle:
		// Retired tag, kept so old clients fail cleanly. Accounts are
		// never read.
		return raffle.ErrDeprecatedOperation
	case *wire.UpdateAdmin:
		return e.updateAdmin(accounts)
	case *wire.UpdateFeeAddress:
		return e.updateFeeAddress(accounts)
	case *wire.UpdateTicketPrice:
		return e.updateTicketPrice(accounts, v)
	case *wire.UpdateFeePercentage:
		return e.updateFeePercentage(accounts, v)
	case *wire.RequestRandomness:
		return e.requestRandomness(sess, accounts)
	case *wire.CompleteRaffleWithVrf:
		return e.completeRaffleWithVrf(sess, accounts)
	default:
		return fmt.Errorf("%w: unhandled instruction %T", raffle.ErrValidation, in)
	}
}

// expectAccounts checks the request carries exactly the canonical
// number of accounts for the operation.
func expectAccounts(op wire.Opcode, accounts []*ledger.Account, want int) error {
	if len(accounts) != want {
		return fmt.Errorf("%w: %s wants %d accounts, got %d", raffle.ErrValidation, op, want, len(accounts))
	}
	return nil
}

// requireSigner checks the role's account signed the request.
func requireSigner(acct *ledger.Account, role string) error {
	if !acct.Signer {
		return fmt.Errorf("%w: %s", raffle.ErrMissingSignature, role)
	}
	return nil
}

// requireWritable checks the role's account was staged writable.
func requireWritable(acct *ledger.Account, role string) error {
	if !acct.Writable {
		return fmt.Errorf("%w: %s account is not writable", raffle.ErrValidation, role)
	}
	return nil
}
