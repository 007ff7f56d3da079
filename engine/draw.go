package engine

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/solraffle/libraffle-go/ledger"
	"github.com/solraffle/libraffle-go/raffle"
	"github.com/solraffle/libraffle-go/wire"
)

// drawSeed binds an oracle request to the raffle's final sales state:
// the same raffle at the same tickets_sold always asks for the same
// randomness.
func drawSeed(raffleKey solana.PublicKey, ticketsSold uint64) []byte {
	seed := make([]byte, len(raffleKey)+8)
	copy(seed, raffleKey[:])
	binary.LittleEndian.PutUint64(seed[len(raffleKey):], ticketsSold)
	return seed
}

func (e *Engine) requestRandomness(sess *ledger.Session, accounts []*ledger.Account) error {
	if err := expectAccounts(wire.OpRequestRandomness, accounts, 3); err != nil {
		return err
	}
	initiator, raffleAcct, oracleAcct := accounts[0], accounts[1], accounts[2]

	if err := requireSigner(initiator, "initiator"); err != nil {
		return err
	}
	if err := requireWritable(raffleAcct, "raffle"); err != nil {
		return err
	}

	r, err := raffle.DecodeRaffle(raffleAcct.Data)
	if err != nil {
		return err
	}
	if !r.Initialized {
		return raffle.ErrRaffleUninitialized
	}
	if r.Status != raffle.StatusActive {
		return raffle.ErrRaffleNotActive
	}
	if !r.HasEnded(sess.Now()) {
		return raffle.ErrRaffleNotEnded
	}
	if r.TicketsSold == 0 {
		return raffle.ErrNoTicketsSold
	}
	if r.VrfRequestInProgress {
		return raffle.ErrRandomnessRequested
	}

	if err := e.oracle.Request(oracleAcct.Key, drawSeed(raffleAcct.Key, r.TicketsSold)); err != nil {
		return fmt.Errorf("%w: %w", raffle.ErrExternalDependency, err)
	}

	r.VrfAccount = oracleAcct.Key
	r.VrfRequestInProgress = true
	raffleAcct.Data = raffle.EncodeRaffle(r)

	e.log.WithFields(logrus.Fields{
		"op":     wire.OpRequestRandomness.String(),
		"raffle": raffleAcct.Key,
		"oracle": oracleAcct.Key,
		"sold":   r.TicketsSold,
	}).Info("randomness requested")
	return nil
}

func (e *Engine) completeRaffleWithVrf(sess *ledger.Session, accounts []*ledger.Account) error {
	if len(accounts) < 4 {
		return fmt.Errorf("%w: %s wants at least 4 accounts, got %d",
			raffle.ErrValidation, wire.OpCompleteRaffleWithVrf, len(accounts))
	}
	initiator, raffleAcct, oracleAcct, winnerAcct := accounts[0], accounts[1], accounts[2], accounts[3]

	if err := requireSigner(initiator, "initiator"); err != nil {
		return err
	}
	if err := requireWritable(raffleAcct, "raffle"); err != nil {
		return err
	}
	if err := requireWritable(winnerAcct, "winner"); err != nil {
		return err
	}

	r, err := raffle.DecodeRaffle(raffleAcct.Data)
	if err != nil {
		return err
	}
	if !r.Initialized {
		return raffle.ErrRaffleUninitialized
	}
	if r.Status != raffle.StatusActive {
		return raffle.ErrRaffleNotActive
	}
	if !r.VrfRequestInProgress {
		return raffle.ErrRandomnessNotRequested
	}
	if oracleAcct.Key != r.VrfAccount {
		return fmt.Errorf("%w: got %s, want %s", raffle.ErrOracleMismatch, oracleAcct.Key, r.VrfAccount)
	}
	if !r.HasEnded(sess.Now()) {
		return raffle.ErrRaffleNotEnded
	}

	randomness, err := e.oracle.Result(oracleAcct.Key)
	if err != nil {
		return fmt.Errorf("%w: %w", raffle.ErrExternalDependency, err)
	}
	index, err := raffle.WinnerIndex(randomness, r.TicketsSold)
	if err != nil {
		return err
	}

	refs := make([]raffle.AllocationRef, 0, len(accounts)-4)
	for _, acct := range accounts[4:] {
		alloc, err := raffle.DecodeAllocation(acct.Data)
		if err != nil {
			return err
		}
		refs = append(refs, raffle.AllocationRef{Address: acct.Key, Allocation: alloc})
	}
	won, err := raffle.ResolveWinner(e.program, raffleAcct.Key, r.TicketsSold, index, refs)
	if err != nil {
		return err
	}
	if winnerAcct.Key != won.Allocation.Purchaser {
		return fmt.Errorf("%w: got %s, drawn %s", raffle.ErrWinnerMismatch, winnerAcct.Key, won.Allocation.Purchaser)
	}

	r.Winner = won.Allocation.Purchaser
	r.Status = raffle.StatusComplete
	r.VrfRequestInProgress = false
	raffleAcct.Data = raffle.EncodeRaffle(r)

	// Settle in the same request: the whole pot moves to the winner.
	// Exactly-once follows from the Active -> Complete transition above.
	prize := raffleAcct.Balance
	if prize > 0 {
		if err := sess.Transfer(raffleAcct.Key, winnerAcct.Key, prize); err != nil {
			return err
		}
	}

	e.log.WithFields(logrus.Fields{
		"op":      wire.OpCompleteRaffleWithVrf.String(),
		"raffle":  raffleAcct.Key,
		"winner":  won.Allocation.Purchaser,
		"index":   index,
		"tickets": r.TicketsSold,
		"prize":   prize,
	}).Info("raffle settled")
	return nil
}
