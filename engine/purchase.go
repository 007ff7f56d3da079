package engine

import (
	"fmt"
	"math/bits"

	"github.com/sirupsen/logrus"

	"github.com/solraffle/libraffle-go/ledger"
	"github.com/solraffle/libraffle-go/raffle"
	"github.com/solraffle/libraffle-go/wire"
)

func (e *Engine) purchaseTickets(sess *ledger.Session, accounts []*ledger.Account, in *wire.PurchaseTickets) error {
	if err := expectAccounts(wire.OpPurchaseTickets, accounts, 4); err != nil {
		return err
	}
	purchaser, raffleAcct, allocAcct, treasury := accounts[0], accounts[1], accounts[2], accounts[3]

	if err := requireSigner(purchaser, "purchaser"); err != nil {
		return err
	}
	if err := requireWritable(purchaser, "purchaser"); err != nil {
		return err
	}
	if err := requireWritable(raffleAcct, "raffle"); err != nil {
		return err
	}
	if err := requireWritable(allocAcct, "allocation"); err != nil {
		return err
	}
	if err := requireWritable(treasury, "treasury"); err != nil {
		return err
	}

	if in.TicketCount == 0 {
		return raffle.ErrZeroTicketCount
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
	now := sess.Now()
	if r.HasEnded(now) {
		return raffle.ErrRaffleEnded
	}

	if treasury.Key != r.Treasury {
		return fmt.Errorf("%w: got %s, want %s", raffle.ErrTreasuryMismatch, treasury.Key, r.Treasury)
	}
	derived, err := raffle.DeriveAllocationAddress(e.program, raffleAcct.Key, purchaser.Key)
	if err != nil {
		return err
	}
	if allocAcct.Key != derived {
		return fmt.Errorf("%w: allocation is %s, want %s", raffle.ErrAddressMismatch, allocAcct.Key, derived)
	}

	total, err := raffle.TicketTotal(in.TicketCount, r.TicketPrice)
	if err != nil {
		return err
	}
	fee, pool, err := raffle.SplitFee(total, r.FeeBasisPoints)
	if err != nil {
		return err
	}
	if purchaser.Balance < total {
		return fmt.Errorf("%w: purchase needs %d, %s has %d",
			ledger.ErrInsufficientFunds, total, purchaser.Key, purchaser.Balance)
	}
	if fee > 0 {
		if err := sess.Transfer(purchaser.Key, treasury.Key, fee); err != nil {
			return err
		}
	}
	if err := sess.Transfer(purchaser.Key, raffleAcct.Key, pool); err != nil {
		return err
	}

	alloc, err := raffle.DecodeAllocation(allocAcct.Data)
	if err != nil {
		return err
	}
	if !alloc.Initialized {
		// First purchase by this purchaser: provision the allocation at
		// its derived address.
		switch {
		case allocAcct.Owner.IsZero():
			if err := sess.Create(allocAcct.Key, raffle.AllocationSize); err != nil {
				return err
			}
		case !allocAcct.OwnedBy(e.program):
			return fmt.Errorf("%w: allocation owned by %s", raffle.ErrNotProgramOwned, allocAcct.Owner)
		}
		alloc.Initialized = true
		alloc.Raffle = raffleAcct.Key
		alloc.Purchaser = purchaser.Key
	} else if alloc.Raffle != raffleAcct.Key || alloc.Purchaser != purchaser.Key {
		return fmt.Errorf("%w: allocation %s", raffle.ErrAllocationMismatch, allocAcct.Key)
	}

	count, carry := bits.Add64(alloc.TicketCount, in.TicketCount, 0)
	if carry != 0 {
		return fmt.Errorf("%w: allocation ticket count", raffle.ErrOverflow)
	}
	sold, carry := bits.Add64(r.TicketsSold, in.TicketCount, 0)
	if carry != 0 {
		return fmt.Errorf("%w: tickets sold", raffle.ErrOverflow)
	}
	alloc.TicketCount = count
	alloc.PurchaseTime = now
	r.TicketsSold = sold

	allocAcct.Data = raffle.EncodeAllocation(alloc)
	raffleAcct.Data = raffle.EncodeRaffle(r)

	e.log.WithFields(logrus.Fields{
		"op":        wire.OpPurchaseTickets.String(),
		"raffle":    raffleAcct.Key,
		"purchaser": purchaser.Key,
		"tickets":   in.TicketCount,
		"total":     total,
		"fee":       fee,
		"pool":      pool,
		"sold":      sold,
	}).Info("tickets purchased")
	return nil
}
