package engine

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/solraffle/libraffle-go/ledger"
	"github.com/solraffle/libraffle-go/raffle"
	"github.com/solraffle/libraffle-go/wire"
)

func (e *Engine) initializeRaffle(sess *ledger.Session, accounts []*ledger.Account, in *wire.InitializeRaffle) error {
	if err := expectAccounts(wire.OpInitializeRaffle, accounts, 3); err != nil {
		return err
	}
	authority, raffleAcct, configAcct := accounts[0], accounts[1], accounts[2]

	if err := requireSigner(authority, "authority"); err != nil {
		return err
	}
	if err := requireWritable(raffleAcct, "raffle"); err != nil {
		return err
	}

	cfg, err := e.loadConfig(configAcct)
	if err != nil {
		return err
	}
	if !cfg.Initialized {
		return raffle.ErrConfigUninitialized
	}

	// Raffle accounts live at ordinary keypair addresses; provisioning
	// them is the host's job, before this request.
	if !raffleAcct.OwnedBy(e.program) {
		return fmt.Errorf("%w: raffle account %s", raffle.ErrNotProgramOwned, raffleAcct.Key)
	}
	r, err := raffle.DecodeRaffle(raffleAcct.Data)
	if err != nil {
		return err
	}
	if r.Initialized {
		return raffle.ErrRaffleInitialized
	}

	now := sess.Now()
	if in.Duration > math.MaxInt64 || now > math.MaxInt64-int64(in.Duration) {
		return fmt.Errorf("%w: end time", raffle.ErrOverflow)
	}

	// Price, fee rate and treasury are snapshotted; config changes
	// after this point do not affect the raffle.
	raffleAcct.Data = raffle.EncodeRaffle(&raffle.Raffle{
		Initialized:    true,
		Authority:      authority.Key,
		Title:          in.Title,
		EndTime:        now + int64(in.Duration),
		TicketPrice:    cfg.TicketPrice,
		Status:         raffle.StatusActive,
		FeeBasisPoints: cfg.FeeBasisPoints,
		Treasury:       cfg.Treasury,
	})

	e.log.WithFields(logrus.Fields{
		"op":        wire.OpInitializeRaffle.String(),
		"raffle":    raffleAcct.Key,
		"authority": authority.Key,
		"end_time":  now + int64(in.Duration),
		"price":     cfg.TicketPrice,
		"fee_bps":   cfg.FeeBasisPoints,
	}).Info("raffle created")
	return nil
}
