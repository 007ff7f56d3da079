package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/solraffle/libraffle-go/ledger"
	"github.com/solraffle/libraffle-go/raffle"
	"github.com/solraffle/libraffle-go/wire"
)

// loadConfig checks the supplied account sits at the derived config
// address and decodes it. An account that was never written decodes to
// the uninitialized zero value.
func (e *Engine) loadConfig(acct *ledger.Account) (*raffle.Config, error) {
	derived, err := raffle.DeriveConfigAddress(e.program)
	if err != nil {
		return nil, err
	}
	if acct.Key != derived {
		return nil, fmt.Errorf("%w: config is %s, want %s", raffle.ErrAddressMismatch, acct.Key, derived)
	}
	return raffle.DecodeConfig(acct.Data)
}

func (e *Engine) initializeConfig(sess *ledger.Session, accounts []*ledger.Account, in *wire.InitializeConfig) error {
	if err := expectAccounts(wire.OpInitializeConfig, accounts, 3); err != nil {
		return err
	}
	admin, configAcct, treasury := accounts[0], accounts[1], accounts[2]

	if err := requireSigner(admin, "admin"); err != nil {
		return err
	}
	if err := requireWritable(configAcct, "config"); err != nil {
		return err
	}

	cfg, err := e.loadConfig(configAcct)
	if err != nil {
		return err
	}
	if cfg.Initialized {
		return raffle.ErrConfigInitialized
	}
	if in.TicketPrice == 0 {
		return raffle.ErrZeroTicketPrice
	}
	if in.FeeBasisPoints > raffle.MaxFeeBasisPoints {
		return fmt.Errorf("%w (%d)", raffle.ErrFeeTooHigh, in.FeeBasisPoints)
	}

	// The config account is provisioned on first use; the derived
	// address has no keypair, so nobody else can have created it.
	switch {
	case configAcct.Owner.IsZero():
		if err := sess.Create(configAcct.Key, raffle.ConfigSize); err != nil {
			return err
		}
	case !configAcct.OwnedBy(e.program):
		return fmt.Errorf("%w: config owned by %s", raffle.ErrNotProgramOwned, configAcct.Owner)
	}

	configAcct.Data = raffle.EncodeConfig(&raffle.Config{
		Initialized:    true,
		Admin:          admin.Key,
		Treasury:       treasury.Key,
		TicketPrice:    in.TicketPrice,
		FeeBasisPoints: in.FeeBasisPoints,
	})

	e.log.WithFields(logrus.Fields{
		"op":       wire.OpInitializeConfig.String(),
		"config":   configAcct.Key,
		"admin":    admin.Key,
		"treasury": treasury.Key,
		"price":    in.TicketPrice,
		"fee_bps":  in.FeeBasisPoints,
	}).Info("config initialized")
	return nil
}

// loadAdminConfig is the shared preamble of the four config mutations:
// signature, derived address, initialized state and admin identity.
func (e *Engine) loadAdminConfig(admin, configAcct *ledger.Account) (*raffle.Config, error) {
	if err := requireSigner(admin, "admin"); err != nil {
		return nil, err
	}
	if err := requireWritable(configAcct, "config"); err != nil {
		return nil, err
	}
	cfg, err := e.loadConfig(configAcct)
	if err != nil {
		return nil, err
	}
	if !cfg.Initialized {
		return nil, raffle.ErrConfigUninitialized
	}
	if cfg.Admin != admin.Key {
		return nil, fmt.Errorf("%w: %s", raffle.ErrAdminMismatch, admin.Key)
	}
	return cfg, nil
}

func (e *Engine) updateAdmin(accounts []*ledger.Account) error {
	if err := expectAccounts(wire.OpUpdateAdmin, accounts, 3); err != nil {
		return err
	}
	admin, newAdmin, configAcct := accounts[0], accounts[1], accounts[2]

	cfg, err := e.loadAdminConfig(admin, configAcct)
	if err != nil {
		return err
	}
	cfg.Admin = newAdmin.Key
	configAcct.Data = raffle.EncodeConfig(cfg)

	e.log.WithFields(logrus.Fields{
		"op":        wire.OpUpdateAdmin.String(),
		"old_admin": admin.Key,
		"new_admin": newAdmin.Key,
	}).Info("config admin updated")
	return nil
}

func (e *Engine) updateFeeAddress(accounts []*ledger.Account) error {
	if err := expectAccounts(wire.OpUpdateFeeAddress, accounts, 3); err != nil {
		return err
	}
	admin, newTreasury, configAcct := accounts[0], accounts[1], accounts[2]

	cfg, err := e.loadAdminConfig(admin, configAcct)
	if err != nil {
		return err
	}
	cfg.Treasury = newTreasury.Key
	configAcct.Data = raffle.EncodeConfig(cfg)

	e.log.WithFields(logrus.Fields{
		"op":       wire.OpUpdateFeeAddress.String(),
		"treasury": newTreasury.Key,
	}).Info("config treasury updated")
	return nil
}

func (e *Engine) updateTicketPrice(accounts []*ledger.Account, in *wire.UpdateTicketPrice) error {
	if err := expectAccounts(wire.OpUpdateTicketPrice, accounts, 2); err != nil {
		return err
	}
	admin, configAcct := accounts[0], accounts[1]

	cfg, err := e.loadAdminConfig(admin, configAcct)
	if err != nil {
		return err
	}
	if in.NewPrice == 0 {
		return raffle.ErrZeroTicketPrice
	}
	cfg.TicketPrice = in.NewPrice
	configAcct.Data = raffle.EncodeConfig(cfg)

	e.log.WithFields(logrus.Fields{
		"op":    wire.OpUpdateTicketPrice.String(),
		"price": in.NewPrice,
	}).Info("config ticket price updated")
	return nil
}

func (e *Engine) updateFeePercentage(accounts []*ledger.Account, in *wire.UpdateFeePercentage) error {
	if err := expectAccounts(wire.OpUpdateFeePercentage, accounts, 2); err != nil {
		return err
	}
	admin, configAcct := accounts[0], accounts[1]

	cfg, err := e.loadAdminConfig(admin, configAcct)
	if err != nil {
		return err
	}
	if in.NewFeeBasisPoints > raffle.MaxFeeBasisPoints {
		return fmt.Errorf("%w (%d)", raffle.ErrFeeTooHigh, in.NewFeeBasisPoints)
	}
	cfg.FeeBasisPoints = in.NewFeeBasisPoints
	configAcct.Data = raffle.EncodeConfig(cfg)

	e.log.WithFields(logrus.Fields{
		"op":      wire.OpUpdateFeePercentage.String(),
		"fee_bps": in.NewFeeBasisPoints,
	}).Info("config fee rate updated")
	return nil
}
