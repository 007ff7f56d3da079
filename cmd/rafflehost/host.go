package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/solraffle/libraffle-go/config"
	"github.com/solraffle/libraffle-go/engine"
	"github.com/solraffle/libraffle-go/ledger"
	"github.com/solraffle/libraffle-go/raffle"
	"github.com/solraffle/libraffle-go/vrf"
	"github.com/solraffle/libraffle-go/wire"
)

// host bundles what a command needs: the validated configuration, the
// logger, the account store, and — for commands that run the engine —
// the unlocked oracle and the engine itself.
type host struct {
	cfg     config.Config
	log     *logrus.Logger
	program solana.PublicKey
	store   *ledger.BoltStore

	oracle *vrf.Service
	engine *engine.Engine
}

// loadConfig reads and validates the config file named by the global
// --config flag.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.LoadConfig(c.GlobalString("config"))
	if err != nil {
		return cfg, err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openLedger loads the config and opens the account store.
func openLedger(c *cli.Context) (*host, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	// Already validated; parse cannot fail here.
	program, err := solana.PublicKeyFromBase58(cfg.Program)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidProgram, err)
	}
	store, err := ledger.OpenBoltStore(filepath.Join(cfg.DataDir, "accounts.db"))
	if err != nil {
		return nil, err
	}
	return &host{cfg: cfg, log: log, program: program, store: store}, nil
}

// openEngine additionally unlocks the oracle key named by the config
// and builds the engine. The reference host is the oracle operator, so
// every engine command runs with the oracle attached.
func openEngine(c *cli.Context) (*host, error) {
	h, err := openLedger(c)
	if err != nil {
		return nil, err
	}
	sk, err := vrf.LoadKeyFile(h.cfg.OracleKey, c.String("passphrase"))
	if err != nil {
		h.Close()
		return nil, err
	}
	state, err := vrf.LoadState(oracleStatePath(h.cfg))
	if err != nil {
		h.Close()
		return nil, err
	}
	h.oracle, err = vrf.NewService(sk, state)
	if err != nil {
		h.Close()
		return nil, err
	}
	h.engine = engine.New(h.program, h.oracle, engine.WithLogger(h.log))
	return h, nil
}

// Close releases the host's store.
func (h *host) Close() {
	if h.store != nil {
		_ = h.store.Close()
	}
}

// oracleStatePath is where the oracle keeps its pending seeds and
// proofs, beside the account database.
func oracleStatePath(cfg config.Config) string {
	return filepath.Join(cfg.DataDir, "oracle.json")
}

// newLogger builds the logrus logger the config asks for.
func newLogger(cfg config.Config) (*logrus.Logger, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.SetOutput(f)
	}
	return log, nil
}

// submit runs one built request through a fresh session, committing
// only on success. This is the whole host contract: a failed request
// leaves the ledger untouched.
func (h *host) submit(req *wire.Request) error {
	metas := make([]ledger.Meta, len(req.Accounts))
	for i, m := range req.Accounts {
		metas[i] = ledger.Meta{Key: m.Key, Signer: m.Signer, Writable: m.Writable}
	}

	sess := ledger.NewSession(h.store, func() int64 { return time.Now().Unix() }, h.program)
	accounts, err := sess.Load(metas)
	if err != nil {
		return err
	}
	if err := h.engine.Process(sess, accounts, req.Payload); err != nil {
		return err
	}
	return sess.Commit()
}

// readRaffle loads and decodes the raffle record at key.
func (h *host) readRaffle(key solana.PublicKey) (*raffle.Raffle, error) {
	acct, err := h.store.GetAccount(key)
	if err != nil {
		return nil, err
	}
	r, err := raffle.DecodeRaffle(acct.Data)
	if err != nil {
		return nil, err
	}
	if !r.Initialized {
		return nil, raffle.ErrRaffleUninitialized
	}
	return r, nil
}

// passphraseFlag unlocks the encrypted oracle key file.
var passphraseFlag = cli.StringFlag{
	Name:  "passphrase, p",
	Usage: "oracle key passphrase",
}

// needArgs enforces an exact positional argument count.
func needArgs(c *cli.Context, usage string, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("usage: %s %s", c.Command.Name, usage)
	}
	return nil
}

// parseAddr parses a base58 address argument.
func parseAddr(role, arg string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(arg)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("bad %s address %q: %w", role, arg, err)
	}
	return key, nil
}

// parseUint parses an unsigned decimal argument of the given bit width.
func parseUint(role, arg string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(arg, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q: %w", role, arg, err)
	}
	return v, nil
}
