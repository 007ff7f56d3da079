package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"time"

	"github.com/gagliardetto/solana-go"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/solraffle/libraffle-go/config"
	"github.com/solraffle/libraffle-go/ledger"
	"github.com/solraffle/libraffle-go/raffle"
	"github.com/solraffle/libraffle-go/vrf"
)

var initConfigCommand = cli.Command{
	Name:      "init-config",
	Usage:     "write a fresh configuration file",
	ArgsUsage: "<program>",
	Flags: []cli.Flag{
		cli.StringFlag{Name: "datadir", Usage: "data directory `DIR`", Value: config.DefaultDataDir()},
		cli.StringFlag{Name: "loglevel", Usage: "debug, info, warn or error", Value: "info"},
		cli.StringFlag{Name: "logfile", Usage: "log file `PATH` (empty logs to stderr)"},
	},
	Action: runInitConfig,
}

func runInitConfig(c *cli.Context) error {
	if err := needArgs(c, "<program>", 1); err != nil {
		return err
	}
	dataDir := c.String("datadir")
	cfg := config.Config{
		DataDir:   dataDir,
		Program:   c.Args().Get(0),
		LogLevel:  c.String("loglevel"),
		LogFile:   c.String("logfile"),
		OracleKey: filepath.Join(dataDir, "oracle.key"),
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	path := c.GlobalString("config")
	if err := config.SaveConfig(path, cfg); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}

var showConfigCommand = cli.Command{
	Name:   "show-config",
	Usage:  "print the active configuration",
	Action: runShowConfig,
}

func runShowConfig(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.GlobalString("config"))
	if err != nil {
		return err
	}
	fmt.Printf("datadir = %s\n", cfg.DataDir)
	fmt.Printf("program = %s\n", cfg.Program)
	fmt.Printf("loglevel = %s\n", cfg.LogLevel)
	fmt.Printf("logfile = %s\n", cfg.LogFile)
	fmt.Printf("oraclekey = %s\n", cfg.OracleKey)
	return nil
}

var keygenCommand = cli.Command{
	Name:   "keygen",
	Usage:  "create the encrypted oracle key",
	Flags:  []cli.Flag{passphraseFlag},
	Action: runKeygen,
}

func runKeygen(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.OracleKey); err == nil {
		return fmt.Errorf("oracle key already exists at %s", cfg.OracleKey)
	}

	sk, pub := vrf.GenerateKey()
	if err := vrf.SaveKeyFile(cfg.OracleKey, sk, c.String("passphrase")); err != nil {
		return err
	}
	pubBytes, err := pub.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal public key: %w", err)
	}
	fmt.Println("oracle key written to", cfg.OracleKey)
	fmt.Println("public key:", hex.EncodeToString(pubBytes))
	return nil
}

var fundCommand = cli.Command{
	Name:      "fund",
	Usage:     "credit an account with test ledger money",
	ArgsUsage: "<address> <amount>",
	Action:    runFund,
}

func runFund(c *cli.Context) error {
	if err := needArgs(c, "<address> <amount>", 2); err != nil {
		return err
	}
	key, err := parseAddr("account", c.Args().Get(0))
	if err != nil {
		return err
	}
	amount, err := parseUint("amount", c.Args().Get(1), 64)
	if err != nil {
		return err
	}

	h, err := openLedger(c)
	if err != nil {
		return err
	}
	defer h.Close()

	acct, err := h.store.GetAccount(key)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		acct = &ledger.Account{Key: key}
	} else if err != nil {
		return err
	}
	sum, carry := bits.Add64(acct.Balance, amount, 0)
	if carry != 0 {
		return fmt.Errorf("funding %s would overflow its balance", key)
	}
	acct.Balance = sum
	if err := h.store.PutAccounts([]*ledger.Account{acct}); err != nil {
		return err
	}
	fmt.Printf("%s now holds %d\n", key, acct.Balance)
	return nil
}

var provisionRaffleCommand = cli.Command{
	Name:   "provision-raffle",
	Usage:  "create an empty program-owned raffle account at a fresh address",
	Action: runProvisionRaffle,
}

func runProvisionRaffle(c *cli.Context) error {
	h, err := openLedger(c)
	if err != nil {
		return err
	}
	defer h.Close()

	// Raffle accounts live at ordinary addresses, not derived ones;
	// any fresh keypair address will do.
	key := solana.NewWallet().PublicKey()
	acct := &ledger.Account{
		Key:   key,
		Owner: h.program,
		Data:  make([]byte, raffle.RaffleSize),
	}
	if err := h.store.PutAccounts([]*ledger.Account{acct}); err != nil {
		return err
	}
	fmt.Println(key.String())
	return nil
}

var showCommand = cli.Command{
	Name:      "show",
	Usage:     "decode and print an account",
	ArgsUsage: "<address>",
	Action:    runShow,
}

func runShow(c *cli.Context) error {
	if err := needArgs(c, "<address>", 1); err != nil {
		return err
	}
	key, err := parseAddr("account", c.Args().Get(0))
	if err != nil {
		return err
	}

	h, err := openLedger(c)
	if err != nil {
		return err
	}
	defer h.Close()

	acct, err := h.store.GetAccount(key)
	if err != nil {
		return err
	}
	fmt.Printf("address: %s\n", acct.Key)
	fmt.Printf("owner:   %s\n", acct.Owner)
	fmt.Printf("balance: %d\n", acct.Balance)

	// The three record types have distinct sizes, so the data length
	// identifies the layout.
	switch len(acct.Data) {
	case 0:
		return nil
	case raffle.ConfigSize:
		cfg, err := raffle.DecodeConfig(acct.Data)
		if err != nil {
			return err
		}
		printConfig(cfg)
	case raffle.RaffleSize:
		r, err := raffle.DecodeRaffle(acct.Data)
		if err != nil {
			return err
		}
		printRaffle(r)
	case raffle.AllocationSize:
		alloc, err := raffle.DecodeAllocation(acct.Data)
		if err != nil {
			return err
		}
		printAllocation(alloc)
	default:
		fmt.Printf("data:    %d bytes (not a raffle record)\n", len(acct.Data))
	}
	return nil
}

func printConfig(cfg *raffle.Config) {
	fmt.Println("kind:    config")
	if !cfg.Initialized {
		fmt.Println("state:   uninitialized")
		return
	}
	fmt.Printf("admin:        %s\n", cfg.Admin)
	fmt.Printf("treasury:     %s\n", cfg.Treasury)
	fmt.Printf("ticket price: %d\n", cfg.TicketPrice)
	fmt.Printf("fee:          %d bps\n", cfg.FeeBasisPoints)
}

func printRaffle(r *raffle.Raffle) {
	fmt.Println("kind:    raffle")
	if !r.Initialized {
		fmt.Println("state:   uninitialized")
		return
	}
	fmt.Printf("title:        %s\n", r.TitleString())
	fmt.Printf("authority:    %s\n", r.Authority)
	fmt.Printf("status:       %s\n", r.Status)
	fmt.Printf("ends:         %s\n", time.Unix(r.EndTime, 0).UTC().Format(time.RFC3339))
	fmt.Printf("ticket price: %d\n", r.TicketPrice)
	fmt.Printf("fee:          %d bps\n", r.FeeBasisPoints)
	fmt.Printf("treasury:     %s\n", r.Treasury)
	fmt.Printf("tickets sold: %d\n", r.TicketsSold)
	if r.VrfRequestInProgress {
		fmt.Printf("oracle:       %s (pending)\n", r.VrfAccount)
	}
	if r.Status == raffle.StatusComplete {
		fmt.Printf("winner:       %s\n", r.Winner)
	}
}

func printAllocation(alloc *raffle.TicketAllocation) {
	fmt.Println("kind:    ticket allocation")
	if !alloc.Initialized {
		fmt.Println("state:   uninitialized")
		return
	}
	fmt.Printf("raffle:        %s\n", alloc.Raffle)
	fmt.Printf("purchaser:     %s\n", alloc.Purchaser)
	fmt.Printf("tickets:       %d\n", alloc.TicketCount)
	fmt.Printf("last purchase: %s\n", time.Unix(alloc.PurchaseTime, 0).UTC().Format(time.RFC3339))
}
