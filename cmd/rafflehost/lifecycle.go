package main

import (
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/solraffle/libraffle-go/raffle"
	"github.com/solraffle/libraffle-go/wire"
)

var createRaffleCommand = cli.Command{
	Name:      "create-raffle",
	Usage:     "initialize a provisioned raffle account",
	ArgsUsage: "<authority> <raffle> <title> <duration-seconds>",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runCreateRaffle,
}

func runCreateRaffle(c *cli.Context) error {
	if err := needArgs(c, "<authority> <raffle> <title> <duration-seconds>", 4); err != nil {
		return err
	}
	authority, err := parseAddr("authority", c.Args().Get(0))
	if err != nil {
		return err
	}
	raffleKey, err := parseAddr("raffle", c.Args().Get(1))
	if err != nil {
		return err
	}
	title := c.Args().Get(2)
	duration, err := parseUint("duration", c.Args().Get(3), 64)
	if err != nil {
		return err
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	req, err := wire.NewInitializeRaffleRequest(h.program, authority, raffleKey, title, duration)
	if err != nil {
		return err
	}
	if err := h.submit(req); err != nil {
		return err
	}
	fmt.Printf("raffle %q created at %s\n", title, raffleKey)
	return nil
}

var buyCommand = cli.Command{
	Name:      "buy",
	Usage:     "buy tickets in an active raffle",
	ArgsUsage: "<purchaser> <raffle> <count>",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runBuy,
}

func runBuy(c *cli.Context) error {
	if err := needArgs(c, "<purchaser> <raffle> <count>", 3); err != nil {
		return err
	}
	purchaser, err := parseAddr("purchaser", c.Args().Get(0))
	if err != nil {
		return err
	}
	raffleKey, err := parseAddr("raffle", c.Args().Get(1))
	if err != nil {
		return err
	}
	count, err := parseUint("ticket count", c.Args().Get(2), 64)
	if err != nil {
		return err
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	// The purchase pays into the raffle's snapshotted treasury, not
	// whatever the config says today.
	r, err := h.readRaffle(raffleKey)
	if err != nil {
		return err
	}
	req, err := wire.NewPurchaseTicketsRequest(h.program, purchaser, raffleKey, r.Treasury, count)
	if err != nil {
		return err
	}
	if err := h.submit(req); err != nil {
		return err
	}
	fmt.Printf("bought %d tickets, allocation at %s\n", count, req.Accounts[2].Key)
	return nil
}

var requestCommand = cli.Command{
	Name:      "request",
	Usage:     "request draw randomness for an ended raffle",
	ArgsUsage: "<initiator> <raffle>",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runRequest,
}

func runRequest(c *cli.Context) error {
	if err := needArgs(c, "<initiator> <raffle>", 2); err != nil {
		return err
	}
	initiator, err := parseAddr("initiator", c.Args().Get(0))
	if err != nil {
		return err
	}
	raffleKey, err := parseAddr("raffle", c.Args().Get(1))
	if err != nil {
		return err
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	// Each request gets a fresh handle account; the raffle records it so
	// later steps find it again.
	handle := solana.NewWallet().PublicKey()
	req, err := wire.NewRequestRandomnessRequest(initiator, raffleKey, handle)
	if err != nil {
		return err
	}
	if err := h.submit(req); err != nil {
		return err
	}
	fmt.Println("randomness requested, oracle handle", handle)
	return nil
}

var fulfillCommand = cli.Command{
	Name:      "fulfill",
	Usage:     "sign the pending randomness request for a raffle",
	ArgsUsage: "<raffle>",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runFulfill,
}

func runFulfill(c *cli.Context) error {
	if err := needArgs(c, "<raffle>", 1); err != nil {
		return err
	}
	raffleKey, err := parseAddr("raffle", c.Args().Get(0))
	if err != nil {
		return err
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	r, err := h.readRaffle(raffleKey)
	if err != nil {
		return err
	}
	if r.VrfAccount.IsZero() {
		return raffle.ErrRandomnessNotRequested
	}
	if err := h.oracle.Fulfill(r.VrfAccount); err != nil {
		return err
	}
	randomness, err := h.oracle.Result(r.VrfAccount)
	if err != nil {
		return err
	}
	fmt.Println("randomness", hex.EncodeToString(randomness[:]))
	return nil
}

var completeCommand = cli.Command{
	Name:      "complete",
	Usage:     "draw the winner and settle the prize",
	ArgsUsage: "<initiator> <raffle> <purchaser>...",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runComplete,
}

func runComplete(c *cli.Context) error {
	if c.NArg() < 3 {
		return fmt.Errorf("usage: %s <initiator> <raffle> <purchaser>...", c.Command.Name)
	}
	initiator, err := parseAddr("initiator", c.Args().Get(0))
	if err != nil {
		return err
	}
	raffleKey, err := parseAddr("raffle", c.Args().Get(1))
	if err != nil {
		return err
	}
	purchasers := make([]solana.PublicKey, 0, c.NArg()-2)
	for _, arg := range c.Args()[2:] {
		p, err := parseAddr("purchaser", arg)
		if err != nil {
			return err
		}
		purchasers = append(purchasers, p)
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	raffleAcct, err := h.store.GetAccount(raffleKey)
	if err != nil {
		return err
	}
	r, err := raffle.DecodeRaffle(raffleAcct.Data)
	if err != nil {
		return err
	}
	if !r.Initialized {
		return raffle.ErrRaffleUninitialized
	}
	if r.VrfAccount.IsZero() {
		return raffle.ErrRandomnessNotRequested
	}

	// The winner account must be passed writable, so the draw is run
	// here first against the same oracle result the engine will verify.
	randomness, err := h.oracle.Result(r.VrfAccount)
	if err != nil {
		return err
	}
	index, err := raffle.WinnerIndex(randomness, r.TicketsSold)
	if err != nil {
		return err
	}
	refs := make([]raffle.AllocationRef, 0, len(purchasers))
	for _, p := range purchasers {
		allocAddr, err := raffle.DeriveAllocationAddress(h.program, raffleKey, p)
		if err != nil {
			return err
		}
		acct, err := h.store.GetAccount(allocAddr)
		if err != nil {
			return err
		}
		alloc, err := raffle.DecodeAllocation(acct.Data)
		if err != nil {
			return err
		}
		refs = append(refs, raffle.AllocationRef{Address: allocAddr, Allocation: alloc})
	}
	won, err := raffle.ResolveWinner(h.program, raffleKey, r.TicketsSold, index, refs)
	if err != nil {
		return err
	}

	req, err := wire.NewCompleteRaffleWithVrfRequest(h.program, initiator, raffleKey, r.VrfAccount, won.Allocation.Purchaser, purchasers)
	if err != nil {
		return err
	}
	if err := h.submit(req); err != nil {
		return err
	}
	fmt.Printf("winner %s takes %d from ticket %d of %d\n",
		won.Allocation.Purchaser, raffleAcct.Balance, index, r.TicketsSold)
	return nil
}
