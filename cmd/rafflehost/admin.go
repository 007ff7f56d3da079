package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/solraffle/libraffle-go/wire"
)

var initializeConfigCommand = cli.Command{
	Name:      "initialize-config",
	Usage:     "create the program config at its derived address",
	ArgsUsage: "<admin> <treasury> <ticket-price> <fee-bps>",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runInitializeConfig,
}

func runInitializeConfig(c *cli.Context) error {
	if err := needArgs(c, "<admin> <treasury> <ticket-price> <fee-bps>", 4); err != nil {
		return err
	}
	admin, err := parseAddr("admin", c.Args().Get(0))
	if err != nil {
		return err
	}
	treasury, err := parseAddr("treasury", c.Args().Get(1))
	if err != nil {
		return err
	}
	price, err := parseUint("ticket price", c.Args().Get(2), 64)
	if err != nil {
		return err
	}
	feeBps, err := parseUint("fee rate", c.Args().Get(3), 16)
	if err != nil {
		return err
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	req, err := wire.NewInitializeConfigRequest(h.program, admin, treasury, price, uint16(feeBps))
	if err != nil {
		return err
	}
	if err := h.submit(req); err != nil {
		return err
	}
	fmt.Println("config initialized at", req.Accounts[1].Key)
	return nil
}

var updateAdminCommand = cli.Command{
	Name:      "update-admin",
	Usage:     "hand the config to a new admin",
	ArgsUsage: "<admin> <new-admin>",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runUpdateAdmin,
}

func runUpdateAdmin(c *cli.Context) error {
	if err := needArgs(c, "<admin> <new-admin>", 2); err != nil {
		return err
	}
	admin, err := parseAddr("admin", c.Args().Get(0))
	if err != nil {
		return err
	}
	newAdmin, err := parseAddr("new admin", c.Args().Get(1))
	if err != nil {
		return err
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	req, err := wire.NewUpdateAdminRequest(h.program, admin, newAdmin)
	if err != nil {
		return err
	}
	if err := h.submit(req); err != nil {
		return err
	}
	fmt.Println("admin is now", newAdmin)
	return nil
}

var updateFeeAddressCommand = cli.Command{
	Name:      "update-fee-address",
	Usage:     "change the fee treasury",
	ArgsUsage: "<admin> <new-treasury>",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runUpdateFeeAddress,
}

func runUpdateFeeAddress(c *cli.Context) error {
	if err := needArgs(c, "<admin> <new-treasury>", 2); err != nil {
		return err
	}
	admin, err := parseAddr("admin", c.Args().Get(0))
	if err != nil {
		return err
	}
	newTreasury, err := parseAddr("new treasury", c.Args().Get(1))
	if err != nil {
		return err
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	req, err := wire.NewUpdateFeeAddressRequest(h.program, admin, newTreasury)
	if err != nil {
		return err
	}
	if err := h.submit(req); err != nil {
		return err
	}
	fmt.Println("treasury is now", newTreasury)
	return nil
}

var updateTicketPriceCommand = cli.Command{
	Name:      "update-ticket-price",
	Usage:     "change the config ticket price",
	ArgsUsage: "<admin> <new-price>",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runUpdateTicketPrice,
}

func runUpdateTicketPrice(c *cli.Context) error {
	if err := needArgs(c, "<admin> <new-price>", 2); err != nil {
		return err
	}
	admin, err := parseAddr("admin", c.Args().Get(0))
	if err != nil {
		return err
	}
	price, err := parseUint("ticket price", c.Args().Get(1), 64)
	if err != nil {
		return err
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	req, err := wire.NewUpdateTicketPriceRequest(h.program, admin, price)
	if err != nil {
		return err
	}
	if err := h.submit(req); err != nil {
		return err
	}
	fmt.Println("ticket price is now", price)
	return nil
}

var updateFeePercentageCommand = cli.Command{
	Name:      "update-fee-percentage",
	Usage:     "change the config fee rate",
	ArgsUsage: "<admin> <new-bps>",
	Flags:     []cli.Flag{passphraseFlag},
	Action:    runUpdateFeePercentage,
}

func runUpdateFeePercentage(c *cli.Context) error {
	if err := needArgs(c, "<admin> <new-bps>", 2); err != nil {
		return err
	}
	admin, err := parseAddr("admin", c.Args().Get(0))
	if err != nil {
		return err
	}
	feeBps, err := parseUint("fee rate", c.Args().Get(1), 16)
	if err != nil {
		return err
	}

	h, err := openEngine(c)
	if err != nil {
		return err
	}
	defer h.Close()

	req, err := wire.NewUpdateFeePercentageRequest(h.program, admin, uint16(feeBps))
	if err != nil {
		return err
	}
	if err := h.submit(req); err != nil {
		return err
	}
	fmt.Printf("fee rate is now %d bps\n", feeBps)
	return nil
}
