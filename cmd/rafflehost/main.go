// Command rafflehost is a reference host for the raffle settlement
// engine: it owns a bbolt-backed account ledger and a BLS randomness
// oracle, builds wire-encoded requests, and commits engine sessions
// only on success. It exists to drive the engine end to end from the
// command line; it is not a network service.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/solraffle/libraffle-go/config"
)

func main() {
	app := cli.NewApp()
	app.Name = "rafflehost"
	app.Usage = "reference host for the raffle settlement engine"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "configuration file `PATH`",
			Value: config.ConfigPath(config.DefaultDataDir()),
		},
	}
	app.Commands = []cli.Command{
		initConfigCommand,
		showConfigCommand,
		keygenCommand,
		fundCommand,
		provisionRaffleCommand,
		showCommand,
		initializeConfigCommand,
		updateAdminCommand,
		updateFeeAddressCommand,
		updateTicketPriceCommand,
		updateFeePercentageCommand,
		createRaffleCommand,
		buyCommand,
		requestCommand,
		fulfillCommand,
		completeCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "rafflehost:", err)
		os.Exit(1)
	}
}
