package main

import (
	"github.com/urfave/cli/v2"
)

var address = cli.Command{
	Name:   "address",
	Usage:  "return the address holding the faucet funds",
	Flags:  []cli.Flag{&networkFlag},
	Action: addressAction,
}

func addressAction(ctx *cli.Context) error {
	network, err := getNetwork(ctx)
	if err != nil {
		return err
	}

	faucet, cleanup, err := getFaucetService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	addr, err := faucet.WalletAddress(network)
	if err != nil {
		return err
	}

	printRespJSON(map[string]string{
		"network": network.String(),
		"address": addr,
	})

	return nil
}
