package main

import (
	"fmt"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var validate = cli.Command{
	Name:      "validate",
	Usage:     "check whether an address is valid for the network",
	ArgsUsage: "<address>",
	Flags:     []cli.Flag{&networkFlag},
	Action:    validateAction,
}

func validateAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}
	network, err := getNetwork(ctx)
	if err != nil {
		return err
	}

	faucet, cleanup, err := getFaucetService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := ctx.Args().First()
	if !faucet.ValidateAddress(network, addr) {
		return fmt.Errorf(
			"%w: %q is not a valid %s address", domain.ErrInvalidAddress, addr,
			network,
		)
	}

	printRespJSON(map[string]interface{}{
		"address": addr,
		"network": network.String(),
		"valid":   true,
	})

	return nil
}
