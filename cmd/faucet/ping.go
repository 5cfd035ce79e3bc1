package main

import (
	"github.com/urfave/cli/v2"
)

var ping = cli.Command{
	Name:   "ping",
	Usage:  "check the upstream services of every enabled network",
	Action: pingAction,
}

func pingAction(ctx *cli.Context) error {
	faucet, cleanup, err := getFaucetService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	status := make(map[string]string)
	var failed error
	for _, network := range faucet.Networks() {
		if err := faucet.Ping(ctx.Context, network); err != nil {
			status[network.String()] = err.Error()
			failed = err
			continue
		}
		status[network.String()] = "ok"
	}

	printRespJSON(status)

	return failed
}
