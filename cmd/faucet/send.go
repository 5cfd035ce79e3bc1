package main

import (
	"github.com/urfave/cli/v2"
)

var send = cli.Command{
	Name:  "send",
	Usage: "dispense one unit of an asset to the given address",
	Flags: []cli.Flag{
		&networkFlag,
		&cli.StringFlag{
			Name:  "address",
			Usage: "the address of the recipient",
		},
		&cli.StringFlag{
			Name:  "asset",
			Usage: "the asset to send, defaults to the asset of the network",
		},
	},
	Action: sendAction,
}

type sendReply struct {
	DispenseID string `json:"dispense_id"`
	Network    string `json:"network"`
	Recipient  string `json:"recipient"`
	Asset      string `json:"asset"`
	Amount     string `json:"amount"`
	Fee        uint64 `json:"fee"`
	TxID       string `json:"txid"`
}

func sendAction(ctx *cli.Context) error {
	addr := ctx.String("address")
	if addr == "" {
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

	result, err := faucet.DispenseAssetTo(
		ctx.Context, network, addr, ctx.String("asset"),
	)
	if err != nil {
		return err
	}

	printRespJSON(sendReply{
		DispenseID: result.DispenseID,
		Network:    result.Network.String(),
		Recipient:  result.Recipient,
		Asset:      result.Asset.Ticker(),
		Amount:     result.FormattedAmount(),
		Fee:        result.Fee,
		TxID:       result.TxID,
	})

	return nil
}
