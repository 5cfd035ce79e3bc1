package main

import (
	"time"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/urfave/cli/v2"
)

var history = cli.Command{
	Name:  "history",
	Usage: "list past dispenses",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "address",
			Usage: "list only dispenses sent to this address",
		},
		&cli.IntFlag{
			Name:  "page",
			Usage: "the page number",
			Value: 1,
		},
		&cli.IntFlag{
			Name:  "page_size",
			Usage: "the number of dispenses per page",
			Value: 10,
		},
	},
	Action: historyAction,
}

type dispenseInfo struct {
	ID        string `json:"id"`
	Network   string `json:"network"`
	Recipient string `json:"recipient"`
	Asset     string `json:"asset"`
	Amount    uint64 `json:"amount"`
	TxID      string `json:"txid"`
	Date      string `json:"date"`
}

func historyAction(ctx *cli.Context) error {
	faucet, cleanup, err := getFaucetService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	page := domain.NewPage(ctx.Int("page"), ctx.Int("page_size"))
	dispenses, err := faucet.ListDispenses(
		ctx.Context, ctx.String("address"), page,
	)
	if err != nil {
		return err
	}

	infos := make([]dispenseInfo, 0, len(dispenses))
	for _, d := range dispenses {
		infos = append(infos, dispenseInfo{
			ID:        d.ID,
			Network:   d.Network.String(),
			Recipient: d.Recipient,
			Asset:     d.AssetID,
			Amount:    d.Amount,
			TxID:      d.TxID,
			Date:      time.Unix(d.Timestamp, 0).UTC().Format(time.RFC3339),
		})
	}

	printRespJSON(map[string]interface{}{
		"dispenses": infos,
	})

	return nil
}
