package avmrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/chain/avm"
)

const (
	utxosPageSize = 1024
	hexEncoding   = "hex"
)

type index struct {
	Address string `json:"address"`
	UTXO    string `json:"utxo"`
}

type getUTXOsParams struct {
	Addresses  []string `json:"addresses"`
	Limit      int      `json:"limit"`
	StartIndex *index   `json:"startIndex,omitempty"`
	Encoding   string   `json:"encoding"`
}

type getUTXOsResult struct {
	NumFetched json.Number `json:"numFetched"`
	UTXOs      []string    `json:"utxos"`
	EndIndex   index       `json:"endIndex"`
}

func (s *service) GetUnspents(
	ctx context.Context, addr string,
) ([]domain.UnspentOutput, error) {
	unspents := make([]domain.UnspentOutput, 0)
	var startIndex *index

	for {
		params := getUTXOsParams{
			Addresses:  []string{addr},
			Limit:      utxosPageSize,
			StartIndex: startIndex,
			Encoding:   hexEncoding,
		}
		var result getUTXOsResult
		if err := s.call(ctx, "avm.getUTXOs", params, &result); err != nil {
			return nil, upstreamError(err)
		}

		for _, str := range result.UTXOs {
			b, err := avm.DecodeHex(str)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, err)
			}
			unspent, ok, err := avm.DecodeUTXO(b, s.feeAssetID)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, err)
			}
			if ok {
				unspents = append(unspents, unspent)
			}
		}

		fetched, err := strconv.Atoi(result.NumFetched.String())
		if err != nil {
			return nil, fmt.Errorf(
				"%w: invalid number of fetched utxos: %s",
				domain.ErrUpstreamUnavailable, err,
			)
		}
		if fetched < utxosPageSize {
			return unspents, nil
		}
		endIndex := result.EndIndex
		startIndex = &endIndex
	}
}

func upstreamError(err error) error {
	if rpcErr, ok := isRPCError(err); ok {
		return fmt.Errorf("%w: %s", domain.ErrUpstreamUnavailable, rpcErr)
	}
	return err
}
