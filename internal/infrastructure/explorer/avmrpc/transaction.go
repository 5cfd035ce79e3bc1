package avmrpc

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/chain/avm"
)

type issueTxParams struct {
	Tx       string `json:"tx"`
	Encoding string `json:"encoding"`
}

type issueTxResult struct {
	TxID string `json:"txID"`
}

func (s *service) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	raw, err := hex.DecodeString(txHex)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidTransaction, err)
	}

	params := issueTxParams{
		Tx:       avm.EncodeHex(raw),
		Encoding: hexEncoding,
	}
	var result issueTxResult
	if err := s.call(ctx, "avm.issueTx", params, &result); err != nil {
		if rpcErr, ok := isRPCError(err); ok {
			return "", fmt.Errorf("%w: %s", domain.ErrBroadcastRejected, rpcErr)
		}
		return "", err
	}
	return result.TxID, nil
}
