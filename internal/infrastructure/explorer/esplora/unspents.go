package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

const slpBaton = "baton"

type status struct {
	Confirmed bool `json:"confirmed"`
}

// slpInfo is the token metadata added by SLP indexers to esplora unspents.
type slpInfo struct {
	TokenID string      `json:"tokenId"`
	Amount  json.Number `json:"amount"`
	Type    string      `json:"type"`
	Valid   bool        `json:"valid"`
}

type utxo struct {
	Hash   string   `json:"txid"`
	Index  uint32   `json:"vout"`
	Value  *uint64  `json:"value"`
	Asset  string   `json:"asset"`
	Status status   `json:"status"`
	Slp    *slpInfo `json:"slp"`
}

func (e *esplora) GetUnspents(
	ctx context.Context, addr string,
) ([]domain.UnspentOutput, error) {
	url := fmt.Sprintf("%s/address/%s/utxo", e.apiURL, addr)
	resp, err := e.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var utxos []utxo
	if err := json.Unmarshal([]byte(resp), &utxos); err != nil {
		return nil, fmt.Errorf(
			"%w: error on parsing utxos: %s", domain.ErrUpstreamUnavailable, err,
		)
	}

	unspents := make([]domain.UnspentOutput, 0, len(utxos))
	for _, u := range utxos {
		unspent, ok, err := e.toUnspent(u)
		if err != nil {
			return nil, err
		}
		if ok {
			unspents = append(unspents, unspent)
		}
	}
	return unspents, nil
}

// toUnspent returns false for outputs the faucet can't spend safely:
// confidential ones, whose value is not revealed, and outputs flagged as
// invalid by the token indexer.
func (e *esplora) toUnspent(u utxo) (domain.UnspentOutput, bool, error) {
	if u.Value == nil {
		return domain.UnspentOutput{}, false, nil
	}
	unspent := domain.UnspentOutput{
		TxID:  u.Hash,
		VOut:  u.Index,
		Value: *u.Value,
	}

	if e.kind == domain.NetworkLiquid {
		if u.Asset == "" {
			return unspent, false, nil
		}
		if u.Asset != e.baseAssetID {
			unspent.AssetID = u.Asset
			unspent.IsToken = true
			unspent.TokenAmount = unspent.Value
		}
		return unspent, true, nil
	}

	if u.Slp == nil {
		return unspent, true, nil
	}
	if !u.Slp.Valid {
		return unspent, false, nil
	}
	unspent.AssetID = u.Slp.TokenID
	if u.Slp.Type == slpBaton {
		return unspent, true, nil
	}
	amount, err := strconv.ParseUint(u.Slp.Amount.String(), 10, 64)
	if err != nil {
		return unspent, false, fmt.Errorf(
			"%w: invalid token amount for utxo %s:%d: %s",
			domain.ErrUpstreamUnavailable, u.Hash, u.Index, err,
		)
	}
	unspent.IsToken = true
	unspent.TokenAmount = amount
	return unspent, true, nil
}
