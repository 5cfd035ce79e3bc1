package esplora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

// asset accepts both the Liquid registry fields (precision, ticker) and the
// ones of SLP token indexers (decimals, symbol).
type asset struct {
	AssetID   string `json:"asset_id"`
	TokenID   string `json:"tokenId"`
	Precision *uint8 `json:"precision"`
	Decimals  *uint8 `json:"decimals"`
	Ticker    string `json:"ticker"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
}

func (a asset) toDescriptor(assetID string) domain.AssetDescriptor {
	desc := domain.AssetDescriptor{
		AssetID: assetID,
		Symbol:  a.Ticker,
		Name:    a.Name,
	}
	if desc.Symbol == "" {
		desc.Symbol = a.Symbol
	}
	if a.Precision != nil {
		desc.Denomination = *a.Precision
	} else if a.Decimals != nil {
		desc.Denomination = *a.Decimals
	}
	return desc
}

func (e *esplora) DescribeAsset(
	ctx context.Context, assetID string,
) (*domain.AssetDescriptor, error) {
	url := fmt.Sprintf("%s/asset/%s", e.apiURL, assetID)
	resp, err := e.get(ctx, url)
	if err != nil {
		var statusErr *statusError
		if errors.As(err, &statusErr) && statusErr.status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAsset, assetID)
		}
		return nil, err
	}

	var a asset
	if err := json.Unmarshal([]byte(resp), &a); err != nil {
		return nil, fmt.Errorf(
			"%w: error on parsing asset: %s", domain.ErrUpstreamUnavailable, err,
		)
	}
	if a.Precision == nil && a.Decimals == nil {
		return nil, fmt.Errorf(
			"%w: %s has no denomination", domain.ErrUnknownAsset, assetID,
		)
	}

	desc := a.toDescriptor(assetID)
	return &desc, nil
}
