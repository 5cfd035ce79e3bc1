package avmrpc

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

type getAssetDescriptionParams struct {
	AssetID string `json:"assetID"`
}

type getAssetDescriptionResult struct {
	AssetID      string      `json:"assetID"`
	Name         string      `json:"name"`
	Symbol       string      `json:"symbol"`
	Denomination json.Number `json:"denomination"`
}

// DescribeAsset accepts either an asset ID or an alias, ie. AVAX. The
// returned descriptor always carries the asset ID.
func (s *service) DescribeAsset(
	ctx context.Context, assetID string,
) (*domain.AssetDescriptor, error) {
	var result getAssetDescriptionResult
	if err := s.call(
		ctx, "avm.getAssetDescription",
		getAssetDescriptionParams{assetID}, &result,
	); err != nil {
		if rpcErr, ok := isRPCError(err); ok {
			return nil, fmt.Errorf(
				"%w: %s: %s", domain.ErrUnknownAsset, assetID, rpcErr,
			)
		}
		return nil, err
	}

	denomination, err := strconv.ParseUint(result.Denomination.String(), 10, 8)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: %s: invalid denomination %q", domain.ErrUnknownAsset, assetID,
			result.Denomination,
		)
	}
	id := result.AssetID
	if id == "" {
		id = assetID
	}

	return &domain.AssetDescriptor{
		AssetID:      id,
		Denomination: uint8(denomination),
		Symbol:       result.Symbol,
		Name:         result.Name,
	}, nil
}
