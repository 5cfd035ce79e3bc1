package ports

import (
	"context"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

// UtxoSource returns the spendable outputs of an address.
type UtxoSource interface {
	GetUnspents(ctx context.Context, addr string) ([]domain.UnspentOutput, error)
}

// AssetMetadataSource returns the description of an asset.
type AssetMetadataSource interface {
	DescribeAsset(
		ctx context.Context, assetID string,
	) (*domain.AssetDescriptor, error)
}

// Broadcaster submits a signed transaction to the network and returns its
// identifier.
type Broadcaster interface {
	BroadcastTransaction(ctx context.Context, txHex string) (string, error)
}

// Explorer groups the upstream services the faucet depends on for a network.
// Ping returns an error if the upstream service is not reachable.
type Explorer interface {
	Ping(ctx context.Context) error
	UtxoSource
	AssetMetadataSource
	Broadcaster
}
