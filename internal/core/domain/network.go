package domain

import "fmt"

// NetworkKind identifies one of the chains the faucet can dispense on.
type NetworkKind string

const (
	// NetworkSLP is a token-marker UTXO chain: tokens ride on dust outputs
	// described by an OP_RETURN marker.
	NetworkSLP NetworkKind = "slp"
	// NetworkLiquid is a native-asset UTXO chain: every output carries an
	// explicit asset tag and the fee is an explicit output.
	NetworkLiquid NetworkKind = "liquid"
	// NetworkAVM is an account-style chain transferring balances through a
	// single instruction with sender, recipient and change addresses.
	NetworkAVM NetworkKind = "avm"
)

// NetworkModel drives how the transaction builder lays out a transfer.
type NetworkModel int

const (
	TokenMarker NetworkModel = iota
	NativeAsset
	Account
)

var networkModels = map[NetworkKind]NetworkModel{
	NetworkSLP:    TokenMarker,
	NetworkLiquid: NativeAsset,
	NetworkAVM:    Account,
}

// ParseNetworkKind returns the NetworkKind matching the given name.
func ParseNetworkKind(name string) (NetworkKind, error) {
	kind := NetworkKind(name)
	if _, ok := networkModels[kind]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedNetwork, name)
	}
	return kind, nil
}

// Model returns the transaction model used by the network.
func (k NetworkKind) Model() NetworkModel {
	return networkModels[k]
}

func (k NetworkKind) String() string {
	return string(k)
}

// BaseDustCount returns the number of dust carriers every transfer of the
// model pays for out of the fee input.
func (m NetworkModel) BaseDustCount() uint64 {
	if m == TokenMarker {
		return 1
	}
	return 0
}

func (m NetworkModel) String() string {
	switch m {
	case TokenMarker:
		return "token-marker"
	case NativeAsset:
		return "native-asset"
	case Account:
		return "account"
	default:
		return "unknown"
	}
}
