package domain

import "errors"

var (
	// ErrInvalidAddress is returned when the recipient is not a valid address
	// for the selected network.
	ErrInvalidAddress = errors.New("invalid recipient address")
	// ErrNoFeeOutputs is returned when the wallet holds no base-asset outputs
	// to pay network fees with.
	ErrNoFeeOutputs = errors.New("wallet has no fee-paying outputs")
	// ErrNoAssetOutputs is returned when the wallet holds no outputs of the
	// requested asset.
	ErrNoAssetOutputs = errors.New("wallet has no outputs for the requested asset")
	// ErrInsufficientFunds is returned when the selected fee output cannot
	// cover the fee and the dust carriers leaving a positive change.
	ErrInsufficientFunds = errors.New("selected output does not have enough funds")
	// ErrInsufficientTokenBalance is returned when the send amount exceeds the
	// balance of the requested asset.
	ErrInsufficientTokenBalance = errors.New("insufficient token balance")
	// ErrSigning is returned when the signing key cannot be derived or an
	// input cannot be signed.
	ErrSigning = errors.New("failed to sign transaction")
	// ErrBroadcastRejected is returned when the network refuses the
	// transaction.
	ErrBroadcastRejected = errors.New("transaction rejected by the network")
	// ErrUpstreamUnavailable is returned on I/O failures of the explorer or
	// node the faucet depends on.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	// ErrUnsupportedNetwork ...
	ErrUnsupportedNetwork = errors.New("network is not supported")
	// ErrUnknownAsset is returned when the asset metadata source does not know
	// the requested asset.
	ErrUnknownAsset = errors.New("unknown asset")
	// ErrInvalidTransaction is returned by the builder when given no inputs or
	// when outputs and fee would exceed inputs.
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrDustOutput is returned when an output falls below the network dust
	// threshold.
	ErrDustOutput = errors.New("output is below the dust threshold")
	// ErrDispenseNotFound ...
	ErrDispenseNotFound = errors.New("dispense not found")
)
