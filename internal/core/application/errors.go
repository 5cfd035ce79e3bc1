package application

import (
	"errors"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

// ErrorKind tells callers how to report a failed request.
type ErrorKind int

const (
	// ErrKindNone is the kind of a nil error.
	ErrKindNone ErrorKind = iota
	// ErrKindUnprocessable is the kind of every error the faucet core can
	// return: the request is rejected and the error message is the only detail
	// to show.
	ErrKindUnprocessable
	// ErrKindInternal is the kind of any other error.
	ErrKindInternal
)

var unprocessableErrors = []error{
	domain.ErrInvalidAddress,
	domain.ErrNoFeeOutputs,
	domain.ErrNoAssetOutputs,
	domain.ErrInsufficientFunds,
	domain.ErrInsufficientTokenBalance,
	domain.ErrSigning,
	domain.ErrBroadcastRejected,
	domain.ErrUpstreamUnavailable,
	domain.ErrUnsupportedNetwork,
	domain.ErrUnknownAsset,
	domain.ErrInvalidTransaction,
	domain.ErrDustOutput,
}

// KindOf returns the kind of the given error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ErrKindNone
	}
	for _, e := range unprocessableErrors {
		if errors.Is(err, e) {
			return ErrKindUnprocessable
		}
	}
	return ErrKindInternal
}

func (k ErrorKind) String() string {
	switch k {
	case ErrKindNone:
		return "none"
	case ErrKindUnprocessable:
		return "unprocessable"
	default:
		return "internal"
	}
}
