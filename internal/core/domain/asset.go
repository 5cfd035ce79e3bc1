package domain

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// AssetDescriptor describes how to scale a human-facing amount of an asset
// into its smallest unit.
type AssetDescriptor struct {
	AssetID      string
	Denomination uint8
	Symbol       string
	Name         string
}

// SendAmount returns the fixed quantity the faucet dispenses, that is one
// denomination unit of the asset expressed in smallest units.
func (a AssetDescriptor) SendAmount() (uint64, error) {
	amount := uint64(1)
	for i := uint8(0); i < a.Denomination; i++ {
		if amount > math.MaxUint64/10 {
			return 0, fmt.Errorf(
				"%w: denomination %d exceeds the representable range",
				ErrInsufficientTokenBalance, a.Denomination,
			)
		}
		amount *= 10
	}
	return amount, nil
}

// FormatAmount returns the given amount of smallest units as a decimal string
// in the asset's denomination.
func (a AssetDescriptor) FormatAmount(amount uint64) string {
	d := decimal.NewFromBigInt(
		new(big.Int).SetUint64(amount), -int32(a.Denomination),
	)
	return d.StringFixed(int32(a.Denomination))
}

// Ticker returns the symbol of the asset or its identifier if the asset has
// no symbol.
func (a AssetDescriptor) Ticker() string {
	if a.Symbol != "" {
		return a.Symbol
	}
	return a.AssetID
}
