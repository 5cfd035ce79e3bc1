package domain

import "fmt"

// UnspentKey represent the ID of an UnspentOutput, composed by its txid and
// vout.
type UnspentKey struct {
	TxID string
	VOut uint32
}

func (k UnspentKey) String() string {
	return fmt.Sprintf("%s:%d", k.TxID, k.VOut)
}

// UnspentOutput is a spendable output of the faucet wallet as returned by the
// explorer at a point in time.
// An empty AssetID means the output holds the chain's base asset.
// Value is the raw on-chain amount of the output: satoshis for base coins and
// token carriers, asset units for native assets.
// TokenAmount is the quantity of AssetID held by the output.
type UnspentOutput struct {
	TxID        string
	VOut        uint32
	Value       uint64
	AssetID     string
	IsToken     bool
	TokenAmount uint64
}

// Key returns the outpoint of the unspent.
func (u UnspentOutput) Key() UnspentKey {
	return UnspentKey{u.TxID, u.VOut}
}

// IsBaseAsset returns whether the unspent can be used to pay network fees.
func (u UnspentOutput) IsBaseAsset() bool {
	return u.AssetID == ""
}

// BaseValue returns the amount of base asset the unspent contributes to a
// transaction of the given model. Token carriers of marker chains hold base
// asset too.
func (u UnspentOutput) BaseValue(model NetworkModel) uint64 {
	if u.IsBaseAsset() || model == TokenMarker {
		return u.Value
	}
	return 0
}
