package domain

import "encoding/hex"

// OutputKind tells the role of an output within a faucet transaction.
type OutputKind int

const (
	// OutputMarker is the zero-valued output describing token movements.
	OutputMarker OutputKind = iota
	// OutputDust is the dust carrier sent to the recipient.
	OutputDust
	// OutputTokenChange is the secondary dust carrier returning token change
	// to the wallet.
	OutputTokenChange
	// OutputTransfer sends the asset to the recipient.
	OutputTransfer
	// OutputAssetChange returns the asset change to the wallet.
	OutputAssetChange
	// OutputChange returns the base asset remainder to the wallet.
	OutputChange
)

func (k OutputKind) String() string {
	switch k {
	case OutputMarker:
		return "marker"
	case OutputDust:
		return "dust"
	case OutputTokenChange:
		return "token-change"
	case OutputTransfer:
		return "transfer"
	case OutputAssetChange:
		return "asset-change"
	case OutputChange:
		return "change"
	default:
		return "unknown"
	}
}

// TransactionInput is an outpoint spent by a faucet transaction.
// Amount is the raw on-chain value of the spent output and is what the
// signature for the input commits to. Value and TokenAmount are its base and
// asset contributions to the transaction balance.
type TransactionInput struct {
	Outpoint    UnspentKey
	AssetID     string
	Amount      uint64
	Value       uint64
	TokenAmount uint64
}

// TransactionOutput is an output of a faucet transaction. Value is always
// expressed in base-asset units, TokenAmount in units of AssetID. Marker
// carries the token amount assigned to each following output.
type TransactionOutput struct {
	Kind        OutputKind
	Address     string
	AssetID     string
	Value       uint64
	TokenAmount uint64
	Marker      []uint64
}

// BalanceTransfer is the single instruction of account-style transfers.
type BalanceTransfer struct {
	AssetID string
	Amount  uint64
	To      []string
	From    []string
	Change  []string
	Memo    string
}

// UnsignedTransaction is the ordered set of inputs and outputs built for a
// dispense. Index 0 is always the fee-paying input.
type UnsignedTransaction struct {
	Model    NetworkModel
	AssetID  string
	Inputs   []TransactionInput
	Outputs  []TransactionOutput
	Fee      uint64
	Transfer *BalanceTransfer
}

// Signature is the signature for the input at Index, bound to the input's
// Amount.
type Signature struct {
	Index  int
	Amount uint64
	Bytes  []byte
	PubKey []byte
}

// SignedTransaction is an UnsignedTransaction with one signature per input,
// serialized and ready to be broadcast.
type SignedTransaction struct {
	Tx         *UnsignedTransaction
	Signatures []Signature
	Raw        []byte
	TxID       string
}

// Hex returns the hex encoded serialization of the transaction.
func (s *SignedTransaction) Hex() string {
	return hex.EncodeToString(s.Raw)
}

// IsComplete returns whether every input is signed with a signature bound to
// its own index and amount.
func (s *SignedTransaction) IsComplete() bool {
	if s.Tx == nil || len(s.Signatures) != len(s.Tx.Inputs) {
		return false
	}
	for i, sig := range s.Signatures {
		if sig.Index != i || sig.Amount != s.Tx.Inputs[i].Amount {
			return false
		}
		if len(sig.Bytes) == 0 {
			return false
		}
	}
	return true
}
