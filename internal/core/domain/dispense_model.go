package domain

import (
	"time"

	"github.com/google/uuid"
)

// Dispense is the record of a faucet transaction accepted by the network.
type Dispense struct {
	ID        string
	Network   NetworkKind
	Recipient string
	AssetID   string
	Amount    uint64
	TxID      string
	Timestamp int64
}

// NewDispense returns a new record for a broadcasted transaction.
func NewDispense(
	network NetworkKind, recipient, assetID string, amount uint64, txid string,
) Dispense {
	return Dispense{
		ID:        uuid.New().String(),
		Network:   network,
		Recipient: recipient,
		AssetID:   assetID,
		Amount:    amount,
		TxID:      txid,
		Timestamp: time.Now().Unix(),
	}
}
