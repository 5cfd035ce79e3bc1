package db_test

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

var networks = []domain.NetworkKind{
	domain.NetworkSLP, domain.NetworkLiquid, domain.NetworkAVM,
}

// makeRandomDispenses returns dispenses with increasing timestamps, every
// other one sent to the given recipient.
func makeRandomDispenses(num int, recipient string) []domain.Dispense {
	dispenses := make([]domain.Dispense, 0, num)
	for i := 0; i < num; i++ {
		to := randomHex(20)
		if i%2 == 0 {
			to = recipient
		}
		dispenses = append(dispenses, domain.Dispense{
			ID:        randomId(),
			Network:   networks[i%len(networks)],
			Recipient: to,
			AssetID:   randomHex(32),
			Amount:    uint64(i + 1),
			TxID:      randomHex(32),
			Timestamp: int64(1662688000 + i),
		})
	}
	return dispenses
}

func randomHex(len int) string {
	return hex.EncodeToString(randomBytes(len))
}

func randomId() string {
	return uuid.New().String()
}

func randomBytes(len int) []byte {
	b := make([]byte, len)
	//nolint
	rand.Read(b)
	return b
}
