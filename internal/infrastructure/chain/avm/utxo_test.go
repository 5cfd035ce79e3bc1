package avm

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

func TestHexEncoding(t *testing.T) {
	t.Parallel()

	payload := []byte("payload")
	encoded := EncodeHex(payload)
	require.Equal(t, "0x", encoded[:2])

	decoded, err := DecodeHex(encoded)
	require.NoError(t, err)
	require.Equal(t, payload, decoded)

	for _, str := range []string{"0xzz", "0x01", encoded[:len(encoded)-2] + "00"} {
		_, err := DecodeHex(str)
		require.ErrorIs(t, err, ErrInvalidHex, str)
	}
}

func TestDecodeUTXO(t *testing.T) {
	t.Parallel()

	txID := sha256.Sum256([]byte("tx"))
	avax, err := decodeID(avaxID)
	require.NoError(t, err)
	token, err := decodeID(tokenID)
	require.NoError(t, err)
	address := make([]byte, addressLen)

	unspent, ok, err := DecodeUTXO(
		EncodeUTXO(txID, 1, avax, 5000000, address), avaxID,
	)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.UnspentOutput{
		TxID: EncodeID(txID), VOut: 1, Value: 5000000,
	}, unspent)

	unspent, ok, err = DecodeUTXO(
		EncodeUTXO(txID, 2, token, 700, address), avaxID,
	)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, domain.UnspentOutput{
		TxID: EncodeID(txID), VOut: 2, Value: 700, AssetID: tokenID,
		IsToken: true, TokenAmount: 700,
	}, unspent)

	locked := EncodeUTXO(txID, 3, avax, 10, address)
	// locktime follows type ID and amount
	locked[utxoHeaderLen+8+7] = 1
	_, ok, err = DecodeUTXO(locked, avaxID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFailingDecodeUTXO(t *testing.T) {
	t.Parallel()

	txID := sha256.Sum256([]byte("tx"))
	avax, err := decodeID(avaxID)
	require.NoError(t, err)
	utxo := EncodeUTXO(txID, 1, avax, 10, make([]byte, addressLen))

	badVersion := append([]byte{}, utxo...)
	badVersion[1] = 1

	tests := map[string][]byte{
		"too_short":         utxo[:10],
		"truncated_output":  utxo[:utxoHeaderLen+4],
		"missing_addresses": utxo[:len(utxo)-1],
		"unknown_version":   badVersion,
	}
	for name, b := range tests {
		b := b
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := DecodeUTXO(b, avaxID)
			require.ErrorIs(t, err, ErrInvalidUTXO)
		})
	}
}
