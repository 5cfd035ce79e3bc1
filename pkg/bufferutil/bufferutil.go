package bufferutil

import (
	"encoding/hex"
	"fmt"

	"github.com/vulpemventures/go-elements/elementsutil"
)

const unconfidentialPrefix = 0x01

// AssetHashFromBytes returns the asset hash of an unconfidential asset tag.
func AssetHashFromBytes(buffer []byte) string {
	// We remove the first byte from the buffer array that represents if confidential or unconfidential
	return hex.EncodeToString(elementsutil.ReverseBytes(buffer[1:]))
}

// AssetHashToBytes returns the unconfidential asset tag of the given asset
// hash.
func AssetHashToBytes(str string) ([]byte, error) {
	buffer, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	if len(buffer) != 32 {
		return nil, fmt.Errorf("asset hash must be 32 bytes, got %d", len(buffer))
	}
	buffer = elementsutil.ReverseBytes(buffer)
	buffer = append([]byte{unconfidentialPrefix}, buffer...)
	return buffer, nil
}

// ValueFromBytes returns the amount of an unconfidential value.
func ValueFromBytes(buffer []byte) (uint64, error) {
	return elementsutil.ValueFromBytes(buffer)
}

// ValueToBytes returns the unconfidential value of the given amount.
func ValueToBytes(val uint64) ([]byte, error) {
	return elementsutil.ValueToBytes(val)
}

// TxIDFromBytes returns the hex txid of a transaction hash in internal byte
// order.
func TxIDFromBytes(buffer []byte) string {
	return hex.EncodeToString(elementsutil.ReverseBytes(buffer))
}

// TxIDToBytes returns the transaction hash in internal byte order of the
// given hex txid.
func TxIDToBytes(str string) ([]byte, error) {
	buffer, err := hex.DecodeString(str)
	if err != nil {
		return nil, err
	}
	if len(buffer) != 32 {
		return nil, fmt.Errorf("txid must be 32 bytes, got %d", len(buffer))
	}
	return elementsutil.ReverseBytes(buffer), nil
}
