package avm

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

const (
	hexPrefix = "0x"
	// txID + output index + asset ID + type ID
	utxoHeaderLen = 2 + 32 + 4 + 32 + 4
)

var (
	// ErrInvalidUTXO ...
	ErrInvalidUTXO = errors.New("invalid utxo")
	// ErrInvalidHex ...
	ErrInvalidHex = errors.New("invalid checksummed hex")
)

// EncodeHex returns the 0x prefixed hex encoding of the given bytes followed
// by the last 4 bytes of their sha256 hash, as expected by the node API.
func EncodeHex(b []byte) string {
	checksum := sha256.Sum256(b)
	buf := append(append([]byte{}, b...), checksum[len(checksum)-checksumLen:]...)
	return hexPrefix + hex.EncodeToString(buf)
}

// DecodeHex is the inverse of EncodeHex.
func DecodeHex(str string) ([]byte, error) {
	decoded, err := hex.DecodeString(strings.TrimPrefix(str, hexPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHex, err)
	}
	if len(decoded) < checksumLen {
		return nil, ErrInvalidHex
	}
	payload := decoded[:len(decoded)-checksumLen]
	checksum := sha256.Sum256(payload)
	if !bytes.Equal(
		checksum[len(checksum)-checksumLen:], decoded[len(decoded)-checksumLen:],
	) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidHex)
	}
	return payload, nil
}

// DecodeUTXO parses a serialized utxo. Outputs of the fee asset are returned
// as base asset. The returned bool is false for outputs the faucet can't
// spend with a single signature right away, ie. time-locked or multisig ones.
func DecodeUTXO(
	b []byte, feeAssetID string,
) (domain.UnspentOutput, bool, error) {
	if len(b) < utxoHeaderLen {
		return domain.UnspentOutput{}, false, fmt.Errorf(
			"%w: too short", ErrInvalidUTXO,
		)
	}
	r := bytes.NewReader(b)

	var version uint16
	var txID, assetID [32]byte
	var outputIndex, typeID uint32
	for _, v := range []interface{}{
		&version, &txID, &outputIndex, &assetID, &typeID,
	} {
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return domain.UnspentOutput{}, false, fmt.Errorf(
				"%w: %s", ErrInvalidUTXO, err,
			)
		}
	}
	if version != codecVersion {
		return domain.UnspentOutput{}, false, fmt.Errorf(
			"%w: unknown codec version %d", ErrInvalidUTXO, version,
		)
	}
	if typeID != transferOutputTypeID {
		return domain.UnspentOutput{}, false, nil
	}

	var amount, locktime uint64
	var threshold, numAddresses uint32
	for _, v := range []interface{}{
		&amount, &locktime, &threshold, &numAddresses,
	} {
		if err := binary.Read(r, binary.BigEndian, v); err != nil {
			return domain.UnspentOutput{}, false, fmt.Errorf(
				"%w: %s", ErrInvalidUTXO, err,
			)
		}
	}
	if r.Len() != int(numAddresses)*addressLen {
		return domain.UnspentOutput{}, false, fmt.Errorf(
			"%w: expected %d addresses", ErrInvalidUTXO, numAddresses,
		)
	}

	unspent := domain.UnspentOutput{
		TxID:  EncodeID(txID),
		VOut:  outputIndex,
		Value: amount,
	}
	if asset := EncodeID(assetID); asset != feeAssetID {
		unspent.AssetID = asset
		unspent.IsToken = true
		unspent.TokenAmount = amount
	}

	spendable := locktime == 0 && threshold == 1
	return unspent, spendable, nil
}

// EncodeUTXO serializes a single-address transfer output, the kind of utxos
// a faucet wallet holds.
func EncodeUTXO(
	txID [32]byte, outputIndex uint32, assetID [32]byte, amount uint64,
	address []byte,
) []byte {
	p := &packer{}
	p.packUint16(codecVersion)
	p.Write(txID[:])
	p.packUint32(outputIndex)
	p.Write(assetID[:])
	p.packUint32(transferOutputTypeID)
	p.packUint64(amount)
	p.packUint64(0)
	p.packUint32(1)
	p.packUint32(1)
	p.Write(address)
	return p.Bytes()
}
