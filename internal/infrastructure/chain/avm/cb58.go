package avm

import (
	"bytes"
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const checksumLen = 4

var errInvalidChecksum = errors.New("invalid cb58 checksum")

// cb58Encode returns the base58 encoding of the payload followed by the last
// 4 bytes of its sha256 hash.
func cb58Encode(payload []byte) string {
	checksum := sha256.Sum256(payload)
	buf := make([]byte, 0, len(payload)+checksumLen)
	buf = append(buf, payload...)
	buf = append(buf, checksum[len(checksum)-checksumLen:]...)
	return base58.Encode(buf)
}

func cb58Decode(str string) ([]byte, error) {
	decoded := base58.Decode(str)
	if len(decoded) <= checksumLen {
		return nil, errInvalidChecksum
	}
	payload := decoded[:len(decoded)-checksumLen]
	checksum := sha256.Sum256(payload)
	if !bytes.Equal(
		checksum[len(checksum)-checksumLen:], decoded[len(decoded)-checksumLen:],
	) {
		return nil, errInvalidChecksum
	}
	return payload, nil
}

// decodeID returns the 32 bytes of a cb58 encoded identifier.
func decodeID(str string) ([32]byte, error) {
	var id [32]byte
	payload, err := cb58Decode(str)
	if err != nil {
		return id, err
	}
	if len(payload) != len(id) {
		return id, errors.New("identifier must be 32 bytes")
	}
	copy(id[:], payload)
	return id, nil
}

// EncodeID returns the cb58 encoding of a 32 bytes identifier.
func EncodeID(id [32]byte) string {
	return cb58Encode(id[:])
}

// IsID returns whether str is a cb58 encoded identifier rather than an alias.
func IsID(str string) bool {
	_, err := decodeID(str)
	return err == nil
}
