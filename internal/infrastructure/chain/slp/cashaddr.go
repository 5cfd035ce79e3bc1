package slp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	cashAddrCharset     = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	cashAddrChecksumLen = 8
	// hash160Size is the size bits of the version byte for 160 bits hashes.
	hash160Size = 0
	hash160Len  = 20
)

type cashAddrType byte

const (
	cashAddrP2PKH cashAddrType = 0
	cashAddrP2SH  cashAddrType = 1
)

var (
	// ErrInvalidCashAddr is returned when decoding a malformed cashaddr or
	// one whose prefix is not accepted.
	ErrInvalidCashAddr = errors.New("invalid cashaddr")

	cashAddrGenerators = [5]uint64{
		0x98f2bc8e61, 0x79b76d99e2, 0xf33e5fb3c4, 0xae2eabe2a8, 0x1e4f43e470,
	}
)

func cashAddrPolymod(values []byte) uint64 {
	c := uint64(1)
	for _, d := range values {
		c0 := byte(c >> 35)
		c = ((c & 0x07ffffffff) << 5) ^ uint64(d)
		for i, g := range cashAddrGenerators {
			if (c0>>uint(i))&1 != 0 {
				c ^= g
			}
		}
	}
	return c ^ 1
}

func cashAddrPrefixData(prefix string) []byte {
	data := make([]byte, 0, len(prefix)+1)
	for _, r := range prefix {
		data = append(data, byte(r)&0x1f)
	}
	return append(data, 0)
}

// encodeCashAddr returns the lowercase prefixed cashaddr of the given hash.
func encodeCashAddr(prefix string, typ cashAddrType, hash []byte) (string, error) {
	if len(hash) != hash160Len {
		return "", fmt.Errorf(
			"%w: hash must be %d bytes", ErrInvalidCashAddr, hash160Len,
		)
	}
	payload := append([]byte{byte(typ)<<3 | hash160Size}, hash...)
	data, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCashAddr, err)
	}

	values := append(cashAddrPrefixData(prefix), data...)
	values = append(values, make([]byte, cashAddrChecksumLen)...)
	mod := cashAddrPolymod(values)
	for i := 0; i < cashAddrChecksumLen; i++ {
		data = append(data, byte(mod>>(5*uint(cashAddrChecksumLen-1-i)))&0x1f)
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteByte(':')
	for _, d := range data {
		sb.WriteByte(cashAddrCharset[d])
	}
	return sb.String(), nil
}

// decodeCashAddr decodes a cashaddr whose prefix is one of the given ones.
// An address without prefix is checked against the first one.
func decodeCashAddr(
	addr string, prefixes ...string,
) (cashAddrType, []byte, error) {
	if len(prefixes) <= 0 {
		return 0, nil, fmt.Errorf("%w: no accepted prefix", ErrInvalidCashAddr)
	}
	lower := strings.ToLower(addr)
	if lower != addr && strings.ToUpper(addr) != addr {
		return 0, nil, fmt.Errorf("%w: mixed case", ErrInvalidCashAddr)
	}

	prefix, encoded := prefixes[0], lower
	if i := strings.LastIndexByte(lower, ':'); i >= 0 {
		prefix, encoded = lower[:i], lower[i+1:]
		if !containsString(prefixes, prefix) {
			return 0, nil, fmt.Errorf(
				"%w: unexpected prefix %s", ErrInvalidCashAddr, prefix,
			)
		}
	}
	if len(encoded) <= cashAddrChecksumLen {
		return 0, nil, fmt.Errorf("%w: too short", ErrInvalidCashAddr)
	}

	data := make([]byte, 0, len(encoded))
	for _, r := range encoded {
		d := strings.IndexRune(cashAddrCharset, r)
		if d < 0 {
			return 0, nil, fmt.Errorf(
				"%w: invalid character %q", ErrInvalidCashAddr, r,
			)
		}
		data = append(data, byte(d))
	}
	if cashAddrPolymod(append(cashAddrPrefixData(prefix), data...)) != 0 {
		return 0, nil, fmt.Errorf("%w: invalid checksum", ErrInvalidCashAddr)
	}

	payload, err := bech32.ConvertBits(
		data[:len(data)-cashAddrChecksumLen], 5, 8, false,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s", ErrInvalidCashAddr, err)
	}
	if len(payload) != 1+hash160Len {
		return 0, nil, fmt.Errorf(
			"%w: hash must be %d bytes", ErrInvalidCashAddr, hash160Len,
		)
	}
	version := payload[0]
	if version&0x80 != 0 || version&0x07 != hash160Size {
		return 0, nil, fmt.Errorf(
			"%w: unsupported version %d", ErrInvalidCashAddr, version,
		)
	}
	typ := cashAddrType(version >> 3)
	if typ != cashAddrP2PKH && typ != cashAddrP2SH {
		return 0, nil, fmt.Errorf(
			"%w: unsupported type %d", ErrInvalidCashAddr, typ,
		)
	}
	return typ, payload[1:], nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
