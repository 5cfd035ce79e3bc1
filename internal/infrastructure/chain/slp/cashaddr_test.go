package slp

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
)

func TestCashAddr(t *testing.T) {
	t.Parallel()

	hash, _ := hex.DecodeString("76a04053bda0a88bda5177b86a15c3b29f559873")

	tests := []struct {
		name     string
		typ      cashAddrType
		legacy   string
		cashAddr string
	}{
		{
			name:     "p2pkh",
			typ:      cashAddrP2PKH,
			legacy:   "1BpEi6DfDAUFd7GtittLSdBeYJvcoaVggu",
			cashAddr: "bitcoincash:qpm2qsznhks23z7629mms6s4cwef74vcwvy22gdx6a",
		},
		{
			name:     "p2sh",
			typ:      cashAddrP2SH,
			legacy:   "3CWFddi6m4ndiGyKqzYvsFYagqDLPVMTzC",
			cashAddr: "bitcoincash:ppm2qsznhks23z7629mms6s4cwef74vcwvn0h829pq",
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			legacy, err := btcutil.DecodeAddress(tt.legacy, &chaincfg.MainNetParams)
			require.NoError(t, err)
			require.Equal(t, hash, legacy.ScriptAddress())

			addr, err := encodeCashAddr("bitcoincash", tt.typ, hash)
			require.NoError(t, err)
			require.Equal(t, tt.cashAddr, addr)

			for _, encoded := range []string{
				addr,
				strings.ToUpper(addr),
				strings.TrimPrefix(addr, "bitcoincash:"),
			} {
				typ, decoded, err := decodeCashAddr(
					encoded, "bitcoincash", "simpleledger",
				)
				require.NoError(t, err, encoded)
				require.Equal(t, tt.typ, typ)
				require.Equal(t, hash, decoded)
			}
		})
	}
}

func TestTokenAwareCashAddr(t *testing.T) {
	t.Parallel()

	hash := btcutil.Hash160([]byte("pubkey"))
	addr, err := encodeCashAddr("slpreg", cashAddrP2PKH, hash)
	require.NoError(t, err)

	bch, err := NewChain(&chaincfg.RegressionNetParams, 546)
	require.NoError(t, err)
	require.True(t, bch.ValidateAddress(addr))

	script, err := bch.(*chain).outputScript(addr)
	require.NoError(t, err)
	require.Equal(t, hash, script[3:23])
}

func TestFailingDecodeCashAddr(t *testing.T) {
	t.Parallel()

	valid := "bitcoincash:qpm2qsznhks23z7629mms6s4cwef74vcwvy22gdx6a"

	tests := []struct {
		name string
		addr string
	}{
		{"empty", ""},
		{"bad_checksum", valid[:len(valid)-1] + "q"},
		{"mixed_case", "bitcoincash:Qpm2qsznhks23z7629mms6s4cwef74vcwvy22gdx6a"},
		{"unknown_prefix", "bchtest:qpm2qsznhks23z7629mms6s4cwef74vcwvy22gdx6a"},
		{"invalid_character", "bitcoincash:bpm2qsznhks23z7629mms6s4cwef74vcwvy22gdx6a"},
		{"too_short", "bitcoincash:qpm2qszn"},
		{"legacy", "1BpEi6DfDAUFd7GtittLSdBeYJvcoaVggu"},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := decodeCashAddr(tt.addr, "bitcoincash")
			require.ErrorIs(t, err, ErrInvalidCashAddr)
		})
	}

	_, err := encodeCashAddr("bitcoincash", cashAddrP2PKH, []byte{1, 2})
	require.ErrorIs(t, err, ErrInvalidCashAddr)
}
