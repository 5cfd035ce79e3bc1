package slp

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

const testTokenID = "4de69e374a8ed21cbddd47f2338cc0f479dc58daa2bbe11cd604ca488eca0ddf"

func TestSendMarker(t *testing.T) {
	t.Parallel()

	script, err := buildSendMarker(testTokenID, []uint64{1, 499})
	require.NoError(t, err)

	expected := "6a" +
		"04534c5000" +
		"0101" +
		"0453454e44" +
		"20" + testTokenID +
		"080000000000000001" +
		"0800000000000001f3"
	require.Equal(t, expected, hex.EncodeToString(script))

	tokenID, amounts, err := parseSendMarker(script)
	require.NoError(t, err)
	require.Equal(t, testTokenID, tokenID)
	require.Equal(t, []uint64{1, 499}, amounts)
}

func TestFailingSendMarker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tokenID string
		amounts []uint64
	}{
		{"invalid_token_id", "not-hex", []uint64{1}},
		{"short_token_id", "abcd", []uint64{1}},
		{"no_amounts", testTokenID, nil},
		{"too_many_amounts", testTokenID, make([]uint64, maxSendOutputs+1)},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := buildSendMarker(tt.tokenID, tt.amounts)
			require.ErrorIs(t, err, ErrInvalidMarker)
		})
	}
}

func TestFailingParseSendMarker(t *testing.T) {
	t.Parallel()

	scripts := []string{
		"",
		"0014" + "00000000000000000000000000000000000000ff",
		"6a04534c5000",
		"6a04534c50000101044d494e5420" + testTokenID + "080000000000000001",
		"6a04534c500001010453454e4420" + testTokenID + "0400000001",
		"6a4c",
	}

	for _, s := range scripts {
		script, _ := hex.DecodeString(s)
		_, _, err := parseSendMarker(script)
		require.ErrorIs(t, err, ErrInvalidMarker, s)
	}
}
