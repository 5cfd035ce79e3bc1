package bufferutil_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-faucet/pkg/bufferutil"
)

const lbtc = "5ac9f65c0efcc4775e0baec4ec03abdde22473cd3cf33c0419ca290e0751b225"

func TestAssetHash(t *testing.T) {
	t.Parallel()

	buf, err := bufferutil.AssetHashToBytes(lbtc)
	require.NoError(t, err)
	require.Len(t, buf, 33)
	require.Equal(t, byte(0x01), buf[0])
	require.Equal(t, byte(0x25), buf[1])
	require.Equal(t, lbtc, bufferutil.AssetHashFromBytes(buf))

	_, err = bufferutil.AssetHashToBytes("zz")
	require.Error(t, err)
	_, err = bufferutil.AssetHashToBytes("abcd")
	require.Error(t, err)
}

func TestValue(t *testing.T) {
	t.Parallel()

	buf, err := bufferutil.ValueToBytes(100000000)
	require.NoError(t, err)
	require.Equal(t, "010000000005f5e100", hex.EncodeToString(buf))

	value, err := bufferutil.ValueFromBytes(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(100000000), value)
}

func TestTxID(t *testing.T) {
	t.Parallel()

	txid := "00000000000000000000000000000000000000000000000000000000000000ff"
	buf, err := bufferutil.TxIDToBytes(txid)
	require.NoError(t, err)
	require.Equal(t, byte(0xff), buf[0])
	require.Equal(t, txid, bufferutil.TxIDFromBytes(buf))

	_, err = bufferutil.TxIDToBytes("ff")
	require.Error(t, err)
}
