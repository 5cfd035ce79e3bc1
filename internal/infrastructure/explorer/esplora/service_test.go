package esplora_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/explorer/esplora"
)

const (
	addr    = "addr"
	tokenID = "4de69e374a8ed21cbddd47f2338cc0f479dc58daa2bbe11cd604ca488eca0ddf"
	lbtc    = "5ac9f65c0efcc4775e0baec4ec03abdde22473cd3cf33c0419ca290e0751b225"
	usdt    = "f3d1ec678811398cd2ae277cbe3849c6f6dbd72c74bc542f7c4b11ff0e820958"
)

var ctx = context.Background()

const slpUtxos = `[
	{"txid": "f0", "vout": 0, "value": 1342, "status": {"confirmed": true}},
	{"txid": "t0", "vout": 1, "value": 546, "status": {"confirmed": true},
	 "slp": {"tokenId": "%[1]s", "amount": "100", "type": "token", "valid": true}},
	{"txid": "t1", "vout": 1, "value": 546, "status": {"confirmed": false},
	 "slp": {"tokenId": "%[1]s", "amount": 150, "type": "token", "valid": true}},
	{"txid": "b0", "vout": 2, "value": 546, "status": {"confirmed": true},
	 "slp": {"tokenId": "%[1]s", "type": "baton", "valid": true}},
	{"txid": "x0", "vout": 1, "value": 546, "status": {"confirmed": true},
	 "slp": {"tokenId": "%[1]s", "amount": "1", "type": "token", "valid": false}}
]`

const liquidUtxos = `[
	{"txid": "f0", "vout": 0, "value": 5000, "asset": "%[1]s"},
	{"txid": "a0", "vout": 1, "value": 100000000, "asset": "%[2]s"},
	{"txid": "c0", "vout": 0, "valuecommitment": "08aa", "assetcommitment": "0a11"}
]`

func TestGetUnspentsSLP(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/address/addr/utxo": fmt.Sprintf(slpUtxos, tokenID),
	})
	svc := newTestService(t, srv.URL, domain.NetworkSLP)

	unspents, err := svc.GetUnspents(ctx, addr)
	require.NoError(t, err)
	require.Equal(t, []domain.UnspentOutput{
		{TxID: "f0", VOut: 0, Value: 1342},
		{
			TxID: "t0", VOut: 1, Value: 546, AssetID: tokenID, IsToken: true,
			TokenAmount: 100,
		},
		{
			TxID: "t1", VOut: 1, Value: 546, AssetID: tokenID, IsToken: true,
			TokenAmount: 150,
		},
		{TxID: "b0", VOut: 2, Value: 546, AssetID: tokenID},
	}, unspents)

	feeOutputs, assetOutputs, err := domain.ClassifyUnspents(unspents, tokenID)
	require.NoError(t, err)
	require.Len(t, feeOutputs, 1)
	require.Len(t, assetOutputs, 2)
}

func TestGetUnspentsLiquid(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/address/addr/utxo": fmt.Sprintf(liquidUtxos, lbtc, usdt),
	})
	svc := newTestService(t, srv.URL, domain.NetworkLiquid)

	unspents, err := svc.GetUnspents(ctx, addr)
	require.NoError(t, err)
	require.Equal(t, []domain.UnspentOutput{
		{TxID: "f0", VOut: 0, Value: 5000},
		{
			TxID: "a0", VOut: 1, Value: 100000000, AssetID: usdt, IsToken: true,
			TokenAmount: 100000000,
		},
	}, unspents)
}

func TestFailingGetUnspents(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/address/bad/utxo": `{"not": "a list"}`,
		"/address/nan/utxo": `[{"txid": "t0", "vout": 1, "value": 546,
			"slp": {"tokenId": "id", "amount": "-1", "type": "token", "valid": true}}]`,
	})
	svc := newTestService(t, srv.URL, domain.NetworkSLP)

	for _, addr := range []string{"bad", "nan", "unknown", "fail"} {
		_, err := svc.GetUnspents(ctx, addr)
		require.ErrorIs(t, err, domain.ErrUpstreamUnavailable, addr)
	}
}

func TestDescribeAsset(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/asset/" + usdt: fmt.Sprintf(
			`{"asset_id": "%s", "precision": 8, "ticker": "USDt", "name": "Tether USD"}`,
			usdt,
		),
		"/asset/" + tokenID: `{"tokenId": "x", "decimals": 2, "symbol": "TST"}`,
		"/asset/nodenom":    `{"ticker": "NOPE"}`,
	})
	svc := newTestService(t, srv.URL, domain.NetworkLiquid)

	desc, err := svc.DescribeAsset(ctx, usdt)
	require.NoError(t, err)
	require.Equal(t, domain.AssetDescriptor{
		AssetID: usdt, Denomination: 8, Symbol: "USDt", Name: "Tether USD",
	}, *desc)

	desc, err = svc.DescribeAsset(ctx, tokenID)
	require.NoError(t, err)
	require.Equal(t, uint8(2), desc.Denomination)
	require.Equal(t, "TST", desc.Symbol)
	require.Equal(t, tokenID, desc.AssetID)

	_, err = svc.DescribeAsset(ctx, "nodenom")
	require.ErrorIs(t, err, domain.ErrUnknownAsset)

	_, err = svc.DescribeAsset(ctx, "unknown")
	require.ErrorIs(t, err, domain.ErrUnknownAsset)

	_, err = svc.DescribeAsset(ctx, "fail")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestBroadcastTransaction(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/tx" {
				http.NotFound(w, r)
				return
			}
			body, _ := io.ReadAll(r.Body)
			switch string(body) {
			case "good":
				_, _ = w.Write([]byte("txid\n"))
			case "down":
				w.WriteHeader(http.StatusBadGateway)
			default:
				http.Error(w, "bad-txns-inputs-missingorspent", http.StatusBadRequest)
			}
		},
	))
	t.Cleanup(srv.Close)
	svc := newTestService(t, srv.URL, domain.NetworkSLP)

	txid, err := svc.BroadcastTransaction(ctx, "good")
	require.NoError(t, err)
	require.Equal(t, "txid", txid)

	_, err = svc.BroadcastTransaction(ctx, "spent")
	require.ErrorIs(t, err, domain.ErrBroadcastRejected)
	require.Contains(t, err.Error(), "missingorspent")

	_, err = svc.BroadcastTransaction(ctx, "down")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestPing(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{"/blocks/tip/height": "100"})
	svc := newTestService(t, srv.URL, domain.NetworkSLP)
	require.NoError(t, svc.Ping(ctx))

	srv.Close()
	require.ErrorIs(t, svc.Ping(ctx), domain.ErrUpstreamUnavailable)
}

func TestFailingNewService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  esplora.Config
	}{
		{"missing_endpoint", esplora.Config{Kind: domain.NetworkSLP}},
		{"missing_base_asset", esplora.Config{
			Endpoint: "http://localhost", Kind: domain.NetworkLiquid,
		}},
		{"unsupported_network", esplora.Config{
			Endpoint: "http://localhost", Kind: domain.NetworkAVM,
		}},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, err := esplora.NewService(tt.cfg)
			require.Error(t, err)
			require.Nil(t, svc)
		})
	}
}

// newTestServer replies with the given body for known paths, with 500 for
// paths ending with /fail and with 404 otherwise.
func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if body, ok := routes[r.URL.Path]; ok {
				_, _ = w.Write([]byte(body))
				return
			}
			if strings.Contains(r.URL.Path, "/fail") {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			http.NotFound(w, r)
		},
	))
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(
	t *testing.T, url string, kind domain.NetworkKind,
) ports.Explorer {
	svc, err := esplora.NewService(esplora.Config{
		Endpoint:       url,
		Kind:           kind,
		BaseAssetID:    lbtc,
		RequestTimeout: time.Second,
	})
	require.NoError(t, err)
	return svc
}
