package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcwallet/wallet/txrules"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-faucet/internal/core/application"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/chain/avm"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/chain/liquid"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/chain/slp"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/explorer/avmrpc"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/explorer/esplora"
)

const (
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DatadirKey is the local data directory to store the dispense history
	DatadirKey = "DATA_DIR_PATH"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"
	// NetworksKey is the comma separated list of networks to enable
	NetworksKey = "NETWORKS"
	// ExplorerRequestTimeoutKey are the milliseconds to wait for HTTP responses before timeouts
	ExplorerRequestTimeoutKey = "EXPLORER_REQUEST_TIMEOUT"
	// ExplorerRateLimitKey is the max number of requests per second made to
	// every upstream service, 0 means unlimited
	ExplorerRateLimitKey = "EXPLORER_RATE_LIMIT"
	// EnableProfilerKey enables dumping the faucet metrics to the stats file
	// at exit
	EnableProfilerKey = "ENABLE_PROFILER"

	// SLPExplorerEndpointKey is the endpoint of the esplora REST API of the
	// token-marker chain
	SLPExplorerEndpointKey = "SLP_EXPLORER_ENDPOINT"
	// SLPNetworkKey is the token-marker network. One of mainnet, testnet3 or
	// regtest
	SLPNetworkKey = "SLP_NETWORK"
	// SLPWifKey is the WIF private key of the token-marker wallet
	SLPWifKey = "SLP_WIF"
	// SLPTokenIDKey is the token dispensed by default
	SLPTokenIDKey = "SLP_TOKEN_ID"
	// SLPTxFeeKey is the fixed fee in satoshis of every transaction
	SLPTxFeeKey = "SLP_TX_FEE"
	// SLPDustKey is the value in satoshis of every token carrier
	SLPDustKey = "SLP_DUST"
	// SLPSeparateTokenChangeKey sends token change to a dedicated carrier
	// instead of the change output
	SLPSeparateTokenChangeKey = "SLP_SEPARATE_TOKEN_CHANGE"

	// LiquidExplorerEndpointKey is the endpoint of the esplora REST API of
	// the native-asset chain
	LiquidExplorerEndpointKey = "LIQUID_EXPLORER_ENDPOINT"
	// LiquidNetworkKey is the native-asset network. One of liquid, testnet or
	// regtest
	LiquidNetworkKey = "LIQUID_NETWORK"
	// LiquidWifKey is the WIF private key of the native-asset wallet
	LiquidWifKey = "LIQUID_WIF"
	// LiquidAssetKey is the asset dispensed by default
	LiquidAssetKey = "LIQUID_ASSET"
	// LiquidTxFeeKey is the fixed fee in satoshis of every transaction
	LiquidTxFeeKey = "LIQUID_TX_FEE"

	// AVMRPCEndpointKey is the url of the X-chain API of the node, ie.
	// http://localhost:9650/ext/bc/X
	AVMRPCEndpointKey = "AVM_RPC_ENDPOINT"
	// AVMHrpKey is the human readable part of addresses. One of avax, fuji or
	// local
	AVMHrpKey = "AVM_HRP"
	// AVMChainAliasKey prefixes every address
	AVMChainAliasKey = "AVM_CHAIN_ALIAS"
	// AVMPrivateKeyKey is the PrivateKey-<cb58> key of the wallet
	AVMPrivateKeyKey = "AVM_PRIVATE_KEY"
	// AVMAssetKey is the asset dispensed by default
	AVMAssetKey = "AVM_ASSET"
	// AVMFeeAssetKey is the asset network fees are paid with, either its ID
	// or an alias the node knows, ie. AVAX
	AVMFeeAssetKey = "AVM_FEE_ASSET"
	// AVMTxFeeKey is the fixed fee of every transaction in fee asset units
	AVMTxFeeKey = "AVM_TX_FEE"
	// AVMBlockchainIDKey is the cb58 ID of the X-chain every transaction is
	// bound to, as returned by info.getBlockchainID
	AVMBlockchainIDKey = "AVM_BLOCKCHAIN_ID"

	DbLocation       = "db"
	ProfilerLocation = "stats"

	// p2pkhScriptSize is used to check the dust unit against the relay policy.
	p2pkhScriptSize = 25
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("tdex-faucet", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("FAUCET")
	vip.AutomaticEnv()

	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(DBTypeKey, application.DBBadger)
	vip.SetDefault(NetworksKey, string(domain.NetworkSLP))
	vip.SetDefault(ExplorerRequestTimeoutKey, 15000)
	vip.SetDefault(ExplorerRateLimitKey, 10)
	vip.SetDefault(EnableProfilerKey, false)

	vip.SetDefault(SLPNetworkKey, "mainnet")
	vip.SetDefault(SLPTxFeeKey, 250)
	vip.SetDefault(SLPDustKey, 546)
	vip.SetDefault(SLPSeparateTokenChangeKey, false)

	vip.SetDefault(LiquidExplorerEndpointKey, "https://blockstream.info/liquid/api")
	vip.SetDefault(LiquidNetworkKey, "liquid")
	vip.SetDefault(LiquidTxFeeKey, 300)

	vip.SetDefault(AVMHrpKey, "avax")
	vip.SetDefault(AVMChainAliasKey, "X")
	vip.SetDefault(AVMFeeAssetKey, "AVAX")
	vip.SetDefault(AVMTxFeeKey, 1000000)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// GetNetworks returns the enabled networks.
func GetNetworks() ([]domain.NetworkKind, error) {
	names := strings.Split(GetString(NetworksKey), ",")
	networks := make([]domain.NetworkKind, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		network, err := domain.ParseNetworkKind(name)
		if err != nil {
			return nil, err
		}
		networks = append(networks, network)
	}
	if len(networks) <= 0 {
		return nil, fmt.Errorf("missing networks")
	}
	return networks, nil
}

// GetApplicationConfig returns the config of the faucet service for the
// enabled networks. The fee asset of the account-style chain is resolved
// through the node if given as an alias.
func GetApplicationConfig(
	ctx context.Context, registerer prometheus.Registerer,
) (*application.Config, error) {
	enabled, err := GetNetworks()
	if err != nil {
		return nil, err
	}

	networks := make(map[domain.NetworkKind]application.NetworkConfig)
	for _, network := range enabled {
		var cfg *application.NetworkConfig
		switch network {
		case domain.NetworkSLP:
			cfg, err = slpNetworkConfig()
		case domain.NetworkLiquid:
			cfg, err = liquidNetworkConfig()
		case domain.NetworkAVM:
			cfg, err = avmNetworkConfig(ctx)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", network, err)
		}
		networks[network] = *cfg
	}

	var dbConfig interface{}
	if GetString(DBTypeKey) == application.DBBadger {
		dbConfig = filepath.Join(GetDatadir(), DbLocation)
	}

	return &application.Config{
		DBType:     GetString(DBTypeKey),
		DBConfig:   dbConfig,
		Networks:   networks,
		Registerer: registerer,
	}, nil
}

func slpNetworkConfig() (*application.NetworkConfig, error) {
	params, err := slp.ParamsFromName(GetString(SLPNetworkKey))
	if err != nil {
		return nil, err
	}
	dust := GetUint64(SLPDustKey)
	chain, err := slp.NewChain(params, dust)
	if err != nil {
		return nil, err
	}
	explorer, err := esplora.NewService(esplora.Config{
		Endpoint:       GetString(SLPExplorerEndpointKey),
		Kind:           domain.NetworkSLP,
		RequestTimeout: requestTimeout(),
		RateLimit:      GetInt(ExplorerRateLimitKey),
	})
	if err != nil {
		return nil, err
	}

	return &application.NetworkConfig{
		Chain:    chain,
		Explorer: explorer,
		Secret:   GetString(SLPWifKey),
		AssetID:  GetString(SLPTokenIDKey),
		FeePolicy: domain.FeePolicy{
			Fee:                 GetUint64(SLPTxFeeKey),
			DustUnit:            dust,
			SeparateTokenChange: GetBool(SLPSeparateTokenChangeKey),
		},
	}, nil
}

func liquidNetworkConfig() (*application.NetworkConfig, error) {
	net, err := liquid.NetworkFromName(GetString(LiquidNetworkKey))
	if err != nil {
		return nil, err
	}
	chain, err := liquid.NewChain(net)
	if err != nil {
		return nil, err
	}
	explorer, err := esplora.NewService(esplora.Config{
		Endpoint:       GetString(LiquidExplorerEndpointKey),
		Kind:           domain.NetworkLiquid,
		BaseAssetID:    net.AssetID,
		RequestTimeout: requestTimeout(),
		RateLimit:      GetInt(ExplorerRateLimitKey),
	})
	if err != nil {
		return nil, err
	}

	return &application.NetworkConfig{
		Chain:     chain,
		Explorer:  explorer,
		Secret:    GetString(LiquidWifKey),
		AssetID:   GetString(LiquidAssetKey),
		FeePolicy: domain.FeePolicy{Fee: GetUint64(LiquidTxFeeKey)},
	}, nil
}

func avmNetworkConfig(ctx context.Context) (*application.NetworkConfig, error) {
	feeAssetID := GetString(AVMFeeAssetKey)
	if !avm.IsID(feeAssetID) {
		resolved, err := resolveAVMAsset(ctx, feeAssetID)
		if err != nil {
			return nil, err
		}
		feeAssetID = resolved
	}

	chain, err := avm.NewChain(avm.Config{
		ChainAlias:   GetString(AVMChainAliasKey),
		HRP:          GetString(AVMHrpKey),
		FeeAssetID:   feeAssetID,
		BlockchainID: GetString(AVMBlockchainIDKey),
	})
	if err != nil {
		return nil, err
	}
	explorer, err := avmrpc.NewService(avmrpc.Config{
		Endpoint:       GetString(AVMRPCEndpointKey),
		FeeAssetID:     feeAssetID,
		RequestTimeout: requestTimeout(),
		RateLimit:      GetInt(ExplorerRateLimitKey),
	})
	if err != nil {
		return nil, err
	}

	return &application.NetworkConfig{
		Chain:     chain,
		Explorer:  explorer,
		Secret:    GetString(AVMPrivateKeyKey),
		AssetID:   GetString(AVMAssetKey),
		FeePolicy: domain.FeePolicy{Fee: GetUint64(AVMTxFeeKey)},
	}, nil
}

// resolveAVMAsset returns the ID of the asset with the given alias.
func resolveAVMAsset(ctx context.Context, alias string) (string, error) {
	node, err := avmrpc.NewService(avmrpc.Config{
		Endpoint:       GetString(AVMRPCEndpointKey),
		FeeAssetID:     alias,
		RequestTimeout: requestTimeout(),
	})
	if err != nil {
		return "", err
	}
	asset, err := node.DescribeAsset(ctx, alias)
	if err != nil {
		return "", fmt.Errorf("failed to resolve fee asset %s: %w", alias, err)
	}
	return asset.AssetID, nil
}

func requestTimeout() time.Duration {
	return time.Duration(GetInt(ExplorerRequestTimeoutKey)) * time.Millisecond
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	if _, ok := application.SupportedDBType[GetString(DBTypeKey)]; !ok {
		return fmt.Errorf("db type %s not supported", GetString(DBTypeKey))
	}

	if GetInt(ExplorerRequestTimeoutKey) <= 0 {
		return fmt.Errorf("%s must be a positive number", ExplorerRequestTimeoutKey)
	}
	if GetInt(ExplorerRateLimitKey) < 0 {
		return fmt.Errorf("%s must not be negative", ExplorerRateLimitKey)
	}

	networks, err := GetNetworks()
	if err != nil {
		return err
	}
	for _, network := range networks {
		if err := validateNetwork(network); err != nil {
			return fmt.Errorf("%s: %s", network, err)
		}
	}
	return nil
}

func validateNetwork(network domain.NetworkKind) error {
	var required []string
	switch network {
	case domain.NetworkSLP:
		required = []string{SLPExplorerEndpointKey, SLPWifKey, SLPTokenIDKey}
		dust := btcutil.Amount(GetUint64(SLPDustKey))
		if txrules.IsDustAmount(
			dust, p2pkhScriptSize, txrules.DefaultRelayFeePerKb,
		) {
			return fmt.Errorf("%s %d is below the dust threshold", SLPDustKey, dust)
		}
	case domain.NetworkLiquid:
		required = []string{LiquidExplorerEndpointKey, LiquidWifKey, LiquidAssetKey}
	case domain.NetworkAVM:
		required = []string{
			AVMRPCEndpointKey, AVMPrivateKeyKey, AVMAssetKey, AVMFeeAssetKey,
			AVMBlockchainIDKey,
		}
	}

	for _, key := range required {
		if GetString(key) == "" {
			return fmt.Errorf("missing %s", key)
		}
	}
	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if GetString(DBTypeKey) == application.DBBadger {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
			return err
		}
	}

	if GetBool(EnableProfilerKey) {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
