package application_test

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-faucet/internal/core/application"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/chain/slp"
)

func TestConfig(t *testing.T) {
	chain, err := slp.NewChain(&chaincfg.RegressionNetParams, 546)
	require.NoError(t, err)

	networks := map[domain.NetworkKind]application.NetworkConfig{
		domain.NetworkSLP: {
			Chain:     chain,
			Explorer:  &mockExplorer{},
			Secret:    randomWIF(t),
			AssetID:   tokenID,
			FeePolicy: slpPolicy,
		},
	}

	t.Run("inmemory", func(t *testing.T) {
		cfg := &application.Config{
			DBType:   application.DBInMemory,
			Networks: networks,
		}
		require.NoError(t, cfg.Validate())
		require.NotNil(t, cfg.RepoManager())
		require.NotNil(t, cfg.FaucetService())
		require.Equal(t, cfg.FaucetService(), cfg.FaucetService())
		cfg.RepoManager().Close()
	})

	t.Run("badger", func(t *testing.T) {
		cfg := &application.Config{
			DBType:   application.DBBadger,
			DBConfig: t.TempDir(),
			Networks: networks,
		}
		require.NoError(t, cfg.Validate())
		cfg.RepoManager().Close()
	})
}

func TestFailingConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  *application.Config
	}{
		{
			name: "unsupported_db",
			cfg:  &application.Config{DBType: "postgres"},
		},
		{
			name: "missing_networks",
			cfg:  &application.Config{DBType: application.DBInMemory},
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.cfg.Validate())
		})
	}
}
