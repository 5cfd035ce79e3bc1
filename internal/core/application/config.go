package application

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
	dbbadger "github.com/tdex-network/tdex-faucet/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-faucet/internal/infrastructure/storage/db/inmemory"
)

const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
	}
)

// Config wires the faucet service. DBConfig is the data directory of the
// badger store. Registerer defaults to a private registry if nil.
type Config struct {
	DBType     string
	DBConfig   interface{}
	Networks   map[domain.NetworkKind]NetworkConfig
	Registerer prometheus.Registerer

	repo   ports.RepoManager
	faucet FaucetService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("db type %s not supported", c.DBType)
	}
	if len(c.Networks) <= 0 {
		return fmt.Errorf("missing networks")
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.faucetService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) FaucetService() FaucetService {
	svc, _ := c.faucetService()
	return svc
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(datadir, log.New())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, fmt.Errorf("db type %s not supported", c.DBType)
		}
	}
	return c.repo, nil
}

func (c *Config) faucetService() (FaucetService, error) {
	if c.faucet == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		faucet, err := NewFaucetService(repo, c.Networks, c.Registerer)
		if err != nil {
			return nil, err
		}
		c.faucet = faucet
	}
	return c.faucet, nil
}
