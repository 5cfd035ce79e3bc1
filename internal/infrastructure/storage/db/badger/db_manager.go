package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const (
	dispensesDir    = "dispenses"
	valueLogGCEvery = 30 * time.Minute
)

type repoManager struct {
	store              *badgerhold.Store
	dispenseRepository domain.DispenseRepository
	quit               chan struct{}
	gcDone             chan struct{}
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger, and creates a dedicated
// directory for dispenses. An empty base dir makes for an in-memory store.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	return newRepoManager(baseDbDir, logger, valueLogGCEvery)
}

func newRepoManager(
	baseDbDir string, logger badger.Logger, gcInterval time.Duration,
) (*repoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, dispensesDir)
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening dispenses db: %w", err)
	}

	r := &repoManager{
		store:              store,
		dispenseRepository: NewDispenseRepositoryImpl(store),
		quit:               make(chan struct{}),
	}
	if len(dbDir) > 0 {
		r.gcDone = make(chan struct{})
		go r.runValueLogGC(gcInterval)
	}
	return r, nil
}

func (r *repoManager) DispenseRepository() domain.DispenseRepository {
	return r.dispenseRepository
}

// Close stops the value log GC and waits for any running cycle to return
// before closing the store.
func (r *repoManager) Close() {
	close(r.quit)
	if r.gcDone != nil {
		<-r.gcDone
	}
	r.store.Close()
}

func (r *repoManager) runValueLogGC(interval time.Duration) {
	defer close(r.gcDone)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.quit:
			return
		case <-ticker.C:
			if err := r.store.Badger().RunValueLogGC(0.5); err != nil &&
				err != badger.ErrNoRewrite {
				log.Error(err)
			}
		}
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
