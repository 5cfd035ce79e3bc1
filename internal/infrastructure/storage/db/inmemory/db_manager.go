package inmemory

import (
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
)

type RepoManager struct {
	dispenseRepository domain.DispenseRepository
}

func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		dispenseRepository: NewDispenseRepositoryImpl(),
	}
}

func (d *RepoManager) DispenseRepository() domain.DispenseRepository {
	return d.dispenseRepository
}

func (d *RepoManager) Close() {}
