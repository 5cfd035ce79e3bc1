package ports

import "github.com/tdex-network/tdex-faucet/internal/core/domain"

// RepoManager holds the repositories of the faucet in a single data structure.
type RepoManager interface {
	DispenseRepository() domain.DispenseRepository
	Close()
}
