package ports

import "github.com/tdex-network/tdex-faucet/internal/core/domain"

// KeyPair is the faucet wallet key of a network. Sign returns the signature
// of the given digest in the format expected by the network.
type KeyPair interface {
	Address() string
	PubKey() []byte
	Sign(digest []byte) ([]byte, error)
}

// Chain groups the network specific operations over addresses, keys and
// transactions.
type Chain interface {
	Kind() domain.NetworkKind
	// ValidateAddress returns whether the given string is a valid address of
	// the network. It never panics.
	ValidateAddress(addr string) bool
	// DeriveKeyPair returns the wallet key pair for the given secret.
	DeriveKeyPair(secret string) (KeyPair, error)
	// Sign signs every input of the transaction with the given key and
	// serializes the result.
	Sign(
		tx *domain.UnsignedTransaction, key KeyPair,
	) (*domain.SignedTransaction, error)
}
