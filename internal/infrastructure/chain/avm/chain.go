package avm

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
)

const (
	privateKeyPrefix = "PrivateKey-"
	addressLen       = 20
)

var (
	// ErrInvalidConfig ...
	ErrInvalidConfig = errors.New("invalid avm chain config")

	networkIDs = map[string]uint32{
		"avax":  1,
		"fuji":  5,
		"local": 12345,
	}
)

// Config holds the parameters of the account-style chain.
type Config struct {
	// ChainAlias prefixes every address, ie. X for X-avax1...
	ChainAlias string
	// HRP is the human readable part of bech32 addresses.
	HRP string
	// FeeAssetID is the cb58 identifier of the asset network fees are paid
	// with.
	FeeAssetID string
	// BlockchainID is the cb58 identifier of the chain transactions are
	// bound to.
	BlockchainID string
}

func (c Config) validate() error {
	if c.ChainAlias == "" {
		return fmt.Errorf("%w: missing chain alias", ErrInvalidConfig)
	}
	if _, ok := networkIDs[c.HRP]; !ok {
		return fmt.Errorf("%w: unknown hrp %s", ErrInvalidConfig, c.HRP)
	}
	if _, err := decodeID(c.FeeAssetID); err != nil {
		return fmt.Errorf("%w: fee asset: %s", ErrInvalidConfig, err)
	}
	if _, err := decodeID(c.BlockchainID); err != nil {
		return fmt.Errorf("%w: blockchain id: %s", ErrInvalidConfig, err)
	}
	return nil
}

type chain struct {
	alias        string
	hrp          string
	networkID    uint32
	blockchainID [32]byte
	feeAssetID   string
}

// NewChain returns the account-style chain for the given config.
func NewChain(cfg Config) (ports.Chain, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	blockchainID, _ := decodeID(cfg.BlockchainID)
	return &chain{
		alias:        cfg.ChainAlias,
		hrp:          cfg.HRP,
		networkID:    networkIDs[cfg.HRP],
		blockchainID: blockchainID,
		feeAssetID:   cfg.FeeAssetID,
	}, nil
}

func (c *chain) Kind() domain.NetworkKind {
	return domain.NetworkAVM
}

func (c *chain) ValidateAddress(addr string) bool {
	_, err := c.parseAddress(addr)
	return err == nil
}

func (c *chain) parseAddress(addr string) ([]byte, error) {
	prefix := c.alias + "-"
	if !strings.HasPrefix(addr, prefix) {
		return nil, fmt.Errorf("address must start with %s", prefix)
	}
	hrp, data, err := bech32.Decode(strings.TrimPrefix(addr, prefix))
	if err != nil {
		return nil, err
	}
	if hrp != c.hrp {
		return nil, fmt.Errorf("address hrp %s does not match %s", hrp, c.hrp)
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, err
	}
	if len(payload) != addressLen {
		return nil, fmt.Errorf("address payload must be %d bytes", addressLen)
	}
	return payload, nil
}

func (c *chain) formatAddress(pubkey []byte) (string, error) {
	data, err := bech32.ConvertBits(btcutil.Hash160(pubkey), 8, 5, true)
	if err != nil {
		return "", err
	}
	addr, err := bech32.Encode(c.hrp, data)
	if err != nil {
		return "", err
	}
	return c.alias + "-" + addr, nil
}

// DeriveKeyPair accepts either a PrivateKey- prefixed cb58 key or a hex
// encoded one.
func (c *chain) DeriveKeyPair(secret string) (ports.KeyPair, error) {
	var keyBytes []byte
	var err error
	if strings.HasPrefix(secret, privateKeyPrefix) {
		keyBytes, err = cb58Decode(strings.TrimPrefix(secret, privateKeyPrefix))
	} else {
		keyBytes, err = hex.DecodeString(secret)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	if len(keyBytes) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf(
			"%w: private key must be %d bytes", domain.ErrSigning,
			btcec.PrivKeyBytesLen,
		)
	}

	prvkey, pubkey := btcec.PrivKeyFromBytes(keyBytes)
	addr, err := c.formatAddress(pubkey.SerializeCompressed())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	return &keyPair{prvkey, pubkey.SerializeCompressed(), addr}, nil
}

type keyPair struct {
	prvkey  *btcec.PrivateKey
	pubkey  []byte
	address string
}

func (k *keyPair) Address() string {
	return k.address
}

func (k *keyPair) PubKey() []byte {
	return k.pubkey
}

// Sign returns a 65 bytes recoverable signature of the digest in the
// [r || s || v] layout credentials carry, with v the recovery id.
func (k *keyPair) Sign(digest []byte) ([]byte, error) {
	sig, err := ecdsa.SignCompact(k.prvkey, digest, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	return fromCompact(sig), nil
}

// compactHeader is the first byte of a btcec compact signature of a
// compressed key, before adding the recovery id.
const compactHeader = 27 + 4

func fromCompact(sig []byte) []byte {
	out := make([]byte, 0, len(sig))
	out = append(out, sig[1:]...)
	return append(out, sig[0]-compactHeader)
}

