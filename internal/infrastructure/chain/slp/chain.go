package slp

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcwallet/wallet/txrules"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
)

// p2pkhScriptSize is the size of the most common output script, used to check
// the dust unit against the network relay policy.
const p2pkhScriptSize = 25

// cashAddrPrefixes maps every network to the prefix of its cashaddrs and to
// the one of its token-aware addresses.
var cashAddrPrefixes = map[string][2]string{
	chaincfg.MainNetParams.Name:       {"bitcoincash", "simpleledger"},
	chaincfg.TestNet3Params.Name:      {"bchtest", "slptest"},
	chaincfg.RegressionNetParams.Name: {"bchreg", "slpreg"},
}

// chain is a Bitcoin Cash chain. The btcd network params provide the legacy
// address and WIF version bytes, that Bitcoin Cash shares with Bitcoin.
type chain struct {
	params   *chaincfg.Params
	prefixes []string
}

// NewChain returns the token-marker chain for the given network params. The
// dust unit must not be considered dust by the network relay policy.
func NewChain(params *chaincfg.Params, dustUnit uint64) (ports.Chain, error) {
	if params == nil {
		return nil, fmt.Errorf("missing network params")
	}
	prefixes, ok := cashAddrPrefixes[params.Name]
	if !ok {
		return nil, fmt.Errorf("unsupported network %s", params.Name)
	}
	if txrules.IsDustAmount(
		btcutil.Amount(dustUnit), p2pkhScriptSize, txrules.DefaultRelayFeePerKb,
	) {
		return nil, fmt.Errorf("%w: dust unit %d", domain.ErrDustOutput, dustUnit)
	}
	return &chain{params, prefixes[:]}, nil
}

// ParamsFromName returns the network params for the given network name.
func ParamsFromName(name string) (*chaincfg.Params, error) {
	switch name {
	case chaincfg.MainNetParams.Name:
		return &chaincfg.MainNetParams, nil
	case chaincfg.TestNet3Params.Name:
		return &chaincfg.TestNet3Params, nil
	case chaincfg.RegressionNetParams.Name:
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf(
			"network must be one of '%s', '%s', '%s'",
			chaincfg.MainNetParams.Name, chaincfg.TestNet3Params.Name,
			chaincfg.RegressionNetParams.Name,
		)
	}
}

func (c *chain) Kind() domain.NetworkKind {
	return domain.NetworkSLP
}

// ValidateAddress accepts cashaddrs, with or without prefix, and legacy
// base58 addresses of the chain network. Segwit addresses do not exist on
// Bitcoin Cash.
func (c *chain) ValidateAddress(addr string) bool {
	if len(addr) <= 0 {
		return false
	}
	_, err := c.decodeAddress(addr)
	return err == nil
}

func (c *chain) decodeAddress(addr string) (btcutil.Address, error) {
	typ, hash, err := decodeCashAddr(addr, c.prefixes...)
	if err == nil {
		if typ == cashAddrP2SH {
			return btcutil.NewAddressScriptHashFromHash(hash, c.params)
		}
		return btcutil.NewAddressPubKeyHash(hash, c.params)
	}

	decoded, legacyErr := btcutil.DecodeAddress(addr, c.params)
	if legacyErr != nil {
		return nil, err
	}
	switch decoded.(type) {
	case *btcutil.AddressPubKeyHash, *btcutil.AddressScriptHash:
	default:
		return nil, fmt.Errorf("unsupported address type %T", decoded)
	}
	if !decoded.IsForNet(c.params) {
		return nil, fmt.Errorf(
			"address %s is not for network %s", addr, c.params.Name,
		)
	}
	return decoded, nil
}

func (c *chain) DeriveKeyPair(secret string) (ports.KeyPair, error) {
	wif, err := btcutil.DecodeWIF(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	if !wif.IsForNet(c.params) {
		return nil, fmt.Errorf(
			"%w: key is not for network %s", domain.ErrSigning, c.params.Name,
		)
	}
	return newKeyPair(wif.PrivKey, c.params, c.prefixes[0])
}

type keyPair struct {
	prvkey  *btcec.PrivateKey
	pubkey  []byte
	address string
	script  []byte
}

// newKeyPair returns the P2PKH wallet of the key, addressed by its
// cashaddr.
func newKeyPair(
	prvkey *btcec.PrivateKey, params *chaincfg.Params, prefix string,
) (*keyPair, error) {
	pubkey := prvkey.PubKey().SerializeCompressed()
	hash := btcutil.Hash160(pubkey)
	addr, err := btcutil.NewAddressPubKeyHash(hash, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	cashAddr, err := encodeCashAddr(prefix, cashAddrP2PKH, hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	return &keyPair{prvkey, pubkey, cashAddr, script}, nil
}

func (k *keyPair) Address() string {
	return k.address
}

func (k *keyPair) PubKey() []byte {
	return k.pubkey
}

func (k *keyPair) Sign(digest []byte) ([]byte, error) {
	sig := ecdsa.Sign(k.prvkey, digest)
	if !sig.Verify(digest, k.prvkey.PubKey()) {
		return nil, fmt.Errorf("%w: signature verification failed", domain.ErrSigning)
	}
	return sig.Serialize(), nil
}
