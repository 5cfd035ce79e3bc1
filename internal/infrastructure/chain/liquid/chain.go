package liquid

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
	"github.com/vulpemventures/go-elements/address"
	"github.com/vulpemventures/go-elements/network"
	"github.com/vulpemventures/go-elements/payment"
)

type chain struct {
	net *network.Network
}

// NewChain returns the native-asset chain for the given network.
func NewChain(net *network.Network) (ports.Chain, error) {
	if net == nil {
		return nil, fmt.Errorf("missing network")
	}
	return &chain{net}, nil
}

// NetworkFromName returns the elements network for the given name.
func NetworkFromName(name string) (*network.Network, error) {
	switch name {
	case network.Liquid.Name:
		return &network.Liquid, nil
	case network.Testnet.Name:
		return &network.Testnet, nil
	case network.Regtest.Name:
		return &network.Regtest, nil
	default:
		return nil, fmt.Errorf(
			"network must be one of '%s', '%s', '%s'",
			network.Liquid.Name, network.Testnet.Name, network.Regtest.Name,
		)
	}
}

func (c *chain) Kind() domain.NetworkKind {
	return domain.NetworkLiquid
}

func (c *chain) ValidateAddress(addr string) (valid bool) {
	if len(addr) <= 0 {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			valid = false
		}
	}()

	if _, err := address.ToOutputScript(addr); err != nil {
		return false
	}
	return c.isForNetwork(addr)
}

func (c *chain) isForNetwork(addr string) bool {
	lower := strings.ToLower(addr)
	for _, hrp := range []string{c.net.Bech32, c.net.Blech32} {
		if strings.HasPrefix(lower, hrp+"1") {
			return true
		}
	}

	payload, version, err := base58.CheckDecode(addr)
	if err != nil {
		return false
	}
	switch version {
	case c.net.PubKeyHash, c.net.ScriptHash:
		return true
	case c.net.Confidential:
		return len(payload) > 0 &&
			(payload[0] == c.net.PubKeyHash || payload[0] == c.net.ScriptHash)
	default:
		return false
	}
}

// DeriveKeyPair returns the key pair of the given WIF encoded private key.
// The wallet receives funds on the unconfidential P2WPKH address of the key.
func (c *chain) DeriveKeyPair(secret string) (ports.KeyPair, error) {
	_, version, err := base58.CheckDecode(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	if version != c.net.Wif {
		return nil, fmt.Errorf(
			"%w: key is not for network %s", domain.ErrSigning, c.net.Name,
		)
	}
	wif, err := btcutil.DecodeWIF(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	return newKeyPair(wif.PrivKey, c.net)
}

type keyPair struct {
	prvkey  *btcec.PrivateKey
	pubkey  []byte
	address string
}

func newKeyPair(
	prvkey *btcec.PrivateKey, net *network.Network,
) (*keyPair, error) {
	p2wpkh := payment.FromPublicKey(prvkey.PubKey(), net, nil)
	addr, err := p2wpkh.WitnessPubKeyHash()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	return &keyPair{prvkey, prvkey.PubKey().SerializeCompressed(), addr}, nil
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
