package avm

import (
	"crypto/sha256"
	"fmt"

	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
)

// Sign serializes the balance transfer in canonical order and signs the
// hash of its unsigned bytes. Every input gets a credential carrying that
// signature, while the returned signatures keep the builder's input order.
func (c *chain) Sign(
	tx *domain.UnsignedTransaction, key ports.KeyPair,
) (*domain.SignedTransaction, error) {
	if tx.Model != domain.Account || tx.Transfer == nil {
		return nil, fmt.Errorf(
			"%w: expected a balance transfer", domain.ErrInvalidTransaction,
		)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	btx, err := c.toBaseTx(tx)
	if err != nil {
		return nil, err
	}
	unsigned := btx.unsignedBytes()

	sig, err := key.Sign(sha256Sum(unsigned))
	if err != nil {
		return nil, err
	}

	sigs := make([][]byte, 0, len(btx.inputs))
	signatures := make([]domain.Signature, 0, len(tx.Inputs))
	for i, in := range tx.Inputs {
		sigs = append(sigs, sig)
		signatures = append(signatures, domain.Signature{
			Index:  i,
			Amount: in.Amount,
			Bytes:  sig,
			PubKey: key.PubKey(),
		})
	}

	raw := btx.signedBytes(unsigned, sigs)
	var txid [32]byte
	copy(txid[:], sha256Sum(raw))

	return &domain.SignedTransaction{
		Tx:         tx,
		Signatures: signatures,
		Raw:        raw,
		TxID:       EncodeID(txid),
	}, nil
}

func (c *chain) toBaseTx(tx *domain.UnsignedTransaction) (*baseTx, error) {
	memo := []byte(tx.Transfer.Memo)
	if len(memo) > maxMemoLen {
		return nil, fmt.Errorf(
			"%w: memo exceeds %d bytes", domain.ErrInvalidTransaction, maxMemoLen,
		)
	}

	btx := &baseTx{
		networkID:    c.networkID,
		blockchainID: c.blockchainID,
		inputs:       make([]transferInput, 0, len(tx.Inputs)),
		outputs:      make([]transferOutput, 0, len(tx.Outputs)),
		memo:         memo,
	}

	for _, in := range tx.Inputs {
		txID, err := decodeID(in.Outpoint.TxID)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: input %s: %s", domain.ErrInvalidTransaction, in.Outpoint, err,
			)
		}
		assetID, err := c.assetID(in.AssetID)
		if err != nil {
			return nil, err
		}
		btx.inputs = append(btx.inputs, transferInput{
			txID:        txID,
			outputIndex: in.Outpoint.VOut,
			assetID:     assetID,
			amount:      in.Amount,
		})
	}

	for i, out := range tx.Outputs {
		addr, err := c.parseAddress(out.Address)
		if err != nil {
			return nil, fmt.Errorf(
				"output %d: %w: %s", i, domain.ErrInvalidAddress, err,
			)
		}
		assetID, err := c.assetID(out.AssetID)
		if err != nil {
			return nil, err
		}
		amount := out.Value
		if out.AssetID != "" {
			amount = out.TokenAmount
		}
		btx.outputs = append(btx.outputs, transferOutput{
			assetID: assetID,
			amount:  amount,
			address: addr,
		})
	}

	btx.sort()
	return btx, nil
}

func (c *chain) assetID(asset string) ([32]byte, error) {
	if asset == "" {
		asset = c.feeAssetID
	}
	id, err := decodeID(asset)
	if err != nil {
		return id, fmt.Errorf(
			"%w: asset %s: %s", domain.ErrInvalidTransaction, asset, err,
		)
	}
	return id, nil
}

func sha256Sum(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}
