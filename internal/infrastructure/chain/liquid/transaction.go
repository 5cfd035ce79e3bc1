package liquid

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
	"github.com/tdex-network/tdex-faucet/pkg/bufferutil"
	"github.com/vulpemventures/go-elements/address"
	"github.com/vulpemventures/go-elements/payment"
	"github.com/vulpemventures/go-elements/transaction"
)

const txVersion = 2

// Sign serializes the transaction into an unconfidential elements transaction
// with an explicit fee output, and signs every input with SIGHASH_ALL over
// the value of the output it spends.
func (c *chain) Sign(
	tx *domain.UnsignedTransaction, key ports.KeyPair,
) (*domain.SignedTransaction, error) {
	if tx.Model != domain.NativeAsset {
		return nil, fmt.Errorf(
			"%w: unexpected %s transaction", domain.ErrInvalidTransaction, tx.Model,
		)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	pubkey, err := btcec.ParsePubKey(key.PubKey())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}
	signingScript := payment.FromPublicKey(pubkey, c.net, nil).Script

	utx, err := c.toElementsTx(tx)
	if err != nil {
		return nil, err
	}

	signatures := make([]domain.Signature, 0, len(tx.Inputs))
	for i, in := range tx.Inputs {
		value, err := bufferutil.ValueToBytes(in.Amount)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %s", domain.ErrSigning, i, err)
		}
		digest := utx.HashForWitnessV0(
			i, signingScript, value, txscript.SigHashAll,
		)
		sig, err := key.Sign(digest[:])
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		sigWithHashType := append(sig, byte(txscript.SigHashAll))

		utx.Inputs[i].Witness = transaction.TxWitness{
			sigWithHashType, key.PubKey(),
		}
		signatures = append(signatures, domain.Signature{
			Index:  i,
			Amount: in.Amount,
			Bytes:  sigWithHashType,
			PubKey: key.PubKey(),
		})
	}

	raw, err := utx.Serialize()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}

	return &domain.SignedTransaction{
		Tx:         tx,
		Signatures: signatures,
		Raw:        raw,
		TxID:       utx.TxHash().String(),
	}, nil
}

func (c *chain) toElementsTx(
	tx *domain.UnsignedTransaction,
) (*transaction.Transaction, error) {
	utx := transaction.NewTx(txVersion)

	for _, in := range tx.Inputs {
		hash, err := bufferutil.TxIDToBytes(in.Outpoint.TxID)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: input %s: %s", domain.ErrInvalidTransaction, in.Outpoint, err,
			)
		}
		utx.AddInput(transaction.NewTxInput(hash, in.Outpoint.VOut))
	}

	for i, out := range tx.Outputs {
		script, err := address.ToOutputScript(out.Address)
		if err != nil {
			return nil, fmt.Errorf(
				"output %d: %w: %s", i, domain.ErrInvalidAddress, err,
			)
		}
		asset, value := c.net.AssetID, out.Value
		if out.AssetID != "" {
			asset, value = out.AssetID, out.TokenAmount
		}
		output, err := newTxOutput(asset, value, script)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		utx.AddOutput(output)
	}

	feeOutput, err := newTxOutput(c.net.AssetID, tx.Fee, []byte{})
	if err != nil {
		return nil, fmt.Errorf("fee output: %w", err)
	}
	utx.AddOutput(feeOutput)

	return utx, nil
}

func newTxOutput(
	asset string, value uint64, script []byte,
) (*transaction.TxOutput, error) {
	assetBytes, err := bufferutil.AssetHashToBytes(asset)
	if err != nil {
		return nil, fmt.Errorf("%w: asset: %s", domain.ErrInvalidTransaction, err)
	}
	valueBytes, err := bufferutil.ValueToBytes(value)
	if err != nil {
		return nil, fmt.Errorf("%w: value: %s", domain.ErrInvalidTransaction, err)
	}
	return transaction.NewTxOutput(assetBytes, valueBytes, script), nil
}
