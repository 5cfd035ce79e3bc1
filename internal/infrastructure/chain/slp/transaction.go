package slp

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcwallet/wallet/txrules"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
	"github.com/tdex-network/tdex-faucet/internal/core/ports"
)

// sigHashForkID flags the replay protected signature hash of Bitcoin Cash.
const sigHashForkID txscript.SigHashType = 0x40

// sigHashType is the hash type of every input signature.
const sigHashType = txscript.SigHashAll | sigHashForkID

// Sign serializes the transaction spending the wallet's P2PKH outputs and
// signs every input with SIGHASH_ALL|SIGHASH_FORKID. The digest commits to
// the value of the output the input spends, with the layout of the BIP143
// digest over the P2PKH script code.
func (c *chain) Sign(
	tx *domain.UnsignedTransaction, key ports.KeyPair,
) (*domain.SignedTransaction, error) {
	if tx.Model != domain.TokenMarker {
		return nil, fmt.Errorf(
			"%w: unexpected %s transaction", domain.ErrInvalidTransaction, tx.Model,
		)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	walletScript, err := c.outputScript(key.Address())
	if err != nil {
		return nil, fmt.Errorf("%w: wallet address: %s", domain.ErrSigning, err)
	}

	msgTx, prevOuts, err := c.toMsgTx(tx, walletScript)
	if err != nil {
		return nil, err
	}

	sigHashes := txscript.NewTxSigHashes(msgTx, prevOuts)
	signatures := make([]domain.Signature, 0, len(tx.Inputs))
	for i, in := range tx.Inputs {
		digest, err := txscript.CalcWitnessSigHash(
			walletScript, sigHashes, sigHashType, msgTx, i, int64(in.Amount),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %s", domain.ErrSigning, i, err)
		}
		sig, err := key.Sign(digest)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		sigWithHashType := append(sig, byte(sigHashType))

		scriptSig, err := txscript.NewScriptBuilder().
			AddData(sigWithHashType).AddData(key.PubKey()).Script()
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %s", domain.ErrSigning, i, err)
		}
		msgTx.TxIn[i].SignatureScript = scriptSig
		signatures = append(signatures, domain.Signature{
			Index:  i,
			Amount: in.Amount,
			Bytes:  sigWithHashType,
			PubKey: key.PubKey(),
		})
	}

	buf := bytes.NewBuffer(make([]byte, 0, msgTx.SerializeSize()))
	if err := msgTx.Serialize(buf); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSigning, err)
	}

	return &domain.SignedTransaction{
		Tx:         tx,
		Signatures: signatures,
		Raw:        buf.Bytes(),
		TxID:       msgTx.TxHash().String(),
	}, nil
}

func (c *chain) toMsgTx(
	tx *domain.UnsignedTransaction, walletScript []byte,
) (*wire.MsgTx, *txscript.MultiPrevOutFetcher, error) {
	msgTx := wire.NewMsgTx(wire.TxVersion)
	prevOuts := txscript.NewMultiPrevOutFetcher(nil)

	for _, in := range tx.Inputs {
		hash, err := chainhash.NewHashFromStr(in.Outpoint.TxID)
		if err != nil {
			return nil, nil, fmt.Errorf(
				"%w: input %s: %s", domain.ErrInvalidTransaction, in.Outpoint, err,
			)
		}
		outpoint := wire.NewOutPoint(hash, in.Outpoint.VOut)
		msgTx.AddTxIn(wire.NewTxIn(outpoint, nil, nil))
		prevOuts.AddPrevOut(*outpoint, wire.NewTxOut(int64(in.Amount), walletScript))
	}

	for i, out := range tx.Outputs {
		txOut, err := c.toTxOut(tx.AssetID, out)
		if err != nil {
			return nil, nil, fmt.Errorf("output %d: %w", i, err)
		}
		msgTx.AddTxOut(txOut)
	}
	return msgTx, prevOuts, nil
}

func (c *chain) toTxOut(
	tokenID string, out domain.TransactionOutput,
) (*wire.TxOut, error) {
	if out.Kind == domain.OutputMarker {
		script, err := buildSendMarker(tokenID, out.Marker)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransaction, err)
		}
		return wire.NewTxOut(0, script), nil
	}

	script, err := c.outputScript(out.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, err)
	}
	txOut := wire.NewTxOut(int64(out.Value), script)

	// The change output is the only one allowed below the dust threshold.
	if out.Kind == domain.OutputChange {
		return txOut, nil
	}
	if err := txrules.CheckOutput(txOut, txrules.DefaultRelayFeePerKb); err != nil {
		if errors.Is(err, txrules.ErrOutputIsDust) {
			return nil, fmt.Errorf("%w: %d", domain.ErrDustOutput, out.Value)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidTransaction, err)
	}
	return txOut, nil
}

func (c *chain) outputScript(addr string) ([]byte, error) {
	decoded, err := c.decodeAddress(addr)
	if err != nil {
		return nil, err
	}
	return txscript.PayToAddrScript(decoded)
}
