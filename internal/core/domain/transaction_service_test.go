package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-faucet/internal/core/domain"
)

var parties = domain.Parties{
	Sender:    "sender",
	Recipient: "recipient",
}

func TestBuildMarkerTransaction(t *testing.T) {
	t.Parallel()

	unspents := []domain.UnspentOutput{
		tokenUnspent("t0", tokenID, 100),
		feeUnspent("f0", 1342),
		tokenUnspent("t1", tokenID, 150),
		tokenUnspent("t2", tokenID, 250),
	}
	tx := buildTransaction(
		t, domain.TokenMarker, unspents, domain.AssetDescriptor{AssetID: tokenID},
		slpPolicy,
	)

	require.Len(t, tx.Inputs, 4)
	require.Equal(t, "f0", tx.Inputs[0].Outpoint.TxID)
	require.Equal(t, uint64(1342), tx.Inputs[0].Amount)
	for i, txid := range []string{"t0", "t1", "t2"} {
		require.Equal(t, txid, tx.Inputs[i+1].Outpoint.TxID)
		require.Equal(t, uint64(546), tx.Inputs[i+1].Amount)
	}

	require.Len(t, tx.Outputs, 3)
	marker, dust, change := tx.Outputs[0], tx.Outputs[1], tx.Outputs[2]
	require.Equal(t, domain.OutputMarker, marker.Kind)
	require.Zero(t, marker.Value)
	require.Equal(t, []uint64{1, 499}, marker.Marker)

	require.Equal(t, domain.OutputDust, dust.Kind)
	require.Equal(t, "recipient", dust.Address)
	require.Equal(t, uint64(546), dust.Value)
	require.Equal(t, uint64(1), dust.TokenAmount)

	require.Equal(t, domain.OutputChange, change.Kind)
	require.Equal(t, "sender", change.Address)
	require.Equal(t, uint64(546), change.Value)
	require.Equal(t, uint64(499), change.TokenAmount)

	require.Equal(t, uint64(250), tx.Fee)
	require.Nil(t, tx.Transfer)
}

func TestBuildMarkerTransactionWithSeparateTokenChange(t *testing.T) {
	t.Parallel()

	unspents := []domain.UnspentOutput{
		feeUnspent("f0", 3000),
		tokenUnspent("t0", tokenID, 500),
	}
	policy := slpPolicy
	policy.SeparateTokenChange = true

	tx := buildTransaction(
		t, domain.TokenMarker, unspents,
		domain.AssetDescriptor{AssetID: tokenID, Denomination: 2}, policy,
	)

	require.Len(t, tx.Inputs, 2)
	require.Len(t, tx.Outputs, 4)
	kinds := []domain.OutputKind{
		domain.OutputMarker, domain.OutputDust, domain.OutputTokenChange,
		domain.OutputChange,
	}
	for i, k := range kinds {
		require.Equal(t, k, tx.Outputs[i].Kind)
	}
	require.Equal(t, []uint64{100, 400}, tx.Outputs[0].Marker)
	require.Equal(t, uint64(400), tx.Outputs[2].TokenAmount)
	require.Equal(t, uint64(546), tx.Outputs[2].Value)
	require.Equal(t, uint64(3000-250-546*2), tx.Outputs[3].Value)
	require.Zero(t, tx.Outputs[3].TokenAmount)
}

func TestBuildMarkerTransactionWithoutTokenChange(t *testing.T) {
	t.Parallel()

	unspents := []domain.UnspentOutput{
		feeUnspent("f0", 1000),
		tokenUnspent("t0", tokenID, 1),
	}
	tx := buildTransaction(
		t, domain.TokenMarker, unspents, domain.AssetDescriptor{AssetID: tokenID},
		slpPolicy,
	)

	require.Len(t, tx.Outputs, 3)
	require.Equal(t, []uint64{1}, tx.Outputs[0].Marker)
	require.Empty(t, tx.Outputs[2].AssetID)
	require.Zero(t, tx.Outputs[2].TokenAmount)
}

func TestBuildNativeAssetTransaction(t *testing.T) {
	t.Parallel()

	unspents := []domain.UnspentOutput{
		feeUnspent("f0", 500),
		feeUnspent("f1", 2000),
		nativeUnspent("a0", 80000000),
		nativeUnspent("a1", 70000000),
	}
	tx := buildTransaction(
		t, domain.NativeAsset, unspents,
		domain.AssetDescriptor{AssetID: tokenID, Denomination: 8},
		domain.FeePolicy{Fee: 300},
	)

	require.Len(t, tx.Inputs, 3)
	require.Equal(t, "f1", tx.Inputs[0].Outpoint.TxID)
	require.Equal(t, uint64(2000), tx.Inputs[0].Value)
	require.Zero(t, tx.Inputs[1].Value)
	require.Equal(t, uint64(80000000), tx.Inputs[1].Amount)

	require.Len(t, tx.Outputs, 3)
	require.Equal(t, domain.OutputTransfer, tx.Outputs[0].Kind)
	require.Equal(t, uint64(100000000), tx.Outputs[0].TokenAmount)
	require.Equal(t, domain.OutputAssetChange, tx.Outputs[1].Kind)
	require.Equal(t, uint64(50000000), tx.Outputs[1].TokenAmount)
	require.Equal(t, domain.OutputChange, tx.Outputs[2].Kind)
	require.Equal(t, uint64(1700), tx.Outputs[2].Value)
	require.Equal(t, uint64(300), tx.Fee)
}

func TestBuildAccountTransaction(t *testing.T) {
	t.Parallel()

	unspents := []domain.UnspentOutput{
		feeUnspent("f0", 3000000),
		nativeUnspent("a0", 1000),
	}
	tx := buildTransaction(
		t, domain.Account, unspents,
		domain.AssetDescriptor{AssetID: tokenID, Denomination: 3, Symbol: "TST"},
		domain.FeePolicy{Fee: 1000000},
	)

	require.NotNil(t, tx.Transfer)
	require.Equal(t, domain.BalanceTransfer{
		AssetID: tokenID,
		Amount:  1000,
		To:      []string{"recipient"},
		From:    []string{"sender"},
		Change:  []string{"sender"},
		Memo:    "Faucet tx (TST)",
	}, *tx.Transfer)
	require.Len(t, tx.Outputs, 2)
}

func TestFailingBuildTransaction(t *testing.T) {
	t.Parallel()

	_, err := domain.BuildTransaction(domain.TransferPlan{}, parties)
	require.ErrorIs(t, err, domain.ErrInvalidTransaction)

	plan := domain.TransferPlan{
		Model:      domain.TokenMarker,
		Asset:      domain.AssetDescriptor{AssetID: tokenID},
		Selection:  newSelection(1000, 10),
		SendAmount: 1,
		Fee:        250,
		DustUnit:   546,
		DustCount:  1,
		Change:     5000,
	}
	_, err = domain.BuildTransaction(plan, parties)
	require.ErrorIs(t, err, domain.ErrInvalidTransaction)

	plan.Change = 100
	plan.SendAmount = 50
	_, err = domain.BuildTransaction(plan, parties)
	require.ErrorIs(t, err, domain.ErrInvalidTransaction)
}

func TestSignedTransactionIsComplete(t *testing.T) {
	t.Parallel()

	tx := &domain.UnsignedTransaction{
		Inputs: []domain.TransactionInput{{Amount: 10}, {Amount: 20}},
	}
	signed := &domain.SignedTransaction{
		Tx: tx,
		Signatures: []domain.Signature{
			{Index: 0, Amount: 10, Bytes: []byte{1}},
			{Index: 1, Amount: 20, Bytes: []byte{1}},
		},
	}
	require.True(t, signed.IsComplete())

	signed.Signatures[1].Amount = 10
	require.False(t, signed.IsComplete())

	signed.Signatures = signed.Signatures[:1]
	require.False(t, signed.IsComplete())
}

func buildTransaction(
	t *testing.T, model domain.NetworkModel, unspents []domain.UnspentOutput,
	asset domain.AssetDescriptor, policy domain.FeePolicy,
) *domain.UnsignedTransaction {
	feeOutputs, assetOutputs, err := domain.ClassifyUnspents(unspents, tokenID)
	require.NoError(t, err)
	selection, err := domain.SelectInputs(feeOutputs, assetOutputs)
	require.NoError(t, err)
	plan, err := domain.PlanTransfer(model, *selection, asset, policy)
	require.NoError(t, err)
	tx, err := domain.BuildTransaction(*plan, parties)
	require.NoError(t, err)
	require.NotNil(t, tx)
	return tx
}

func nativeUnspent(txid string, amount uint64) domain.UnspentOutput {
	return domain.UnspentOutput{
		TxID:        txid,
		Value:       amount,
		AssetID:     tokenID,
		IsToken:     true,
		TokenAmount: amount,
	}
}
