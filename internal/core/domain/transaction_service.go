package domain

import "fmt"

const memoFormat = "Faucet tx (%s)"

// Parties are the addresses involved in a dispense. Change defaults to
// Sender when empty.
type Parties struct {
	Sender    string
	Recipient string
	Change    string
}

func (p Parties) changeAddress() string {
	if p.Change != "" {
		return p.Change
	}
	return p.Sender
}

// Memo returns the memo attached to account-style transfers of the asset.
func Memo(asset AssetDescriptor) string {
	return fmt.Sprintf(memoFormat, asset.Ticker())
}

// BuildTransaction assembles the unsigned transaction for the given plan.
// Inputs are the fee input followed by every asset input in selection order.
// Outputs depend on the network model:
//   - token-marker: marker, recipient dust, optional token change dust to
//     self, change to self
//   - native-asset: asset transfer, optional asset change, base change
//   - account: same as native-asset plus the balance transfer instruction
func BuildTransaction(
	plan TransferPlan, parties Parties,
) (*UnsignedTransaction, error) {
	inputs := buildInputs(plan)
	if len(inputs) <= 0 {
		return nil, fmt.Errorf("%w: no inputs", ErrInvalidTransaction)
	}

	var outputs []TransactionOutput
	var transfer *BalanceTransfer
	switch plan.Model {
	case TokenMarker:
		outputs = markerOutputs(plan, parties)
	case NativeAsset:
		outputs = assetOutputs(plan, parties)
	case Account:
		outputs = assetOutputs(plan, parties)
		transfer = &BalanceTransfer{
			AssetID: plan.Asset.AssetID,
			Amount:  plan.SendAmount,
			To:      []string{parties.Recipient},
			From:    []string{parties.Sender},
			Change:  []string{parties.changeAddress()},
			Memo:    Memo(plan.Asset),
		}
	default:
		return nil, fmt.Errorf(
			"%w: unknown network model %d", ErrInvalidTransaction, plan.Model,
		)
	}

	tx := &UnsignedTransaction{
		Model:    plan.Model,
		AssetID:  plan.Asset.AssetID,
		Inputs:   inputs,
		Outputs:  outputs,
		Fee:      plan.Fee,
		Transfer: transfer,
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Validate checks that, for both the base asset and the transferred asset,
// inputs cover outputs (and fee, for the base asset).
func (t *UnsignedTransaction) Validate() error {
	if len(t.Inputs) <= 0 {
		return fmt.Errorf("%w: no inputs", ErrInvalidTransaction)
	}

	var baseIn, baseOut, tokenIn, tokenOut uint64
	for _, in := range t.Inputs {
		baseIn += in.Value
		tokenIn += in.TokenAmount
	}
	for _, out := range t.Outputs {
		baseOut += out.Value
		tokenOut += out.TokenAmount
	}

	if baseIn < baseOut+t.Fee {
		return fmt.Errorf(
			"%w: base outputs and fee (%d) exceed inputs (%d)",
			ErrInvalidTransaction, baseOut+t.Fee, baseIn,
		)
	}
	if tokenIn < tokenOut {
		return fmt.Errorf(
			"%w: asset outputs (%d) exceed inputs (%d)",
			ErrInvalidTransaction, tokenOut, tokenIn,
		)
	}
	return nil
}

func buildInputs(plan TransferPlan) []TransactionInput {
	sel := plan.Selection
	if sel.FeeInput.TxID == "" {
		return nil
	}

	inputs := make([]TransactionInput, 0, 1+len(sel.AssetInputs))
	inputs = append(inputs, TransactionInput{
		Outpoint: sel.FeeInput.Key(),
		Amount:   sel.FeeInput.Value,
		Value:    sel.FeeInput.BaseValue(plan.Model),
	})
	for _, u := range sel.AssetInputs {
		inputs = append(inputs, TransactionInput{
			Outpoint:    u.Key(),
			AssetID:     u.AssetID,
			Amount:      u.Value,
			Value:       u.BaseValue(plan.Model),
			TokenAmount: u.TokenAmount,
		})
	}
	return inputs
}

func markerOutputs(plan TransferPlan, parties Parties) []TransactionOutput {
	assetID := plan.Asset.AssetID
	amounts := []uint64{plan.SendAmount}
	if plan.TokenChange > 0 {
		amounts = append(amounts, plan.TokenChange)
	}

	outputs := []TransactionOutput{
		{
			Kind:    OutputMarker,
			AssetID: assetID,
			Marker:  amounts,
		},
		{
			Kind:        OutputDust,
			Address:     parties.Recipient,
			AssetID:     assetID,
			Value:       plan.DustUnit,
			TokenAmount: plan.SendAmount,
		},
	}

	change := TransactionOutput{
		Kind:    OutputChange,
		Address: parties.changeAddress(),
		Value:   plan.Change,
	}
	if plan.HasTokenChangeCarrier() {
		outputs = append(outputs, TransactionOutput{
			Kind:        OutputTokenChange,
			Address:     parties.changeAddress(),
			AssetID:     assetID,
			Value:       plan.DustUnit,
			TokenAmount: plan.TokenChange,
		})
	} else if plan.TokenChange > 0 {
		change.AssetID = assetID
		change.TokenAmount = plan.TokenChange
	}

	return append(outputs, change)
}

func assetOutputs(plan TransferPlan, parties Parties) []TransactionOutput {
	assetID := plan.Asset.AssetID
	outputs := []TransactionOutput{
		{
			Kind:        OutputTransfer,
			Address:     parties.Recipient,
			AssetID:     assetID,
			TokenAmount: plan.SendAmount,
		},
	}
	if plan.TokenChange > 0 {
		outputs = append(outputs, TransactionOutput{
			Kind:        OutputAssetChange,
			Address:     parties.changeAddress(),
			AssetID:     assetID,
			TokenAmount: plan.TokenChange,
		})
	}
	return append(outputs, TransactionOutput{
		Kind:    OutputChange,
		Address: parties.changeAddress(),
		Value:   plan.Change,
	})
}
