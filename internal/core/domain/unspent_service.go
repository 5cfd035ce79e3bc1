package domain

// ClassifyUnspents partitions the wallet unspents into the base-asset outputs
// that can pay network fees and the token outputs of the given asset.
// Outputs of any other asset, or outputs of the given asset that are not
// spendable tokens (ie. minting batons), belong to neither list.
func ClassifyUnspents(
	unspents []UnspentOutput, assetID string,
) (feeOutputs, assetOutputs []UnspentOutput, err error) {
	feeOutputs = make([]UnspentOutput, 0, len(unspents))
	assetOutputs = make([]UnspentOutput, 0, len(unspents))

	for _, u := range unspents {
		if u.IsBaseAsset() {
			feeOutputs = append(feeOutputs, u)
			continue
		}
		if u.AssetID == assetID && u.IsToken {
			assetOutputs = append(assetOutputs, u)
		}
	}

	if len(feeOutputs) <= 0 {
		return nil, nil, ErrNoFeeOutputs
	}
	if len(assetOutputs) <= 0 {
		return nil, nil, ErrNoAssetOutputs
	}
	return feeOutputs, assetOutputs, nil
}

// Selection holds the inputs chosen for a dispense.
type Selection struct {
	FeeInput    UnspentOutput
	AssetInputs []UnspentOutput
}

// TokenBalance returns the total amount of asset held by the selected asset
// inputs.
func (s Selection) TokenBalance() uint64 {
	var balance uint64
	for _, u := range s.AssetInputs {
		balance += u.TokenAmount
	}
	return balance
}

// SelectInputs picks the largest fee output, the first one seen in case of
// ties, and all of the asset outputs in their original order. The given
// slices are never modified.
func SelectInputs(
	feeOutputs, assetOutputs []UnspentOutput,
) (*Selection, error) {
	if len(feeOutputs) <= 0 {
		return nil, ErrNoFeeOutputs
	}
	if len(assetOutputs) <= 0 {
		return nil, ErrNoAssetOutputs
	}

	largest := 0
	for i := 1; i < len(feeOutputs); i++ {
		if feeOutputs[i].Value > feeOutputs[largest].Value {
			largest = i
		}
	}

	assetInputs := make([]UnspentOutput, len(assetOutputs))
	copy(assetInputs, assetOutputs)

	return &Selection{
		FeeInput:    feeOutputs[largest],
		AssetInputs: assetInputs,
	}, nil
}
