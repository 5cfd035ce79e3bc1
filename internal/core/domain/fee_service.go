package domain

import (
	"fmt"
	"math"
)

// FeePolicy holds the fixed network fee and the value of the dust carriers
// of a network, both in base-asset units. On token-marker chains, token change
// rides on the change output unless SeparateTokenChange is set, in which case
// it gets its own dust carrier to self.
type FeePolicy struct {
	Fee                 uint64
	DustUnit            uint64
	SeparateTokenChange bool
}

// ComputeChange returns what is left of the fee input once the fee and the
// dust carriers are paid. A change lower than 1 unit, including an input not
// even covering the fee, fails with ErrInsufficientFunds.
func ComputeChange(
	feeInputValue, fee, dustUnit, dustCount uint64,
) (uint64, error) {
	if dustCount > 0 && dustUnit > (math.MaxUint64-fee)/dustCount {
		return 0, fmt.Errorf(
			"%w: fee %d plus %d dust units of %d overflows",
			ErrInsufficientFunds, fee, dustCount, dustUnit,
		)
	}
	spent := fee + dustUnit*dustCount
	if feeInputValue <= spent {
		return 0, fmt.Errorf(
			"%w: have %d, need more than %d", ErrInsufficientFunds,
			feeInputValue, spent,
		)
	}
	return feeInputValue - spent, nil
}

// CheckTokenBalance returns the token change left once the send amount is
// taken from the balance, failing if the balance does not cover it.
func CheckTokenBalance(sendAmount, balance uint64) (uint64, error) {
	if sendAmount > balance {
		return 0, fmt.Errorf(
			"%w: have %d, need %d", ErrInsufficientTokenBalance,
			balance, sendAmount,
		)
	}
	return balance - sendAmount, nil
}

// TransferPlan is the outcome of the fee and change computation for a
// dispense, from which the transaction builder assembles inputs and outputs.
type TransferPlan struct {
	Model        NetworkModel
	Asset        AssetDescriptor
	Selection    Selection
	SendAmount   uint64
	TokenBalance uint64
	TokenChange  uint64
	Fee          uint64
	DustUnit     uint64
	DustCount    uint64
	Change       uint64
}

// HasTokenChangeCarrier returns whether the token change is sent to a
// dedicated dust output.
func (p TransferPlan) HasTokenChangeCarrier() bool {
	return p.Model == TokenMarker && p.DustCount > p.Model.BaseDustCount()
}

// PlanTransfer computes the amounts of a dispense over the given selection.
// The fee input is checked first, then the token balance. On token-marker
// chains token change needs a carrier: either a dedicated dust output, paid
// out of the fee input, or the change output, that must then be at least
// worth a dust unit.
func PlanTransfer(
	model NetworkModel, selection Selection, asset AssetDescriptor,
	policy FeePolicy,
) (*TransferPlan, error) {
	dustCount := model.BaseDustCount()
	change, err := ComputeChange(
		selection.FeeInput.Value, policy.Fee, policy.DustUnit, dustCount,
	)
	if err != nil {
		return nil, err
	}

	sendAmount, err := asset.SendAmount()
	if err != nil {
		return nil, err
	}
	balance := selection.TokenBalance()
	tokenChange, err := CheckTokenBalance(sendAmount, balance)
	if err != nil {
		return nil, err
	}

	if model == TokenMarker && tokenChange > 0 {
		if policy.SeparateTokenChange {
			dustCount++
			change, err = ComputeChange(
				selection.FeeInput.Value, policy.Fee, policy.DustUnit, dustCount,
			)
			if err != nil {
				return nil, err
			}
		} else if change < policy.DustUnit {
			return nil, fmt.Errorf(
				"%w: change %d cannot carry token change, need at least %d",
				ErrInsufficientFunds, change, policy.DustUnit,
			)
		}
	}

	return &TransferPlan{
		Model:        model,
		Asset:        asset,
		Selection:    selection,
		SendAmount:   sendAmount,
		TokenBalance: balance,
		TokenChange:  tokenChange,
		Fee:          policy.Fee,
		DustUnit:     policy.DustUnit,
		DustCount:    dustCount,
		Change:       change,
	}, nil
}
