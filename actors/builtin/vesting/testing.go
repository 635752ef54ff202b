package vesting

import (
	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/types"
)

type StateSummary struct {
	Denom   string
	Claimer address.Address
	Start   types.Timestamp
	End     types.Timestamp
}

// Checks internal invariants of vesting state.
func CheckStateInvariants(st *State, balance abi.TokenAmount) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}

	acc.RequireNoError(types.ValidateDenom(st.Denom), "invalid denom")
	acc.RequireNoError(st.Receiver.Validate(), "invalid receiver")
	acc.Require(st.Claimer.Protocol() == address.ID, "claimer %v is not an ID address", st.Claimer)
	if st.Receiver.Native != nil && st.Receiver.Native.Address.Protocol() == address.ID {
		acc.Require(st.Claimer == st.Receiver.Native.Address, "claimer %v differs from native receiver %v", st.Claimer, st.Receiver.Native.Address)
	}
	acc.Require(balance.Sign() >= 0, "negative balance %v", balance)

	return &StateSummary{
		Denom:   st.Denom,
		Claimer: st.Claimer,
		Start:   st.Start,
		End:     st.End,
	}, acc
}
