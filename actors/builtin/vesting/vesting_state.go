package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/vestlabs/vesting-actors/actors/types"
)

// State of a single vesting instance.
// Funds are held as the actor's own balance in Denom; the state only tracks the window.
type State struct {
	Denom    string
	Receiver Receiver
	// ID address allowed to claim.
	Claimer addr.Address
	// Start of the remaining window. Moves to the claim time after every claim.
	Start types.Timestamp
	// End of the window. Fixed at construction.
	End types.Timestamp
}

func ConstructState(denom string, receiver Receiver, claimer addr.Address, now types.Timestamp, strategy Strategy) *State {
	return &State{
		Denom:    denom,
		Receiver: receiver,
		Claimer:  claimer,
		Start:    now,
		End:      now.Add(strategy.Seconds()),
	}
}

// ReleasableAmount computes the amount of balance that may be paid out at time now.
// At or after the end of the window the whole balance is released. Before that the
// balance is spread evenly over the remaining window and the elapsed share is released.
func (st *State) ReleasableAmount(balance abi.TokenAmount, now types.Timestamp) (abi.TokenAmount, error) {
	if now >= st.End {
		return balance, nil
	}
	if now < st.Start {
		return big.Zero(), exitcode.ErrIllegalState.Wrapf("current time %v is before vesting start %v", now, st.Start)
	}
	window := st.End - st.Start
	if window == 0 {
		return big.Zero(), exitcode.ErrIllegalState.Wrapf("empty vesting window at %v", st.Start)
	}

	rate := big.Div(balance, big.NewIntUnsigned(uint64(window)))
	return big.Mul(rate, big.NewIntUnsigned(uint64(now-st.Start))), nil
}
