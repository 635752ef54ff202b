package vesting

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/builtin/transfer"
	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

// Vesting escrows a single denom and releases it linearly to one claimer.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		1: a.Constructor,
		3: a.Claim,
		4: a.GetClaimable,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.VestingActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

type ConstructorParams struct {
	Receiver Receiver
	Strategy Strategy
}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.InitActorAddr)

	funds := builtin.RequireOneCoin(rt, rt.Message().ValueReceived())

	err := params.Receiver.Validate()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid receiver")
	builtin.RequireParam(rt, params.Strategy.Valid(), "invalid vesting strategy %v", params.Strategy)

	claimer, ok := rt.ResolveAddress(params.Receiver.ClaimerAddress())
	if !ok {
		rt.Abortf(exitcode.ErrIllegalArgument, "failed to resolve claimer address %v", params.Receiver.ClaimerAddress())
	}

	st := ConstructState(funds.Denom, params.Receiver, claimer, rt.BlockTime(), params.Strategy)
	rt.StateCreate(st)
	rt.Log(builtin.GetActorLogLevel(a, rtt.DEBUG), "vesting %v to %v from %v until %v", funds, params.Receiver, st.Start, st.End)
	return nil
}

type ClaimReturn struct {
	Amount abi.TokenAmount
}

// Claim pays the releasable share of the balance to the receiver and restarts the
// window at the current time.
func (a Actor) Claim(rt runtime.Runtime, _ *adt.EmptyValue) *ClaimReturn {
	var st State
	rt.StateReadonly(&st)
	rt.ValidateImmediateCallerIs(st.Claimer)

	now := rt.BlockTime()
	amount := claimable(rt, &st, now)
	coin := types.Coin{Denom: st.Denom, Amount: amount}

	// A cross-chain transfer of nothing is refused by the transfer actor, so a zero claim
	// only restarts the window.
	if st.Receiver.IsIBC() && !amount.IsZero() {
		rt.Send(builtin.TransferActorAddr, builtin.MethodsTransfer.Transfer, &transfer.TransferParams{
			ChannelID:        st.Receiver.IBC.ChannelID,
			Receiver:         st.Receiver.IBC.Address,
			TimeoutTimestamp: now.Add(CrossChainTimeoutSeconds),
		}, types.NewCoins(coin))
	} else if !st.Receiver.IsIBC() {
		rt.Send(st.Receiver.Native.Address, builtin.MethodSend, nil, types.NewCoins(coin))
	}

	rt.StateTransaction(&st, func() {
		st.Start = now
	})

	rt.EmitAttribute(AttributeAmountSent, amount.String())
	rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "claimed %v for %v", coin, st.Receiver)
	return &ClaimReturn{Amount: amount}
}

type ClaimableReturn struct {
	Amount abi.TokenAmount
}

// GetClaimable reports what Claim would pay at the current time, without side effects.
func (a Actor) GetClaimable(rt runtime.Runtime, _ *adt.EmptyValue) *ClaimableReturn {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	return &ClaimableReturn{Amount: claimable(rt, &st, rt.BlockTime())}
}

func claimable(rt runtime.Runtime, st *State, now types.Timestamp) abi.TokenAmount {
	amount, err := st.ReleasableAmount(rt.CurrentBalance(st.Denom), now)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to compute claimable amount")
	builtin.RequireState(rt, amount.BitLen() <= types.MaxCoinBits, "claimable amount %v overflows", amount)
	return amount
}
