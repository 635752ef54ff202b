package transfer

import (
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

// The transfer actor escrows funds leaving the chain and records the outbound packets.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		1: a.Constructor,
		3: a.Transfer,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.TransferActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

func (a Actor) Constructor(rt runtime.Runtime, _ *adt.EmptyValue) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)

	st, err := ConstructState(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

type TransferParams struct {
	ChannelID        string
	Receiver         string
	TimeoutTimestamp types.Timestamp
}

type TransferReturn struct {
	Sequence uint64
}

// Transfer escrows exactly one coin for delivery to a remote receiver over a channel.
func (a Actor) Transfer(rt runtime.Runtime, params *TransferParams) *TransferReturn {
	rt.ValidateImmediateCallerAcceptAny()

	coin := builtin.RequireOneCoin(rt, rt.Message().ValueReceived())
	builtin.RequireParam(rt, params.ChannelID != "", "empty channel id")
	builtin.RequireParam(rt, params.Receiver != "", "empty receiver")
	builtin.RequireParam(rt, params.TimeoutTimestamp > rt.BlockTime(), "timeout %v is not after current time %v", params.TimeoutTimestamp, rt.BlockTime())

	var st State
	var seq uint64
	rt.StateTransaction(&st, func() {
		var err error
		seq, err = st.AppendPacket(adt.AsStore(rt), &Packet{
			ChannelID:        params.ChannelID,
			Sender:           rt.Message().Caller(),
			Receiver:         params.Receiver,
			Coin:             coin,
			TimeoutTimestamp: params.TimeoutTimestamp,
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to record packet")
	})

	rt.Log(builtin.GetActorLogLevel(a, rtt.DEBUG), "packet %d: %v to %s over %s", seq, coin, params.Receiver, params.ChannelID)
	return &TransferReturn{Sequence: seq}
}
