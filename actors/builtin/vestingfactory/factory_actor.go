package vestingfactory

import (
	"bytes"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

// Returned by Reply for a correlation id with no pending deployment.
const ErrInvalidReplyID = exitcode.FirstActorSpecificExitCode

// The vesting factory deploys vesting actors and tracks the latest one per receiver.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		1: a.Constructor,
		2: a.Reply,
		3: a.CreateVesting,
		4: a.GetVestingAddr,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.VestingFactoryActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

type ConstructorParams struct {
	VestingCodeID uint64
}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)

	st, err := ConstructState(adt.AsStore(rt), params.VestingCodeID)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

type CreateVestingParams struct {
	Receiver vesting.Receiver
	Strategy vesting.Strategy
	// Label given to the deployed instance.
	Label string
}

type CreateVestingReturn struct {
	// Correlation id of the deployment. The instance address is recorded when its reply arrives.
	ReplyID uint64
}

// CreateVesting deploys a vesting actor funded with the value received.
func (a Actor) CreateVesting(rt runtime.Runtime, params *CreateVestingParams) *CreateVestingReturn {
	rt.ValidateImmediateCallerAcceptAny()

	funds := rt.Message().ValueReceived()
	if funds.IsEmpty() {
		rt.Abortf(exitcode.ErrInsufficientFunds, "must send funds to start vesting")
	}
	err := params.Receiver.Validate()
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid receiver")

	ctorParams := vesting.ConstructorParams{
		Receiver: params.Receiver,
		Strategy: params.Strategy,
	}
	ctorParamBuf := new(bytes.Buffer)
	err = ctorParams.MarshalCBOR(ctorParamBuf)
	builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to serialize vesting constructor params %v", ctorParams)

	var st State
	var replyID uint64
	rt.StateTransaction(&st, func() {
		replyID, err = st.AddPendingInit(adt.AsStore(rt), &PendingInit{
			Receiver: params.Receiver.Key(),
			Label:    params.Label,
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to record pending init")
	})

	rt.SendWithReply(builtin.InitActorAddr, builtin.MethodsInit.Exec, &init_.ExecParams{
		CodeID:            st.VestingCodeID,
		ConstructorParams: ctorParamBuf.Bytes(),
		Label:             params.Label,
	}, funds, replyID)

	rt.Log(builtin.GetActorLogLevel(a, rtt.DEBUG), "creating vesting for %v with %v, reply %d", params.Receiver, funds, replyID)
	return &CreateVestingReturn{ReplyID: replyID}
}

// Reply records the address of a vesting actor deployed by CreateVesting.
func (a Actor) Reply(rt runtime.Runtime, params *builtin.ReplyParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)

	var st State
	var receiver string
	var execRet init_.ExecReturn
	rt.StateTransaction(&st, func() {
		store := adt.AsStore(rt)
		pending, found, err := st.TakePendingInit(store, params.ID)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load pending init")
		if !found {
			rt.Abortf(ErrInvalidReplyID, "reply id not found = %d", params.ID)
		}
		receiver = pending.Receiver

		err = execRet.UnmarshalCBOR(bytes.NewReader(params.Return))
		builtin.RequireNoErr(rt, err, exitcode.ErrSerialization, "failed to decode exec return for reply %d", params.ID)
		builtin.RequireParam(rt, execRet.IDAddress.Protocol() == addr.ID, "instance address %v is not an ID address", execRet.IDAddress)
		_, ok := rt.GetActorCodeCID(execRet.IDAddress)
		builtin.RequireParam(rt, ok, "no actor at instance address %v", execRet.IDAddress)

		err = st.PutVestingContract(store, receiver, execRet.IDAddress)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to record vesting contract")
	})

	rt.Log(builtin.GetActorLogLevel(a, rtt.INFO), "vesting for %s deployed at %v", receiver, execRet.IDAddress)
	return nil
}

type GetVestingAddrParams struct {
	Receiver string
}

type GetVestingAddrReturn struct {
	Address addr.Address
}

func (a Actor) GetVestingAddr(rt runtime.Runtime, params *GetVestingAddrParams) *GetVestingAddrReturn {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	address, found, err := st.GetVestingContract(adt.AsStore(rt), params.Receiver)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load vesting contracts")
	if !found {
		rt.Abortf(exitcode.ErrNotFound, "no vesting contract for receiver %s", params.Receiver)
	}
	return &GetVestingAddrReturn{Address: address}
}
