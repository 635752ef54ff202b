package init

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

// The init actor uniquely has the power to create new actors.
// It maintains a table resolving pubkey and temporary actor addresses to the canonical ID-addresses,
// the table of installed actor code, and what it knows about each actor it deployed.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		1: a.Constructor,
		3: a.Exec,
		4: a.Install,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.InitActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

type ConstructorParams struct {
	NetworkName string
}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)
	st, err := ConstructState(adt.AsStore(rt), params.NetworkName)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

type InstallParams struct {
	Code cid.Cid
}

type InstallReturn struct {
	CodeID    uint64
	Installed bool
}

// Install registers actor code for deployment by Exec.
func (a Actor) Install(rt runtime.Runtime, params *InstallParams) *InstallReturn {
	rt.ValidateImmediateCallerAcceptAny()
	builtin.RequireParam(rt, params.Code.Defined(), "undefined code cid")

	var st State
	var ret InstallReturn
	rt.StateTransaction(&st, func() {
		var err error
		ret.CodeID, ret.Installed, err = st.InstallCode(adt.AsStore(rt), params.Code)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to install code %v", params.Code)
	})
	return &ret
}

type ExecParams struct {
	CodeID            uint64
	ConstructorParams []byte
	// Human readable name of the deployment.
	Label string
}

type ExecReturn struct {
	IDAddress     addr.Address // The canonical ID-based address for the actor.
	RobustAddress addr.Address // A more expensive but re-org-safe address for the newly created actor.
}

func (a Actor) Exec(rt runtime.Runtime, params *ExecParams) *ExecReturn {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)
	code, found, err := st.GetCode(adt.AsStore(rt), params.CodeID)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load installed actors")
	if !found {
		rt.Abortf(exitcode.ErrNotFound, "no code installed with id %d", params.CodeID)
	}
	if !canExec(code) {
		rt.Abortf(exitcode.ErrForbidden, "caller %v cannot exec actor of type %v", rt.Message().Caller(), builtin.ActorNameByCode(code))
	}

	// Compute a re-org-stable address.
	// This address exists for use by messages coming from outside the system, in order to
	// stably address the newly created actor even if a chain re-org causes it to end up with
	// a different ID.
	uniqueAddress := rt.NewActorAddress()

	// Allocate an ID for this actor.
	// Store mapping of pubkey or actor address to actor ID
	var idAddr addr.Address
	rt.StateTransaction(&st, func() {
		store := adt.AsStore(rt)
		idAddr, err = st.MapAddressToNewID(store, uniqueAddress)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to allocate ID address")

		err = st.PutContractInfo(store, idAddr, &ContractInfo{
			CodeID:  params.CodeID,
			Creator: rt.Message().Caller(),
			Label:   params.Label,
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to record contract info")
	})

	// Create an empty actor.
	rt.CreateActor(code, idAddr)

	// Invoke constructor.
	rt.Send(idAddr, builtin.MethodConstructor, runtime.CBORBytes(params.ConstructorParams), rt.Message().ValueReceived())

	rt.Log(builtin.GetActorLogLevel(a, rtt.DEBUG), "exec %s %q at %v", builtin.ActorNameByCode(code), params.Label, idAddr)
	return &ExecReturn{IDAddress: idAddr, RobustAddress: uniqueAddress}
}

func canExec(code cid.Cid) bool {
	switch code {
	case builtin.SystemActorCodeID, builtin.InitActorCodeID, builtin.TransferActorCodeID:
		// Singletons exist once, at genesis.
		return false
	case builtin.AccountActorCodeID:
		// Special case: account actors must be created implicitly by sending value;
		// cannot be created via exec.
		return false
	}
	return true
}
