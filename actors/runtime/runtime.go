package runtime

import (
	"context"
	"io"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	"github.com/vestlabs/vesting-actors/actors/types"
)

// Runtime is the host as seen by actor code: the current message, balances, queued sends,
// state and logging. Actors reach nothing else.
type Runtime interface {
	// The message being executed.
	Message() Message

	// Name of the ledger, e.g. "vestnet".
	NetworkName() string

	// Height of the block being executed. Genesis is zero.
	CurrEpoch() abi.ChainEpoch

	// Time of the block being executed, in seconds. Vesting windows are measured against it.
	BlockTime() types.Timestamp

	// Caller checks. Every exported method must perform one before returning,
	// even methods open to anyone.
	ValidateImmediateCallerAcceptAny()
	ValidateImmediateCallerIs(addrs ...addr.Address)
	ValidateImmediateCallerType(types ...cid.Cid)

	// The balance of the receiver in a single denom, including any value received with the current message.
	CurrentBalance(denom string) abi.TokenAmount

	// Maps a key or actor address to the ID address it was assigned in the init actor's table.
	// ID addresses resolve to themselves. False if the address was never assigned an ID.
	ResolveAddress(address addr.Address) (addr.Address, bool)

	// Code CID of the actor at an address, false if there is none.
	GetActorCodeCID(addr addr.Address) (ret cid.Cid, ok bool)

	// Queues a message to another actor. Queued messages are executed in order after the
	// current method returns successfully. If any of them fails, the whole message
	// (including this method's state changes) is rolled back.
	Send(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value types.Coins)

	// Queues a message like Send and, once it has executed successfully, delivers its return
	// value to this actor's MethodReply tagged with replyID. The reply is a separate invocation.
	SendWithReply(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value types.Coins, replyID uint64)

	// Stops execution with an exit code. The whole top-level message fails and every state
	// change and queued send is discarded. Does not return.
	// msg and args are formatted with fmt.Sprintf for diagnostics only.
	Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{})

	// Derives a fresh actor-protocol address from the originating message. Unlike an ID
	// address it does not depend on the order messages are executed in.
	NewActorAddress() addr.Address

	// Creates an empty actor with the given code at an ID address. Init actor only.
	CreateActor(codeId cid.Cid, address addr.Address)

	// Records a key/value attribute on the receipt of the current message.
	EmitAttribute(key, value string)

	// Log writes a message to the VM's logger at the given level.
	Log(level rt.LogLevel, msg string, args ...interface{})

	// Context for the ADT libraries backing actor state. Actor code should not use it directly.
	Context() context.Context

	StateHandle
	Store
}

// Store is content-addressed storage for actor state.
type Store interface {
	// Loads the object at c into o. False if there is none.
	StoreGet(c cid.Cid, o cbor.Unmarshaler) bool
	// Stores x and returns its CID.
	StorePut(x cbor.Marshaler) cid.Cid
}

type Message interface {
	// ID address of the immediate caller.
	Caller() addr.Address

	// ID address of the executing actor.
	Receiver() addr.Address

	// Coins sent with the message. They are already part of CurrentBalance.
	ValueReceived() types.Coins
}

// StateHandle gives an actor exclusive access to its own state.
type StateHandle interface {
	// Sets the initial state. Constructors only, and only once.
	StateCreate(obj cbor.Marshaler)

	// Loads the current state into obj. Changes to obj are not persisted.
	StateReadonly(obj cbor.Unmarshaler)

	// Loads the current state into obj, runs f and persists obj. Sends and actor
	// creation inside f abort.
	StateTransaction(obj cbor.Er, f func())
}

// VMActor is the interface the VM uses to dispatch messages to actor code.
// Exports is indexed by method number; a nil entry is an unsupported method.
type VMActor interface {
	Exports() []interface{}
	Code() cid.Cid
	State() cbor.Er
}

// Wraps already-serialized bytes as CBOR-marshalable.
type CBORBytes []byte

func (b CBORBytes) MarshalCBOR(w io.Writer) error {
	_, err := w.Write(b)
	return err
}
