package vm

import (
	"bytes"
	"context"
	"io"
	"reflect"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
	"github.com/vestlabs/vesting-actors/support/ipld"
)

var log = logging.Logger("vm")

// VM is a simplified message execution framework for the purposes of testing inter-actor communication.
// The VM maintains actor state and can be used to simulate message execution for a sequence of blocks.
// The VM does not track gas charges, signatures or nonces.
type VM struct {
	ctx         context.Context
	actorImpls  ActorImplLookup
	store       adt.Store
	blocks      ipldcbor.IpldBlockstore // Optional, enables state export.
	networkName string
	epoch       abi.ChainEpoch
	blockTime   types.Timestamp

	emptyObject cid.Cid
	stateRoot   cid.Cid  // The last committed root.
	actors      *adt.Map // The current (not necessarily committed) root node.
	actorsDirty bool
	receipts    *adt.Array

	callSeq     uint64
	logs        []string
	invocations []*Invocation
	attributes  []Attribute
	vectors     *vectorGen
}

// ActorImplLookup maps actor code to the implementation dispatched for it.
type ActorImplLookup map[cid.Cid]runtime.VMActor

// TestActor is an entry in the state tree.
type TestActor struct {
	Code    cid.Cid
	Head    cid.Cid
	Balance types.Coins
}

// Attribute is a key/value pair emitted by an actor onto the receipt of the current message.
type Attribute struct {
	Key   string
	Value string
}

// Receipt is the persisted outcome of a message applied to the VM.
type Receipt struct {
	ExitCode   uint64
	Return     []byte
	Attributes []Attribute
}

type MessageResult struct {
	Code       exitcode.ExitCode
	Ret        cbor.Marshaler
	Attributes []Attribute
}

type Option func(*VM)

func WithNetworkName(name string) Option {
	return func(vm *VM) {
		vm.networkName = name
	}
}

func WithTime(epoch abi.ChainEpoch, blockTime types.Timestamp) Option {
	return func(vm *VM) {
		vm.epoch = epoch
		vm.blockTime = blockTime
	}
}

// WithBlockstore gives the VM access to the raw blocks behind its store so state can be exported.
func WithBlockstore(bs ipldcbor.IpldBlockstore) Option {
	return func(vm *VM) {
		vm.blocks = bs
	}
}

// NewVM creates a VM with an empty state tree.
func NewVM(ctx context.Context, actorImpls ActorImplLookup, store adt.Store, opts ...Option) (*VM, error) {
	actors, err := adt.MakeEmptyMap(store, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create state tree: %w", err)
	}
	actorRoot, err := actors.Root()
	if err != nil {
		return nil, err
	}
	receipts, err := adt.MakeEmptyArray(store, adt.DefaultAmtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create receipts: %w", err)
	}
	emptyObject, err := store.Put(ctx, &adt.EmptyValue{})
	if err != nil {
		return nil, xerrors.Errorf("failed to store empty object: %w", err)
	}

	vm := &VM{
		ctx:         ctx,
		actorImpls:  actorImpls,
		store:       store,
		networkName: builtin.DefaultNetworkName,
		emptyObject: emptyObject,
		stateRoot:   actorRoot,
		actors:      actors,
		receipts:    receipts,
		vectors:     newVectorGen(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm, nil
}

// WithBlockTime returns a VM at the next epoch and the given block time, sharing this VM's committed state.
func (vm *VM) WithBlockTime(blockTime types.Timestamp) (*VM, error) {
	if blockTime < vm.blockTime {
		return nil, xerrors.Errorf("block time %v is before current time %v", blockTime, vm.blockTime)
	}
	if _, err := vm.checkpoint(); err != nil {
		return nil, err
	}
	actors, err := adt.AsMap(vm.store, vm.stateRoot, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, err
	}
	receiptsRoot, err := vm.receipts.Root()
	if err != nil {
		return nil, err
	}
	receipts, err := adt.AsArray(vm.store, receiptsRoot, adt.DefaultAmtBitwidth)
	if err != nil {
		return nil, err
	}
	next := *vm
	next.epoch = vm.epoch + 1
	next.blockTime = blockTime
	next.actors = actors
	next.receipts = receipts
	if vm.vectors != nil {
		vectors := *vm.vectors
		next.vectors = &vectors
	}
	next.logs = nil
	next.invocations = nil
	next.attributes = nil
	return &next, nil
}

// ApplyMessage executes a top-level message and all messages queued by it.
// If any of them fails, every state change made while applying the message is discarded.
func (vm *VM) ApplyMessage(from, to addr.Address, value types.Coins, method abi.MethodNum, params interface{}) MessageResult {
	preRoot, err := vm.checkpoint()
	if err != nil {
		panic(err)
	}
	result := vm.execute(from, to, value, method, params, false)
	if result.Code.IsSuccess() {
		if _, err := vm.checkpoint(); err != nil {
			panic(err)
		}
	} else if err := vm.rollback(preRoot); err != nil {
		panic(err)
	}

	receipt := Receipt{
		ExitCode:   uint64(result.Code),
		Return:     serialize(result.Ret),
		Attributes: result.Attributes,
	}
	if err := vm.receipts.AppendContinuous(&receipt); err != nil {
		panic(err)
	}
	if err := vm.vectors.after(vm, from, to, value, method, params, preRoot, &receipt); err != nil {
		panic(err)
	}
	return result
}

// Query executes a message against the current state and discards every change it makes.
// The message is sent by the system actor and may not queue further messages.
func (vm *VM) Query(to addr.Address, method abi.MethodNum, params interface{}) MessageResult {
	preRoot, err := vm.checkpoint()
	if err != nil {
		panic(err)
	}
	result := vm.execute(builtin.SystemActorAddr, to, nil, method, params, true)
	if err := vm.rollback(preRoot); err != nil {
		panic(err)
	}
	result.Attributes = nil
	return result
}

func (vm *VM) execute(from, to addr.Address, value types.Coins, method abi.MethodNum, params interface{}, query bool) MessageResult {
	vm.logs = []string{}
	vm.invocations = []*Invocation{}
	vm.attributes = nil

	fromID, ok := vm.NormalizeAddress(from)
	if !ok {
		return MessageResult{Code: exitcode.SysErrSenderInvalid}
	}

	topLevel := topLevelContext{
		originatorStableAddress: from,
		originatorCallSeq:       vm.callSeq,
	}
	vm.callSeq++

	msg := InternalMessage{
		from:   fromID,
		to:     to,
		value:  value,
		method: method,
		params: params,
	}
	ic := newInvocationContext(vm, &topLevel, msg, query)
	vm.invocations = append(vm.invocations, ic.invocation)
	ret, code := ic.invoke()

	result := MessageResult{Code: code, Ret: ret}
	if code.IsSuccess() {
		result.Attributes = vm.attributes
	} else {
		vm.attributes = nil
	}
	return result
}

func (vm *VM) rollback(root cid.Cid) error {
	var err error
	vm.actors, err = adt.AsMap(vm.store, root, adt.DefaultHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load state tree %v: %w", root, err)
	}

	vm.stateRoot = root
	vm.actorsDirty = false
	return nil
}

func (vm *VM) checkpoint() (cid.Cid, error) {
	root, err := vm.actors.Root()
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to flush state tree: %w", err)
	}

	vm.stateRoot = root
	vm.actorsDirty = false
	return root, nil
}

func (vm *VM) GetActor(a addr.Address) (*TestActor, bool, error) {
	na, found := vm.NormalizeAddress(a)
	if !found {
		return nil, false, nil
	}
	var act TestActor
	found, err := vm.actors.Get(adt.AddrKey(na), &act)
	if err != nil || !found {
		return nil, found, err
	}
	return &act, true, nil
}

// setActor sets the actor record in the state tree.
// key must be an ID address.
func (vm *VM) setActor(key addr.Address, a *TestActor) error {
	if err := vm.actors.Put(adt.AddrKey(key), a); err != nil {
		return xerrors.Errorf("failed to put actor %v: %w", key, err)
	}
	vm.actorsDirty = true
	return nil
}

// setActorState stores the state and updates the addressed actor.
func (vm *VM) setActorState(key addr.Address, state cbor.Marshaler) error {
	stateCid, err := vm.store.Put(vm.ctx, state)
	if err != nil {
		return err
	}
	a, found, err := vm.GetActor(key)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("no actor at %v", key)
	}
	a.Head = stateCid
	return vm.setActor(key, a)
}

// NormalizeAddress resolves an address to the actor's ID address, using the init actor's table.
func (vm *VM) NormalizeAddress(a addr.Address) (addr.Address, bool) {
	// short-circuit if the address is already an ID address
	if a.Protocol() == addr.ID {
		return a, true
	}

	// resolve id address
	var initState init_.State
	if err := vm.GetState(builtin.InitActorAddr, &initState); err != nil {
		panic(xerrors.Errorf("failed to load init actor state: %w", err))
	}

	idAddr, found, err := initState.ResolveAddress(vm.store, a)
	if err != nil {
		panic(err)
	}
	return idAddr, found
}

func (vm *VM) GetState(a addr.Address, out cbor.Unmarshaler) error {
	act, found, err := vm.GetActor(a)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("actor %v not found", a)
	}
	return vm.store.Get(vm.ctx, act.Head, out)
}

// GetBalance returns the balance of an actor in one denom, zero if the actor does not exist.
func (vm *VM) GetBalance(a addr.Address, denom string) abi.TokenAmount {
	act, found, err := vm.GetActor(a)
	if err != nil {
		panic(err)
	}
	if !found {
		return abi.NewTokenAmount(0)
	}
	return act.Balance.AmountOf(denom)
}

func (vm *VM) StateRoot() cid.Cid {
	return vm.stateRoot
}

func (vm *VM) Store() adt.Store {
	return vm.store
}

func (vm *VM) GetEpoch() abi.ChainEpoch {
	return vm.epoch
}

func (vm *VM) GetBlockTime() types.Timestamp {
	return vm.blockTime
}

func (vm *VM) NetworkName() string {
	return vm.networkName
}

// GetLogs returns the log lines of the last message.
func (vm *VM) GetLogs() []string {
	return vm.logs
}

// Invocations returns the invocation tree of the last message.
func (vm *VM) Invocations() []*Invocation {
	return vm.invocations
}

func (vm *VM) LastInvocation() *Invocation {
	if len(vm.invocations) == 0 {
		return nil
	}
	return vm.invocations[len(vm.invocations)-1]
}

// ReceiptCount is the number of messages applied through this VM's lineage.
func (vm *VM) ReceiptCount() uint64 {
	return vm.receipts.Length()
}

func (vm *VM) GetReceipt(i uint64) (*Receipt, error) {
	var receipt Receipt
	found, err := vm.receipts.Get(i, &receipt)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, xerrors.Errorf("no receipt %d", i)
	}
	return &receipt, nil
}

// ExportCar writes the committed state tree to w in CAR format.
func (vm *VM) ExportCar(w io.Writer) error {
	if vm.blocks == nil {
		return xerrors.New("vm has no block store to export from")
	}
	if _, err := vm.checkpoint(); err != nil {
		return err
	}
	return ipld.WriteCar(vm.blocks, vm.stateRoot, w)
}

// LoadVM creates a VM over an existing state tree.
func LoadVM(ctx context.Context, actorImpls ActorImplLookup, store adt.Store, stateRoot cid.Cid, opts ...Option) (*VM, error) {
	vm, err := NewVM(ctx, actorImpls, store, opts...)
	if err != nil {
		return nil, err
	}
	if err := vm.rollback(stateRoot); err != nil {
		return nil, err
	}
	return vm, nil
}

// serialize encodes o, treating nil and typed nil pointers as absent.
func serialize(o cbor.Marshaler) []byte {
	if o == nil {
		return nil
	}
	if v := reflect.ValueOf(o); v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}
	buf := new(bytes.Buffer)
	if err := o.MarshalCBOR(buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
