package vm

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"reflect"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/types"
)

var typeOfRuntimeInterface = reflect.TypeOf((*runtime.Runtime)(nil)).Elem()
var typeOfCborUnmarshaler = reflect.TypeOf((*cbor.Unmarshaler)(nil)).Elem()

// Context for an individual message invocation, including inter-actor sends.
type invocationContext struct {
	vm               *VM
	topLevel         *topLevelContext
	msg              InternalMessage // The message being processed
	invocation       *Invocation
	query            bool
	allowSideEffects bool
	callerValidated  bool
	queue            []queuedSend
}

// Context for a top-level invocation sequence
type topLevelContext struct {
	originatorStableAddress addr.Address // Stable (public key) address of the top-level message sender.
	originatorCallSeq       uint64       // Call sequence number of the top-level message.
	newActorAddressCount    uint64       // Count of calls to NewActorAddress (mutable).
}

// InternalMessage is a message sent between actors, or from outside the VM to an actor.
type InternalMessage struct {
	from   addr.Address
	to     addr.Address
	value  types.Coins
	method abi.MethodNum
	params interface{}
}

var _ runtime.Message = InternalMessage{}

func (msg InternalMessage) Caller() addr.Address {
	return msg.from
}

func (msg InternalMessage) Receiver() addr.Address {
	return msg.to
}

func (msg InternalMessage) ValueReceived() types.Coins {
	return msg.value
}

func (msg InternalMessage) Method() abi.MethodNum {
	return msg.method
}

func (msg InternalMessage) Params() interface{} {
	return msg.params
}

// Invocation records a message's execution and the messages it caused, in order.
type Invocation struct {
	Msg            *InternalMessage
	Exitcode       exitcode.ExitCode
	Ret            cbor.Marshaler
	SubInvocations []*Invocation
}

// A message queued by an actor, executed after the sending method returns.
type queuedSend struct {
	to      addr.Address
	method  abi.MethodNum
	params  cbor.Marshaler
	value   types.Coins
	replyID *uint64
}

func newInvocationContext(vm *VM, topLevel *topLevelContext, msg InternalMessage, query bool) *invocationContext {
	ic := &invocationContext{
		vm:               vm,
		topLevel:         topLevel,
		msg:              msg,
		query:            query,
		allowSideEffects: true,
	}
	ic.invocation = &Invocation{Msg: &ic.msg}
	return ic
}

var _ runtime.Runtime = (*invocationContext)(nil)

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (ic *invocationContext) invoke() (ret cbor.Marshaler, errcode exitcode.ExitCode) {
	// Catch any abort, turning it into an exit code.
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			log.Warnw("abort", "to", ic.msg.to, "method", ic.msg.method, "code", a.code, "msg", a.msg)
			ic.vm.logs = append(ic.vm.logs, fmt.Sprintf("abort %v: %s", a.code, a.msg))
			ret = nil
			errcode = a.code
		}
		ic.invocation.Exitcode = errcode
		ic.invocation.Ret = ret
	}()

	// Resolve the target, creating an account actor if needed.
	_, toIDAddr := ic.resolveTarget(ic.msg.to)
	ic.msg.to = toIDAddr

	if !ic.msg.value.IsEmpty() {
		ic.transferFunds()
	}

	if ic.msg.method != builtin.MethodSend {
		act := ic.loadActor(ic.msg.to)
		impl, found := ic.vm.actorImpls[act.Code]
		if !found {
			ic.Abortf(exitcode.SysErrorIllegalActor, "no implementation for actor code %v", act.Code)
		}
		ret = ic.dispatch(impl, ic.msg.method, ic.msg.params)
		if !ic.callerValidated {
			ic.Abortf(exitcode.SysErrorIllegalActor, "caller not validated by %s method %d", builtin.ActorNameByCode(act.Code), ic.msg.method)
		}
	}

	for _, s := range ic.queue {
		ic.runQueued(s)
	}
	return ret, exitcode.Ok
}

// runQueued executes a send queued by this invocation, followed by its reply if one was requested.
func (ic *invocationContext) runQueued(s queuedSend) {
	msg := InternalMessage{
		from:   ic.msg.to,
		to:     s.to,
		value:  s.value,
		method: s.method,
		params: s.params,
	}
	ret, code := ic.subInvoke(msg)
	if !code.IsSuccess() {
		ic.Abortf(code, "queued send to %v method %d failed", s.to, s.method)
	}
	if s.replyID == nil {
		return
	}

	reply := InternalMessage{
		from:   builtin.SystemActorAddr,
		to:     ic.msg.to,
		method: builtin.MethodReply,
		params: &builtin.ReplyParams{ID: *s.replyID, Return: serialize(ret)},
	}
	if _, code := ic.subInvoke(reply); !code.IsSuccess() {
		ic.Abortf(code, "reply %d to %v failed", *s.replyID, ic.msg.to)
	}
}

func (ic *invocationContext) subInvoke(msg InternalMessage) (cbor.Marshaler, exitcode.ExitCode) {
	child := newInvocationContext(ic.vm, ic.topLevel, msg, ic.query)
	ic.invocation.SubInvocations = append(ic.invocation.SubInvocations, child.invocation)
	return child.invoke()
}

func (ic *invocationContext) resolveTarget(target addr.Address) (*TestActor, addr.Address) {
	if idAddr, found := ic.vm.NormalizeAddress(target); found {
		act, found, err := ic.vm.GetActor(idAddr)
		if err != nil {
			panic(err)
		}
		if found {
			return act, idAddr
		}
		if target.Protocol() == addr.ID {
			ic.Abortf(exitcode.SysErrInvalidReceiver, "no actor at %v", target)
		}
	}

	// Only key addresses may be implicitly created.
	if target.Protocol() != addr.SECP256K1 && target.Protocol() != addr.BLS {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "cannot create account for address type %d", target.Protocol())
	}

	// Allocate an ID in the init actor's table.
	var initState init_.State
	if err := ic.vm.GetState(builtin.InitActorAddr, &initState); err != nil {
		panic(err)
	}
	idAddr, err := initState.MapAddressToNewID(ic.vm.store, target)
	if err != nil {
		panic(err)
	}
	if err := ic.vm.setActorState(builtin.InitActorAddr, &initState); err != nil {
		panic(err)
	}

	if err := ic.vm.setActor(idAddr, &TestActor{Code: builtin.AccountActorCodeID, Head: ic.vm.emptyObject}); err != nil {
		panic(err)
	}

	// Construct the account from the system actor.
	ctor := InternalMessage{
		from:   builtin.SystemActorAddr,
		to:     idAddr,
		method: builtin.MethodsAccount.Constructor,
		params: &target,
	}
	if _, code := newInvocationContext(ic.vm, ic.topLevel, ctor, ic.query).invoke(); !code.IsSuccess() {
		ic.Abortf(code, "failed to construct account for %v", target)
	}
	return ic.loadActor(idAddr), idAddr
}

func (ic *invocationContext) transferFunds() {
	if err := ic.msg.value.Validate(); err != nil {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "invalid value %v: %s", ic.msg.value, err)
	}

	from := ic.loadActor(ic.msg.from)
	remaining, err := from.Balance.Sub(ic.msg.value...)
	if err != nil {
		ic.Abortf(exitcode.SysErrInsufficientFunds, "sender %v cannot send %v: %s", ic.msg.from, ic.msg.value, err)
	}
	from.Balance = remaining
	ic.storeActor(ic.msg.from, from)

	to := ic.loadActor(ic.msg.to)
	to.Balance = to.Balance.Add(ic.msg.value...)
	ic.storeActor(ic.msg.to, to)
}

// dispatch decodes the params into the method's parameter type and calls it.
func (ic *invocationContext) dispatch(actor runtime.VMActor, method abi.MethodNum, arg interface{}) cbor.Marshaler {
	exports := actor.Exports()
	if uint64(len(exports)) <= uint64(method) || exports[method] == nil {
		ic.Abortf(exitcode.SysErrInvalidMethod, "method undefined %d for %s", method, builtin.ActorNameByCode(actor.Code()))
	}

	meth := reflect.ValueOf(exports[method])
	t := meth.Type()
	if t.NumIn() != 2 || t.In(0) != typeOfRuntimeInterface || t.In(1).Kind() != reflect.Ptr || !t.In(1).Implements(typeOfCborUnmarshaler) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "method %d of %s has an invalid signature %v", method, builtin.ActorNameByCode(actor.Code()), t)
	}

	param := reflect.New(t.In(1).Elem())
	if raw := paramBytes(arg); len(raw) > 0 {
		if err := param.Interface().(cbor.Unmarshaler).UnmarshalCBOR(bytes.NewReader(raw)); err != nil {
			ic.Abortf(exitcode.ErrSerialization, "failed to decode params for method %d: %s", method, err)
		}
	}

	ret := meth.Call([]reflect.Value{reflect.ValueOf(ic), param})
	return ret[0].Interface().(cbor.Marshaler)
}

// paramBytes serializes params, treating nil as absent.
func paramBytes(arg interface{}) []byte {
	switch p := arg.(type) {
	case nil:
		return nil
	case []byte:
		return p
	case runtime.CBORBytes:
		return p
	case cbor.Marshaler:
		return serialize(p)
	default:
		panic(fmt.Sprintf("params %T are not CBOR-marshalable", arg))
	}
}

func (ic *invocationContext) loadActor(a addr.Address) *TestActor {
	act, found, err := ic.vm.GetActor(a)
	if err != nil {
		panic(err)
	}
	if !found {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "actor %v not found", a)
	}
	return act
}

func (ic *invocationContext) storeActor(a addr.Address, act *TestActor) {
	if err := ic.vm.setActor(a, act); err != nil {
		panic(err)
	}
}

///// Implementation of the runtime API /////

func (ic *invocationContext) Message() runtime.Message {
	return ic.msg
}

func (ic *invocationContext) NetworkName() string {
	return ic.vm.networkName
}

func (ic *invocationContext) CurrEpoch() abi.ChainEpoch {
	return ic.vm.epoch
}

func (ic *invocationContext) BlockTime() types.Timestamp {
	return ic.vm.blockTime
}

func (ic *invocationContext) ValidateImmediateCallerAcceptAny() {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
}

func (ic *invocationContext) ValidateImmediateCallerIs(addrs ...addr.Address) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	for _, a := range addrs {
		if a == ic.msg.from {
			return
		}
		if resolved, ok := ic.vm.NormalizeAddress(a); ok && resolved == ic.msg.from {
			return
		}
	}
	ic.Abortf(exitcode.ErrForbidden, "caller %v not one of %v", ic.msg.from, addrs)
}

func (ic *invocationContext) ValidateImmediateCallerType(types ...cid.Cid) {
	ic.assertf(!ic.callerValidated, "caller has been double validated")
	ic.callerValidated = true
	caller := ic.loadActor(ic.msg.from)
	for _, t := range types {
		if t.Equals(caller.Code) {
			return
		}
	}
	ic.Abortf(exitcode.ErrForbidden, "caller type %v not one of %v", caller.Code, types)
}

func (ic *invocationContext) CurrentBalance(denom string) abi.TokenAmount {
	return ic.loadActor(ic.msg.to).Balance.AmountOf(denom)
}

func (ic *invocationContext) ResolveAddress(address addr.Address) (addr.Address, bool) {
	return ic.vm.NormalizeAddress(address)
}

func (ic *invocationContext) GetActorCodeCID(a addr.Address) (ret cid.Cid, ok bool) {
	act, found, err := ic.vm.GetActor(a)
	if err != nil {
		panic(err)
	}
	if !found {
		return cid.Undef, false
	}
	return act.Code, true
}

func (ic *invocationContext) Send(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value types.Coins) {
	ic.queueSend(queuedSend{to: toAddr, method: methodNum, params: params, value: value})
}

func (ic *invocationContext) SendWithReply(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value types.Coins, replyID uint64) {
	ic.queueSend(queuedSend{to: toAddr, method: methodNum, params: params, value: value, replyID: &replyID})
}

func (ic *invocationContext) queueSend(s queuedSend) {
	if ic.query {
		ic.Abortf(exitcode.SysErrForbidden, "queries may not send messages")
	}
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "calling Send is not allowed during side-effect lock")
	}
	ic.queue = append(ic.queue, s)
}

func (ic *invocationContext) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

func (ic *invocationContext) NewActorAddress() addr.Address {
	var buf bytes.Buffer
	buf.Write(ic.topLevel.originatorStableAddress.Bytes())

	var seq [16]byte
	binary.BigEndian.PutUint64(seq[:8], ic.topLevel.originatorCallSeq)
	binary.BigEndian.PutUint64(seq[8:], ic.topLevel.newActorAddressCount)
	buf.Write(seq[:])

	actorAddress, err := addr.NewActorAddress(buf.Bytes())
	if err != nil {
		panic(err)
	}
	ic.topLevel.newActorAddressCount++
	return actorAddress
}

func (ic *invocationContext) CreateActor(code cid.Cid, address addr.Address) {
	if ic.msg.to != builtin.InitActorAddr {
		ic.Abortf(exitcode.SysErrForbidden, "only the init actor may create actors, not %v", ic.msg.to)
	}
	if _, found := ic.vm.actorImpls[code]; !found {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "no implementation for code %v", code)
	}
	if _, found, err := ic.vm.GetActor(address); err != nil {
		panic(err)
	} else if found {
		ic.Abortf(exitcode.SysErrorIllegalArgument, "actor already exists at %v", address)
	}

	ic.storeActor(address, &TestActor{Code: code, Head: ic.vm.emptyObject})
}

func (ic *invocationContext) EmitAttribute(key, value string) {
	ic.vm.attributes = append(ic.vm.attributes, Attribute{Key: key, Value: value})
}

func (ic *invocationContext) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	line := fmt.Sprintf(msg, args...)
	ic.vm.logs = append(ic.vm.logs, line)

	switch level {
	case rtt.DEBUG:
		log.Debugw(line, "actor", ic.msg.to)
	case rtt.WARN:
		log.Warnw(line, "actor", ic.msg.to)
	case rtt.ERROR:
		log.Errorw(line, "actor", ic.msg.to)
	default:
		log.Infow(line, "actor", ic.msg.to)
	}
}

func (ic *invocationContext) Context() context.Context {
	return ic.vm.ctx
}

func (ic *invocationContext) StoreGet(c cid.Cid, o cbor.Unmarshaler) bool {
	// Every error is treated as not found.
	err := ic.vm.store.Get(ic.vm.ctx, c, o)
	return err == nil
}

func (ic *invocationContext) StorePut(x cbor.Marshaler) cid.Cid {
	c, err := ic.vm.store.Put(ic.vm.ctx, x)
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to put object: %s", err)
	}
	return c
}

func (ic *invocationContext) StateCreate(obj cbor.Marshaler) {
	act := ic.loadActor(ic.msg.to)
	if !act.Head.Equals(ic.vm.emptyObject) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "failed to construct actor state: already initialized")
	}
	act.Head = ic.StorePut(obj)
	ic.storeActor(ic.msg.to, act)
}

func (ic *invocationContext) StateReadonly(obj cbor.Unmarshaler) {
	act := ic.loadActor(ic.msg.to)
	if !ic.StoreGet(act.Head, obj) {
		ic.Abortf(exitcode.ErrIllegalState, "failed to get state for %v", ic.msg.to)
	}
}

func (ic *invocationContext) StateTransaction(obj cbor.Er, f func()) {
	if obj == nil {
		ic.Abortf(exitcode.SysErrorIllegalActor, "must provide state object to transaction")
	}
	ic.StateReadonly(obj)

	ic.allowSideEffects = false
	f()
	ic.allowSideEffects = true

	act := ic.loadActor(ic.msg.to)
	act.Head = ic.StorePut(obj)
	ic.storeActor(ic.msg.to, act)
}

func (ic *invocationContext) assertf(condition bool, msg string, args ...interface{}) {
	if !condition {
		ic.Abortf(exitcode.SysErrorIllegalActor, msg, args...)
	}
}
