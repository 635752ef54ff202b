package mock

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"

	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

// A mock runtime for unit testing of actors in isolation.
// The mock allows direct control of the runtime context as observable by an actor, supports
// the storage interface, and mocks out side-effect-inducing calls.
//
// Like the real host, sends are queued while a method runs and only leave the actor once it
// returns. They are matched against expectations at that point, so a method that aborts after
// queueing a send does not consume the expectation.
type Runtime struct {
	// Execution context
	ctx           context.Context
	epoch         abi.ChainEpoch
	blockTime     types.Timestamp
	networkName   string
	receiver      addr.Address
	caller        addr.Address
	callerType    cid.Cid
	valueReceived types.Coins
	idAddresses   map[addr.Address]addr.Address
	actorCodeCIDs map[addr.Address]cid.Cid
	newActorAddr  addr.Address

	// Actor state
	state   cid.Cid
	balance types.Coins

	// VM implementation
	inCall        bool
	inTransaction bool
	store         map[cid.Cid][]byte
	queued        []*message
	logs          []string

	t      testing.TB
	expect expectations
}

// Everything a test has announced the actor will do during the next call.
type expectations struct {
	callerAny   bool
	callerAddrs []addr.Address
	callerTypes []cid.Cid
	sends       []*message
	createActor *createdActor
	attributes  []attribute
}

// unmet describes every expectation that was not consumed.
func (e *expectations) unmet() []string {
	var out []string
	if e.callerAny {
		out = append(out, "expected ValidateCallerAny, not received")
	}
	if len(e.callerAddrs) > 0 {
		out = append(out, fmt.Sprintf("expected ValidateCallerAddr %v, not received", e.callerAddrs))
	}
	if len(e.callerTypes) > 0 {
		out = append(out, fmt.Sprintf("expected ValidateCallerType %v, not received", e.callerTypes))
	}
	for _, m := range e.sends {
		out = append(out, fmt.Sprintf("expected send not made: %v", m))
	}
	if e.createActor != nil {
		out = append(out, fmt.Sprintf("expected actor to be created, uncreated actor code: %v, address %v",
			e.createActor.code, e.createActor.address))
	}
	for _, a := range e.attributes {
		out = append(out, fmt.Sprintf("expected attribute not emitted: %s=%s", a.key, a.value))
	}
	return out
}

// An outbound message, either queued by the actor or expected by the test.
type message struct {
	to      addr.Address
	method  abi.MethodNum
	params  cbor.Marshaler
	value   types.Coins
	replyID *uint64
}

func (m *message) matches(o *message) bool {
	if m.to != o.to || m.method != o.method || !m.value.Equals(o.value) {
		return false
	}
	if (m.replyID == nil) != (o.replyID == nil) || (m.replyID != nil && *m.replyID != *o.replyID) {
		return false
	}
	return bytes.Equal(serialize(m.params), serialize(o.params))
}

func (m *message) String() string {
	reply := "none"
	if m.replyID != nil {
		reply = fmt.Sprint(*m.replyID)
	}
	return fmt.Sprintf("to: %v method: %v value: %v params: %v reply: %s", m.to, m.method, m.value, m.params, reply)
}

type createdActor struct {
	code    cid.Cid
	address addr.Address
}

type attribute struct {
	key, value string
}

var _ runtime.Runtime = &Runtime{}
var _ runtime.StateHandle = &Runtime{}

var cidBuilder = cid.V1Builder{
	Codec:    cid.DagCBOR,
	MhType:   mh.SHA2_256,
	MhLength: 0, // default
}

///// Implementation of the runtime API /////

func (rt *Runtime) Message() runtime.Message {
	rt.requireInCall()
	return rt
}

func (rt *Runtime) NetworkName() string {
	rt.requireInCall()
	return rt.networkName
}

func (rt *Runtime) CurrEpoch() abi.ChainEpoch {
	rt.requireInCall()
	return rt.epoch
}

func (rt *Runtime) BlockTime() types.Timestamp {
	rt.requireInCall()
	return rt.blockTime
}

func (rt *Runtime) ValidateImmediateCallerAcceptAny() {
	rt.requireInCall()
	if !rt.expect.callerAny {
		rt.failTest("unexpected validate-caller-any")
	}
	rt.expect.callerAny = false
}

func (rt *Runtime) ValidateImmediateCallerIs(addrs ...addr.Address) {
	rt.requireInCall()
	rt.checkArgument(len(addrs) > 0, "addrs must be non-empty")

	expected := rt.expect.callerAddrs
	rt.expect.callerAddrs = nil
	if !reflect.DeepEqual(expected, addrs) {
		rt.failTest("unexpected validate caller addrs %v, expected %v", addrs, expected)
		return
	}

	for _, a := range addrs {
		if rt.caller == a {
			return
		}
	}
	rt.Abortf(exitcode.ErrForbidden, "caller address %v forbidden, allowed: %v", rt.caller, addrs)
}

func (rt *Runtime) ValidateImmediateCallerType(codes ...cid.Cid) {
	rt.requireInCall()
	rt.checkArgument(len(codes) > 0, "types must be non-empty")

	expected := rt.expect.callerTypes
	rt.expect.callerTypes = nil
	if !reflect.DeepEqual(expected, codes) {
		rt.failTest("unexpected validate caller code %v, expected %v", codes, expected)
		return
	}

	for _, c := range codes {
		if rt.callerType.Equals(c) {
			return
		}
	}
	rt.Abortf(exitcode.ErrForbidden, "caller type %v forbidden, allowed: %v", rt.callerType, codes)
}

func (rt *Runtime) CurrentBalance(denom string) abi.TokenAmount {
	rt.requireInCall()
	return rt.balance.AmountOf(denom)
}

func (rt *Runtime) ResolveAddress(address addr.Address) (ret addr.Address, ok bool) {
	rt.requireInCall()
	if address.Protocol() == addr.ID {
		return address, true
	}
	resolved, ok := rt.idAddresses[address]
	return resolved, ok
}

func (rt *Runtime) GetActorCodeCID(addr addr.Address) (ret cid.Cid, ok bool) {
	rt.requireInCall()
	ret, ok = rt.actorCodeCIDs[addr]
	return
}

func (rt *Runtime) Send(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value types.Coins) {
	rt.enqueue(&message{to: toAddr, method: methodNum, params: params, value: value})
}

func (rt *Runtime) SendWithReply(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value types.Coins, replyID uint64) {
	rt.enqueue(&message{to: toAddr, method: methodNum, params: params, value: value, replyID: &replyID})
}

func (rt *Runtime) enqueue(m *message) {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	rt.queued = append(rt.queued, m)
}

// Releases the messages queued by a call that returned, in order, checking each against the
// expected sends and debiting its value.
func (rt *Runtime) dispatchQueued() {
	for _, m := range rt.queued {
		if len(rt.expect.sends) == 0 {
			rt.failTestNow("unexpected send %v", m)
		}
		expected := rt.expect.sends[0]
		rt.expect.sends = rt.expect.sends[1:]
		if !expected.matches(m) {
			rt.failTest("send does not match expectation.\nCall     - %v\nExpected - %v", m, expected)
		}

		remaining, err := rt.balance.Sub(m.value...)
		if err != nil {
			rt.Abortf(exitcode.SysErrInsufficientFunds, "cannot send value: %v exceeds balance: %v", m.value, rt.balance)
		}
		rt.balance = remaining
	}
	rt.queued = nil
}

func (rt *Runtime) NewActorAddress() addr.Address {
	rt.requireInCall()
	if rt.newActorAddr == addr.Undef {
		rt.failTestNow("unexpected call to new actor address")
	}
	defer func() { rt.newActorAddr = addr.Undef }()
	return rt.newActorAddr
}

func (rt *Runtime) CreateActor(code cid.Cid, address addr.Address) {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	expected := rt.expect.createActor
	if expected == nil {
		rt.failTestNow("unexpected call to create actor")
	}
	rt.expect.createActor = nil
	if !expected.code.Equals(code) || expected.address != address {
		rt.failTest("unexpected actor being created, expected code: %s address: %s, actual code: %s address: %s",
			expected.code, expected.address, code, address)
	}
	rt.actorCodeCIDs[address] = code
}

func (rt *Runtime) EmitAttribute(key, value string) {
	rt.requireInCall()
	if len(rt.expect.attributes) == 0 {
		rt.failTestNow("unexpected attribute %s=%s", key, value)
	}
	expected := rt.expect.attributes[0]
	rt.expect.attributes = rt.expect.attributes[1:]
	if expected.key != key || expected.value != value {
		rt.failTest("unexpected attribute %s=%s, expected %s=%s", key, value, expected.key, expected.value)
	}
}

func (rt *Runtime) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	line := fmt.Sprintf(msg, args...)
	rt.logs = append(rt.logs, line)
	rt.t.Logf("[%v] %s", level, line)
}

func (rt *Runtime) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	rt.requireInCall()
	reason := fmt.Sprintf(msg, args...)
	rt.t.Logf("Mock Runtime Abort ExitCode: %v Reason: %s", errExitCode, reason)
	panic(abort{errExitCode, reason})
}

func (rt *Runtime) Context() context.Context {
	// requireInCall omitted because it makes using this mock runtime as a store awkward.
	return rt.ctx
}

func (rt *Runtime) checkArgument(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.SysErrorIllegalArgument, msg, args...)
	}
}

///// Store implementation /////

func (rt *Runtime) StoreGet(c cid.Cid, o cbor.Unmarshaler) bool {
	data, found := rt.store[c]
	if found {
		if err := o.UnmarshalCBOR(bytes.NewReader(data)); err != nil {
			rt.failTestNow("failed to load %v: %v", c, err)
		}
	}
	return found
}

func (rt *Runtime) StorePut(o cbor.Marshaler) cid.Cid {
	data := serialize(o)
	key, err := cidBuilder.Sum(data)
	if err != nil {
		rt.failTestNow("failed to hash %v: %v", o, err)
	}
	rt.store[key] = data
	return key
}

///// Message implementation /////

func (rt *Runtime) Caller() addr.Address {
	return rt.caller
}

func (rt *Runtime) Receiver() addr.Address {
	return rt.receiver
}

func (rt *Runtime) ValueReceived() types.Coins {
	return rt.valueReceived
}

///// State handle implementation /////

func (rt *Runtime) StateCreate(obj cbor.Marshaler) {
	if rt.state.Defined() {
		rt.Abortf(exitcode.SysErrorIllegalActor, "state already constructed")
	}
	rt.state = rt.StorePut(obj)
}

func (rt *Runtime) StateReadonly(st cbor.Unmarshaler) {
	if !rt.StoreGet(rt.state, st) {
		rt.Abortf(exitcode.SysErrorIllegalActor, "actor state not found: %v", rt.state)
	}
}

func (rt *Runtime) StateTransaction(st cbor.Er, f func()) {
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "nested transaction")
	}
	rt.StateReadonly(st)
	rt.inTransaction = true
	defer func() { rt.inTransaction = false }()
	f()
	rt.state = rt.StorePut(st)
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

///// Inspection facilities /////

func (rt *Runtime) GetReceiver() addr.Address {
	return rt.receiver
}

func (rt *Runtime) StateRoot() cid.Cid {
	return rt.state
}

func (rt *Runtime) GetState(o cbor.Unmarshaler) {
	if !rt.state.Defined() {
		rt.failTestNow("actor state not constructed")
	}
	if !rt.StoreGet(rt.state, o) {
		rt.failTestNow("can't find state at root %v", rt.state)
	}
}

func (rt *Runtime) GetBalance(denom string) abi.TokenAmount {
	return rt.balance.AmountOf(denom)
}

func (rt *Runtime) GetBlockTime() types.Timestamp {
	return rt.blockTime
}

// Logs returns every message logged by actor code so far.
func (rt *Runtime) Logs() []string {
	return rt.logs
}

///// Mocking facilities /////

func (rt *Runtime) SetCaller(address addr.Address, actorType cid.Cid) {
	rt.caller = address
	rt.callerType = actorType
	rt.actorCodeCIDs[address] = actorType
}

// SetBalance sets the receiver's full balance, which should include any value received.
func (rt *Runtime) SetBalance(coins ...types.Coin) {
	rt.balance = types.NewCoins(coins...)
}

// SetReceived sets the value received with the next call, without changing the balance.
func (rt *Runtime) SetReceived(coins ...types.Coin) {
	rt.valueReceived = coins
}

func (rt *Runtime) SetEpoch(epoch abi.ChainEpoch) {
	rt.epoch = epoch
}

func (rt *Runtime) SetBlockTime(now types.Timestamp) {
	rt.blockTime = now
}

func (rt *Runtime) AddIDAddress(src addr.Address, target addr.Address) {
	rt.require(target.Protocol() == addr.ID, "target must use ID address protocol")
	rt.idAddresses[src] = target
}

func (rt *Runtime) SetAddressActorType(address addr.Address, actorType cid.Cid) {
	rt.actorCodeCIDs[address] = actorType
}

func (rt *Runtime) SetNewActorAddress(actAddr addr.Address) {
	rt.require(actAddr.Protocol() == addr.Actor, "new actor address must be protocol: Actor, got protocol: %v", actAddr.Protocol())
	rt.newActorAddr = actAddr
}

func (rt *Runtime) ExpectValidateCallerAny() {
	rt.expect.callerAny = true
}

func (rt *Runtime) ExpectValidateCallerAddr(addrs ...addr.Address) {
	rt.require(len(addrs) > 0, "addrs must be non-empty")
	rt.expect.callerAddrs = addrs
}

func (rt *Runtime) ExpectValidateCallerType(codes ...cid.Cid) {
	rt.require(len(codes) > 0, "types must be non-empty")
	rt.expect.callerTypes = codes
}

// ExpectSend expects a plain send, released after the next call returns.
func (rt *Runtime) ExpectSend(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value types.Coins) {
	rt.expect.sends = append(rt.expect.sends, &message{to: toAddr, method: methodNum, params: params, value: value})
}

// ExpectSendWithReply expects a send whose result is to be delivered back tagged with replyID.
func (rt *Runtime) ExpectSendWithReply(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value types.Coins, replyID uint64) {
	rt.expect.sends = append(rt.expect.sends, &message{to: toAddr, method: methodNum, params: params, value: value, replyID: &replyID})
}

func (rt *Runtime) ExpectCreateActor(code cid.Cid, address addr.Address) {
	rt.expect.createActor = &createdActor{code: code, address: address}
}

func (rt *Runtime) ExpectEmitAttribute(key, value string) {
	rt.expect.attributes = append(rt.expect.attributes, attribute{key: key, value: value})
}

// Verifies that expected calls were received, and resets all expectations.
func (rt *Runtime) Verify() {
	for _, msg := range rt.expect.unmet() {
		rt.failTest("%s", msg)
	}
	rt.Reset()
}

// Resets expectations
func (rt *Runtime) Reset() {
	rt.expect = expectations{}
	rt.queued = nil
}

// Calls f() expecting it to invoke Runtime.Abortf() with a specified exit code.
func (rt *Runtime) ExpectAbort(expected exitcode.ExitCode, f func()) {
	rt.ExpectAbortContainsMessage(expected, "", f)
}

// Calls f() expecting it to abort with a specified exit code and a message containing substr.
// State and balance are restored as the host would on abort.
func (rt *Runtime) ExpectAbortContainsMessage(expected exitcode.ExitCode, substr string, f func()) {
	prevState := rt.state
	prevBalance := rt.balance

	defer func() {
		r := recover()
		if r == nil {
			rt.failTest("expected abort with code %v but call succeeded", expected)
			return
		}
		a, ok := r.(abort)
		if !ok {
			panic(r)
		}
		if a.code != expected {
			rt.failTest("abort expected code %v, got %v %s", expected, a.code, a.msg)
		}
		if substr != "" && !strings.Contains(a.msg, substr) {
			rt.failTest("abort expected message containing %q, got %q", substr, a.msg)
		}
		rt.state = prevState
		rt.balance = prevBalance
	}()
	f()
}

// Call invokes an exported actor method, then releases the sends it queued.
// Aborts are not recovered here: expected ones run inside ExpectAbort, others fail the test.
func (rt *Runtime) Call(method interface{}, params interface{}) interface{} {
	meth := reflect.ValueOf(method)
	if err := checkMethodShape(meth.Type()); err != nil {
		rt.failTestNow("%v: %v", meth, err)
	}

	rt.inCall = true
	rt.queued = nil
	defer func() {
		rt.inCall = false
		rt.queued = nil
	}()

	arg := reflect.ValueOf(params)
	if params == nil {
		arg = reflect.ValueOf(adt.Empty)
	}
	ret := meth.Call([]reflect.Value{reflect.ValueOf(rt), arg})
	rt.dispatchQueued()
	return ret[0].Interface()
}

func (rt *Runtime) requireInCall() {
	rt.require(rt.inCall, "invalid runtime invocation outside of method call")
}

func (rt *Runtime) require(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.failTestNow(msg, args...)
	}
}

func (rt *Runtime) failTest(msg string, args ...interface{}) {
	rt.t.Logf(msg, args...)
	rt.t.Logf("%s", debug.Stack())
	rt.t.Fail()
}

func (rt *Runtime) failTestNow(msg string, args ...interface{}) {
	rt.t.Logf(msg, args...)
	rt.t.Logf("%s", debug.Stack())
	rt.t.FailNow()
}

func serialize(o cbor.Marshaler) []byte {
	if o == nil {
		return nil
	}
	if v := reflect.ValueOf(o); v.Kind() == reflect.Ptr && v.IsNil() {
		return nil
	}
	buf := bytes.Buffer{}
	if err := o.MarshalCBOR(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
