package vm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/types"
)

//
// Invocation expectations
//

func ExpectObject(v cbor.Marshaler) *objectExpectation {
	return &objectExpectation{v}
}

// distinguishes a non-expectation from an expectation of nil
type objectExpectation struct {
	val cbor.Marshaler
}

func ExpectAddress(addr address.Address) *address.Address      { return &addr }
func ExpectBytes(b []byte) *objectExpectation                  { return ExpectObject(runtime.CBORBytes(b)) }
func ExpectExitCode(code exitcode.ExitCode) *exitcode.ExitCode { return &code }

func ExpectCoins(coins ...types.Coin) *types.Coins {
	c := types.NewCoins(coins...)
	return &c
}

// match by cbor encoding to avoid inconsistencies in internal representations of effectively equal objects
func (oe objectExpectation) matches(obj interface{}) bool {
	if oe.val == nil || obj == nil {
		return oe.val == nil && obj == nil
	}

	return bytes.Equal(serialize(oe.val), paramBytes(obj))
}

var okExitCode = exitcode.Ok
var ExpectOK = &okExitCode

type ExpectInvocation struct {
	To       address.Address
	Method   abi.MethodNum
	Exitcode exitcode.ExitCode

	From           *address.Address
	Value          *types.Coins
	Params         *objectExpectation
	Ret            *objectExpectation
	SubInvocations []ExpectInvocation
}

// ExpectReply expects the host's delivery to `to` of the result of a send it requested with replyID.
func ExpectReply(to address.Address, replyID uint64, ret cbor.Marshaler) ExpectInvocation {
	return ExpectInvocation{
		To:     to,
		Method: builtin.MethodReply,
		From:   ExpectAddress(builtin.SystemActorAddr),
		Params: ExpectObject(&builtin.ReplyParams{ID: replyID, Return: serialize(ret)}),
	}
}

// Matches checks an invocation tree against the expectation, depth first.
func (ei ExpectInvocation) Matches(t testing.TB, invocation *Invocation) {
	ei.matches(t, "", invocation)
}

func (ei ExpectInvocation) matches(t testing.TB, path string, invocation *Invocation) {
	msg := invocation.Msg
	id := fmt.Sprintf("%s[%s:%d]", path, msg.to, msg.method)

	// A different target or method means messages were skipped or reordered; nothing below can match.
	require.Equal(t, ei.To, msg.to, "%s unexpected `to` address", id)
	require.Equal(t, ei.Method, msg.method, "%s unexpected method", id)

	if ei.From != nil {
		assert.Equal(t, *ei.From, msg.from, "%s unexpected from address", id)
	}
	if ei.Value != nil {
		assert.True(t, ei.Value.Equals(msg.value), "%s unexpected value (%v != %v)", id, *ei.Value, msg.value)
	}
	if ei.Params != nil {
		assert.True(t, ei.Params.matches(msg.params), "%s params aren't equal (%v != %v)", id, ei.Params.val, msg.params)
	}
	if ei.SubInvocations != nil {
		ei.matchSubInvocations(t, id, invocation.SubInvocations)
	}

	assert.Equal(t, ei.Exitcode, invocation.Exitcode, "%s unexpected exitcode", id)
	if ei.Ret != nil {
		assert.True(t, ei.Ret.matches(invocation.Ret), "%s unexpected return value (%v != %v)", id, ei.Ret.val, invocation.Ret)
	}
}

func (ei ExpectInvocation) matchSubInvocations(t testing.TB, id string, subs []*Invocation) {
	for i, sub := range subs {
		subID := fmt.Sprintf("%s%d:", id, i)
		require.Greater(t, len(ei.SubInvocations), i, "%s unexpected subinvocation [%s:%d]", subID, sub.Msg.to, sub.Msg.method)
		ei.SubInvocations[i].matches(t, subID, sub)
	}
	if missing := len(ei.SubInvocations) - len(subs); missing > 0 {
		next := ei.SubInvocations[len(subs)]
		require.Failf(t, "missing invocation", "%s%d: expected invocation [%s:%d] and %d more",
			id, len(subs), next.To, next.Method, missing-1)
	}
}

func ParamsForInvocation(t testing.TB, vm *VM, idxs ...int) interface{} {
	invocations := vm.Invocations()
	var invocation *Invocation
	for _, idx := range idxs {
		require.Greater(t, len(invocations), idx)
		invocation = invocations[idx]
		invocations = invocation.SubInvocations
	}
	require.NotNil(t, invocation)
	return invocation.Msg.params
}

//
// Message helpers
//

// ApplyOk applies a message and requires it to succeed, returning its return value.
func ApplyOk(t testing.TB, v *VM, from, to address.Address, value types.Coins, method abi.MethodNum, params interface{}) cbor.Marshaler {
	return ApplyCode(t, v, from, to, value, method, params, exitcode.Ok)
}

// ApplyCode applies a message and requires it to exit with code.
func ApplyCode(t testing.TB, v *VM, from, to address.Address, value types.Coins, method abi.MethodNum, params interface{}, code exitcode.ExitCode) cbor.Marshaler {
	result := v.ApplyMessage(from, to, value, method, params)
	require.Equal(t, code, result.Code, "unexpected exit code applying method %d to %v: %v", method, to, v.GetLogs())
	return result.Ret
}

// QueryOk runs a query and requires it to succeed, returning its return value.
func QueryOk(t testing.TB, v *VM, to address.Address, method abi.MethodNum, params interface{}) cbor.Marshaler {
	result := v.Query(to, method, params)
	require.Equal(t, exitcode.Ok, result.Code, "unexpected exit code querying method %d of %v: %v", method, to, v.GetLogs())
	return result.Ret
}

// AdvanceTo moves the VM to the next epoch at the given block time.
func AdvanceTo(t testing.TB, v *VM, blockTime types.Timestamp) *VM {
	next, err := v.WithBlockTime(blockTime)
	require.NoError(t, err)
	return next
}
