package vestingfactory_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
	"github.com/vestlabs/vesting-actors/support/mock"
	tutil "github.com/vestlabs/vesting-actors/support/testing"
)

const vestingCodeID = 7

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, vestingfactory.Actor{})
}

func TestConstruction(t *testing.T) {
	factoryAddr := tutil.NewIDAddr(t, 100)
	builder := mock.NewBuilder(context.Background(), factoryAddr).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	t.Run("records the vesting code id", func(t *testing.T) {
		rt := builder.Build(t)
		h := newHarness(t)
		h.constructAndVerify(rt)

		var st vestingfactory.State
		rt.GetState(&st)
		assert.Equal(t, uint64(vestingCodeID), st.VestingCodeID)
		assert.Equal(t, uint64(0), st.NextReplyID)
		assert.Equal(t, st.PendingInits, st.VestingContracts)
	})

	t.Run("only system may construct", func(t *testing.T) {
		rt := builder.Build(t)
		rt.SetCaller(tutil.NewIDAddr(t, 101), builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(vestingfactory.Actor{}.Constructor, &vestingfactory.ConstructorParams{VestingCodeID: vestingCodeID})
		})
		rt.Verify()
	})
}

func TestCreateVesting(t *testing.T) {
	factoryAddr := tutil.NewIDAddr(t, 100)
	alice := tutil.NewIDAddr(t, 101)
	bob := tutil.NewIDAddr(t, 102)
	funds := types.NewCoins(types.NewCoin("uatom", 3600))

	setup := func(t *testing.T) (*mock.Runtime, *factoryHarness) {
		rt := mock.NewBuilder(context.Background(), factoryAddr).
			WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID).
			Build(t)
		h := newHarness(t)
		h.constructAndVerify(rt)
		return rt, h
	}

	t.Run("create then reply records the instance", func(t *testing.T) {
		rt, h := setup(t)
		receiver := vesting.NewNativeReceiver(alice)

		replyID := h.createVesting(rt, alice, receiver, vesting.StrategyHour, "alice", funds)
		assert.Equal(t, uint64(0), replyID)

		summary := h.checkState(rt)
		assert.Equal(t, vestingfactory.PendingInit{Receiver: alice.String(), Label: "alice"}, summary.PendingInits[0])

		instance := tutil.NewIDAddr(t, 200)
		h.reply(rt, replyID, instance)
		assert.Equal(t, instance, h.getVestingAddr(rt, alice.String()))

		summary = h.checkState(rt)
		assert.Empty(t, summary.PendingInits)
		assert.Equal(t, map[string]addr.Address{alice.String(): instance}, summary.VestingContracts)
	})

	t.Run("ibc receivers are keyed by remote address", func(t *testing.T) {
		rt, h := setup(t)
		receiver := vesting.NewIBCReceiver("cosmos1remote", "channel-0", bob)

		replyID := h.createVesting(rt, bob, receiver, vesting.StrategyDay, "", funds)
		instance := tutil.NewIDAddr(t, 200)
		h.reply(rt, replyID, instance)
		assert.Equal(t, instance, h.getVestingAddr(rt, "cosmos1remote"))
	})

	t.Run("overlapping creations resolve independently", func(t *testing.T) {
		rt, h := setup(t)

		first := h.createVesting(rt, alice, vesting.NewNativeReceiver(alice), vesting.StrategyHour, "a", funds)
		second := h.createVesting(rt, bob, vesting.NewNativeReceiver(bob), vesting.StrategyWeek, "b", funds)
		assert.Equal(t, uint64(0), first)
		assert.Equal(t, uint64(1), second)
		assert.Len(t, h.checkState(rt).PendingInits, 2)

		aliceInstance := tutil.NewIDAddr(t, 200)
		bobInstance := tutil.NewIDAddr(t, 201)
		h.reply(rt, second, bobInstance)
		h.reply(rt, first, aliceInstance)

		assert.Equal(t, aliceInstance, h.getVestingAddr(rt, alice.String()))
		assert.Equal(t, bobInstance, h.getVestingAddr(rt, bob.String()))
		assert.Empty(t, h.checkState(rt).PendingInits)
	})

	t.Run("a later deployment replaces the earlier one", func(t *testing.T) {
		rt, h := setup(t)
		receiver := vesting.NewNativeReceiver(alice)

		first := h.createVesting(rt, alice, receiver, vesting.StrategyHour, "", funds)
		h.reply(rt, first, tutil.NewIDAddr(t, 200))
		second := h.createVesting(rt, alice, receiver, vesting.StrategyHour, "", funds)
		h.reply(rt, second, tutil.NewIDAddr(t, 201))

		assert.Equal(t, tutil.NewIDAddr(t, 201), h.getVestingAddr(rt, alice.String()))
	})

	t.Run("fails when no funds sent", func(t *testing.T) {
		rt, h := setup(t)
		rt.SetCaller(alice, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbortContainsMessage(exitcode.ErrInsufficientFunds, "must send funds", func() {
			rt.Call(h.CreateVesting, &vestingfactory.CreateVestingParams{Receiver: vesting.NewNativeReceiver(alice)})
		})
		rt.Verify()
		assert.Empty(t, h.checkState(rt).PendingInits)
	})

	t.Run("fails with invalid receiver", func(t *testing.T) {
		rt, h := setup(t)
		rt.SetCaller(alice, builtin.AccountActorCodeID)
		rt.SetBalance(funds...)
		rt.SetReceived(funds...)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(h.CreateVesting, &vestingfactory.CreateVestingParams{Receiver: vesting.NewIBCReceiver("", "channel-0", alice)})
		})
		rt.Verify()
	})

	t.Run("unknown reply id", func(t *testing.T) {
		rt, h := setup(t)
		rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbortContainsMessage(vestingfactory.ErrInvalidReplyID, "reply id not found = 3", func() {
			rt.Call(h.Reply, &builtin.ReplyParams{ID: 3, Return: execReturnBytes(t, tutil.NewIDAddr(t, 200))})
		})
		rt.Verify()
	})

	t.Run("a reply is consumed once", func(t *testing.T) {
		rt, h := setup(t)
		replyID := h.createVesting(rt, alice, vesting.NewNativeReceiver(alice), vesting.StrategyHour, "", funds)
		h.reply(rt, replyID, tutil.NewIDAddr(t, 200))

		rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbort(vestingfactory.ErrInvalidReplyID, func() {
			rt.Call(h.Reply, &builtin.ReplyParams{ID: replyID, Return: execReturnBytes(t, tutil.NewIDAddr(t, 201))})
		})
		rt.Verify()
	})

	t.Run("only the system delivers replies", func(t *testing.T) {
		rt, h := setup(t)
		replyID := h.createVesting(rt, alice, vesting.NewNativeReceiver(alice), vesting.StrategyHour, "", funds)

		rt.SetCaller(alice, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(h.Reply, &builtin.ReplyParams{ID: replyID, Return: execReturnBytes(t, tutil.NewIDAddr(t, 200))})
		})
		rt.Verify()
		assert.Len(t, h.checkState(rt).PendingInits, 1)
	})

	t.Run("reply for a missing actor is rejected", func(t *testing.T) {
		rt, h := setup(t)
		replyID := h.createVesting(rt, alice, vesting.NewNativeReceiver(alice), vesting.StrategyHour, "", funds)

		rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbortContainsMessage(exitcode.ErrIllegalArgument, "no actor at instance address", func() {
			rt.Call(h.Reply, &builtin.ReplyParams{ID: replyID, Return: execReturnBytes(t, tutil.NewIDAddr(t, 999))})
		})
		rt.Verify()
	})

	t.Run("get vesting address for unknown receiver", func(t *testing.T) {
		rt, h := setup(t)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(exitcode.ErrNotFound, func() {
			rt.Call(h.GetVestingAddr, &vestingfactory.GetVestingAddrParams{Receiver: "nobody"})
		})
		rt.Verify()
	})
}

type factoryHarness struct {
	vestingfactory.Actor
	t testing.TB
}

func newHarness(t testing.TB) *factoryHarness {
	return &factoryHarness{vestingfactory.Actor{}, t}
}

func (h *factoryHarness) constructAndVerify(rt *mock.Runtime) {
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Constructor, &vestingfactory.ConstructorParams{VestingCodeID: vestingCodeID})
	assert.Nil(h.t, ret)
	rt.Verify()
	h.checkState(rt)
}

func (h *factoryHarness) createVesting(rt *mock.Runtime, caller addr.Address, receiver vesting.Receiver, strategy vesting.Strategy, label string, funds types.Coins) uint64 {
	var st vestingfactory.State
	rt.GetState(&st)
	expectedReplyID := st.NextReplyID

	rt.SetCaller(caller, builtin.AccountActorCodeID)
	rt.SetBalance(funds...)
	rt.SetReceived(funds...)
	rt.ExpectValidateCallerAny()
	rt.ExpectSendWithReply(builtin.InitActorAddr, builtin.MethodsInit.Exec, &init_.ExecParams{
		CodeID:            vestingCodeID,
		ConstructorParams: marshal(h.t, &vesting.ConstructorParams{Receiver: receiver, Strategy: strategy}),
		Label:             label,
	}, funds, expectedReplyID)

	ret := rt.Call(h.CreateVesting, &vestingfactory.CreateVestingParams{
		Receiver: receiver,
		Strategy: strategy,
		Label:    label,
	}).(*vestingfactory.CreateVestingReturn)
	rt.Verify()
	rt.SetReceived()
	assert.Equal(h.t, expectedReplyID, ret.ReplyID)
	return ret.ReplyID
}

func (h *factoryHarness) reply(rt *mock.Runtime, replyID uint64, instance addr.Address) {
	rt.SetAddressActorType(instance, builtin.VestingActorCodeID)
	rt.SetCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Reply, &builtin.ReplyParams{ID: replyID, Return: execReturnBytes(h.t, instance)})
	assert.Nil(h.t, ret)
	rt.Verify()
}

func (h *factoryHarness) getVestingAddr(rt *mock.Runtime, receiver string) addr.Address {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.GetVestingAddr, &vestingfactory.GetVestingAddrParams{Receiver: receiver}).(*vestingfactory.GetVestingAddrReturn)
	rt.Verify()
	return ret.Address
}

func (h *factoryHarness) checkState(rt *mock.Runtime) *vestingfactory.StateSummary {
	var st vestingfactory.State
	rt.GetState(&st)
	summary, msgs := vestingfactory.CheckStateInvariants(&st, adt.AsStore(rt))
	assert.True(h.t, msgs.IsEmpty(), strings.Join(msgs.Messages(), "\n"))
	return summary
}

func execReturnBytes(t testing.TB, instance addr.Address) []byte {
	return marshal(t, &init_.ExecReturn{IDAddress: instance, RobustAddress: tutil.NewActorAddr(t, instance.String())})
}

func marshal(t testing.TB, o cbor.Marshaler) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, o.MarshalCBOR(buf))
	return buf.Bytes()
}
