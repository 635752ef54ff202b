package init_test

import (
	"context"
	"strings"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/runtime"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
	"github.com/vestlabs/vesting-actors/support/mock"
	tutil "github.com/vestlabs/vesting-actors/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, init_.Actor{})
}

func TestConstructor(t *testing.T) {
	actor := initHarness{init_.Actor{}, t}

	builder := mock.NewBuilder(context.Background(), builtin.InitActorAddr).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)
	rt := builder.Build(t)
	actor.constructAndVerify(rt)

	t.Run("only system may construct", func(t *testing.T) {
		rt := builder.Build(t)
		rt.SetCaller(tutil.NewIDAddr(t, 1001), builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.Constructor, &init_.ConstructorParams{NetworkName: "vestnet"})
		})
		rt.Verify()
	})
}

func TestInstall(t *testing.T) {
	actor := initHarness{init_.Actor{}, t}
	nextCode := tutil.NewCidForTestGetter("install")
	builder := mock.NewBuilder(context.Background(), builtin.InitActorAddr).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	t.Run("code ids are sequential and idempotent", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		first, second := nextCode(), nextCode()
		assert.Equal(t, init_.InstallReturn{CodeID: 1, Installed: true}, actor.install(rt, first))
		assert.Equal(t, init_.InstallReturn{CodeID: 2, Installed: true}, actor.install(rt, second))
		assert.Equal(t, init_.InstallReturn{CodeID: 1, Installed: false}, actor.install(rt, first))
		assert.Equal(t, []cid.Cid{first, second}, actor.checkState(rt).Installed)

		var st init_.State
		rt.GetState(&st)
		code, found, err := st.GetCode(adt.AsStore(rt), 2)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, second, code)

		_, found, err = st.GetCode(adt.AsStore(rt), 3)
		require.NoError(t, err)
		assert.False(t, found)
		_, found, err = st.GetCode(adt.AsStore(rt), 0)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("rejects undefined code", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(actor.Install, &init_.InstallParams{Code: cid.Undef})
		})
		rt.Verify()
	})
}

func TestExec(t *testing.T) {
	actor := initHarness{init_.Actor{}, t}

	anne := tutil.NewIDAddr(t, 1001)
	builder := mock.NewBuilder(context.Background(), builtin.InitActorAddr).WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID)

	var fakeParams = runtime.CBORBytes([]byte{'D', 'E', 'A', 'D', 'B', 'E', 'E', 'F'})
	var balance = types.NewCoins(types.NewCoin("uatom", 100))

	t.Run("happy path exec create 2 vesting actors", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		codeID := actor.install(rt, builtin.VestingActorCodeID).CodeID

		// anne execs a vesting actor with 100 uatom.
		rt.SetCaller(anne, builtin.AccountActorCodeID)
		rt.SetBalance(balance...)
		rt.SetReceived(balance...)

		// re-org-stable address of the vesting actor
		uniqueAddr1 := tutil.NewActorAddr(t, "vesting")
		rt.SetNewActorAddress(uniqueAddr1)

		// next id address
		expectedIdAddr1 := tutil.NewIDAddr(t, 100)
		rt.ExpectCreateActor(builtin.VestingActorCodeID, expectedIdAddr1)

		// expect anne creating a vesting actor to trigger a send to its constructor
		rt.ExpectSend(expectedIdAddr1, builtin.MethodConstructor, fakeParams, balance)
		execRet1 := actor.execAndVerify(rt, codeID, fakeParams, "first")
		assert.Equal(t, uniqueAddr1, execRet1.RobustAddress)
		assert.Equal(t, expectedIdAddr1, execRet1.IDAddress)

		var st init_.State
		rt.GetState(&st)
		actualIdAddr, found, err := st.ResolveAddress(adt.AsStore(rt), uniqueAddr1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, expectedIdAddr1, actualIdAddr)

		info, found, err := st.GetContractInfo(adt.AsStore(rt), expectedIdAddr1)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, init_.ContractInfo{CodeID: codeID, Creator: anne, Label: "first"}, *info)

		// creating another actor should get a different address, the below logic is a repeat of the above to insure
		// the next ID address created is incremented. 100 -> 101
		rt.SetBalance(balance...)
		rt.SetReceived(balance...)
		uniqueAddr2 := tutil.NewActorAddr(t, "vesting2")
		rt.SetNewActorAddress(uniqueAddr2)
		expectedIdAddr2 := tutil.NewIDAddr(t, 101)
		rt.ExpectCreateActor(builtin.VestingActorCodeID, expectedIdAddr2)

		rt.ExpectSend(expectedIdAddr2, builtin.MethodConstructor, fakeParams, balance)
		execRet2 := actor.execAndVerify(rt, codeID, fakeParams, "second")
		assert.Equal(t, uniqueAddr2, execRet2.RobustAddress)
		assert.Equal(t, expectedIdAddr2, execRet2.IDAddress)

		rt.GetState(&st)
		assert.Equal(t, abi.ActorID(102), st.NextID)

		summary := actor.checkState(rt)
		assert.Len(t, summary.Contracts, 2)
		assert.Equal(t, "second", summary.Contracts[expectedIdAddr2].Label)
		allocated, err := summary.Allocated.Count()
		require.NoError(t, err)
		assert.Equal(t, uint64(2), allocated)
	})

	t.Run("unknown code id", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)

		rt.SetCaller(anne, builtin.AccountActorCodeID)
		rt.ExpectAbort(exitcode.ErrNotFound, func() {
			actor.execAndVerify(rt, 7, fakeParams, "missing")
		})

		// an unresolvable address resolves to nothing
		var st init_.State
		rt.GetState(&st)
		_, found, err := st.ResolveAddress(adt.AsStore(rt), tutil.NewActorAddr(t, "flurbo"))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("abort actors that cannot be created via exec", func(t *testing.T) {
		rt := builder.Build(t)
		actor.constructAndVerify(rt)
		accountID := actor.install(rt, builtin.AccountActorCodeID).CodeID
		initID := actor.install(rt, builtin.InitActorCodeID).CodeID

		rt.SetCaller(anne, builtin.AccountActorCodeID)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			actor.execAndVerify(rt, accountID, fakeParams, "account")
		})
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			actor.execAndVerify(rt, initID, fakeParams, "init")
		})
	})
}

type initHarness struct {
	init_.Actor
	t testing.TB
}

func (h *initHarness) constructAndVerify(rt *mock.Runtime) {
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Constructor, &init_.ConstructorParams{NetworkName: builtin.DefaultNetworkName})
	assert.Nil(h.t, ret)
	rt.Verify()

	var st init_.State
	rt.GetState(&st)
	emptyMap, err := adt.MakeEmptyMap(adt.AsStore(rt), adt.DefaultHamtBitwidth)
	require.NoError(h.t, err)
	emptyRoot, err := emptyMap.Root()
	require.NoError(h.t, err)
	assert.Equal(h.t, emptyRoot, st.AddressMap)
	assert.Equal(h.t, emptyRoot, st.Contracts)
	assert.Equal(h.t, abi.ActorID(builtin.FirstNonSingletonActorId), st.NextID)
	assert.Equal(h.t, builtin.DefaultNetworkName, st.NetworkName)
}

func (h *initHarness) install(rt *mock.Runtime, code cid.Cid) init_.InstallReturn {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.Install, &init_.InstallParams{Code: code}).(*init_.InstallReturn)
	rt.Verify()
	return *ret
}

func (h *initHarness) execAndVerify(rt *mock.Runtime, codeID uint64, constructorParams []byte, label string) *init_.ExecReturn {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.Exec, &init_.ExecParams{
		CodeID:            codeID,
		ConstructorParams: constructorParams,
		Label:             label,
	}).(*init_.ExecReturn)
	rt.Verify()
	return ret
}

func (h *initHarness) checkState(rt *mock.Runtime) *init_.StateSummary {
	var st init_.State
	rt.GetState(&st)
	summary, msgs := init_.CheckStateInvariants(&st, adt.AsStore(rt))
	assert.True(h.t, msgs.IsEmpty(), strings.Join(msgs.Messages(), "\n"))
	return summary
}
