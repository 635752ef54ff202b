package vm_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/multiformats/go-multibase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/builtin/account"
	"github.com/vestlabs/vesting-actors/actors/builtin/exported"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/support/ipld"
	tutil "github.com/vestlabs/vesting-actors/support/testing"
	"github.com/vestlabs/vesting-actors/support/vm"
)

func TestSendCreatesAccount(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 1, types.NewCoins(types.NewCoin(vm.TestDenom, 1_000)), 93837778)

	recipient := tutil.NewSECP256K1Addr(t, "recipient")
	vm.ApplyOk(t, v, addrs[0], recipient, types.NewCoins(types.NewCoin(vm.TestDenom, 400)), builtin.MethodSend, nil)

	idAddr, found := v.NormalizeAddress(recipient)
	require.True(t, found)
	assert.Equal(t, abi.NewTokenAmount(400), v.GetBalance(idAddr, vm.TestDenom))
	assert.Equal(t, abi.NewTokenAmount(600), v.GetBalance(addrs[0], vm.TestDenom))

	var st account.State
	require.NoError(t, v.GetState(idAddr, &st))
	assert.Equal(t, recipient, st.Address)

	vm.ExpectInvocation{
		To:     idAddr,
		Method: builtin.MethodSend,
		Value:  vm.ExpectCoins(types.NewCoin(vm.TestDenom, 400)),
	}.Matches(t, v.LastInvocation())
}

func TestFailedMessageRollsBack(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 2, types.NewCoins(types.NewCoin(vm.TestDenom, 100)), 93837778)
	before := v.StateRoot()

	result := v.ApplyMessage(addrs[0], addrs[1], types.NewCoins(types.NewCoin(vm.TestDenom, 101)), builtin.MethodSend, nil)
	assert.Equal(t, exitcode.SysErrInsufficientFunds, result.Code)
	assert.Equal(t, before, v.StateRoot())
	assert.Equal(t, abi.NewTokenAmount(100), v.GetBalance(addrs[0], vm.TestDenom))

	t.Run("unknown sender", func(t *testing.T) {
		result := v.ApplyMessage(tutil.NewBLSAddr(t, 1), addrs[1], nil, builtin.MethodSend, nil)
		assert.Equal(t, exitcode.SysErrSenderInvalid, result.Code)
	})

	t.Run("undefined method", func(t *testing.T) {
		result := v.ApplyMessage(addrs[0], builtin.TransferActorAddr, nil, abi.MethodNum(99), nil)
		assert.Equal(t, exitcode.SysErrInvalidMethod, result.Code)
	})

	t.Run("receipts are recorded for every message", func(t *testing.T) {
		count := v.ReceiptCount()
		v.ApplyMessage(addrs[0], addrs[1], nil, builtin.MethodSend, nil)
		require.Equal(t, count+1, v.ReceiptCount())

		receipt, err := v.GetReceipt(count)
		require.NoError(t, err)
		assert.Equal(t, uint64(exitcode.Ok), receipt.ExitCode)
	})
}

func TestBlockTime(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t, vm.WithTime(10, 1_000))
	assert.Equal(t, types.Timestamp(1_000), v.GetBlockTime())

	next := vm.AdvanceTo(t, v, 1_600)
	assert.Equal(t, abi.ChainEpoch(11), next.GetEpoch())
	assert.Equal(t, types.Timestamp(1_600), next.GetBlockTime())

	_, err := next.WithBlockTime(1_599)
	assert.Error(t, err)
}

func TestBlockTimeKeepsReceiptsSeparate(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 2, types.NewCoins(types.NewCoin(vm.TestDenom, 100)), 93837778)
	vm.ApplyOk(t, v, addrs[0], addrs[1], types.NewCoins(types.NewCoin(vm.TestDenom, 1)), builtin.MethodSend, nil)
	count := v.ReceiptCount()

	next := vm.AdvanceTo(t, v, v.GetBlockTime()+60)
	vm.ApplyOk(t, next, addrs[0], addrs[1], types.NewCoins(types.NewCoin(vm.TestDenom, 1)), builtin.MethodSend, nil)
	assert.Equal(t, count+1, next.ReceiptCount())
	assert.Equal(t, count, v.ReceiptCount())

	_, err := v.GetReceipt(count)
	assert.Error(t, err)
}

func TestApplyConstructor(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	codeID := vm.InstallCode(t, v, builtin.VestingActorCodeID)
	factory := vm.CreateFactory(t, v, codeID)

	receipt, err := v.GetReceipt(v.ReceiptCount() - 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(exitcode.Ok), receipt.ExitCode)
	assert.Empty(t, receipt.Return)

	vm.ExpectInvocation{
		To:     factory,
		Method: builtin.MethodsVestingFactory.Constructor,
		Params: vm.ExpectObject(&vestingfactory.ConstructorParams{VestingCodeID: codeID}),
	}.Matches(t, v.LastInvocation())

	var st vestingfactory.State
	require.NoError(t, v.GetState(factory, &st))
	assert.Equal(t, codeID, st.VestingCodeID)
}

func TestExportAndLoadState(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	balance := types.NewCoins(types.NewCoin(vm.TestDenom, 5_000), types.NewCoin("uatom", 7))
	addrs := vm.CreateAccounts(ctx, t, v, 3, balance, 93837778)

	var car bytes.Buffer
	require.NoError(t, v.ExportCar(&car))

	bs := ipld.NewBlockStoreInMemory()
	root, err := ipld.LoadCar(bs, &car)
	require.NoError(t, err)
	assert.Equal(t, v.StateRoot(), root)

	lookup := vm.ActorImplLookup{}
	for _, ba := range exported.BuiltinActors() {
		lookup[ba.Code()] = ba
	}
	loaded, err := vm.LoadVM(ctx, lookup, ipld.WrapBlockStore(ctx, bs), root)
	require.NoError(t, err)

	for _, a := range addrs {
		assert.Equal(t, big.NewInt(5_000), loaded.GetBalance(a, vm.TestDenom))
		assert.Equal(t, big.NewInt(7), loaded.GetBalance(a, "uatom"))
	}

	// The loaded state executes messages like the original.
	vm.ApplyOk(t, loaded, addrs[0], addrs[1], types.NewCoins(types.NewCoin("uatom", 7)), builtin.MethodSend, nil)
	assert.Equal(t, big.NewInt(14), loaded.GetBalance(addrs[1], "uatom"))
	assert.Equal(t, big.NewInt(7), v.GetBalance(addrs[1], "uatom"))
}

func TestVectorGeneration(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VESTING_ACTORS_VECTORS", dir)

	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 2, types.NewCoins(types.NewCoin(vm.TestDenom, 100)), 93837778)
	vm.ApplyOk(t, v, addrs[0], addrs[1], types.NewCoins(types.NewCoin(vm.TestDenom, 1)), builtin.MethodSend, nil)

	files, err := filepath.Glob(filepath.Join(dir, "account", "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	raw, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var vector struct {
		PostRoot string `json:"post_root"`
		CAR      string `json:"car"`
	}
	require.NoError(t, json.Unmarshal(raw, &vector))
	assert.Equal(t, v.StateRoot().String(), vector.PostRoot)

	_, compressed, err := multibase.Decode(vector.CAR)
	require.NoError(t, err)
	gz, err := gzip.NewReader(bytes.NewReader(compressed))
	require.NoError(t, err)
	root, err := ipld.LoadCar(ipld.NewBlockStoreInMemory(), gz)
	require.NoError(t, err)
	assert.Equal(t, v.StateRoot(), root)
}
