package vm

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/builtin/account"
	"github.com/vestlabs/vesting-actors/actors/builtin/exported"
	initactor "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/builtin/system"
	"github.com/vestlabs/vesting-actors/actors/builtin/transfer"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/support/ipld"
	actor_testing "github.com/vestlabs/vesting-actors/support/testing"
)

// Denom used by scenarios that only need one asset.
const TestDenom = "uvest"

//
// Genesis like setup
//

// Creates a new VM and initializes all singleton actors.
// The VM keeps its blocks in memory so its state can be exported.
func NewVMWithSingletons(ctx context.Context, t testing.TB, opts ...Option) *VM {
	bs := ipld.NewBlockStoreInMemory()
	store := ipld.WrapBlockStore(ctx, bs)

	lookup := ActorImplLookup{}
	for _, ba := range exported.BuiltinActors() {
		lookup[ba.Code()] = ba
	}

	vm, err := NewVM(ctx, lookup, store, append([]Option{WithBlockstore(bs)}, opts...)...)
	require.NoError(t, err)

	initializeActor(t, vm, &system.State{}, builtin.SystemActorCodeID, builtin.SystemActorAddr, nil)

	initState, err := initactor.ConstructState(vm.store, vm.networkName)
	require.NoError(t, err)
	initializeActor(t, vm, initState, builtin.InitActorCodeID, builtin.InitActorAddr, nil)

	transferState, err := transfer.ConstructState(vm.store)
	require.NoError(t, err)
	initializeActor(t, vm, transferState, builtin.TransferActorCodeID, builtin.TransferActorAddr, nil)

	_, err = vm.checkpoint()
	require.NoError(t, err)

	return vm
}

// Creates n account actors in the VM with the given balance.
// Returns their key addresses.
func CreateAccounts(ctx context.Context, t testing.TB, vm *VM, n int, balance types.Coins, seed int64) []address.Address {
	var initState initactor.State
	err := vm.GetState(builtin.InitActorAddr, &initState)
	require.NoError(t, err)

	pubAddrs := make([]address.Address, n)
	idAddrs := make([]address.Address, n)
	for i := range pubAddrs {
		pubAddrs[i] = actor_testing.NewBLSAddr(t, seed+int64(i))
		idAddrs[i], err = initState.MapAddressToNewID(vm.store, pubAddrs[i])
		require.NoError(t, err)
	}
	require.NoError(t, vm.setActorState(builtin.InitActorAddr, &initState))

	for i := range pubAddrs {
		initializeActor(t, vm, &account.State{Address: pubAddrs[i]}, builtin.AccountActorCodeID, idAddrs[i], balance)
	}

	_, err = vm.checkpoint()
	require.NoError(t, err)
	return pubAddrs
}

// Installs code in the init actor, returning its code id.
func InstallCode(t testing.TB, vm *VM, code cid.Cid) uint64 {
	result := vm.ApplyMessage(builtin.SystemActorAddr, builtin.InitActorAddr, nil, builtin.MethodsInit.Install, &initactor.InstallParams{Code: code})
	require.Equal(t, exitcode.Ok, result.Code, "install failed: %v", vm.GetLogs())
	return result.Ret.(*initactor.InstallReturn).CodeID
}

// Creates a vesting factory that deploys the vesting code installed under vestingCodeID.
// Returns the factory's ID address.
func CreateFactory(t testing.TB, vm *VM, vestingCodeID uint64) address.Address {
	var initState initactor.State
	require.NoError(t, vm.GetState(builtin.InitActorAddr, &initState))

	robust := actor_testing.NewActorAddr(t, "vestingfactory")
	idAddr, err := initState.MapAddressToNewID(vm.store, robust)
	require.NoError(t, err)
	require.NoError(t, vm.setActorState(builtin.InitActorAddr, &initState))
	require.NoError(t, vm.setActor(idAddr, &TestActor{Code: builtin.VestingFactoryActorCodeID, Head: vm.emptyObject}))

	result := vm.ApplyMessage(builtin.SystemActorAddr, idAddr, nil, builtin.MethodsVestingFactory.Constructor, &vestingfactory.ConstructorParams{
		VestingCodeID: vestingCodeID,
	})
	require.Equal(t, exitcode.Ok, result.Code, "factory construction failed: %v", vm.GetLogs())
	return idAddr
}

//
//  internal stuff
//

func initializeActor(t testing.TB, vm *VM, state cbor.Marshaler, code cid.Cid, a address.Address, balance types.Coins) {
	stateCID, err := vm.store.Put(vm.ctx, state)
	require.NoError(t, err)
	actor := &TestActor{
		Head:    stateCID,
		Code:    code,
		Balance: balance,
	}
	err = vm.setActor(a, actor)
	require.NoError(t, err)
}
