package test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/types"
	tutil "github.com/vestlabs/vesting-actors/support/testing"
	"github.com/vestlabs/vesting-actors/support/vm"
)

const genesisTime = types.Timestamp(1_700_000_000)

// Code id the vesting actor is installed under by setupFactory.
const vestingCodeID = 7

// setupFactory creates a VM with funded accounts and a vesting factory. The vesting code
// is installed after six unrelated codes so its code id is not 1.
func setupFactory(t *testing.T, nAccounts int, balance types.Coins) (*vm.VM, []addr.Address, addr.Address) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t, vm.WithTime(0, genesisTime))
	addrs := vm.CreateAccounts(ctx, t, v, nAccounts, balance, 93837778)

	placeholders := tutil.NewCidForTestGetter("placeholder")
	for i := 0; i < vestingCodeID-1; i++ {
		vm.InstallCode(t, v, placeholders())
	}
	codeID := vm.InstallCode(t, v, builtin.VestingActorCodeID)
	require.Equal(t, uint64(vestingCodeID), codeID)

	factory := vm.CreateFactory(t, v, codeID)
	return v, addrs, factory
}

// createVesting deploys a vesting actor through the factory and returns its ID address.
func createVesting(t *testing.T, v *vm.VM, factory, funder addr.Address, receiver vesting.Receiver, strategy vesting.Strategy, funds types.Coins) addr.Address {
	vm.ApplyOk(t, v, funder, factory, funds, builtin.MethodsVestingFactory.CreateVesting, &vestingfactory.CreateVestingParams{
		Receiver: receiver,
		Strategy: strategy,
		Label:    "vesting for " + receiver.Key(),
	})
	return vestingAddr(t, v, factory, receiver.Key())
}

func vestingAddr(t *testing.T, v *vm.VM, factory addr.Address, receiver string) addr.Address {
	ret := vm.QueryOk(t, v, factory, builtin.MethodsVestingFactory.GetVestingAddr, &vestingfactory.GetVestingAddrParams{Receiver: receiver})
	return ret.(*vestingfactory.GetVestingAddrReturn).Address
}

// robustAddress finds the actor address the init actor assigned when creating the actor at id.
func robustAddress(t *testing.T, v *vm.VM, id addr.Address) addr.Address {
	var st init_.State
	require.NoError(t, v.GetState(builtin.InitActorAddr, &st))
	summary, _ := init_.CheckStateInvariants(&st, v.Store())

	actorID, err := addr.IDFromAddress(id)
	require.NoError(t, err)
	for a, mapped := range summary.AddrIDs { //nolint:nomaprange
		if uint64(mapped) == actorID && a.Protocol() == addr.Actor {
			return a
		}
	}
	require.FailNow(t, "no robust address", "actor %v", id)
	return addr.Undef
}

func claim(t *testing.T, v *vm.VM, claimer, instance addr.Address) abi.TokenAmount {
	ret := vm.ApplyOk(t, v, claimer, instance, nil, builtin.MethodsVesting.Claim, nil)
	return ret.(*vesting.ClaimReturn).Amount
}

func claimable(t *testing.T, v *vm.VM, instance addr.Address) abi.TokenAmount {
	ret := vm.QueryOk(t, v, instance, builtin.MethodsVesting.GetClaimable, nil)
	return ret.(*vesting.ClaimableReturn).Amount
}

func coins(denom string, amount int64) types.Coins {
	return types.NewCoins(types.NewCoin(denom, amount))
}
