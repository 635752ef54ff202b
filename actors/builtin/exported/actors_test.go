package exported_test

import (
	"testing"

	abi "github.com/filecoin-project/go-state-types/abi"
	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/builtin/account"
	"github.com/vestlabs/vesting-actors/actors/builtin/exported"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/builtin/transfer"
	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/support/mock"
)

func TestBuiltinActorsAreDistinct(t *testing.T) {
	seen := make(map[cid.Cid]struct{})
	for _, actor := range exported.BuiltinActors() {
		code := actor.Code()
		assert.True(t, builtin.IsBuiltinActor(code), "%v is not a builtin actor", code)
		_, dup := seen[code]
		assert.False(t, dup, "duplicate actor %s", builtin.ActorNameByCode(code))
		seen[code] = struct{}{}

		mock.CheckActorExports(t, actor)
	}
	assert.Len(t, seen, 6)
}

func TestExportsMatchMethodNumbers(t *testing.T) {
	for _, tc := range []struct {
		actor   interface{ Exports() []interface{} }
		methods []abi.MethodNum
	}{
		{account.Actor{}, []abi.MethodNum{builtin.MethodsAccount.Constructor, builtin.MethodsAccount.PubkeyAddress}},
		{init_.Actor{}, []abi.MethodNum{builtin.MethodsInit.Constructor, builtin.MethodsInit.Exec, builtin.MethodsInit.Install}},
		{transfer.Actor{}, []abi.MethodNum{builtin.MethodsTransfer.Constructor, builtin.MethodsTransfer.Transfer}},
		{vesting.Actor{}, []abi.MethodNum{builtin.MethodsVesting.Constructor, builtin.MethodsVesting.Claim, builtin.MethodsVesting.GetClaimable}},
		{vestingfactory.Actor{}, []abi.MethodNum{
			builtin.MethodsVestingFactory.Constructor,
			builtin.MethodsVestingFactory.Reply,
			builtin.MethodsVestingFactory.CreateVesting,
			builtin.MethodsVestingFactory.GetVestingAddr,
		}},
	} {
		exports := tc.actor.Exports()
		require.Len(t, exports, int(tc.methods[len(tc.methods)-1])+1)
		for _, m := range tc.methods {
			assert.NotNil(t, exports[m], "%T method %d not exported", tc.actor, m)
		}
	}
}
