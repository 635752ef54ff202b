package test

import (
	"bytes"
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/builtin/transfer"
	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/support/ipld"
	"github.com/vestlabs/vesting-actors/support/vm"
)

func TestNativeVestingScenario(t *testing.T) {
	v, addrs, factory := setupFactory(t, 3, coins(vm.TestDenom, 1_000_000))
	funder, receiver, stranger := addrs[0], addrs[1], addrs[2]

	vm.ApplyOk(t, v, funder, factory, coins(vm.TestDenom, 3_600), builtin.MethodsVestingFactory.CreateVesting, &vestingfactory.CreateVestingParams{
		Receiver: vesting.NewNativeReceiver(receiver),
		Strategy: vesting.StrategyHour,
		Label:    "hourly",
	})
	created := v.LastInvocation()
	instance := vestingAddr(t, v, factory, receiver.String())
	assert.Equal(t, big.NewInt(3_600), v.GetBalance(instance, vm.TestDenom))
	assert.Equal(t, big.NewInt(1_000_000-3_600), v.GetBalance(funder, vm.TestDenom))

	// The factory deploys through init, then records the instance when the host replies.
	deployed := &init_.ExecReturn{IDAddress: instance, RobustAddress: robustAddress(t, v, instance)}
	vm.ExpectInvocation{
		To:     factory,
		Method: builtin.MethodsVestingFactory.CreateVesting,
		Value:  vm.ExpectCoins(types.NewCoin(vm.TestDenom, 3_600)),
		Ret:    vm.ExpectObject(&vestingfactory.CreateVestingReturn{ReplyID: 0}),
		SubInvocations: []vm.ExpectInvocation{
			{
				To:     builtin.InitActorAddr,
				Method: builtin.MethodsInit.Exec,
				Value:  vm.ExpectCoins(types.NewCoin(vm.TestDenom, 3_600)),
				Ret:    vm.ExpectObject(deployed),
				SubInvocations: []vm.ExpectInvocation{{
					To:     instance,
					Method: builtin.MethodConstructor,
					From:   vm.ExpectAddress(builtin.InitActorAddr),
					Value:  vm.ExpectCoins(types.NewCoin(vm.TestDenom, 3_600)),
				}},
			},
			vm.ExpectReply(factory, 0, deployed),
		},
	}.Matches(t, created)

	var info init_.State
	require.NoError(t, v.GetState(builtin.InitActorAddr, &info))
	contract, found, err := info.GetContractInfo(v.Store(), instance)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(vestingCodeID), contract.CodeID)
	assert.Equal(t, factory, contract.Creator)
	assert.Equal(t, "hourly", contract.Label)

	// Half way through the hour, half the funds are releasable.
	v = vm.AdvanceTo(t, v, genesisTime+1_800)
	assert.Equal(t, big.NewInt(1_800), claimable(t, v, instance))

	result := v.ApplyMessage(stranger, instance, nil, builtin.MethodsVesting.Claim, nil)
	assert.Equal(t, exitcode.ErrForbidden, result.Code)

	result = v.ApplyMessage(receiver, instance, nil, builtin.MethodsVesting.Claim, nil)
	require.Equal(t, exitcode.Ok, result.Code)
	assert.Equal(t, big.NewInt(1_800), result.Ret.(*vesting.ClaimReturn).Amount)
	assert.Equal(t, []vm.Attribute{{Key: vesting.AttributeAmountSent, Value: "1800"}}, result.Attributes)
	assert.Equal(t, big.NewInt(1_800), v.GetBalance(instance, vm.TestDenom))
	assert.Equal(t, big.NewInt(1_000_000+1_800), v.GetBalance(receiver, vm.TestDenom))

	receiverID, found := v.NormalizeAddress(receiver)
	require.True(t, found)
	vm.ExpectInvocation{
		To:     instance,
		Method: builtin.MethodsVesting.Claim,
		SubInvocations: []vm.ExpectInvocation{{
			To:     receiverID,
			Method: builtin.MethodSend,
			Value:  vm.ExpectCoins(types.NewCoin(vm.TestDenom, 1_800)),
		}},
	}.Matches(t, v.LastInvocation())

	// The window restarted at the claim, so the rest is spread over the remaining half hour.
	v = vm.AdvanceTo(t, v, genesisTime+2_700)
	assert.Equal(t, big.NewInt(900), claimable(t, v, instance))

	// After the end everything left is paid out, and later claims pay nothing.
	v = vm.AdvanceTo(t, v, genesisTime+3_600)
	assert.Equal(t, big.NewInt(1_800), claim(t, v, receiver, instance))
	assert.True(t, big.Zero().Equals(v.GetBalance(instance, vm.TestDenom)))

	v = vm.AdvanceTo(t, v, genesisTime+7_200)
	assert.True(t, big.Zero().Equals(claimable(t, v, instance)))
	assert.True(t, big.Zero().Equals(claim(t, v, receiver, instance)))
	assert.Equal(t, big.NewInt(1_000_000+3_600), v.GetBalance(receiver, vm.TestDenom))
}

func TestClaimableMatchesClaim(t *testing.T) {
	v, addrs, factory := setupFactory(t, 2, coins(vm.TestDenom, 1_000_000))
	funder, receiver := addrs[0], addrs[1]
	instance := createVesting(t, v, factory, funder, vesting.NewNativeReceiver(receiver), vesting.StrategyDay, coins(vm.TestDenom, 999_983))

	total := big.Zero()
	for _, elapsed := range []types.Timestamp{1, 7_919, 43_200, 43_201, 86_399, 86_400} {
		v = vm.AdvanceTo(t, v, genesisTime+elapsed)
		expected := claimable(t, v, instance)
		assert.Equal(t, expected, claim(t, v, receiver, instance), "at %d", elapsed)
		total = big.Add(total, expected)
	}
	assert.Equal(t, big.NewInt(999_983), total)
	assert.True(t, big.Zero().Equals(v.GetBalance(instance, vm.TestDenom)))
}

func TestIBCVestingScenario(t *testing.T) {
	v, addrs, factory := setupFactory(t, 2, coins("uatom", 10_000))
	funder, claimer := addrs[0], addrs[1]

	receiver := vesting.NewIBCReceiver("cosmos1remote", "channel-0", claimer)
	instance := createVesting(t, v, factory, funder, receiver, vesting.StrategyHour, coins("uatom", 7_200))
	assert.Equal(t, instance, vestingAddr(t, v, factory, "cosmos1remote"))

	v = vm.AdvanceTo(t, v, genesisTime+900)
	assert.Equal(t, big.NewInt(1_800), claim(t, v, claimer, instance))
	assert.Equal(t, big.NewInt(1_800), v.GetBalance(builtin.TransferActorAddr, "uatom"))

	var st transfer.State
	require.NoError(t, v.GetState(builtin.TransferActorAddr, &st))
	packet, found, err := st.GetPacket(v.Store(), 0)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "channel-0", packet.ChannelID)
	assert.Equal(t, "cosmos1remote", packet.Receiver)
	assert.Equal(t, instance, packet.Sender)
	assert.Equal(t, types.NewCoin("uatom", 1_800), packet.Coin)
	assert.Equal(t, (genesisTime + 900).Add(vesting.CrossChainTimeoutSeconds), packet.TimeoutTimestamp)

	// Drain, then a further claim pays zero without a transfer.
	v = vm.AdvanceTo(t, v, genesisTime+3_600)
	assert.Equal(t, big.NewInt(5_400), claim(t, v, claimer, instance))

	v = vm.AdvanceTo(t, v, genesisTime+3_601)
	assert.True(t, big.Zero().Equals(claimable(t, v, instance)))
	result := v.ApplyMessage(claimer, instance, nil, builtin.MethodsVesting.Claim, nil)
	require.Equal(t, exitcode.Ok, result.Code)
	assert.True(t, big.Zero().Equals(result.Ret.(*vesting.ClaimReturn).Amount))
	assert.Equal(t, []vm.Attribute{{Key: vesting.AttributeAmountSent, Value: "0"}}, result.Attributes)

	vm.ExpectInvocation{
		To:             instance,
		Method:         builtin.MethodsVesting.Claim,
		SubInvocations: []vm.ExpectInvocation{},
	}.Matches(t, v.LastInvocation())

	var after vesting.State
	require.NoError(t, v.GetState(instance, &after))
	assert.Equal(t, genesisTime+3_601, after.Start)
	require.NoError(t, v.GetState(builtin.TransferActorAddr, &st))
	assert.Equal(t, uint64(2), st.NextSequence)
}

func TestFactoryScenarioFailures(t *testing.T) {
	v, addrs, factory := setupFactory(t, 2, coins(vm.TestDenom, 1_000_000))
	funder, receiver := addrs[0], addrs[1]

	t.Run("no funds", func(t *testing.T) {
		vm.ApplyCode(t, v, funder, factory, nil, builtin.MethodsVestingFactory.CreateVesting, &vestingfactory.CreateVestingParams{
			Receiver: vesting.NewNativeReceiver(receiver),
			Strategy: vesting.StrategyHour,
		}, exitcode.ErrInsufficientFunds)

		result := v.Query(factory, builtin.MethodsVestingFactory.GetVestingAddr, &vestingfactory.GetVestingAddrParams{Receiver: receiver.String()})
		assert.Equal(t, exitcode.ErrNotFound, result.Code)
	})

	t.Run("sender lacks the denom", func(t *testing.T) {
		funds := types.NewCoins(types.NewCoin(vm.TestDenom, 10), types.NewCoin("uatom", 10))
		vm.ApplyCode(t, v, funder, factory, funds, builtin.MethodsVestingFactory.CreateVesting, &vestingfactory.CreateVestingParams{
			Receiver: vesting.NewNativeReceiver(receiver),
			Strategy: vesting.StrategyHour,
		}, exitcode.SysErrInsufficientFunds)
	})

	t.Run("failed deployment keeps funds with the funder", func(t *testing.T) {
		before := v.GetBalance(funder, vm.TestDenom)
		vm.ApplyCode(t, v, funder, factory, coins(vm.TestDenom, 100), builtin.MethodsVestingFactory.CreateVesting, &vestingfactory.CreateVestingParams{
			Receiver: vesting.NewNativeReceiver(receiver),
			Strategy: vesting.Strategy(9),
		}, exitcode.ErrIllegalArgument)
		assert.Equal(t, before, v.GetBalance(funder, vm.TestDenom))
	})

	t.Run("reply only from the system", func(t *testing.T) {
		vm.ApplyCode(t, v, funder, factory, nil, builtin.MethodsVestingFactory.Reply, &builtin.ReplyParams{ID: 0}, exitcode.ErrForbidden)
	})
}

func TestLaterDeploymentReplacesEarlier(t *testing.T) {
	v, addrs, factory := setupFactory(t, 2, coins(vm.TestDenom, 1_000_000))
	funder, receiver := addrs[0], addrs[1]

	first := createVesting(t, v, factory, funder, vesting.NewNativeReceiver(receiver), vesting.StrategyHour, coins(vm.TestDenom, 100))
	second := createVesting(t, v, factory, funder, vesting.NewNativeReceiver(receiver), vesting.StrategyWeek, coins(vm.TestDenom, 200))
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, vestingAddr(t, v, factory, receiver.String()))

	// The earlier instance keeps working.
	v = vm.AdvanceTo(t, v, genesisTime+builtin.SecondsInHour)
	assert.Equal(t, big.NewInt(100), claim(t, v, receiver, first))

	var st vestingfactory.State
	require.NoError(t, v.GetState(factory, &st))
	summary, msgs := vestingfactory.CheckStateInvariants(&st, v.Store())
	assert.True(t, msgs.IsEmpty(), msgs.Messages())
	assert.Empty(t, summary.PendingInits)
	assert.Equal(t, second, summary.VestingContracts[receiver.String()])
}

func TestStateExportAfterVesting(t *testing.T) {
	v, addrs, factory := setupFactory(t, 2, coins(vm.TestDenom, 1_000_000))
	instance := createVesting(t, v, factory, addrs[0], vesting.NewNativeReceiver(addrs[1]), vesting.StrategyHour, coins(vm.TestDenom, 3_600))

	v = vm.AdvanceTo(t, v, genesisTime+60)
	assert.Equal(t, abi.NewTokenAmount(60), claim(t, v, addrs[1], instance))

	var buf bytes.Buffer
	require.NoError(t, v.ExportCar(&buf))

	bs := ipld.NewBlockStoreInMemory()
	root, err := ipld.LoadCar(bs, &buf)
	require.NoError(t, err)
	assert.Equal(t, v.StateRoot(), root)

	var st vesting.State
	require.NoError(t, ipld.WrapBlockStore(context.Background(), bs).Get(context.Background(), mustActorHead(t, v, instance), &st))
	assert.Equal(t, genesisTime+60, st.Start)
}

func mustActorHead(t *testing.T, v *vm.VM, a addr.Address) cid.Cid {
	act, found, err := v.GetActor(a)
	require.NoError(t, err)
	require.True(t, found)
	return act.Head
}
