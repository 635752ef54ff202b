package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/builtin/account"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/builtin/system"
	"github.com/vestlabs/vesting-actors/actors/builtin/transfer"
	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/support/vm"
)

func main() {
	// Common types
	if err := gen.WriteTupleEncodersToFile("./actors/types/cbor_gen.go", "types",
		types.Coin{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/cbor_gen.go", "builtin",
		builtin.ReplyParams{},
	); err != nil {
		panic(err)
	}

	// Actors
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/system/cbor_gen.go", "system",
		// actor state
		system.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/account/cbor_gen.go", "account",
		// actor state
		account.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/init/cbor_gen.go", "init",
		// actor state
		init_.State{},
		init_.ContractInfo{},
		// method params
		init_.ConstructorParams{},
		init_.InstallParams{},
		init_.InstallReturn{},
		init_.ExecParams{},
		init_.ExecReturn{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/transfer/cbor_gen.go", "transfer",
		// actor state
		transfer.State{},
		transfer.Packet{},
		// method params
		transfer.TransferParams{},
		transfer.TransferReturn{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vesting/cbor_gen.go", "vesting",
		vesting.NativeReceiver{},
		vesting.IBCReceiver{},
		vesting.Receiver{},
		// actor state
		vesting.State{},
		// method params
		vesting.ConstructorParams{},
		vesting.ClaimReturn{},
		vesting.ClaimableReturn{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vestingfactory/cbor_gen.go", "vestingfactory",
		// actor state
		vestingfactory.State{},
		vestingfactory.PendingInit{},
		// method params
		vestingfactory.ConstructorParams{},
		vestingfactory.CreateVestingParams{},
		vestingfactory.CreateVestingReturn{},
		vestingfactory.GetVestingAddrParams{},
		vestingfactory.GetVestingAddrReturn{},
	); err != nil {
		panic(err)
	}

	// Test VM
	if err := gen.WriteTupleEncodersToFile("./support/vm/cbor_gen.go", "vm",
		vm.TestActor{},
		vm.Attribute{},
		vm.Receipt{},
	); err != nil {
		panic(err)
	}
}
