package exported

import (
	"github.com/vestlabs/vesting-actors/actors/builtin/account"
	init_ "github.com/vestlabs/vesting-actors/actors/builtin/init"
	"github.com/vestlabs/vesting-actors/actors/builtin/system"
	"github.com/vestlabs/vesting-actors/actors/builtin/transfer"
	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	"github.com/vestlabs/vesting-actors/actors/runtime"
)

func BuiltinActors() []runtime.VMActor {
	return []runtime.VMActor{
		account.Actor{},
		init_.Actor{},
		system.Actor{},
		transfer.Actor{},
		vesting.Actor{},
		vestingfactory.Actor{},
	}
}
