package builtin

import (
	addr "github.com/filecoin-project/go-address"
)

// Addresses for singleton system actors.
var (
	// Distinguished System actor, the caller of host-delivered messages such as replies.
	SystemActorAddr   = mustMakeAddress(0)
	InitActorAddr     = mustMakeAddress(1)
	TransferActorAddr = mustMakeAddress(2)
)

const FirstNonSingletonActorId = 100

func mustMakeAddress(id uint64) addr.Address {
	address, err := addr.NewIDAddress(id)
	if err != nil {
		panic(err)
	}
	return address
}
