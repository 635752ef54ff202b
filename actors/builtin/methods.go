package builtin

import (
	abi "github.com/filecoin-project/go-state-types/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
	// Host-delivered result of a message sent with a reply request.
	MethodReply = abi.MethodNum(2)
)

var MethodsAccount = struct {
	Constructor   abi.MethodNum
	PubkeyAddress abi.MethodNum
}{MethodConstructor, 2}

var MethodsInit = struct {
	Constructor abi.MethodNum
	Exec        abi.MethodNum
	Install     abi.MethodNum
}{MethodConstructor, 3, 4}

var MethodsTransfer = struct {
	Constructor abi.MethodNum
	Transfer    abi.MethodNum
}{MethodConstructor, 3}

var MethodsVesting = struct {
	Constructor  abi.MethodNum
	Claim        abi.MethodNum
	GetClaimable abi.MethodNum
}{MethodConstructor, 3, 4}

var MethodsVestingFactory = struct {
	Constructor    abi.MethodNum
	Reply          abi.MethodNum
	CreateVesting  abi.MethodNum
	GetVestingAddr abi.MethodNum
}{MethodConstructor, MethodReply, 3, 4}
