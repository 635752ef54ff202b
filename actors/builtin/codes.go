package builtin

import (
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in actor code IDs
var (
	SystemActorCodeID         cid.Cid
	InitActorCodeID           cid.Cid
	AccountActorCodeID        cid.Cid
	TransferActorCodeID       cid.Cid
	VestingActorCodeID        cid.Cid
	VestingFactoryActorCodeID cid.Cid
)

var builtinActors map[cid.Cid]*builtinActor

type builtinActor struct {
	name string
}

func (ba *builtinActor) String() string {
	return ba.name
}

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	builtinActors = make(map[cid.Cid]*builtinActor)

	for id, info := range map[*cid.Cid]*builtinActor{ //nolint:nomaprange
		&SystemActorCodeID:         {name: "system"},
		&InitActorCodeID:           {name: "init"},
		&AccountActorCodeID:        {name: "account"},
		&TransferActorCodeID:       {name: "transfer"},
		&VestingActorCodeID:        {name: "vesting"},
		&VestingFactoryActorCodeID: {name: "vestingfactory"},
	} {
		c, err := builder.Sum([]byte("vest/1/" + info.name))
		if err != nil {
			panic(err)
		}
		*id = c
		builtinActors[c] = info
	}
}

// IsBuiltinActor returns true if the code belongs to an actor defined in this repo.
func IsBuiltinActor(code cid.Cid) bool {
	_, isBuiltin := builtinActors[code]
	return isBuiltin
}

// ActorNameByCode returns the (string) name of the actor given a cid code.
func ActorNameByCode(code cid.Cid) string {
	if !code.Defined() {
		return "<undefined>"
	}

	name, ok := builtinActors[code]
	if !ok {
		return "<unknown>"
	}
	return name.String()
}

// Tests whether a code CID represents an actor that can be an external principal: i.e. an account.
func IsPrincipal(code cid.Cid) bool {
	return code == AccountActorCodeID
}
