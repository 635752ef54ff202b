package builtin

import (
	"sync"

	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/vestlabs/vesting-actors/actors/runtime"
)

// ActorLog holds per-code log level overrides, consulted by actors when choosing
// the level of a diagnostic message.
type ActorLog struct {
	sync.RWMutex
	Actors map[cid.Cid]rtt.LogLevel
}

var actorLogSingle = &ActorLog{Actors: make(map[cid.Cid]rtt.LogLevel)}

func SetActorsLogLevel(logLevel rtt.LogLevel, actors ...runtime.VMActor) {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()

	for _, actor := range actors {
		actorLogSingle.Actors[actor.Code()] = logLevel
	}
}

func ResetActorsLogLevel(actors ...runtime.VMActor) {
	actorLogSingle.Lock()
	defer actorLogSingle.Unlock()

	for _, actor := range actors {
		delete(actorLogSingle.Actors, actor.Code())
	}
}

func GetActorLogLevel(actor runtime.VMActor, defValue rtt.LogLevel) rtt.LogLevel {
	actorLogSingle.RLock()
	defer actorLogSingle.RUnlock()

	if actorLogLevel, ok := actorLogSingle.Actors[actor.Code()]; ok {
		return actorLogLevel
	}
	return defValue
}
