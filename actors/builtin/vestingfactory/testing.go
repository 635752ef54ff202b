package vestingfactory

import (
	addr "github.com/filecoin-project/go-address"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

type StateSummary struct {
	PendingInits     map[uint64]PendingInit
	VestingContracts map[string]addr.Address
}

// Checks internal invariants of vesting factory state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{
		PendingInits:     make(map[uint64]PendingInit),
		VestingContracts: make(map[string]addr.Address),
	}

	acc.Require(st.VestingCodeID > 0, "vesting code id is not set")

	if pendingInits, err := adt.AsMap(store, st.PendingInits, adt.DefaultHamtBitwidth); err != nil {
		acc.Addf("error loading pending inits: %v", err)
	} else {
		var pending PendingInit
		err = pendingInits.ForEach(&pending, func(key string) error {
			id, err := adt.ParseUIntKey(key)
			if err != nil {
				return err
			}
			acc.Require(id < st.NextReplyID, "pending reply id %d not below next id %d", id, st.NextReplyID)
			acc.Require(pending.Receiver != "", "pending reply %d has no receiver", id)
			summary.PendingInits[id] = pending
			return nil
		})
		acc.RequireNoError(err, "error iterating pending inits")
	}

	if contracts, err := adt.AsMap(store, st.VestingContracts, adt.DefaultHamtBitwidth); err != nil {
		acc.Addf("error loading vesting contracts: %v", err)
	} else {
		var address addr.Address
		err = contracts.ForEach(&address, func(receiver string) error {
			acc.Require(address.Protocol() == addr.ID, "vesting contract %v for %s is not an ID address", address, receiver)
			summary.VestingContracts[receiver] = address
			return nil
		})
		acc.RequireNoError(err, "error iterating vesting contracts")
	}

	return summary, acc
}
