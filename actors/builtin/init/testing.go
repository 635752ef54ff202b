package init

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-bitfield"
	"github.com/filecoin-project/go-state-types/abi"
	cid "github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

type StateSummary struct {
	AddrIDs   map[addr.Address]abi.ActorID
	NextID    abi.ActorID
	Allocated bitfield.BitField
	Installed []cid.Cid
	Contracts map[addr.Address]ContractInfo
}

// Checks internal invariants of init state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}

	acc.Require(len(st.NetworkName) > 0, "network name is empty")
	acc.Require(st.NextID >= builtin.FirstNonSingletonActorId, "next id %d is too low", st.NextID)

	summary := &StateSummary{
		AddrIDs:   make(map[addr.Address]abi.ActorID),
		NextID:    st.NextID,
		Contracts: make(map[addr.Address]ContractInfo),
	}

	reverse := make(map[abi.ActorID]addr.Address)
	if lut, err := adt.AsMap(store, st.AddressMap, adt.DefaultHamtBitwidth); err != nil {
		acc.Addf("error loading address map: %v", err)
	} else {
		var value cbg.CborInt
		err = lut.ForEach(&value, func(key string) error {
			actorId := abi.ActorID(value)
			keyAddr, err := addr.NewFromBytes([]byte(key))
			if err != nil {
				return err
			}

			acc.Require(keyAddr.Protocol() != addr.ID, "key %v is an ID address", keyAddr)
			acc.Require(actorId >= builtin.FirstNonSingletonActorId, "unexpected singleton ID value %v", actorId)
			acc.Require(actorId < st.NextID, "actor id %d not below next id %d", actorId, st.NextID)

			if foundAddr, found := reverse[actorId]; found {
				acc.Addf("duplicate mapping to ID %v: %v, %v", actorId, keyAddr, foundAddr)
			}
			reverse[actorId] = keyAddr

			summary.AddrIDs[keyAddr] = actorId
			return nil
		})
		acc.RequireNoError(err, "error iterating address map")
	}
	ids := make([]uint64, 0, len(reverse))
	for id := range reverse { //nolint:nomaprange
		ids = append(ids, uint64(id))
	}
	summary.Allocated = bitfield.NewFromSet(ids)

	if installed, err := st.loadInstalledActors(store); err != nil {
		acc.Addf("error loading installed actors: %v", err)
	} else {
		seen := make(map[cid.Cid]struct{}, len(installed.Entries))
		for _, code := range installed.Entries {
			if _, ok := seen[code]; ok {
				acc.Addf("code %v installed twice", code)
			}
			seen[code] = struct{}{}
		}
		summary.Installed = installed.Entries
	}

	if contracts, err := adt.AsMap(store, st.Contracts, adt.DefaultHamtBitwidth); err != nil {
		acc.Addf("error loading contracts: %v", err)
	} else {
		var info ContractInfo
		err = contracts.ForEach(&info, func(key string) error {
			idAddr, err := addr.NewFromBytes([]byte(key))
			if err != nil {
				return err
			}
			id, err := addr.IDFromAddress(idAddr)
			if err != nil {
				acc.Addf("contract key %v is not an ID address", idAddr)
				return nil
			}
			if allocated, err := summary.Allocated.IsSet(id); err != nil {
				return err
			} else if !allocated {
				acc.Addf("contract %v has no robust address", idAddr)
			}
			acc.Require(info.CodeID > 0 && info.CodeID <= uint64(len(summary.Installed)), "contract %v has unknown code id %d", idAddr, info.CodeID)
			summary.Contracts[idAddr] = info
			return nil
		})
		acc.RequireNoError(err, "error iterating contracts")
	}

	return summary, acc
}
