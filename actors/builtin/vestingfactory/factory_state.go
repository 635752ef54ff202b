package vestingfactory

import (
	addr "github.com/filecoin-project/go-address"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

type State struct {
	// Code id, in the init actor's table, of the vesting actor this factory deploys.
	VestingCodeID uint64
	// Deployments awaiting a reply from the host.
	PendingInits cid.Cid // Map, HAMT[replyID]PendingInit
	NextReplyID  uint64
	// Latest vesting instance per receiver key.
	VestingContracts cid.Cid // Map, HAMT[receiver]addr.Address
}

// PendingInit remembers which receiver a deployment is for until its reply arrives.
type PendingInit struct {
	Receiver string
	Label    string
}

func ConstructState(store adt.Store, vestingCodeID uint64) (*State, error) {
	emptyMap, err := adt.StoreEmptyMap(store, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty map: %w", err)
	}
	return &State{
		VestingCodeID:    vestingCodeID,
		PendingInits:     emptyMap,
		NextReplyID:      0,
		VestingContracts: emptyMap,
	}, nil
}

// Records a pending deployment under a fresh reply id, which is returned.
func (st *State) AddPendingInit(store adt.Store, pending *PendingInit) (uint64, error) {
	pendingInits, err := adt.AsMap(store, st.PendingInits, adt.DefaultHamtBitwidth)
	if err != nil {
		return 0, xerrors.Errorf("failed to load pending inits: %w", err)
	}

	id := st.NextReplyID
	if err := pendingInits.Put(adt.UIntKey(id), pending); err != nil {
		return 0, xerrors.Errorf("failed to put pending init %d: %w", id, err)
	}
	if st.PendingInits, err = pendingInits.Root(); err != nil {
		return 0, xerrors.Errorf("failed to flush pending inits: %w", err)
	}
	st.NextReplyID++
	return id, nil
}

// Removes and returns the pending deployment for a reply id.
func (st *State) TakePendingInit(store adt.Store, id uint64) (*PendingInit, bool, error) {
	pendingInits, err := adt.AsMap(store, st.PendingInits, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load pending inits: %w", err)
	}

	var pending PendingInit
	found, err := pendingInits.Get(adt.UIntKey(id), &pending)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to get pending init %d: %w", id, err)
	}
	if !found {
		return nil, false, nil
	}
	if err := pendingInits.Delete(adt.UIntKey(id)); err != nil {
		return nil, false, xerrors.Errorf("failed to delete pending init %d: %w", id, err)
	}
	if st.PendingInits, err = pendingInits.Root(); err != nil {
		return nil, false, xerrors.Errorf("failed to flush pending inits: %w", err)
	}
	return &pending, true, nil
}

// Records the vesting instance for a receiver, replacing any earlier one.
func (st *State) PutVestingContract(store adt.Store, receiver string, address addr.Address) error {
	contracts, err := adt.AsMap(store, st.VestingContracts, adt.DefaultHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load vesting contracts: %w", err)
	}
	if err := contracts.Put(adt.StringKey(receiver), &address); err != nil {
		return xerrors.Errorf("failed to put vesting contract for %s: %w", receiver, err)
	}
	if st.VestingContracts, err = contracts.Root(); err != nil {
		return xerrors.Errorf("failed to flush vesting contracts: %w", err)
	}
	return nil
}

func (st *State) GetVestingContract(store adt.Store, receiver string) (addr.Address, bool, error) {
	contracts, err := adt.AsMap(store, st.VestingContracts, adt.DefaultHamtBitwidth)
	if err != nil {
		return addr.Undef, false, xerrors.Errorf("failed to load vesting contracts: %w", err)
	}
	var out addr.Address
	found, err := contracts.Get(adt.StringKey(receiver), &out)
	if err != nil {
		return addr.Undef, false, xerrors.Errorf("failed to get vesting contract for %s: %w", receiver, err)
	}
	return out, found, nil
}
