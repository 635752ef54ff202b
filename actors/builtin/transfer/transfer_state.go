package transfer

import (
	addr "github.com/filecoin-project/go-address"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

// State of the cross-chain transfer actor.
// Escrowed funds are the actor's own balance; every accepted transfer is logged as an outbound packet.
type State struct {
	Packets      cid.Cid // AMT[sequence]Packet
	NextSequence uint64
}

// Packet is an outbound cross-chain transfer awaiting relay.
type Packet struct {
	Sequence         uint64
	ChannelID        string
	Sender           addr.Address
	Receiver         string
	Coin             types.Coin
	TimeoutTimestamp types.Timestamp
}

func ConstructState(store adt.Store) (*State, error) {
	emptyArray, err := adt.StoreEmptyArray(store, adt.DefaultAmtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty array: %w", err)
	}
	return &State{
		Packets:      emptyArray,
		NextSequence: 0,
	}, nil
}

// Appends a packet at the next sequence number, which is assigned and returned.
func (st *State) AppendPacket(store adt.Store, packet *Packet) (uint64, error) {
	packets, err := adt.AsArray(store, st.Packets, adt.DefaultAmtBitwidth)
	if err != nil {
		return 0, xerrors.Errorf("failed to load packets: %w", err)
	}

	packet.Sequence = st.NextSequence
	if err := packets.Set(packet.Sequence, packet); err != nil {
		return 0, xerrors.Errorf("failed to store packet %d: %w", packet.Sequence, err)
	}
	if st.Packets, err = packets.Root(); err != nil {
		return 0, xerrors.Errorf("failed to flush packets: %w", err)
	}
	st.NextSequence++
	return packet.Sequence, nil
}

func (st *State) GetPacket(store adt.Store, sequence uint64) (*Packet, bool, error) {
	packets, err := adt.AsArray(store, st.Packets, adt.DefaultAmtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load packets: %w", err)
	}
	var out Packet
	found, err := packets.Get(sequence, &out)
	if err != nil || !found {
		return nil, found, err
	}
	return &out, true, nil
}

// ForEachPacket iterates packets in sequence order.
func (st *State) ForEachPacket(store adt.Store, fn func(*Packet) error) error {
	packets, err := adt.AsArray(store, st.Packets, adt.DefaultAmtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load packets: %w", err)
	}
	var out Packet
	return packets.ForEach(&out, func(_ int64) error {
		p := out
		return fn(&p)
	})
}
