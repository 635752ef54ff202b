package transfer

import (
	"github.com/vestlabs/vesting-actors/actors/builtin"
	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
)

type StateSummary struct {
	PacketCount uint64
	Escrowed    types.Coins
}

// Checks internal invariants of transfer state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{}

	expected := uint64(0)
	err := st.ForEachPacket(store, func(p *Packet) error {
		acc.Require(p.Sequence == expected, "packet sequence %d out of order, expected %d", p.Sequence, expected)
		acc.RequireNoError(p.Coin.Validate(), "packet %d has invalid coin", p.Sequence)
		acc.Require(p.ChannelID != "", "packet %d has empty channel", p.Sequence)
		summary.Escrowed = summary.Escrowed.Add(p.Coin)
		expected++
		return nil
	})
	acc.RequireNoError(err, "error iterating packets")

	summary.PacketCount = expected
	acc.Require(st.NextSequence == expected, "next sequence %d does not match packet count %d", st.NextSequence, expected)
	return summary, acc
}
