package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"golang.org/x/xerrors"
)

// Receiver is the destination of vested funds: exactly one of Native or IBC is set.
type Receiver struct {
	Native *NativeReceiver
	IBC    *IBCReceiver
}

// NativeReceiver is an account on the local ledger. It is also the claimer.
type NativeReceiver struct {
	Address addr.Address
}

// IBCReceiver is an account on a remote chain, reached through a cross-chain transfer
// over ChannelID. Claimer is the local account allowed to trigger claims.
type IBCReceiver struct {
	Address   string
	ChannelID string
	Claimer   addr.Address
}

func NewNativeReceiver(address addr.Address) Receiver {
	return Receiver{Native: &NativeReceiver{Address: address}}
}

func NewIBCReceiver(address, channelID string, claimer addr.Address) Receiver {
	return Receiver{IBC: &IBCReceiver{Address: address, ChannelID: channelID, Claimer: claimer}}
}

func (r Receiver) Validate() error {
	switch {
	case r.Native != nil && r.IBC != nil:
		return xerrors.New("receiver must be either native or ibc, not both")
	case r.Native != nil:
		if r.Native.Address == addr.Undef {
			return xerrors.New("native receiver address is empty")
		}
	case r.IBC != nil:
		if r.IBC.Address == "" {
			return xerrors.New("ibc receiver address is empty")
		}
		if r.IBC.ChannelID == "" {
			return xerrors.New("ibc receiver channel id is empty")
		}
		if r.IBC.Claimer == addr.Undef {
			return xerrors.New("ibc receiver claimer is empty")
		}
	default:
		return xerrors.New("receiver is empty")
	}
	return nil
}

func (r Receiver) IsIBC() bool {
	return r.IBC != nil
}

// Key is the canonical receiver string: the remote address for IBC receivers,
// the address string for native ones.
func (r Receiver) Key() string {
	if r.IBC != nil {
		return r.IBC.Address
	}
	if r.Native != nil {
		return r.Native.Address.String()
	}
	return ""
}

// ClaimerAddress is the local address allowed to claim, before resolution.
func (r Receiver) ClaimerAddress() addr.Address {
	if r.IBC != nil {
		return r.IBC.Claimer
	}
	if r.Native != nil {
		return r.Native.Address
	}
	return addr.Undef
}

func (r Receiver) String() string {
	if r.IBC != nil {
		return "ibc:" + r.IBC.ChannelID + "/" + r.IBC.Address
	}
	return "native:" + r.Key()
}
