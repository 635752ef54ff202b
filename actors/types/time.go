package types

import "strconv"

// Timestamp is a block time in whole seconds since the unix epoch.
type Timestamp uint64

func (t Timestamp) Add(seconds uint64) Timestamp {
	return t + Timestamp(seconds)
}

func (t Timestamp) Seconds() uint64 {
	return uint64(t)
}

func (t Timestamp) String() string {
	return strconv.FormatUint(uint64(t), 10)
}
