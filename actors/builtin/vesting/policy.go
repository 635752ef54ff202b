package vesting

import (
	"fmt"

	"github.com/vestlabs/vesting-actors/actors/builtin"
)

// Strategy selects the length of the vesting window.
type Strategy uint64

const (
	StrategyHour Strategy = iota
	StrategyDay
	StrategyWeek
	StrategyMonth
)

// Seconds after which an outbound cross-chain transfer of claimed funds times out.
const CrossChainTimeoutSeconds = builtin.SecondsInHour

// Name of the attribute carrying the amount released by a claim.
const AttributeAmountSent = "amount_sent"

var strategySeconds = map[Strategy]uint64{
	StrategyHour:  builtin.SecondsInHour,
	StrategyDay:   builtin.SecondsInDay,
	StrategyWeek:  builtin.SecondsInWeek,
	StrategyMonth: builtin.SecondsInMonth,
}

func (s Strategy) Valid() bool {
	_, ok := strategySeconds[s]
	return ok
}

// Seconds returns the length of the vesting window, or zero for an unknown strategy.
func (s Strategy) Seconds() uint64 {
	return strategySeconds[s]
}

func (s Strategy) String() string {
	switch s {
	case StrategyHour:
		return "hour"
	case StrategyDay:
		return "day"
	case StrategyWeek:
		return "week"
	case StrategyMonth:
		return "month"
	}
	return fmt.Sprintf("strategy(%d)", uint64(s))
}
