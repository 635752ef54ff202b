package vesting_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/require"
	"github.com/xorcare/golden"

	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/types"
	tutil "github.com/vestlabs/vesting-actors/support/testing"
)

// Claims every two hours from a day-long vesting, past its end.
func TestClaimCurve(t *testing.T) {
	claimer := tutil.NewIDAddr(t, 101)
	st := vesting.ConstructState(denom, vesting.NewNativeReceiver(claimer), claimer, 0, vesting.StrategyDay)
	balance := big.NewInt(1_000_003)

	b := &bytes.Buffer{}
	b.WriteString("elapsed,claimed,remaining\n")
	for elapsed := uint64(0); elapsed <= 2*86400; elapsed += 7200 {
		now := types.Timestamp(elapsed)
		amount, err := st.ReleasableAmount(balance, now)
		require.NoError(t, err)

		balance = big.Sub(balance, amount)
		st.Start = now
		fmt.Fprintf(b, "%d,%s,%s\n", elapsed, amount, balance)
	}

	golden.Assert(t, b.Bytes())
}
