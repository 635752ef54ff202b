package main

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/filecoin-project/go-bitfield"
	rlepluslazy "github.com/filecoin-project/go-bitfield/rle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/builtin/vesting"
	"github.com/vestlabs/vesting-actors/actors/builtin/vestingfactory"
	tutil "github.com/vestlabs/vesting-actors/support/testing"
)

func run(t *testing.T, args ...string) string {
	var out bytes.Buffer
	require.NoError(t, newApp(&out).Run(append([]string{"decode"}, args...)))
	return out.String()
}

func TestDecodeBitfield(t *testing.T) {
	bf := bitfield.NewFromSet([]uint64{100, 101, 104})
	iter, err := bf.RunIterator()
	require.NoError(t, err)
	b, err := rlepluslazy.EncodeRuns(iter, nil)
	require.NoError(t, err)

	assert.Equal(t, "100\n101\n104\n", run(t, "bf", hex.EncodeToString(b)))
}

func TestDecodeVesting(t *testing.T) {
	claimer := tutil.NewIDAddr(t, 101)
	st := vesting.ConstructState("uvest", vesting.NewNativeReceiver(claimer), claimer, 1000, vesting.StrategyHour)
	var buf bytes.Buffer
	require.NoError(t, st.MarshalCBOR(&buf))
	encoded := hex.EncodeToString(buf.Bytes())

	out := run(t, "vesting", encoded)
	assert.Contains(t, out, "denom:    uvest\n")
	assert.Contains(t, out, "start:    1000\n")
	assert.Contains(t, out, "end:      4600\n")
	assert.NotContains(t, out, "claimable")

	out = run(t, "vesting", "--balance", "3600", "--now", "1900", encoded)
	assert.Contains(t, out, "claimable: 900uvest\n")

	var empty bytes.Buffer
	assert.Error(t, newApp(&empty).Run([]string{"decode", "vesting", "--balance", "3600", "--now", "999", encoded}))
}

func TestDecodeFactory(t *testing.T) {
	root := tutil.NewCidForTestGetter("pending")()
	st := vestingfactory.State{VestingCodeID: 7, PendingInits: root, NextReplyID: 3, VestingContracts: root}
	var buf bytes.Buffer
	require.NoError(t, st.MarshalCBOR(&buf))

	out := run(t, "factory", hex.EncodeToString(buf.Bytes()))
	assert.Contains(t, out, "vesting code id:   7\n")
	assert.Contains(t, out, "next reply id:     3\n")
	assert.Contains(t, out, "pending inits:     "+root.String()+"\n")
}

func TestDecodeRejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, newApp(&out).Run([]string{"decode", "int"}))
	assert.Error(t, newApp(&out).Run([]string{"decode", "vesting", "zz"}))
}
