package adt_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
	"github.com/vestlabs/vesting-actors/support/mock"
)

func TestArrayNotFound(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)
	arr, err := adt.MakeEmptyArray(store, adt.DefaultAmtBitwidth)
	require.NoError(t, err)

	found, err := arr.Get(7, nil)
	require.NoError(t, err)
	require.False(t, found)
}

func TestArrayAppendAndReload(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)
	arr, err := adt.MakeEmptyArray(store, adt.DefaultAmtBitwidth)
	require.NoError(t, err)

	for i := int64(1); i <= 20; i++ {
		c := types.NewCoin("uatom", i)
		require.NoError(t, arr.AppendContinuous(&c))
	}
	assert.Equal(t, uint64(20), arr.Length())

	root, err := arr.Root()
	require.NoError(t, err)

	reloaded, err := adt.AsArray(store, root, adt.DefaultAmtBitwidth)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), reloaded.Length())

	var out types.Coin
	found, err := reloaded.Get(4, &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, types.NewCoin("uatom", 5), out)

	var sum int64
	err = reloaded.ForEach(&out, func(i int64) error {
		sum += out.Amount.Int64()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(210), sum)
}
