package adt_test

import (
	"context"
	"math"
	"sort"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlabs/vesting-actors/actors/types"
	"github.com/vestlabs/vesting-actors/actors/util/adt"
	"github.com/vestlabs/vesting-actors/support/mock"
)

func TestMapPutGetDelete(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)
	m, err := adt.MakeEmptyMap(store, adt.DefaultHamtBitwidth)
	require.NoError(t, err)

	atom := types.NewCoin("uatom", 10)
	require.NoError(t, m.Put(adt.StringKey("alice"), &atom))

	var out types.Coin
	found, err := m.Get(adt.StringKey("alice"), &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, atom, out)

	found, err = m.Has(adt.StringKey("bob"))
	require.NoError(t, err)
	assert.False(t, found)

	require.Error(t, m.Delete(adt.StringKey("bob")))
	deleted, err := m.TryDelete(adt.StringKey("alice"))
	require.NoError(t, err)
	assert.True(t, deleted)

	found, err = m.Has(adt.StringKey("alice"))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMapReloadAndCollectKeys(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)
	m, err := adt.MakeEmptyMap(store, adt.DefaultHamtBitwidth)
	require.NoError(t, err)

	for i := uint64(0); i < 40; i++ {
		c := types.NewCoin("uosmo", int64(i+1))
		require.NoError(t, m.Put(adt.UIntKey(i), &c))
	}
	root, err := m.Root()
	require.NoError(t, err)

	reloaded, err := adt.AsMap(store, root, adt.DefaultHamtBitwidth)
	require.NoError(t, err)

	keys, err := reloaded.CollectKeys()
	require.NoError(t, err)
	require.Len(t, keys, 40)

	var ids []uint64
	for _, k := range keys {
		id, err := adt.ParseUIntKey(k)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	assert.Equal(t, uint64(0), ids[0])
	assert.Equal(t, uint64(39), ids[39])
}

func TestUIntKeyRoundTrip(t *testing.T) {
	for _, i := range []uint64{0, 127, 128, 1 << 32, math.MaxUint64} {
		id, err := adt.ParseUIntKey(adt.UIntKey(i).Key())
		require.NoError(t, err)
		assert.Equal(t, i, id)
	}
	assert.Len(t, adt.UIntKey(math.MaxUint64).Key(), 10)
}

func TestStoreEmptyMapIsStable(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)

	a, err := adt.StoreEmptyMap(store, adt.DefaultHamtBitwidth)
	require.NoError(t, err)
	b, err := adt.StoreEmptyMap(store, adt.DefaultHamtBitwidth)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
