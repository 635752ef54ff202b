package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vesting"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vesting", "a-vesting-3.json"), []byte(`{"method":3}`), 0644))

	first, err := digest(dir)
	require.NoError(t, err)
	again, err := digest(dir)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "vesting", "a-vesting-3.json"), []byte(`{"method":4}`), 0644))
	changed, err := digest(dir)
	require.NoError(t, err)
	assert.NotEqual(t, first, changed)
}
