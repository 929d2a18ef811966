package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGetMissingKey(t *testing.T) {
	l, err := OpenLocal(":memory:")
	require.NoError(t, err)
	defer l.Close()

	_, ok, err := l.Get("weekly_allowance:u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalSetGet(t *testing.T) {
	l, err := OpenLocal(":memory:")
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Set("weekly_allowance:u1", "42.50"))
	v, ok, err := l.Get("weekly_allowance:u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "42.50", v)
}

func TestLocalSetOverwrites(t *testing.T) {
	l, err := OpenLocal(":memory:")
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Set("k", "1"))
	require.NoError(t, l.Set("k", "2"))
	v, ok, err := l.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)
}

func TestLocalDelete(t *testing.T) {
	l, err := OpenLocal(":memory:")
	require.NoError(t, err)
	defer l.Close()

	require.NoError(t, l.Set("k", "1"))
	require.NoError(t, l.Delete("k"))
	_, ok, err := l.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")

	l, err := OpenLocal(path)
	require.NoError(t, err)
	require.NoError(t, l.Set("weekly_allowance:u1", "13.00"))
	require.NoError(t, l.Close())

	l2, err := OpenLocal(path)
	require.NoError(t, err)
	defer l2.Close()
	v, ok, err := l2.Get("weekly_allowance:u1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "13.00", v)
}
