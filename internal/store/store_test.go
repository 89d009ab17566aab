package store

import (
	"testing"

	"github.com/mmcdole/anispin/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStores(t *testing.T, quota int64) map[string]*Store {
	t.Helper()

	mem, err := Open("", quota)
	require.NoError(t, err)

	disk, err := Open(t.TempDir(), quota)
	require.NoError(t, err)
	t.Cleanup(func() { disk.Close() })

	return map[string]*Store{"memory": mem, "bolt": disk}
}

func TestStore_SetGet(t *testing.T) {
	for name, s := range openStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("a", []byte("one")))

			got, ok := s.Get("a")
			require.True(t, ok)
			assert.Equal(t, "one", string(got))

			_, ok = s.Get("missing")
			assert.False(t, ok)
		})
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	for name, s := range openStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("a", []byte("one")))

			got, _ := s.Get("a")
			got[0] = 'X'

			again, _ := s.Get("a")
			assert.Equal(t, "one", string(again))
		})
	}
}

func TestStore_Quota(t *testing.T) {
	for name, s := range openStores(t, 10) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("k1", []byte("12345"))) // 7 bytes

			err := s.Set("k2", []byte("12345"))
			assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

			_, ok := s.Get("k2")
			assert.False(t, ok, "rejected write must not be visible")

			// Replacing a value only counts the difference
			require.NoError(t, s.Set("k1", []byte("12345678")))
			used, quota := s.Usage()
			assert.Equal(t, int64(10), used)
			assert.Equal(t, int64(10), quota)
		})
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	for name, s := range openStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("cache_listas_alice", []byte("1")))
			require.NoError(t, s.Set("cache_listas_bob", []byte("2")))
			require.NoError(t, s.Set("cache_busca_global", []byte("3")))

			s.DeletePrefix("cache_listas_")

			_, ok := s.Get("cache_listas_alice")
			assert.False(t, ok)
			_, ok = s.Get("cache_listas_bob")
			assert.False(t, ok)
			_, ok = s.Get("cache_busca_global")
			assert.True(t, ok)

			used, _ := s.Usage()
			assert.Equal(t, int64(len("cache_busca_global")+1), used)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range openStores(t, 0) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set("a", []byte("one")))
			s.Delete("a")

			_, ok := s.Get("a")
			assert.False(t, ok)
			used, _ := s.Usage()
			assert.Zero(t, used)
		})
	}
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, 0)
	require.NoError(t, err)
	require.NoError(t, s.Set("anime_history", []byte(`[1]`)))
	require.NoError(t, s.Close())

	s, err = Open(dir, 0)
	require.NoError(t, err)
	defer s.Close()

	got, ok := s.Get("anime_history")
	require.True(t, ok)
	assert.Equal(t, "[1]", string(got))

	used, _ := s.Usage()
	assert.Equal(t, int64(len("anime_history")+3), used)
}
