package localstate

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T, path string) *SQLite {
	t.Helper()
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorageContract(t *testing.T) {
	backends := map[string]func(t *testing.T) Storage{
		"memory": func(t *testing.T) Storage { return NewMemory() },
		"sqlite": func(t *testing.T) Storage {
			return openSQLite(t, filepath.Join(t.TempDir(), "state.db"))
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			s := open(t)

			_, ok, err := s.Get("cart")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("cart", []byte(`[1]`)))
			require.NoError(t, s.Set("cart", []byte(`[2]`)))

			v, ok, err := s.Get("cart")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, []byte(`[2]`), v)

			require.NoError(t, s.Delete("cart"))
			require.NoError(t, s.Delete("cart"))
			_, ok, err = s.Get("cart")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	in := []byte("abc")
	require.NoError(t, m.Set("k", in))
	in[0] = 'x'

	out, _, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	s1, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s1.Set("cart", []byte("persisted")))
	require.NoError(t, s1.Close())

	s2 := openSQLite(t, path)
	v, ok, err := s2.Get("cart")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", string(v))
}

func TestSQLiteClosed(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, _, err = s.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Set("k", nil), ErrClosed)
}
