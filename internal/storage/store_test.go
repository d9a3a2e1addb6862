package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brisa-edu/brisa-client/internal/config"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	file, err := NewFileStore(filepath.Join(dir, "nested", "session.json"))
	require.NoError(t, err)
	sql, err := NewSQLiteStore(filepath.Join(dir, "session.json"))
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   file,
		"sqlite": sql,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get(ctx, "brisa_auth_token")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, "brisa_auth_token", "abc"))
			require.NoError(t, s.Set(ctx, "brisa_auth_token", "def"))
			v, ok, err := s.Get(ctx, "brisa_auth_token")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "def", v)

			require.NoError(t, s.Remove(ctx, "brisa_auth_token"))
			require.NoError(t, s.Remove(ctx, "brisa_auth_token"))
			_, ok, err = s.Get(ctx, "brisa_auth_token")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStoreClosed(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Close())
			_, _, err := s.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, s.Set(ctx, "k", "v"), ErrClosed)
			assert.ErrorIs(t, s.Remove(ctx, "k"), ErrClosed)
		})
	}
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "brisa_user_data", `{"usuario":"ana"}`))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := second.Get(ctx, "brisa_user_data")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"usuario":"ana"}`, v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, _, err = s.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestOpenSelectsBackend(t *testing.T) {
	s, err := Open(&config.Config{Storage: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(&config.Config{Storage: "file", StoragePath: filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(&config.Config{Storage: "redis"})
	assert.Error(t, err)
}
