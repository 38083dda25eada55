package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainaplanass/exam/config"
	"github.com/ainaplanass/exam/storage"
)

// exerciseStore checks the behavior every backend shares.
func exerciseStore(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx, "john@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Save(ctx, "john@example.com", "John Doe"))
	got, err := s.Load(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", got)

	require.NoError(t, s.Save(ctx, "john@example.com", "John Smith"))
	got, err = s.Load(ctx, "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", got)
}

func TestMemory(t *testing.T) {
	m := storage.NewMemory()
	exerciseStore(t, m)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, "Memoria", m.Name())
}

func TestSQLite(t *testing.T) {
	s, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
	assert.Equal(t, "SQLite", s.Name())
}

func TestSQLite_InMemory(t *testing.T) {
	s, err := storage.OpenSQLite("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := storage.OpenRedis(context.Background(), config.StorageConfig{Address: mr.Addr(), Prefix: "users:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
	assert.Equal(t, "Redis", s.Name())

	v, err := mr.Get("users:john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "John Smith", v)
}

func TestRedis_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = storage.OpenRedis(context.Background(), config.StorageConfig{Address: addr})
	require.Error(t, err)
}

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		cfg  config.StorageConfig
		name string
	}{
		{config.StorageConfig{Driver: "memory"}, "Memoria"},
		{config.StorageConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "open.db")}, "SQLite"},
		{config.StorageConfig{Driver: "redis", Address: mr.Addr()}, "Redis"},
	}
	for _, tt := range tests {
		t.Run(tt.cfg.Driver, func(t *testing.T) {
			s, err := storage.Open(context.Background(), tt.cfg, nil)
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			assert.Equal(t, tt.name, s.Name())
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := storage.Open(context.Background(), config.StorageConfig{Driver: "mongodb"}, nil)
	require.ErrorIs(t, err, storage.ErrUnknownDriver)
}

func TestDrivers(t *testing.T) {
	assert.Equal(t, []string{"memory", "postgres", "redis", "sqlite"}, storage.Drivers())
}
