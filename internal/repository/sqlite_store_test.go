package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fjod/chess_academy/internal/config"
	"github.com/fjod/chess_academy/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLite(t *testing.T) *SQLStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, store.RunMigrations())
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	runStoreContract(t, setupSQLite(t))
}

func TestSQLiteStore_MigrationsAreIdempotent(t *testing.T) {
	store := setupSQLite(t)

	assert.NoError(t, store.RunMigrations())
}

func TestSQLiteStore_SetManyRollsBackOnCancel(t *testing.T) {
	store := setupSQLite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.SetMany(ctx, []Entry{{Key: "library:u1", Value: []byte(`[]`)}})
	require.Error(t, err)

	_, err = store.Get(context.Background(), "library:u1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestOpen_SQLiteDriver(t *testing.T) {
	cfg := config.Storage{
		Driver:          "sqlite",
		SQLitePath:      filepath.Join(t.TempDir(), "nested", "store.db"),
		ConnectAttempts: 1,
	}

	store, err := Open(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "user:u1", []byte(`{"id":"u1"}`)))
}

func TestOpen_MemoryDriver(t *testing.T) {
	store, err := Open(context.Background(), config.Storage{Driver: "memory"}, logger.Discard())

	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}
