package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		v, err := store.Get(ctx, "user:missing")
		assert.ErrorIs(t, err, ErrKeyNotFound)
		assert.Nil(t, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "cart:u1", []byte(`[]`)))
		require.NoError(t, store.Set(ctx, "cart:u1", []byte(`[{"id":4}]`)))

		v, err := store.Get(ctx, "cart:u1")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":4}]`, string(v))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "tmp:1", []byte(`{}`)))
		require.NoError(t, store.Delete(ctx, "tmp:1"))
		require.NoError(t, store.Delete(ctx, "tmp:1"))

		_, err := store.Get(ctx, "tmp:1")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("set many and prefix scan", func(t *testing.T) {
		require.NoError(t, store.SetMany(ctx, []Entry{
			{Key: "purchase:u2:b", Value: []byte(`{"n":2}`)},
			{Key: "purchase:u2:a", Value: []byte(`{"n":1}`)},
			{Key: "purchase:u20:a", Value: []byte(`{"n":3}`)},
			{Key: "library:u2", Value: []byte(`[]`)},
		}))

		entries, err := store.GetByPrefix(ctx, "purchase:u2:")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "purchase:u2:a", entries[0].Key)
		assert.Equal(t, "purchase:u2:b", entries[1].Key)
		assert.JSONEq(t, `{"n":1}`, string(entries[0].Value))
	})

	t.Run("prefix with pattern characters", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "odd:a.b%_", []byte(`1`)))
		require.NoError(t, store.Set(ctx, "odd:aXb", []byte(`2`)))

		entries, err := store.GetByPrefix(ctx, "odd:a.b")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "odd:a.b%_", entries[0].Key)
	})

	t.Run("mget keeps key order and skips missing", func(t *testing.T) {
		require.NoError(t, store.SetMany(ctx, []Entry{
			{Key: "booking:1", Value: []byte(`{"id":"1"}`)},
			{Key: "booking:2", Value: []byte(`{"id":"2"}`)},
		}))

		entries, err := store.MGet(ctx, "booking:2", "booking:missing", "booking:1")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "booking:2", entries[0].Key)
		assert.Equal(t, "booking:1", entries[1].Key)

		none, err := store.MGet(ctx)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("concurrent writes", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, store.Set(ctx, fmt.Sprintf("progress:u3:%02d", i), []byte(`{}`)))
			}(i)
		}
		wg.Wait()

		entries, err := store.GetByPrefix(ctx, "progress:u3:")
		require.NoError(t, err)
		assert.Len(t, entries, 20)
	})
}
