package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, store.Set(ctx, "forever", []byte("v"), 0))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), got)

	now = now.Add(time.Minute)
	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.ErrorIs(t, store.Delete(ctx, "k"), ErrKeyNotFound)

	_, err = store.Get(ctx, "forever")
	require.NoError(t, err)
}

func TestMemoryStoreSweepsOnSet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, store.Set(ctx, "keep", []byte("3"), 0))
	require.Equal(t, 3, store.Len())

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Set(ctx, "c", []byte("4"), time.Minute))
	require.Equal(t, 2, store.Len())

	_, err := store.Get(ctx, "keep")
	require.NoError(t, err)
}

func TestMemoryStoreEvictsOldest(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStoreSize(2)

	require.NoError(t, store.Set(ctx, "a", []byte("1"), time.Hour))
	require.NoError(t, store.Set(ctx, "b", []byte("2"), time.Hour))
	require.NoError(t, store.Set(ctx, "c", []byte("3"), time.Hour))

	_, err := store.Get(ctx, "a")
	require.ErrorIs(t, err, ErrKeyNotFound)
	got, err := store.Get(ctx, "c")
	require.NoError(t, err)
	require.Equal(t, []byte("3"), got)
}
