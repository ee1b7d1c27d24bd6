package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGetExpire(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(0)
	defer mc.Close()

	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return clock }

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), time.Minute))

	v, ok, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	clock = clock.Add(2 * time.Minute)
	_, ok, err = mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCache_Delete(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(0)
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, mc.Delete(ctx, "k"))

	_, ok, err := mc.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNew(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		b, err := New(Settings{Backend: "none"})
		assert.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("memory", func(t *testing.T) {
		b, err := New(Settings{Backend: "memory"})
		require.NoError(t, err)
		assert.IsType(t, &MemoryCache{}, b)
		assert.NoError(t, b.Close())
	})

	t.Run("redis without url", func(t *testing.T) {
		_, err := New(Settings{Backend: "redis"})
		assert.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New(Settings{Backend: "memcached"})
		assert.Error(t, err)
	})
}
