package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*ImageCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewImageCache(client, time.Hour), mr
}

func TestImageCache_StoreAndLoad(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Load(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Store(ctx, "a@example.com", "data:image/jpeg;base64,AAAA"))

	got, ok, err := c.Load(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", got)
}

func TestImageCache_PerUserSlots(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Store(ctx, "a@example.com", "data:image/jpeg;base64,AAAA"))
	require.NoError(t, c.Store(ctx, "b@example.com", "data:image/jpeg;base64,BBBB"))

	gotA, ok, err := c.Load(ctx, "a@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	gotB, ok, err := c.Load(ctx, "b@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	assert.NotEqual(t, gotA, gotB)
}

func TestImageCache_Expiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Store(ctx, "a@example.com", "data:image/jpeg;base64,AAAA"))
	mr.FastForward(2 * time.Hour)

	_, ok, err := c.Load(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}
