package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shortlink-qr/internal/config"
)

func newTestCache(t *testing.T) (*QRCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	pool := NewRedisPool(config.RedisConfig{Addr: mr.Addr()}, zap.NewNop())
	t.Cleanup(func() { _ = pool.Close() })
	return NewQRCache(pool, zap.NewNop()), mr
}

func TestQRCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	data, ok, err := cache.Get(ctx, "qr:https://flavorqueste.com/x")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	png := []byte{0x89, 'P', 'N', 'G', 0x00, 0xff}
	require.NoError(t, cache.SetWithTTL(ctx, "qr:https://flavorqueste.com/x", png, 24*time.Hour))
	assert.Equal(t, 24*time.Hour, mr.TTL("qr:https://flavorqueste.com/x"))

	data, ok, err = cache.Get(ctx, "qr:https://flavorqueste.com/x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, png, data)
}

func TestQRCache_Expires(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, cache.SetWithTTL(ctx, "qr:k", []byte("img"), time.Hour))
	mr.FastForward(time.Hour + time.Second)

	_, ok, err := cache.Get(ctx, "qr:k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQRCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)

	require.NoError(t, mr.Set("qr:bad", "%%% not base64 %%%"))

	_, ok, err := cache.Get(ctx, "qr:bad")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQRCache_Unreachable(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t)
	mr.Close()

	_, _, err := cache.Get(ctx, "qr:k")
	assert.Error(t, err)
	assert.Error(t, cache.SetWithTTL(ctx, "qr:k", []byte("x"), time.Hour))
}
