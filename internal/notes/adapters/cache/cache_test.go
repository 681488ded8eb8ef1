package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteshelf/internal/notes/adapters/cache"
	"noteshelf/internal/notes/config"
	cachePorts "noteshelf/internal/notes/ports/cache"
)

func mockRedisServer(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Host:            host,
		Port:            port,
		ConnectTimeout:  5 * time.Second,
		ReadTimeout:     3 * time.Second,
		WriteTimeout:    3 * time.Second,
		PoolSize:        10,
		MinIdle:         2,
		IdleTimeout:     5 * time.Minute,
		MaxConnLifetime: time.Hour,
		DefaultTTL:      15 * time.Minute,
	}

	return s, cfg
}

func TestNewRedisCache_Success(t *testing.T) {
	_, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	require.NoError(t, err)
	require.NotNil(t, redisCache)

	_, ok := redisCache.(cachePorts.Cache)
	assert.True(t, ok, "should implement Cache interface")

	assert.NoError(t, redisCache.Close(), "should close without errors")
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RedisConfig{
		Host:           "nonexistent.host",
		Port:           12345,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg)

	assert.Error(t, err, "Expected error when Redis connection fails")
	assert.Nil(t, redisCache, "Cache should be nil when connection fails")
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_GetSetDelete(t *testing.T) {
	s, cfg := mockRedisServer(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, redisCache.Close())
	}()

	t.Run("Get возвращает пустую строку для отсутствующего ключа", func(t *testing.T) {
		value, err := redisCache.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Set и Get возвращают сохраненное значение", func(t *testing.T) {
		err := redisCache.Set(ctx, "note:7:3", `{"ID":3}`, time.Minute)
		require.NoError(t, err)

		value, err := redisCache.Get(ctx, "note:7:3")
		require.NoError(t, err)
		assert.Equal(t, `{"ID":3}`, value)

		ttl := s.TTL("note:7:3")
		assert.Greater(t, ttl.Seconds(), 0.0, "Key should have TTL set")
	})

	t.Run("Set с нулевым TTL использует TTL по умолчанию", func(t *testing.T) {
		err := redisCache.Set(ctx, "default_ttl_key", "value", 0)
		require.NoError(t, err)

		ttl := s.TTL("default_ttl_key")
		assert.Greater(t, ttl.Seconds(), cfg.DefaultTTL.Seconds()-5.0)
		assert.Less(t, ttl.Seconds(), cfg.DefaultTTL.Seconds()+5.0)
	})

	t.Run("Delete удаляет ключ", func(t *testing.T) {
		err := redisCache.Set(ctx, "to_delete", "value", time.Minute)
		require.NoError(t, err)

		require.NoError(t, redisCache.Delete(ctx, "to_delete"))

		value, err := redisCache.Get(ctx, "to_delete")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("Delete отсутствующего ключа не возвращает ошибку", func(t *testing.T) {
		assert.NoError(t, redisCache.Delete(ctx, "never_existed"))
	})
}
