package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/cmsplatform/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisDedupStore(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := NewRedisDedupStore(client, "")
	ctx := context.Background()

	first, err := store.MarkOnce(ctx, "click:abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.MarkOnce(ctx, "click:abc", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)

	assert.True(t, mr.Exists("cms:dedup:click:abc"))

	seen, err := store.Seen(ctx, "click:abc")
	require.NoError(t, err)
	assert.True(t, seen)

	mr.FastForward(2 * time.Minute)

	seen, err = store.Seen(ctx, "click:abc")
	require.NoError(t, err)
	assert.False(t, seen)

	afterExpiry, err := store.MarkOnce(ctx, "click:abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, afterExpiry)

	require.NoError(t, store.Forget(ctx, "click:abc"))
	assert.False(t, mr.Exists("cms:dedup:click:abc"))
	afterForget, err := store.MarkOnce(ctx, "click:abc", time.Minute)
	require.NoError(t, err)
	assert.True(t, afterForget)
}

func TestRedisDedupStore_ConnectionError(t *testing.T) {
	mr, client := newMiniRedis(t)
	store := NewRedisDedupStore(client, "test:")
	mr.Close()

	_, err := store.MarkOnce(context.Background(), "k", time.Minute)
	assert.Error(t, err)
	_, err = store.Seen(context.Background(), "k")
	assert.Error(t, err)
	assert.Error(t, store.Forget(context.Background(), "k"))
}

func TestInMemoryDedupStore(t *testing.T) {
	store := NewInMemoryDedupStore()
	defer store.Close()
	ctx := context.Background()

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	first, err := store.MarkOnce(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := store.MarkOnce(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)

	now = now.Add(time.Minute)

	seen, err := store.Seen(ctx, "k")
	require.NoError(t, err)
	assert.False(t, seen, "entries expire at exactly ttl")

	store.cleanup()
	assert.Equal(t, 0, store.Size())

	_, err = store.MarkOnce(ctx, "k", time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Forget(ctx, "k"))
	fresh, err := store.MarkOnce(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh, "forgotten keys count as new")

	t.Run("close is idempotent", func(t *testing.T) {
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
	})
}

func TestInMemoryDedupStore_Concurrent(t *testing.T) {
	store := NewInMemoryDedupStore()
	defer store.Close()

	results := make(chan bool, 50)
	for range 50 {
		go func() {
			ok, _ := store.MarkOnce(context.Background(), "same", time.Minute)
			results <- ok
		}()
	}

	winners := 0
	for range 50 {
		if <-results {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestRedisSettingsCache(t *testing.T) {
	mr, client := newMiniRedis(t)
	c := NewRedisSettingsCache(client, nil)
	ctx := context.Background()
	tenantID := uuid.New()

	got, err := c.Get(ctx, tenantID, settings.SectionGeneral)
	require.NoError(t, err)
	assert.Nil(t, got, "miss")

	require.NoError(t, c.Set(ctx, tenantID, settings.SectionGeneral, settings.Values{"siteTitle": "Blog"}, 0))
	require.NoError(t, c.Set(ctx, tenantID, settings.SectionReading, settings.Values{"postsPerPage": 10}, time.Minute))

	got, err = c.Get(ctx, tenantID, settings.SectionGeneral)
	require.NoError(t, err)
	assert.Equal(t, "Blog", got["siteTitle"])

	ttl := mr.TTL("settings:" + tenantID.String() + ":general")
	assert.Equal(t, settings.DefaultCacheTTL, ttl)

	t.Run("invalidate one section", func(t *testing.T) {
		require.NoError(t, c.Invalidate(ctx, tenantID, settings.SectionGeneral))
		got, err := c.Get(ctx, tenantID, settings.SectionGeneral)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate tenant leaves other tenants", func(t *testing.T) {
		other := uuid.New()
		require.NoError(t, c.Set(ctx, other, settings.SectionReading, settings.Values{"postsPerPage": 5}, 0))
		for i := range 150 {
			mr.Set("settings:"+tenantID.String()+":extra"+strconv.Itoa(i), "{}")
		}

		require.NoError(t, c.InvalidateTenant(ctx, tenantID))

		got, err := c.Get(ctx, tenantID, settings.SectionReading)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = c.Get(ctx, other, settings.SectionReading)
		require.NoError(t, err)
		assert.EqualValues(t, 5, got["postsPerPage"])
	})

	t.Run("corrupted entries are dropped", func(t *testing.T) {
		key := "settings:" + tenantID.String() + ":media"
		mr.Set(key, "not json")

		got, err := c.Get(ctx, tenantID, settings.SectionMedia)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.False(t, mr.Exists(key))
	})
}

func TestInMemorySettingsCache(t *testing.T) {
	c := NewInMemorySettingsCache()
	defer c.Close()
	ctx := context.Background()
	tenantID := uuid.New()

	values := settings.Values{"siteTitle": "Blog"}
	require.NoError(t, c.Set(ctx, tenantID, settings.SectionGeneral, values, 0))
	values["siteTitle"] = "mutated"

	got, err := c.Get(ctx, tenantID, settings.SectionGeneral)
	require.NoError(t, err)
	assert.Equal(t, "Blog", got["siteTitle"])

	got["siteTitle"] = "mutated again"
	got, _ = c.Get(ctx, tenantID, settings.SectionGeneral)
	assert.Equal(t, "Blog", got["siteTitle"])

	require.NoError(t, c.Set(ctx, tenantID, settings.SectionReading, settings.Values{"x": 1}, time.Nanosecond))
	time.Sleep(time.Millisecond)
	got, err = c.Get(ctx, tenantID, settings.SectionReading)
	require.NoError(t, err)
	assert.Nil(t, got, "expired")

	require.NoError(t, c.InvalidateTenant(ctx, tenantID))
	got, _ = c.Get(ctx, tenantID, settings.SectionGeneral)
	assert.Nil(t, got)

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(2), misses)
}

func TestFactory_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("redis disabled uses memory", func(t *testing.T) {
		stores, err := NewFactory(config.RedisConfig{Enabled: false}).Create(ctx)
		require.NoError(t, err)
		defer stores.Close()
		assert.Nil(t, stores.Client)
		assert.IsType(t, &InMemorySettingsCache{}, stores.Settings)
		assert.IsType(t, &InMemoryDedupStore{}, stores.Dedup)
	})

	t.Run("redis reachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)

		stores, err := NewFactory(config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port}).Create(ctx)
		require.NoError(t, err)
		defer stores.Close()
		assert.NotNil(t, stores.Client)
		assert.IsType(t, &RedisSettingsCache{}, stores.Settings)
		assert.IsType(t, &RedisDedupStore{}, stores.Dedup)
	})

	t.Run("redis unreachable falls back with a warning", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := NewFactory(config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}, WithLogger(zap.New(core)))

		stores, err := f.Create(ctx)
		require.NoError(t, err)
		defer stores.Close()
		assert.IsType(t, &InMemoryDedupStore{}, stores.Dedup)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("redis unreachable without fallback fails", func(t *testing.T) {
		f := NewFactory(config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}, WithInMemoryFallback(false))
		_, err := f.Create(ctx)
		assert.Error(t, err)
	})
}
