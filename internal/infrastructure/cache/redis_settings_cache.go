package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultScanBatchSize = 100

// RedisSettingsCache implements settings.Cache using Redis
type RedisSettingsCache struct {
	client redis.UniversalClient
	logger *zap.Logger
}

// NewRedisSettingsCache creates a cache on a shared client
func NewRedisSettingsCache(client redis.UniversalClient, logger *zap.Logger) *RedisSettingsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSettingsCache{client: client, logger: logger}
}

func settingsKey(tenantID uuid.UUID, section settings.Section) string {
	return fmt.Sprintf("settings:%s:%s", tenantID, section)
}

// Get returns the cached values or nil on a miss
func (c *RedisSettingsCache) Get(ctx context.Context, tenantID uuid.UUID, section settings.Section) (settings.Values, error) {
	key := settingsKey(tenantID, section)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings from cache: %w", err)
	}

	var values settings.Values
	if err := json.Unmarshal(data, &values); err != nil {
		c.logger.Warn("Dropping corrupted settings cache entry",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, nil
	}
	return values, nil
}

// Set stores values for ttl
func (c *RedisSettingsCache) Set(ctx context.Context, tenantID uuid.UUID, section settings.Section, values settings.Values, ttl time.Duration) error {
	if values == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = settings.DefaultCacheTTL
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := c.client.Set(ctx, settingsKey(tenantID, section), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set settings in cache: %w", err)
	}
	return nil
}

// Invalidate removes one section
func (c *RedisSettingsCache) Invalidate(ctx context.Context, tenantID uuid.UUID, section settings.Section) error {
	if err := c.client.Del(ctx, settingsKey(tenantID, section)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate settings: %w", err)
	}
	return nil
}

// InvalidateTenant removes every section of a tenant using SCAN rather than KEYS
func (c *RedisSettingsCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error {
	pattern := fmt.Sprintf("settings:%s:*", tenantID)
	var cursor uint64
	var deleted int64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, defaultScanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("failed to scan settings keys: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("failed to delete settings keys: %w", err)
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.logger.Debug("Invalidated tenant settings cache",
		zap.String("tenant_id", tenantID.String()),
		zap.Int64("deleted_count", deleted))
	return nil
}

// Close is a no-op; the client is shared
func (c *RedisSettingsCache) Close() error {
	return nil
}

var _ settings.Cache = (*RedisSettingsCache)(nil)
