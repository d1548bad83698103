package cache

import (
	"context"
	"fmt"

	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Stores bundles the cache-backed components the application needs
type Stores struct {
	// Client is nil when running without Redis
	Client   *redis.Client
	Settings settings.Cache
	Dedup    shared.DedupStore
}

// Close releases the stores and the Redis client
func (s *Stores) Close() error {
	_ = s.Settings.Close()
	_ = s.Dedup.Close()
	if s.Client != nil {
		return s.Client.Close()
	}
	return nil
}

// Factory creates cache stores based on configuration
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory stores when Redis is unavailable.
// Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns Redis stores when Redis is enabled and reachable, in-memory
// stores otherwise (unless the fallback is disabled)
func (f *Factory) Create(ctx context.Context) (*Stores, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory cache stores")
		return f.inMemory(), nil
	}

	client, err := NewRedisClient(ctx, f.redisConfig)
	if err != nil {
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("redis required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory cache stores. "+
			"Click de-duplication and token revocation are not shared between instances.",
			zap.Error(err))
		return f.inMemory(), nil
	}

	f.logger.Info("Using Redis cache stores", zap.String("addr", f.redisConfig.Addr()))
	return FromClient(client, f.logger), nil
}

// FromClient builds Redis stores on an existing client
func FromClient(client *redis.Client, logger *zap.Logger) *Stores {
	return &Stores{
		Client:   client,
		Settings: NewRedisSettingsCache(client, logger.Named("settings_cache")),
		Dedup:    NewRedisDedupStore(client, ""),
	}
}

func (f *Factory) inMemory() *Stores {
	return &Stores{
		Settings: NewInMemorySettingsCache(),
		Dedup:    NewInMemoryDedupStore(),
	}
}
