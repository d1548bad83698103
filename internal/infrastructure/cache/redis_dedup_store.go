package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

const defaultDedupPrefix = "cms:dedup:"

// RedisDedupStore implements DedupStore with SETNX so every API instance
// shares the same view of recent keys
type RedisDedupStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisDedupStore creates a store on an existing client. The caller keeps
// ownership of the client.
func NewRedisDedupStore(client redis.UniversalClient, keyPrefix string) *RedisDedupStore {
	if keyPrefix == "" {
		keyPrefix = defaultDedupPrefix
	}
	return &RedisDedupStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// MarkOnce records key for ttl. It returns true when the key was new.
func (s *RedisDedupStore) MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark key: %w", err)
	}
	return ok, nil
}

// Seen reports whether key is still recorded
func (s *RedisDedupStore) Seen(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key: %w", err)
	}
	return n > 0, nil
}

// Forget deletes key
func (s *RedisDedupStore) Forget(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to forget key: %w", err)
	}
	return nil
}

// Close is a no-op; the client is shared
func (s *RedisDedupStore) Close() error {
	return nil
}

var _ shared.DedupStore = (*RedisDedupStore)(nil)
