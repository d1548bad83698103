package cache

import (
	"context"
	"maps"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/google/uuid"
)

const settingsCleanupInterval = 30 * time.Second

type settingsEntry struct {
	values    settings.Values
	expiresAt time.Time
}

type settingsCacheKey struct {
	tenantID uuid.UUID
	section  settings.Section
}

// InMemorySettingsCache implements settings.Cache in process memory.
// Values are copied on the way in and out so callers cannot mutate the cache.
type InMemorySettingsCache struct {
	entries   sync.Map // settingsCacheKey -> *settingsEntry
	stopCh    chan struct{}
	closeOnce sync.Once

	hits   int64
	misses int64
}

// NewInMemorySettingsCache creates the cache and starts expiry cleanup
func NewInMemorySettingsCache() *InMemorySettingsCache {
	c := &InMemorySettingsCache{stopCh: make(chan struct{})}
	go c.cleanupExpired(settingsCleanupInterval)
	return c
}

// Get returns a copy of the cached values or nil on a miss
func (c *InMemorySettingsCache) Get(_ context.Context, tenantID uuid.UUID, section settings.Section) (settings.Values, error) {
	v, ok := c.entries.Load(settingsCacheKey{tenantID, section})
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		return nil, nil
	}
	entry := v.(*settingsEntry)
	if time.Now().After(entry.expiresAt) {
		c.entries.Delete(settingsCacheKey{tenantID, section})
		atomic.AddInt64(&c.misses, 1)
		return nil, nil
	}
	atomic.AddInt64(&c.hits, 1)
	return maps.Clone(entry.values), nil
}

// Set stores a copy of values
func (c *InMemorySettingsCache) Set(_ context.Context, tenantID uuid.UUID, section settings.Section, values settings.Values, ttl time.Duration) error {
	if values == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = settings.DefaultCacheTTL
	}
	c.entries.Store(settingsCacheKey{tenantID, section}, &settingsEntry{
		values:    maps.Clone(values),
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Invalidate removes one section
func (c *InMemorySettingsCache) Invalidate(_ context.Context, tenantID uuid.UUID, section settings.Section) error {
	c.entries.Delete(settingsCacheKey{tenantID, section})
	return nil
}

// InvalidateTenant removes every section of a tenant
func (c *InMemorySettingsCache) InvalidateTenant(_ context.Context, tenantID uuid.UUID) error {
	c.entries.Range(func(k, _ any) bool {
		if k.(settingsCacheKey).tenantID == tenantID {
			c.entries.Delete(k)
		}
		return true
	})
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemorySettingsCache) Close() error {
	c.closeOnce.Do(func() { close(c.stopCh) })
	return nil
}

// Stats returns hit and miss counters
func (c *InMemorySettingsCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

func (c *InMemorySettingsCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			c.entries.Range(func(k, v any) bool {
				if now.After(v.(*settingsEntry).expiresAt) {
					c.entries.Delete(k)
				}
				return true
			})
		}
	}
}

var _ settings.Cache = (*InMemorySettingsCache)(nil)
