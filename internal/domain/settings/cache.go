package settings

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultCacheTTL bounds how stale a cached section can get when an
// invalidation is missed
const DefaultCacheTTL = 10 * time.Minute

// Cache holds the effective values of settings sections.
//
// Keys follow settings:{tenant_id}:{section}.
type Cache interface {
	// Get returns nil, nil on a miss
	Get(ctx context.Context, tenantID uuid.UUID, section Section) (Values, error)
	// Set stores values; a zero ttl uses DefaultCacheTTL
	Set(ctx context.Context, tenantID uuid.UUID, section Section, values Values, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID uuid.UUID, section Section) error
	// InvalidateTenant drops every section of one tenant
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID) error
	Close() error
}
