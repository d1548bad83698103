package shared

import (
	"context"
	"time"
)

// DedupStore remembers keys for a bounded time. It backs click de-duplication
// for partner links and idempotent event handling.
type DedupStore interface {
	// MarkOnce records key with a TTL. It returns true when the key was not seen before.
	MarkOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Seen reports whether key is currently recorded
	Seen(ctx context.Context, key string) (bool, error)
	// Forget removes key so the next MarkOnce treats it as new
	Forget(ctx context.Context, key string) error
	Close() error
}
