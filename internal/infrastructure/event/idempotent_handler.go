package event

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultIdempotencyTTL is how long a handled event ID is remembered
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStats is a snapshot of idempotency counters
type IdempotencyStats struct {
	EventsProcessed int64 `json:"events_processed"`
	EventsDuplicate int64 `json:"events_duplicate"`
	EventsFailed    int64 `json:"events_failed"`
}

// IdempotentHandler wraps an EventHandler so an event ID is handled at most once
// within the TTL, even when the same event is published twice. Failed events
// are released so a later republish gets through.
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.DedupStore
	ttl     time.Duration
	logger  *zap.Logger

	processed atomic.Int64
	duplicate atomic.Int64
	failed    atomic.Int64
}

// NewIdempotentHandler wraps handler. A zero ttl uses DefaultIdempotencyTTL.
func NewIdempotentHandler(handler shared.EventHandler, store shared.DedupStore, ttl time.Duration, logger *zap.Logger) *IdempotentHandler {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdempotentHandler{
		handler: handler,
		store:   store,
		ttl:     ttl,
		logger:  logger,
	}
}

// EventTypes returns the wrapped handler's event types
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle runs the wrapped handler unless the event ID was already marked.
// A store failure lets the event through: a duplicate beats a lost event.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	key := idempotencyKey(event)

	isNew, err := h.store.MarkOnce(ctx, key, h.ttl)
	if err != nil {
		h.logger.Warn("Idempotency check failed, processing anyway",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
			zap.Error(err))
	} else if !isNew {
		h.duplicate.Add(1)
		h.logger.Debug("Duplicate event skipped",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()))
		return nil
	}

	if err := h.handler.Handle(ctx, event); err != nil {
		h.failed.Add(1)
		h.Release(ctx, event)
		return err
	}
	h.processed.Add(1)
	return nil
}

// Release forgets the event ID so a republish of the same event is handled again
func (h *IdempotentHandler) Release(ctx context.Context, event shared.DomainEvent) {
	if err := h.store.Forget(ctx, idempotencyKey(event)); err != nil {
		h.logger.Warn("Failed to release idempotency key",
			zap.String("event_id", event.EventID().String()),
			zap.Error(err))
	}
}

func idempotencyKey(event shared.DomainEvent) string {
	return "event:" + event.EventID().String()
}

// Stats returns the handler counters
func (h *IdempotentHandler) Stats() IdempotencyStats {
	return IdempotencyStats{
		EventsProcessed: h.processed.Load(),
		EventsDuplicate: h.duplicate.Load(),
		EventsFailed:    h.failed.Load(),
	}
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
