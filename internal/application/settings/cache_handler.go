package settings

import (
	"context"
	"fmt"

	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CacheInvalidationHandler drops cached sections when SettingsUpdated is published
type CacheInvalidationHandler struct {
	cache  settings.Cache
	logger *zap.Logger
}

// NewCacheInvalidationHandler creates a new handler for settings updated events
func NewCacheInvalidationHandler(cache settings.Cache, logger *zap.Logger) *CacheInvalidationHandler {
	return &CacheInvalidationHandler{
		cache:  cache,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *CacheInvalidationHandler) EventTypes() []string {
	return []string{settings.EventTypeSettingsUpdated}
}

// Handle processes a SettingsUpdated event
func (h *CacheInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	updated, ok := event.(*settings.UpdatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			settings.EventTypeSettingsUpdated, event.EventType())
	}

	if err := h.cache.Invalidate(ctx, event.TenantID(), updated.Section); err != nil {
		h.logger.Warn("settings cache invalidation failed",
			zap.String("tenant_id", event.TenantID().String()),
			zap.String("section", string(updated.Section)),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("settings cache invalidated",
		zap.String("tenant_id", event.TenantID().String()),
		zap.String("section", string(updated.Section)),
		zap.Strings("keys", updated.Keys),
	)
	return nil
}
