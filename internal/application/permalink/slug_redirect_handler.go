package permalink

import (
	"context"
	"fmt"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SlugRedirectHandler stores a redirect from the old URL of published content
// whose slug changed
type SlugRedirectHandler struct {
	service *Service
	logger  *zap.Logger
}

// NewSlugRedirectHandler creates a new handler for slug change events
func NewSlugRedirectHandler(service *Service, logger *zap.Logger) *SlugRedirectHandler {
	return &SlugRedirectHandler{
		service: service,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SlugRedirectHandler) EventTypes() []string {
	return []string{content.EventTypePostSlugChanged}
}

// Handle processes a PostSlugChanged event
func (h *SlugRedirectHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*content.PostSlugChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			content.EventTypePostSlugChanged, event.EventType())
	}

	stored, err := h.service.RedirectSlugChange(ctx, event.TenantID(), changed.PostID, changed.OldSlug)
	if err != nil {
		h.logger.Error("failed to store slug redirect",
			zap.String("tenant_id", event.TenantID().String()),
			zap.String("post_id", changed.PostID.String()),
			zap.String("old_slug", changed.OldSlug),
			zap.Error(err),
		)
		return err
	}
	if stored > 0 {
		h.logger.Info("slug redirect stored",
			zap.String("post_id", changed.PostID.String()),
			zap.String("old_slug", changed.OldSlug),
			zap.String("new_slug", changed.Slug),
		)
	}
	return nil
}
