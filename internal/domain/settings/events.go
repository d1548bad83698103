package settings

import (
	"github.com/cmsplatform/backend/internal/domain/shared"
)

// AggregateTypeSetting is the aggregate type of settings events
const AggregateTypeSetting = "Setting"

// EventTypeSettingsUpdated is published after a section is saved
const EventTypeSettingsUpdated = "SettingsUpdated"

// UpdatedEvent announces a changed settings section
type UpdatedEvent struct {
	shared.BaseDomainEvent
	Section Section  `json:"section"`
	Keys    []string `json:"keys"`
}

// NewUpdatedEvent creates a SettingsUpdated event
func NewUpdatedEvent(s *Setting, keys []string) *UpdatedEvent {
	return &UpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSettingsUpdated, AggregateTypeSetting, s.ID, s.TenantID),
		Section:         s.Section,
		Keys:            keys,
	}
}
