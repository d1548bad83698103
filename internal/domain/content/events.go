package content

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypePost     = "Post"
	AggregateTypeCategory = "Category"
	AggregateTypeTag      = "Tag"
)

// Event type constants
const (
	EventTypePostCreated     = "PostCreated"
	EventTypePostUpdated     = "PostUpdated"
	EventTypePostPublished   = "PostPublished"
	EventTypePostScheduled   = "PostScheduled"
	EventTypePostUnpublished = "PostUnpublished"
	EventTypePostTrashed     = "PostTrashed"
	EventTypePostRestored    = "PostRestored"
	EventTypePostDeleted     = "PostDeleted"
	EventTypePostSlugChanged = "PostSlugChanged"

	EventTypeCategoryCreated = "CategoryCreated"
	EventTypeCategoryUpdated = "CategoryUpdated"
	EventTypeCategoryDeleted = "CategoryDeleted"

	EventTypeTagCreated = "TagCreated"
	EventTypeTagUpdated = "TagUpdated"
	EventTypeTagDeleted = "TagDeleted"
)

// PostEvent is the payload shared by all post lifecycle events
type PostEvent struct {
	shared.BaseDomainEvent
	PostID      uuid.UUID   `json:"post_id"`
	PostType    PostType    `json:"post_type"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Status      PostStatus  `json:"status"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`
	TagIDs      []uuid.UUID `json:"tag_ids,omitempty"`
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
}

func newPostEvent(eventType string, p *Post) *PostEvent {
	return &PostEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypePost, p.ID, p.TenantID),
		PostID:          p.ID,
		PostType:        p.Type,
		Title:           p.Title,
		Slug:            p.Slug.String(),
		Status:          p.Status,
		PublishedAt:     p.PublishedAt,
		TagIDs:          append([]uuid.UUID(nil), p.TagIDs...),
		CategoryIDs:     append([]uuid.UUID(nil), p.CategoryIDs...),
	}
}

// NewPostCreatedEvent creates a PostCreated event
func NewPostCreatedEvent(p *Post) *PostEvent { return newPostEvent(EventTypePostCreated, p) }

// NewPostUpdatedEvent creates a PostUpdated event
func NewPostUpdatedEvent(p *Post) *PostEvent { return newPostEvent(EventTypePostUpdated, p) }

// NewPostPublishedEvent creates a PostPublished event
func NewPostPublishedEvent(p *Post) *PostEvent { return newPostEvent(EventTypePostPublished, p) }

// NewPostScheduledEvent creates a PostScheduled event
func NewPostScheduledEvent(p *Post) *PostEvent { return newPostEvent(EventTypePostScheduled, p) }

// NewPostUnpublishedEvent creates a PostUnpublished event
func NewPostUnpublishedEvent(p *Post) *PostEvent { return newPostEvent(EventTypePostUnpublished, p) }

// NewPostTrashedEvent creates a PostTrashed event
func NewPostTrashedEvent(p *Post) *PostEvent { return newPostEvent(EventTypePostTrashed, p) }

// NewPostRestoredEvent creates a PostRestored event
func NewPostRestoredEvent(p *Post) *PostEvent { return newPostEvent(EventTypePostRestored, p) }

// NewPostDeletedEvent creates a PostDeleted event
func NewPostDeletedEvent(p *Post) *PostEvent { return newPostEvent(EventTypePostDeleted, p) }

// PostSlugChangedEvent is published when the slug of visible content changes
type PostSlugChangedEvent struct {
	PostEvent
	OldSlug string `json:"old_slug"`
}

// NewPostSlugChangedEvent creates a PostSlugChanged event
func NewPostSlugChangedEvent(p *Post, oldSlug valueobject.Slug) *PostSlugChangedEvent {
	return &PostSlugChangedEvent{
		PostEvent: *newPostEvent(EventTypePostSlugChanged, p),
		OldSlug:   oldSlug.String(),
	}
}

// TermEvent is the payload of category and tag events
type TermEvent struct {
	shared.BaseDomainEvent
	TermID uuid.UUID `json:"term_id"`
	Name   string    `json:"name"`
	Slug   string    `json:"slug"`
}

func newCategoryEvent(eventType string, c *Category) *TermEvent {
	return &TermEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeCategory, c.ID, c.TenantID),
		TermID:          c.ID,
		Name:            c.Name,
		Slug:            c.Slug.String(),
	}
}

func newTagEvent(eventType string, t *Tag) *TermEvent {
	return &TermEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeTag, t.ID, t.TenantID),
		TermID:          t.ID,
		Name:            t.Name,
		Slug:            t.Slug.String(),
	}
}

// NewCategoryCreatedEvent creates a CategoryCreated event
func NewCategoryCreatedEvent(c *Category) *TermEvent {
	return newCategoryEvent(EventTypeCategoryCreated, c)
}

// NewCategoryUpdatedEvent creates a CategoryUpdated event
func NewCategoryUpdatedEvent(c *Category) *TermEvent {
	return newCategoryEvent(EventTypeCategoryUpdated, c)
}

// NewCategoryDeletedEvent creates a CategoryDeleted event
func NewCategoryDeletedEvent(c *Category) *TermEvent {
	return newCategoryEvent(EventTypeCategoryDeleted, c)
}

// NewTagCreatedEvent creates a TagCreated event
func NewTagCreatedEvent(t *Tag) *TermEvent { return newTagEvent(EventTypeTagCreated, t) }

// NewTagUpdatedEvent creates a TagUpdated event
func NewTagUpdatedEvent(t *Tag) *TermEvent { return newTagEvent(EventTypeTagUpdated, t) }

// NewTagDeletedEvent creates a TagDeleted event
func NewTagDeletedEvent(t *Tag) *TermEvent { return newTagEvent(EventTypeTagDeleted, t) }
