package content

import (
	"regexp"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Tag is a flat label attached to posts
type Tag struct {
	shared.TenantAggregateRoot
	Name        string
	Slug        valueobject.Slug
	Description string
	Color       string
	IsActive    bool
	UsageCount  int64
}

// NewTag creates an active tag. An empty slug is derived from the name.
func NewTag(tenantID uuid.UUID, name, slug string) (*Tag, error) {
	if err := validateTermName(name); err != nil {
		return nil, err
	}
	s, err := resolveSlug(name, slug)
	if err != nil {
		return nil, err
	}

	t := &Tag{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Slug:                s,
		IsActive:            true,
	}
	t.AddDomainEvent(NewTagCreatedEvent(t))
	return t, nil
}

// Update changes the display fields
func (t *Tag) Update(name, description, color string) error {
	if err := validateTermName(name); err != nil {
		return err
	}
	if color != "" && !colorPattern.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Color must be a hex value like #1a2b3c")
	}
	t.Name = strings.TrimSpace(name)
	t.Description = strings.TrimSpace(description)
	t.Color = strings.ToLower(color)
	t.IncrementVersion()
	t.AddDomainEvent(NewTagUpdatedEvent(t))
	return nil
}

// ChangeSlug replaces the slug
func (t *Tag) ChangeSlug(slug valueobject.Slug) {
	if slug.IsZero() || slug == t.Slug {
		return
	}
	t.Slug = slug
	t.IncrementVersion()
}

// Deactivate soft deletes the tag. usage is the number of non-trashed posts
// currently carrying it.
func (t *Tag) Deactivate(usage int64) error {
	if !t.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Tag is already deleted")
	}
	if usage > 0 {
		return shared.NewDomainError("TAG_IN_USE", "Tag is used by posts and cannot be deleted")
	}
	t.IsActive = false
	t.IncrementVersion()
	t.AddDomainEvent(NewTagDeletedEvent(t))
	return nil
}
