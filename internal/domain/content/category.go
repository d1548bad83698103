package content

import (
	"strings"
	"unicode/utf8"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// MaxCategoryDepth is the maximum nesting of categories
const MaxCategoryDepth = 5

// Category groups posts in a hierarchy
type Category struct {
	shared.TenantAggregateRoot
	Name        string
	Slug        valueobject.Slug
	Description string
	ParentID    *uuid.UUID
	SortOrder   int
	IsActive    bool
	PostCount   int64
}

// NewCategory creates an active root category. An empty slug is derived from the name.
func NewCategory(tenantID uuid.UUID, name, slug string) (*Category, error) {
	if err := validateTermName(name); err != nil {
		return nil, err
	}
	s, err := resolveSlug(name, slug)
	if err != nil {
		return nil, err
	}

	c := &Category{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		Slug:                s,
		IsActive:            true,
	}
	c.AddDomainEvent(NewCategoryCreatedEvent(c))
	return c, nil
}

// Update changes the display fields
func (c *Category) Update(name, description string, sortOrder int) error {
	if err := validateTermName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Description = strings.TrimSpace(description)
	c.SortOrder = sortOrder
	c.IncrementVersion()
	c.AddDomainEvent(NewCategoryUpdatedEvent(c))
	return nil
}

// ChangeSlug replaces the slug
func (c *Category) ChangeSlug(slug valueobject.Slug) {
	if slug.IsZero() || slug == c.Slug {
		return
	}
	c.Slug = slug
	c.IncrementVersion()
}

// SetParent moves the category. ancestry lists the new parent followed by its
// ancestors, nearest first, and is used to reject cycles and deep trees.
func (c *Category) SetParent(parentID *uuid.UUID, ancestry []uuid.UUID) error {
	if parentID == nil {
		c.ParentID = nil
		return nil
	}
	if *parentID == c.ID {
		return shared.NewDomainError("INVALID_PARENT", "A category cannot be its own parent")
	}
	for _, id := range ancestry {
		if id == c.ID {
			return shared.NewDomainError("INVALID_PARENT", "Category hierarchy cannot contain cycles")
		}
	}
	if len(ancestry) >= MaxCategoryDepth {
		return shared.NewDomainError("MAX_DEPTH_EXCEEDED", "Category hierarchy is too deep")
	}
	c.ParentID = parentID
	c.IncrementVersion()
	return nil
}

// Deactivate soft deletes the category. It is refused while posts or active
// child categories still reference it.
func (c *Category) Deactivate(postCount, activeChildren int64) error {
	if !c.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Category is already deleted")
	}
	if postCount > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category is assigned to posts and cannot be deleted")
	}
	if activeChildren > 0 {
		return shared.NewDomainError("CATEGORY_IN_USE", "Category has child categories and cannot be deleted")
	}
	c.IsActive = false
	c.IncrementVersion()
	c.AddDomainEvent(NewCategoryDeletedEvent(c))
	return nil
}

func validateTermName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if utf8.RuneCountInString(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}

// resolveSlug validates an explicit slug or derives one from the name
func resolveSlug(name, slug string) (valueobject.Slug, error) {
	if strings.TrimSpace(slug) == "" {
		s := valueobject.Slugify(name)
		if s.IsZero() {
			return "", shared.NewDomainError("INVALID_SLUG", "A slug could not be derived from the name")
		}
		return s, nil
	}
	s, err := valueobject.ParseSlug(slug)
	if err != nil {
		return "", shared.WrapDomainError("INVALID_SLUG", "Invalid slug", err)
	}
	return s, nil
}
