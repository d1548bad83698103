package content

import (
	"context"
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by PostRepository
const (
	FilterType       = "type"
	FilterStatus     = "status"
	FilterCategoryID = "category_id"
	FilterTagID      = "tag_id"
	FilterAuthorID   = "author_id"
	FilterParentID   = "parent_id"
	// FilterIncludeTrash lists trashed posts alongside the rest when true
	FilterIncludeTrash = "include_trash"
	FilterActive       = "is_active"
)

// PostRepository persists posts and pages together with their term links
type PostRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Post, error)
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*Post, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Post, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	// ExistsBySlug checks slug uniqueness across posts and pages of a tenant
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error)
	// FindPublished returns every published item of a type, used for redirect generation
	FindPublished(ctx context.Context, tenantID uuid.UUID, postType PostType) ([]Post, error)
	// FindDueScheduled returns scheduled posts whose publish date is not after now
	FindDueScheduled(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]Post, error)
	CountByTag(ctx context.Context, tenantID, tagID uuid.UUID) (int64, error)
	CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error)
	Save(ctx context.Context, post *Post) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Category, error)
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*Category, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Category, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Category, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error)
	CountActiveChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int64, error)
	// RefreshPostCounts recomputes the cached post count of the given categories
	RefreshPostCounts(ctx context.Context, tenantID uuid.UUID, ids ...uuid.UUID) error
	Save(ctx context.Context, category *Category) error
}

// TagRepository persists tags
type TagRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Tag, error)
	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*Tag, error)
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Tag, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Tag, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error)
	// RefreshUsageCounts recomputes the cached usage count of the given tags
	RefreshUsageCounts(ctx context.Context, tenantID uuid.UUID, ids ...uuid.UUID) error
	Save(ctx context.Context, tag *Tag) error
}
