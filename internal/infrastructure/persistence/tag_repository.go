package persistence

import (
	"context"
	"errors"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTagRepository implements content.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByIDForTenant finds a tag by ID within a tenant
func (r *GormTagRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.Tag, error) {
	var model models.TagModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySlug finds a tag by slug within a tenant
func (r *GormTagRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*content.Tag, error) {
	var model models.TagModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple tags by their IDs
func (r *GormTagRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]content.Tag, error) {
	if len(ids) == 0 {
		return []content.Tag{}, nil
	}
	var tagModels []models.TagModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("name ASC").
		Find(&tagModels).Error; err != nil {
		return nil, err
	}
	return tagsToDomain(tagModels), nil
}

// FindAllForTenant finds all tags for a tenant
func (r *GormTagRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.Tag, error) {
	var tagModels []models.TagModel
	query := r.applyFilter(conn(ctx, r.db).Model(&models.TagModel{}).Scopes(tenantScope(tenantID)), filter)
	if err := query.Find(&tagModels).Error; err != nil {
		return nil, err
	}
	return tagsToDomain(tagModels), nil
}

// CountForTenant counts tags for a tenant
func (r *GormTagRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(conn(ctx, r.db).Model(&models.TagModel{}).Scopes(tenantScope(tenantID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySlug checks if a slug is taken within a tenant
func (r *GormTagRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := conn(ctx, r.db).Model(&models.TagModel{}).
		Where("tenant_id = ? AND slug = ?", tenantID, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RefreshUsageCounts recomputes usage_count from the non-trashed posts using each tag
func (r *GormTagRepository) RefreshUsageCounts(ctx context.Context, tenantID uuid.UUID, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	count := gorm.Expr(`(SELECT COUNT(*) FROM post_tags
		JOIN posts ON posts.id = post_tags.post_id
		WHERE post_tags.tag_id = tags.id AND posts.status <> ?)`, content.PostStatusTrash)
	return conn(ctx, r.db).Model(&models.TagModel{}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		UpdateColumn("usage_count", count).Error
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *content.Tag) error {
	return conn(ctx, r.db).Save(models.TagModelFromDomain(tag)).Error
}

func tagsToDomain(tagModels []models.TagModel) []content.Tag {
	tags := make([]content.Tag, len(tagModels))
	for i := range tagModels {
		tags[i] = *tagModels[i].ToDomain()
	}
	return tags
}

// applyFilter applies filtering, ordering and pagination
func (r *GormTagRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPaging(query, filter, TagSortFields, "name ASC")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTagRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(slug) LIKE ?)", pattern, pattern)
	}
	if value, ok := filter.Filters[content.FilterActive]; ok {
		query = query.Where("is_active = ?", value)
	}
	return query
}
