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

// GormCategoryRepository implements content.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByIDForTenant finds a category by ID within a tenant
func (r *GormCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.Category, error) {
	var model models.CategoryModel
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

// FindBySlug finds a category by slug within a tenant
func (r *GormCategoryRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*content.Category, error) {
	var model models.CategoryModel
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

// FindByIDs finds multiple categories by their IDs
func (r *GormCategoryRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]content.Category, error) {
	if len(ids) == 0 {
		return []content.Category{}, nil
	}
	var categoryModels []models.CategoryModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Order("sort_order ASC, name ASC").
		Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(categoryModels), nil
}

// FindAllForTenant finds all categories for a tenant
func (r *GormCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.Category, error) {
	var categoryModels []models.CategoryModel
	query := r.applyFilter(conn(ctx, r.db).Model(&models.CategoryModel{}).Scopes(tenantScope(tenantID)), filter)
	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, err
	}
	return categoriesToDomain(categoryModels), nil
}

// CountForTenant counts categories for a tenant
func (r *GormCategoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(conn(ctx, r.db).Model(&models.CategoryModel{}).Scopes(tenantScope(tenantID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySlug checks if a slug is taken within a tenant
func (r *GormCategoryRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := conn(ctx, r.db).Model(&models.CategoryModel{}).
		Where("tenant_id = ? AND slug = ?", tenantID, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountActiveChildren counts the active direct children of a category
func (r *GormCategoryRepository) CountActiveChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.CategoryModel{}).
		Where("tenant_id = ? AND parent_id = ? AND is_active = ?", tenantID, parentID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RefreshPostCounts recomputes post_count from the non-trashed posts filed under each category
func (r *GormCategoryRepository) RefreshPostCounts(ctx context.Context, tenantID uuid.UUID, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	count := gorm.Expr(`(SELECT COUNT(*) FROM post_categories
		JOIN posts ON posts.id = post_categories.post_id
		WHERE post_categories.category_id = categories.id AND posts.status <> ?)`, content.PostStatusTrash)
	return conn(ctx, r.db).Model(&models.CategoryModel{}).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		UpdateColumn("post_count", count).Error
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *content.Category) error {
	return conn(ctx, r.db).Save(models.CategoryModelFromDomain(category)).Error
}

func categoriesToDomain(categoryModels []models.CategoryModel) []content.Category {
	categories := make([]content.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = *categoryModels[i].ToDomain()
	}
	return categories
}

// applyFilter applies filtering, ordering and pagination
func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPaging(query, filter, CategorySortFields, "sort_order ASC, name ASC")
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCategoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(slug) LIKE ?)", pattern, pattern)
	}
	if value, ok := filter.Filters[content.FilterActive]; ok {
		query = query.Where("is_active = ?", value)
	}
	if value, ok := filter.Filters[content.FilterParentID]; ok {
		if value == nil {
			query = query.Where("parent_id IS NULL")
		} else {
			query = query.Where("parent_id = ?", value)
		}
	}
	return query
}
