package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPostRepository implements content.PostRepository using GORM.
// Term links live in post_categories and post_tags and are rewritten on save.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// FindByIDForTenant finds a post by ID within a tenant
func (r *GormPostRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.Post, error) {
	var model models.PostModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	posts, err := r.withTerms(ctx, []models.PostModel{model})
	if err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// FindBySlug finds a post or page by slug within a tenant
func (r *GormPostRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*content.Post, error) {
	var model models.PostModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	posts, err := r.withTerms(ctx, []models.PostModel{model})
	if err != nil {
		return nil, err
	}
	return &posts[0], nil
}

// FindAllForTenant lists posts matching the filter
func (r *GormPostRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.Post, error) {
	var postModels []models.PostModel
	query := r.applyFilter(conn(ctx, r.db).Model(&models.PostModel{}).Scopes(tenantScope(tenantID)), filter)
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}
	return r.withTerms(ctx, postModels)
}

// CountForTenant counts posts matching the filter
func (r *GormPostRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(conn(ctx, r.db).Model(&models.PostModel{}).Scopes(tenantScope(tenantID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySlug checks slug uniqueness across posts and pages of a tenant
func (r *GormPostRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := conn(ctx, r.db).Model(&models.PostModel{}).
		Where("tenant_id = ? AND slug = ?", tenantID, slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindPublished returns every published item of a type
func (r *GormPostRepository) FindPublished(ctx context.Context, tenantID uuid.UUID, postType content.PostType) ([]content.Post, error) {
	var postModels []models.PostModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND type = ? AND status = ?", tenantID, postType, content.PostStatusPublish).
		Order("published_at ASC").
		Find(&postModels).Error; err != nil {
		return nil, err
	}
	return r.withTerms(ctx, postModels)
}

// FindDueScheduled returns scheduled posts whose publish date is not after now
func (r *GormPostRepository) FindDueScheduled(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]content.Post, error) {
	var postModels []models.PostModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND status = ? AND published_at <= ?", tenantID, content.PostStatusFuture, now).
		Order("published_at ASC").
		Find(&postModels).Error; err != nil {
		return nil, err
	}
	return r.withTerms(ctx, postModels)
}

// CountByTag counts non-trashed posts using a tag
func (r *GormPostRepository) CountByTag(ctx context.Context, tenantID, tagID uuid.UUID) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.PostTagModel{}).
		Joins("JOIN posts ON posts.id = post_tags.post_id").
		Where("post_tags.tenant_id = ? AND post_tags.tag_id = ? AND posts.status <> ?", tenantID, tagID, content.PostStatusTrash).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCategory counts non-trashed posts filed under a category
func (r *GormPostRepository) CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.PostCategoryModel{}).
		Joins("JOIN posts ON posts.id = post_categories.post_id").
		Where("post_categories.tenant_id = ? AND post_categories.category_id = ? AND posts.status <> ?", tenantID, categoryID, content.PostStatusTrash).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a post and replaces its term links
func (r *GormPostRepository) Save(ctx context.Context, post *content.Post) error {
	model := models.PostModelFromDomain(post)
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostCategoryModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostTagModel{}).Error; err != nil {
			return err
		}
		if len(post.CategoryIDs) > 0 {
			links := make([]models.PostCategoryModel, len(post.CategoryIDs))
			for i, id := range post.CategoryIDs {
				links[i] = models.PostCategoryModel{PostID: post.ID, CategoryID: id, TenantID: post.TenantID}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		if len(post.TagIDs) > 0 {
			links := make([]models.PostTagModel, len(post.TagIDs))
			for i, id := range post.TagIDs {
				links[i] = models.PostTagModel{PostID: post.ID, TagID: id, TenantID: post.TenantID}
			}
			if err := tx.Create(&links).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteForTenant permanently deletes a post and its term links
func (r *GormPostRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND post_id = ?", tenantID, id).Delete(&models.PostCategoryModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ? AND post_id = ?", tenantID, id).Delete(&models.PostTagModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.PostModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// withTerms converts models and attaches their category and tag ids
func (r *GormPostRepository) withTerms(ctx context.Context, postModels []models.PostModel) ([]content.Post, error) {
	posts := make([]content.Post, len(postModels))
	if len(postModels) == 0 {
		return posts, nil
	}
	ids := make([]uuid.UUID, len(postModels))
	index := make(map[uuid.UUID]int, len(postModels))
	for i := range postModels {
		posts[i] = *postModels[i].ToDomain()
		ids[i] = postModels[i].ID
		index[postModels[i].ID] = i
	}

	var categoryLinks []models.PostCategoryModel
	if err := conn(ctx, r.db).Where("post_id IN ?", ids).Find(&categoryLinks).Error; err != nil {
		return nil, err
	}
	for _, link := range categoryLinks {
		i := index[link.PostID]
		posts[i].CategoryIDs = append(posts[i].CategoryIDs, link.CategoryID)
	}

	var tagLinks []models.PostTagModel
	if err := conn(ctx, r.db).Where("post_id IN ?", ids).Find(&tagLinks).Error; err != nil {
		return nil, err
	}
	for _, link := range tagLinks {
		i := index[link.PostID]
		posts[i].TagIDs = append(posts[i].TagIDs, link.TagID)
	}
	return posts, nil
}

// postFilterKeys fixes the order filters are applied in
var postFilterKeys = []string{
	content.FilterType,
	content.FilterStatus,
	content.FilterAuthorID,
	content.FilterParentID,
	content.FilterCategoryID,
	content.FilterTagID,
}

// applyFilter applies filtering, ordering and pagination
func (r *GormPostRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	return applyPaging(query, filter, PostSortFields, "created_at DESC")
}

// applyFilterWithoutPagination applies filter options without pagination.
// Trashed posts are hidden unless a status or include_trash asks for them.
func (r *GormPostRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)", pattern, pattern)
	}

	_, hasStatus := filter.Filters[content.FilterStatus]
	includeTrash, _ := filter.Filters[content.FilterIncludeTrash].(bool)
	if !hasStatus && !includeTrash {
		query = query.Where("status <> ?", content.PostStatusTrash)
	}

	for _, key := range postFilterKeys {
		value, ok := filter.Filters[key]
		if !ok {
			continue
		}
		switch key {
		case content.FilterCategoryID:
			query = query.Where("id IN (?)",
				r.db.Model(&models.PostCategoryModel{}).Select("post_id").Where("category_id = ?", value))
		case content.FilterTagID:
			query = query.Where("id IN (?)",
				r.db.Model(&models.PostTagModel{}).Select("post_id").Where("tag_id = ?", value))
		default:
			query = query.Where(key+" = ?", value)
		}
	}
	return query
}
