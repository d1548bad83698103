package persistence

import (
	"context"
	"errors"

	"github.com/cmsplatform/backend/internal/domain/media"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMediaRepository implements media.Repository using GORM
type GormMediaRepository struct {
	db *gorm.DB
}

// NewGormMediaRepository creates a new GormMediaRepository
func NewGormMediaRepository(db *gorm.DB) *GormMediaRepository {
	return &GormMediaRepository{db: db}
}

// FindByIDForTenant finds a media item by ID within a tenant
func (r *GormMediaRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*media.Media, error) {
	var model models.MediaModel
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

// FindAllForTenant lists media that has not been deleted
func (r *GormMediaRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]media.Media, error) {
	var mediaModels []models.MediaModel
	query := applyPaging(r.filtered(conn(ctx, r.db), tenantID, filter), filter, MediaSortFields, "created_at DESC")
	if err := query.Find(&mediaModels).Error; err != nil {
		return nil, err
	}
	items := make([]media.Media, len(mediaModels))
	for i := range mediaModels {
		items[i] = *mediaModels[i].ToDomain()
	}
	return items, nil
}

// CountForTenant counts media that has not been deleted
func (r *GormMediaRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(conn(ctx, r.db), tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a media item
func (r *GormMediaRepository) Save(ctx context.Context, item *media.Media) error {
	return conn(ctx, r.db).Save(models.MediaModelFromDomain(item)).Error
}

// DeleteForTenant removes the row
func (r *GormMediaRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&models.MediaModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormMediaRepository) filtered(db *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := db.Model(&models.MediaModel{}).Scopes(tenantScope(tenantID))
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status <> ?", media.StatusDeleted)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(filename) LIKE ? OR LOWER(alt_text) LIKE ?)", pattern, pattern)
	}
	if contentType, ok := filter.Filters["content_type"].(string); ok && contentType != "" {
		query = query.Where("content_type LIKE ?", contentType+"%")
	}
	return query
}
