package persistence

import (
	"context"
	"errors"

	"github.com/cmsplatform/backend/internal/domain/permalink"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRedirectRepository implements permalink.RedirectRepository using GORM
type GormRedirectRepository struct {
	db *gorm.DB
}

// NewGormRedirectRepository creates a new GormRedirectRepository
func NewGormRedirectRepository(db *gorm.DB) *GormRedirectRepository {
	return &GormRedirectRepository{db: db}
}

// FindBySource finds the redirect registered for a path
func (r *GormRedirectRepository) FindBySource(ctx context.Context, tenantID uuid.UUID, source string) (*permalink.Redirect, error) {
	var model models.RedirectModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND source = ?", tenantID, permalink.NormalizeSource(source)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists redirects
func (r *GormRedirectRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]permalink.Redirect, error) {
	var redirectModels []models.RedirectModel
	query := applyPaging(r.filtered(conn(ctx, r.db), tenantID, filter), filter, RedirectSortFields, "source ASC")
	if err := query.Find(&redirectModels).Error; err != nil {
		return nil, err
	}
	return redirectsToDomain(redirectModels), nil
}

// CountForTenant counts redirects
func (r *GormRedirectRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(conn(ctx, r.db), tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAll returns the complete redirect table of a tenant
func (r *GormRedirectRepository) ListAll(ctx context.Context, tenantID uuid.UUID) ([]permalink.Redirect, error) {
	var redirectModels []models.RedirectModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("source ASC").
		Find(&redirectModels).Error; err != nil {
		return nil, err
	}
	return redirectsToDomain(redirectModels), nil
}

// Save creates or updates a redirect
func (r *GormRedirectRepository) Save(ctx context.Context, redirect *permalink.Redirect) error {
	return conn(ctx, r.db).Save(models.RedirectModelFromDomain(redirect)).Error
}

// Delete removes a redirect
func (r *GormRedirectRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&models.RedirectModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IncrementHits bumps the hit counter without loading the row
func (r *GormRedirectRepository) IncrementHits(ctx context.Context, tenantID, id uuid.UUID) error {
	return conn(ctx, r.db).Model(&models.RedirectModel{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		UpdateColumn("hits", gorm.Expr("hits + ?", 1)).Error
}

func (r *GormRedirectRepository) filtered(db *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := db.Model(&models.RedirectModel{}).Scopes(tenantScope(tenantID))
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(source) LIKE ? OR LOWER(target) LIKE ?)", pattern, pattern)
	}
	return query
}

func redirectsToDomain(redirectModels []models.RedirectModel) []permalink.Redirect {
	redirects := make([]permalink.Redirect, len(redirectModels))
	for i := range redirectModels {
		redirects[i] = *redirectModels[i].ToDomain()
	}
	return redirects
}
