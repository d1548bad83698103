package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnerLinkRepository implements affiliate.LinkRepository using GORM
type GormPartnerLinkRepository struct {
	db *gorm.DB
}

// NewGormPartnerLinkRepository creates a new GormPartnerLinkRepository
func NewGormPartnerLinkRepository(db *gorm.DB) *GormPartnerLinkRepository {
	return &GormPartnerLinkRepository{db: db}
}

// FindByIDForTenant finds a link by ID within a tenant
func (r *GormPartnerLinkRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*affiliate.PartnerLink, error) {
	var model models.PartnerLinkModel
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

// FindByCode resolves a short code across tenants
func (r *GormPartnerLinkRepository) FindByCode(ctx context.Context, code string) (*affiliate.PartnerLink, error) {
	var model models.PartnerLinkModel
	if err := conn(ctx, r.db).
		Where("code = ?", strings.ToLower(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists partner links
func (r *GormPartnerLinkRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]affiliate.PartnerLink, error) {
	var linkModels []models.PartnerLinkModel
	query := applyPaging(r.filtered(conn(ctx, r.db), tenantID, filter), filter, PartnerLinkSortFields, "created_at DESC")
	if err := query.Find(&linkModels).Error; err != nil {
		return nil, err
	}
	links := make([]affiliate.PartnerLink, len(linkModels))
	for i := range linkModels {
		links[i] = *linkModels[i].ToDomain()
	}
	return links, nil
}

// CountForTenant counts partner links
func (r *GormPartnerLinkRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(conn(ctx, r.db), tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumClicks totals the clicks of every link of a partner
func (r *GormPartnerLinkRepository) SumClicks(ctx context.Context, tenantID, partnerID uuid.UUID) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).Model(&models.PartnerLinkModel{}).
		Where("tenant_id = ? AND partner_id = ?", tenantID, partnerID).
		Select("COALESCE(SUM(clicks), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Save creates or updates a partner link
func (r *GormPartnerLinkRepository) Save(ctx context.Context, link *affiliate.PartnerLink) error {
	return conn(ctx, r.db).Save(models.PartnerLinkModelFromDomain(link)).Error
}

// IncrementClicks bumps the click counter atomically
func (r *GormPartnerLinkRepository) IncrementClicks(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "clicks")
}

// IncrementConversions bumps the conversion counter atomically
func (r *GormPartnerLinkRepository) IncrementConversions(ctx context.Context, id uuid.UUID) error {
	return r.increment(ctx, id, "conversions")
}

func (r *GormPartnerLinkRepository) increment(ctx context.Context, id uuid.UUID, column string) error {
	result := conn(ctx, r.db).Model(&models.PartnerLinkModel{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormPartnerLinkRepository) filtered(db *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := db.Model(&models.PartnerLinkModel{}).Scopes(tenantScope(tenantID))
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(code) LIKE ? OR LOWER(target_url) LIKE ?)", pattern, pattern, pattern)
	}
	if partnerID, ok := filter.Filters[affiliate.FilterPartnerID]; ok {
		query = query.Where("partner_id = ?", partnerID)
	}
	if active, ok := filter.Filters[affiliate.FilterActive]; ok {
		query = query.Where("is_active = ?", active)
	}
	return query
}
