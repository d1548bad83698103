package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCommissionRepository implements affiliate.CommissionRepository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// FindByIDForTenant finds a commission by ID within a tenant
func (r *GormCommissionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*affiliate.Commission, error) {
	var model models.CommissionModel
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

// ExistsByOrderID checks if an order was already credited within a tenant
func (r *GormCommissionRepository) ExistsByOrderID(ctx context.Context, tenantID uuid.UUID, orderID string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.CommissionModel{}).
		Where("tenant_id = ? AND order_id = ?", tenantID, orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAllForTenant lists commissions
func (r *GormCommissionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]affiliate.Commission, error) {
	var commissionModels []models.CommissionModel
	query := applyPaging(r.filtered(conn(ctx, r.db), tenantID, filter), filter, CommissionSortFields, "created_at DESC")
	if err := query.Find(&commissionModels).Error; err != nil {
		return nil, err
	}
	return commissionsToDomain(commissionModels), nil
}

// CountForTenant counts commissions
func (r *GormCommissionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(conn(ctx, r.db), tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByPartnerInRange returns a partner's commissions created in [from, to)
func (r *GormCommissionRepository) FindByPartnerInRange(ctx context.Context, tenantID, partnerID uuid.UUID, from, to time.Time) ([]affiliate.Commission, error) {
	var commissionModels []models.CommissionModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND partner_id = ? AND created_at >= ? AND created_at < ?", tenantID, partnerID, from, to).
		Order("created_at ASC").
		Find(&commissionModels).Error; err != nil {
		return nil, err
	}
	return commissionsToDomain(commissionModels), nil
}

// Save creates or updates a commission
func (r *GormCommissionRepository) Save(ctx context.Context, commission *affiliate.Commission) error {
	return conn(ctx, r.db).Save(models.CommissionModelFromDomain(commission)).Error
}

func (r *GormCommissionRepository) filtered(db *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := db.Model(&models.CommissionModel{}).Scopes(tenantScope(tenantID))
	if filter.Search != "" {
		query = query.Where("LOWER(order_id) LIKE ?", likePattern(filter.Search))
	}
	if status, ok := filter.Filters[affiliate.FilterStatus]; ok {
		query = query.Where("status = ?", status)
	}
	if partnerID, ok := filter.Filters[affiliate.FilterPartnerID]; ok {
		query = query.Where("partner_id = ?", partnerID)
	}
	return query
}

func commissionsToDomain(commissionModels []models.CommissionModel) []affiliate.Commission {
	commissions := make([]affiliate.Commission, len(commissionModels))
	for i := range commissionModels {
		commissions[i] = *commissionModels[i].ToDomain()
	}
	return commissions
}
