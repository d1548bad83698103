package persistence

import (
	"context"
	"errors"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEarningsRepository implements affiliate.EarningsRepository using GORM
type GormEarningsRepository struct {
	db *gorm.DB
}

// NewGormEarningsRepository creates a new GormEarningsRepository
func NewGormEarningsRepository(db *gorm.DB) *GormEarningsRepository {
	return &GormEarningsRepository{db: db}
}

// FindByPartner returns every rollup of a partner, newest period first
func (r *GormEarningsRepository) FindByPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]affiliate.Earnings, error) {
	var earningsModels []models.EarningsModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND partner_id = ?", tenantID, partnerID).
		Order("period DESC").
		Find(&earningsModels).Error; err != nil {
		return nil, err
	}
	return earningsToDomain(earningsModels), nil
}

// FindByPeriod returns the rollups of every partner for one period
func (r *GormEarningsRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, period string) ([]affiliate.Earnings, error) {
	var earningsModels []models.EarningsModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND period = ?", tenantID, period).
		Order("total DESC").
		Find(&earningsModels).Error; err != nil {
		return nil, err
	}
	return earningsToDomain(earningsModels), nil
}

// Upsert replaces the rollup for the partner and period, keeping the row id stable
func (r *GormEarningsRepository) Upsert(ctx context.Context, earnings *affiliate.Earnings) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var existing models.EarningsModel
		err := tx.Where("tenant_id = ? AND partner_id = ? AND period = ?",
			earnings.TenantID, earnings.PartnerID, earnings.Period).
			First(&existing).Error
		switch {
		case err == nil:
			earnings.ID = existing.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		return tx.Save(models.EarningsModelFromDomain(earnings)).Error
	})
}

func earningsToDomain(earningsModels []models.EarningsModel) []affiliate.Earnings {
	out := make([]affiliate.Earnings, len(earningsModels))
	for i := range earningsModels {
		out[i] = *earningsModels[i].ToDomain()
	}
	return out
}
