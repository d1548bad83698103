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

// GormPartnerRepository implements affiliate.PartnerRepository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindByIDForTenant finds a partner by ID within a tenant
func (r *GormPartnerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*affiliate.Partner, error) {
	return r.first(ctx, "tenant_id = ? AND id = ?", tenantID, id)
}

// FindByReferralCode finds a partner by referral code within a tenant
func (r *GormPartnerRepository) FindByReferralCode(ctx context.Context, tenantID uuid.UUID, code string) (*affiliate.Partner, error) {
	return r.first(ctx, "tenant_id = ? AND referral_code = ?", tenantID, strings.ToUpper(code))
}

// FindByUserID finds the partner bound to a user account
func (r *GormPartnerRepository) FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*affiliate.Partner, error) {
	return r.first(ctx, "tenant_id = ? AND user_id = ?", tenantID, userID)
}

func (r *GormPartnerRepository) first(ctx context.Context, query string, args ...any) (*affiliate.Partner, error) {
	var model models.PartnerModel
	if err := conn(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists partners
func (r *GormPartnerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]affiliate.Partner, error) {
	var partnerModels []models.PartnerModel
	query := applyPaging(r.filtered(conn(ctx, r.db), tenantID, filter), filter, PartnerSortFields, "created_at DESC")
	if err := query.Find(&partnerModels).Error; err != nil {
		return nil, err
	}
	partners := make([]affiliate.Partner, len(partnerModels))
	for i := range partnerModels {
		partners[i] = *partnerModels[i].ToDomain()
	}
	return partners, nil
}

// CountForTenant counts partners
func (r *GormPartnerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filtered(conn(ctx, r.db), tenantID, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByEmail checks if an email is already registered within a tenant
func (r *GormPartnerRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := conn(ctx, r.db).Model(&models.PartnerModel{}).
		Where("tenant_id = ? AND email = ?", tenantID, strings.ToLower(email))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindActiveIDs returns ids of every active partner of a tenant
func (r *GormPartnerRepository) FindActiveIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := conn(ctx, r.db).Model(&models.PartnerModel{}).
		Where("tenant_id = ? AND status = ?", tenantID, affiliate.PartnerStatusActive).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Save creates or updates a partner
func (r *GormPartnerRepository) Save(ctx context.Context, partner *affiliate.Partner) error {
	return conn(ctx, r.db).Save(models.PartnerModelFromDomain(partner)).Error
}

func (r *GormPartnerRepository) filtered(db *gorm.DB, tenantID uuid.UUID, filter shared.Filter) *gorm.DB {
	query := db.Model(&models.PartnerModel{}).Scopes(tenantScope(tenantID))
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(referral_code) LIKE ?)", pattern, pattern, pattern)
	}
	if status, ok := filter.Filters[affiliate.FilterStatus]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}
