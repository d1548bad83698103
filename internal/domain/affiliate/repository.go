package affiliate

import (
	"context"
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Filter keys understood by the affiliate repositories
const (
	FilterStatus    = "status"
	FilterPartnerID = "partner_id"
	FilterActive    = "is_active"
)

// PartnerRepository persists partners
type PartnerRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Partner, error)
	FindByReferralCode(ctx context.Context, tenantID uuid.UUID, code string) (*Partner, error)
	FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*Partner, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Partner, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error)
	FindActiveIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error)
	Save(ctx context.Context, partner *Partner) error
}

// LinkRepository persists partner links
type LinkRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PartnerLink, error)
	// FindByCode resolves a short code across tenants; codes are globally unique
	FindByCode(ctx context.Context, code string) (*PartnerLink, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PartnerLink, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	SumClicks(ctx context.Context, tenantID, partnerID uuid.UUID) (int64, error)
	Save(ctx context.Context, link *PartnerLink) error
	IncrementClicks(ctx context.Context, id uuid.UUID) error
	IncrementConversions(ctx context.Context, id uuid.UUID) error
}

// CommissionRepository persists commissions
type CommissionRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Commission, error)
	ExistsByOrderID(ctx context.Context, tenantID uuid.UUID, orderID string) (bool, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Commission, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
	FindByPartnerInRange(ctx context.Context, tenantID, partnerID uuid.UUID, from, to time.Time) ([]Commission, error)
	Save(ctx context.Context, commission *Commission) error
}

// EarningsRepository persists monthly rollups
type EarningsRepository interface {
	FindByPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]Earnings, error)
	FindByPeriod(ctx context.Context, tenantID uuid.UUID, period string) ([]Earnings, error)
	// Upsert replaces the rollup for the partner and period
	Upsert(ctx context.Context, earnings *Earnings) error
}
