package affiliate

import (
	"context"
	"strings"
	"time"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/cmsplatform/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// ErrDuplicateOrder is returned when an order already carries a commission
var ErrDuplicateOrder = shared.NewDomainError("DUPLICATE_ORDER", "A commission for this order already exists")

// CommissionService records conversions and moves commissions through payout
type CommissionService struct {
	commissionRepo affiliate.CommissionRepository
	partnerRepo    affiliate.PartnerRepository
	linkRepo       affiliate.LinkRepository
	tx             shared.Transactor
	eventPublisher shared.EventPublisher
	metrics        *telemetry.ContentMetrics
	now            func() time.Time
}

// NewCommissionService creates a new CommissionService
func NewCommissionService(
	commissionRepo affiliate.CommissionRepository,
	partnerRepo affiliate.PartnerRepository,
	linkRepo affiliate.LinkRepository,
	tx shared.Transactor,
) *CommissionService {
	if tx == nil {
		tx = shared.NoopTransactor
	}
	return &CommissionService{
		commissionRepo: commissionRepo,
		partnerRepo:    partnerRepo,
		linkRepo:       linkRepo,
		tx:             tx,
		now:            time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CommissionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetContentMetrics sets the content metrics collector
func (s *CommissionService) SetContentMetrics(m *telemetry.ContentMetrics) {
	s.metrics = m
}

// RecordConversion creates a pending commission for an order referred by a partner
func (s *CommissionService) RecordConversion(ctx context.Context, tenantID, partnerID uuid.UUID, req RecordConversionRequest) (*CommissionResponse, error) {
	partner, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID)
	if err != nil {
		return nil, err
	}

	orderID := strings.TrimSpace(req.OrderID)
	exists, err := s.commissionRepo.ExistsByOrderID(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateOrder
	}

	if req.LinkID != nil {
		link, err := s.linkRepo.FindByIDForTenant(ctx, tenantID, *req.LinkID)
		if err != nil {
			if shared.IsNotFound(err) {
				return nil, shared.NewDomainError("INVALID_LINK", "Link does not exist")
			}
			return nil, err
		}
		if link.PartnerID != partner.ID {
			return nil, shared.NewDomainError("INVALID_LINK", "Link belongs to another partner")
		}
	}

	amount, err := valueobject.NewMoney(req.OrderAmount, valueobject.Currency(strings.ToUpper(req.Currency)))
	if err != nil {
		return nil, shared.WrapDomainError("INVALID_AMOUNT", "Order amount must be positive", err)
	}
	commission, err := affiliate.NewCommission(partner, req.LinkID, orderID, amount)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.commissionRepo.Save(ctx, commission); err != nil {
			return err
		}
		if req.LinkID != nil {
			return s.linkRepo.IncrementConversions(ctx, *req.LinkID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.afterSave(ctx, commission)

	response := ToCommissionResponse(commission)
	return &response, nil
}

// GetByID retrieves a commission by ID
func (s *CommissionService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*CommissionResponse, error) {
	commission, err := s.commissionRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToCommissionResponse(commission)
	return &response, nil
}

// List retrieves commissions with filtering and pagination
func (s *CommissionService) List(ctx context.Context, tenantID uuid.UUID, filter CommissionListFilter) ([]CommissionResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
	if filter.PartnerID != nil {
		domainFilter.Filters[affiliate.FilterPartnerID] = *filter.PartnerID
	}
	if filter.Status != "" {
		domainFilter.Filters[affiliate.FilterStatus] = filter.Status
	}
	domainFilter = domainFilter.Normalize()

	commissions, err := s.commissionRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.commissionRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CommissionResponse, len(commissions))
	for i := range commissions {
		responses[i] = ToCommissionResponse(&commissions[i])
	}
	return responses, total, nil
}

// Approve approves a pending commission
func (s *CommissionService) Approve(ctx context.Context, tenantID, id uuid.UUID) (*CommissionResponse, error) {
	return s.transition(ctx, tenantID, id, affiliate.CommissionStatusApproved, "")
}

// Reject rejects a pending commission; a reason is required
func (s *CommissionService) Reject(ctx context.Context, tenantID, id uuid.UUID, req TransitionCommissionRequest) (*CommissionResponse, error) {
	return s.transition(ctx, tenantID, id, affiliate.CommissionStatusRejected, strings.TrimSpace(req.Reason))
}

// Pay marks an approved commission as paid
func (s *CommissionService) Pay(ctx context.Context, tenantID, id uuid.UUID, req TransitionCommissionRequest) (*CommissionResponse, error) {
	return s.transition(ctx, tenantID, id, affiliate.CommissionStatusPaid, strings.TrimSpace(req.Reference))
}

// Cancel cancels a pending or approved commission
func (s *CommissionService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*CommissionResponse, error) {
	return s.transition(ctx, tenantID, id, affiliate.CommissionStatusCancelled, "")
}

func (s *CommissionService) transition(ctx context.Context, tenantID, id uuid.UUID, next affiliate.CommissionStatus, reference string) (*CommissionResponse, error) {
	commission, err := s.commissionRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := commission.TransitionTo(next, reference, s.now().UTC()); err != nil {
		return nil, err
	}
	if err := s.commissionRepo.Save(ctx, commission); err != nil {
		return nil, err
	}
	s.afterSave(ctx, commission)

	response := ToCommissionResponse(commission)
	return &response, nil
}

func (s *CommissionService) afterSave(ctx context.Context, commission *affiliate.Commission) {
	if s.metrics != nil {
		s.metrics.RecordCommission(ctx, commission.TenantID, string(commission.Status), commission.Amount.Amount())
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, commission)
}
