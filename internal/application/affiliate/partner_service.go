package affiliate

import (
	"context"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ErrDuplicateEmail is returned when another partner of the tenant uses the email
var ErrDuplicateEmail = shared.NewDomainError("DUPLICATE_EMAIL", "A partner with this email already exists")

// PartnerService handles partner business operations
type PartnerService struct {
	partnerRepo    affiliate.PartnerRepository
	eventPublisher shared.EventPublisher
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(partnerRepo affiliate.PartnerRepository) *PartnerService {
	return &PartnerService{
		partnerRepo: partnerRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PartnerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new partner
func (s *PartnerService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePartnerRequest) (*PartnerResponse, error) {
	exists, err := s.partnerRepo.ExistsByEmail(ctx, tenantID, req.Email, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	partner, err := affiliate.NewPartner(tenantID, req.Name, req.Email, req.CommissionRate)
	if err != nil {
		return nil, err
	}
	if req.Website != "" || req.Notes != "" {
		if err := partner.Update(partner.Name, req.Website, req.Notes); err != nil {
			return nil, err
		}
	}
	partner.UserID = req.UserID
	if req.CreatedBy != nil {
		partner.SetCreatedBy(*req.CreatedBy)
	}
	if req.Activate {
		if err := partner.Activate(); err != nil {
			return nil, err
		}
	}

	if err := s.partnerRepo.Save(ctx, partner); err != nil {
		return nil, err
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, partner)

	response := ToPartnerResponse(partner)
	return &response, nil
}

// GetByID retrieves a partner by ID
func (s *PartnerService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*PartnerResponse, error) {
	partner, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToPartnerResponse(partner)
	return &response, nil
}

// GetByUser retrieves the partner profile linked to a user account
func (s *PartnerService) GetByUser(ctx context.Context, tenantID, userID uuid.UUID) (*PartnerResponse, error) {
	partner, err := s.partnerRepo.FindByUserID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	response := ToPartnerResponse(partner)
	return &response, nil
}

// List retrieves a list of partners with filtering and pagination
func (s *PartnerService) List(ctx context.Context, tenantID uuid.UUID, filter PartnerListFilter) ([]PartnerResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if domainFilter.OrderBy == "" {
		domainFilter.OrderBy = "name"
		domainFilter.OrderDir = "asc"
	}
	if filter.Status != "" {
		domainFilter.Filters[affiliate.FilterStatus] = filter.Status
	}
	domainFilter = domainFilter.Normalize()

	partners, err := s.partnerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.partnerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PartnerResponse, len(partners))
	for i := range partners {
		responses[i] = ToPartnerResponse(&partners[i])
	}
	return responses, total, nil
}

// Update updates a partner
func (s *PartnerService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdatePartnerRequest) (*PartnerResponse, error) {
	partner, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Website != nil || req.Notes != nil {
		name, website, notes := partner.Name, partner.Website, partner.Notes
		if req.Name != nil {
			name = *req.Name
		}
		if req.Website != nil {
			website = *req.Website
		}
		if req.Notes != nil {
			notes = *req.Notes
		}
		if err := partner.Update(name, website, notes); err != nil {
			return nil, err
		}
	}
	if req.CommissionRate != nil {
		if err := partner.SetCommissionRate(*req.CommissionRate); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		switch affiliate.PartnerStatus(*req.Status) {
		case affiliate.PartnerStatusActive:
			err = partner.Activate()
		case affiliate.PartnerStatusSuspended:
			err = partner.Suspend()
		default:
			err = shared.NewDomainError("INVALID_STATUS", "Partner status must be active or suspended")
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.partnerRepo.Save(ctx, partner); err != nil {
		return nil, err
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, partner)

	response := ToPartnerResponse(partner)
	return &response, nil
}

// Delete marks a partner inactive. Existing commissions are kept.
func (s *PartnerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	partner, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := partner.Deactivate(); err != nil {
		return err
	}
	if err := s.partnerRepo.Save(ctx, partner); err != nil {
		return err
	}
	_ = shared.PublishPending(ctx, s.eventPublisher, partner)
	return nil
}
