package affiliate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

const (
	// DefaultClickDedupWindow applies when no window is configured
	DefaultClickDedupWindow = 24 * time.Hour
	maxCodeAttempts         = 5
)

// LinkService manages partner links and records clicks on them
type LinkService struct {
	linkRepo       affiliate.LinkRepository
	partnerRepo    affiliate.PartnerRepository
	dedup          shared.DedupStore
	dedupWindow    time.Duration
	eventPublisher shared.EventPublisher
	metrics        *telemetry.ContentMetrics
}

// NewLinkService creates a new LinkService. dedup may be nil, in which case
// every click counts.
func NewLinkService(linkRepo affiliate.LinkRepository, partnerRepo affiliate.PartnerRepository, dedup shared.DedupStore, dedupWindow time.Duration) *LinkService {
	if dedupWindow <= 0 {
		dedupWindow = DefaultClickDedupWindow
	}
	return &LinkService{
		linkRepo:    linkRepo,
		partnerRepo: partnerRepo,
		dedup:       dedup,
		dedupWindow: dedupWindow,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LinkService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetContentMetrics sets the content metrics collector
func (s *LinkService) SetContentMetrics(m *telemetry.ContentMetrics) {
	s.metrics = m
}

// Create creates a link for an existing, non-deleted partner
func (s *LinkService) Create(ctx context.Context, tenantID uuid.UUID, req CreateLinkRequest) (*LinkResponse, error) {
	partner, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, req.PartnerID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("INVALID_PARTNER", "Partner does not exist")
		}
		return nil, err
	}
	if partner.Status == affiliate.PartnerStatusInactive {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Partner has been deleted")
	}

	link, err := affiliate.NewPartnerLink(tenantID, partner.ID, req.Name, req.TargetURL)
	if err != nil {
		return nil, err
	}
	if err := s.assignFreeCode(ctx, link); err != nil {
		return nil, err
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}

	response := ToLinkResponse(link)
	return &response, nil
}

// GetByID retrieves a link by ID
func (s *LinkService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*LinkResponse, error) {
	link, err := s.linkRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	response := ToLinkResponse(link)
	return &response, nil
}

// List retrieves links with filtering and pagination
func (s *LinkService) List(ctx context.Context, tenantID uuid.UUID, filter LinkListFilter) ([]LinkResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
	if filter.PartnerID != nil {
		domainFilter.Filters[affiliate.FilterPartnerID] = *filter.PartnerID
	}
	if !filter.IncludeInactive {
		domainFilter.Filters[affiliate.FilterActive] = true
	}
	domainFilter = domainFilter.Normalize()

	links, err := s.linkRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.linkRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LinkResponse, len(links))
	for i := range links {
		responses[i] = ToLinkResponse(&links[i])
	}
	return responses, total, nil
}

// Update updates a link
func (s *LinkService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateLinkRequest) (*LinkResponse, error) {
	link, err := s.linkRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !link.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Link has been deleted")
	}

	name, target := "", link.TargetURL
	if req.Name != nil {
		name = *req.Name
	}
	if req.TargetURL != nil {
		target = *req.TargetURL
	}
	if err := link.Update(name, target); err != nil {
		return nil, err
	}
	if err := s.linkRepo.Save(ctx, link); err != nil {
		return nil, err
	}

	response := ToLinkResponse(link)
	return &response, nil
}

// Delete deactivates a link; its code stops redirecting
func (s *LinkService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	link, err := s.linkRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	link.Deactivate()
	return s.linkRepo.Save(ctx, link)
}

// Click resolves a short code to its destination. A visitor (ip + user agent)
// is counted at most once per link within the de-duplication window.
func (s *LinkService) Click(ctx context.Context, req ClickRequest) (*ClickResult, error) {
	link, err := s.linkRepo.FindByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if !link.IsActive {
		s.recordClick(ctx, link.TenantID, telemetry.ClickInactive)
		return nil, shared.ErrNotFound
	}
	partner, err := s.partnerRepo.FindByIDForTenant(ctx, link.TenantID, link.PartnerID)
	if err != nil {
		return nil, err
	}
	if partner.Status == affiliate.PartnerStatusInactive {
		s.recordClick(ctx, link.TenantID, telemetry.ClickInactive)
		return nil, shared.ErrNotFound
	}

	result := &ClickResult{Location: link.Destination(partner.ReferralCode)}

	first := true
	if s.dedup != nil {
		// a failing store must not block the redirect; the click is counted
		if fresh, err := s.dedup.MarkOnce(ctx, clickKey(link.ID, req.IP, req.UserAgent), s.dedupWindow); err == nil {
			first = fresh
		}
	}
	if !first {
		s.recordClick(ctx, link.TenantID, telemetry.ClickDuplicate)
		return result, nil
	}

	if err := s.linkRepo.IncrementClicks(ctx, link.ID); err != nil {
		return nil, err
	}
	link.RecordClick()
	_ = shared.PublishPending(ctx, s.eventPublisher, link)
	s.recordClick(ctx, link.TenantID, telemetry.ClickCounted)

	result.Counted = true
	return result, nil
}

func (s *LinkService) recordClick(ctx context.Context, tenantID uuid.UUID, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordLinkClick(ctx, tenantID, outcome)
	}
}

// assignFreeCode regenerates the short code until it is unused
func (s *LinkService) assignFreeCode(ctx context.Context, link *affiliate.PartnerLink) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		_, err := s.linkRepo.FindByCode(ctx, link.Code)
		if shared.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		fresh, err := affiliate.NewPartnerLink(link.TenantID, link.PartnerID, link.Name, link.TargetURL)
		if err != nil {
			return err
		}
		link.Code = fresh.Code
	}
	return shared.NewDomainError("CODE_EXHAUSTED", "Could not allocate a unique link code")
}

// clickKey identifies one visitor of one link without storing the raw ip
func clickKey(linkID uuid.UUID, ip, userAgent string) string {
	sum := sha256.Sum256([]byte(ip + "|" + userAgent))
	return "click:" + linkID.String() + ":" + hex.EncodeToString(sum[:16])
}
