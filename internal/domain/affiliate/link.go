package affiliate

import (
	"net/url"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReferralParam is the query parameter appended to link targets
const ReferralParam = "ref"

// PartnerLink is a short tracking link owned by a partner
type PartnerLink struct {
	shared.TenantAggregateRoot
	PartnerID   uuid.UUID
	Name        string
	Code        string
	TargetURL   string
	Clicks      int64
	Conversions int64
	IsActive    bool
}

// NewPartnerLink creates an active link with a generated short code
func NewPartnerLink(tenantID, partnerID uuid.UUID, name, targetURL string) (*PartnerLink, error) {
	if err := validateTarget(targetURL); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = targetURL
	}
	return &PartnerLink{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PartnerID:           partnerID,
		Name:                name,
		Code:                strings.ToLower(GenerateCode(7)),
		TargetURL:           targetURL,
		IsActive:            true,
	}, nil
}

// Update changes the name and target
func (l *PartnerLink) Update(name, targetURL string) error {
	if err := validateTarget(targetURL); err != nil {
		return err
	}
	if strings.TrimSpace(name) != "" {
		l.Name = strings.TrimSpace(name)
	}
	l.TargetURL = targetURL
	l.IncrementVersion()
	return nil
}

// Deactivate soft deletes the link; its code stops redirecting
func (l *PartnerLink) Deactivate() {
	l.IsActive = false
	l.IncrementVersion()
}

// RecordClick counts a unique click
func (l *PartnerLink) RecordClick() {
	l.Clicks++
	l.AddDomainEvent(NewLinkClickedEvent(l))
}

// RecordConversion counts an attributed order
func (l *PartnerLink) RecordConversion() {
	l.Conversions++
}

// Destination is the target URL with the referral code attached
func (l *PartnerLink) Destination(referralCode string) string {
	u, err := url.Parse(l.TargetURL)
	if err != nil {
		return l.TargetURL
	}
	q := u.Query()
	q.Set(ReferralParam, referralCode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ConversionRate is conversions per click as a fraction
func (l *PartnerLink) ConversionRate() float64 {
	if l.Clicks == 0 {
		return 0
	}
	return float64(l.Conversions) / float64(l.Clicks)
}

func validateTarget(target string) error {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return shared.NewDomainError("INVALID_URL", "Target must be an absolute http(s) URL")
	}
	return nil
}
