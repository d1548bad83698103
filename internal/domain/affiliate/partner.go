// Package affiliate tracks partners, their referral links, the commissions
// earned on referred orders and the resulting earnings.
package affiliate

import (
	"crypto/rand"
	"net/mail"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerStatus is the lifecycle state of a partner
type PartnerStatus string

const (
	PartnerStatusPending   PartnerStatus = "pending"
	PartnerStatusActive    PartnerStatus = "active"
	PartnerStatusSuspended PartnerStatus = "suspended"
	PartnerStatusInactive  PartnerStatus = "inactive"
)

// DefaultCommissionRate is applied when a partner is created without a rate
var DefaultCommissionRate = valueobject.MustPercentage("10")

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Partner refers customers and earns commission on their orders
type Partner struct {
	shared.TenantAggregateRoot
	Name           string
	Email          string
	ReferralCode   string
	CommissionRate valueobject.Percentage
	Status         PartnerStatus
	UserID         *uuid.UUID
	Website        string
	Notes          string
}

// NewPartner creates a pending partner with a generated referral code
func NewPartner(tenantID uuid.UUID, name, email string, rate *decimal.Decimal) (*Partner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	commission := DefaultCommissionRate
	if rate != nil {
		p, err := valueobject.NewPercentage(*rate)
		if err != nil {
			return nil, shared.WrapDomainError("INVALID_RATE", "Commission rate must be between 0 and 100", err)
		}
		commission = p
	}

	p := &Partner{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Email:               strings.ToLower(strings.TrimSpace(email)),
		ReferralCode:        GenerateCode(8),
		CommissionRate:      commission,
		Status:              PartnerStatusPending,
	}
	p.AddDomainEvent(NewPartnerEvent(EventTypePartnerCreated, p))
	return p, nil
}

// Update changes the profile fields
func (p *Partner) Update(name, website, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	p.Name = name
	p.Website = strings.TrimSpace(website)
	p.Notes = notes
	p.IncrementVersion()
	return nil
}

// SetCommissionRate changes the rate used for future commissions
func (p *Partner) SetCommissionRate(rate decimal.Decimal) error {
	pct, err := valueobject.NewPercentage(rate)
	if err != nil {
		return shared.WrapDomainError("INVALID_RATE", "Commission rate must be between 0 and 100", err)
	}
	p.CommissionRate = pct
	p.IncrementVersion()
	return nil
}

// Activate approves the partner
func (p *Partner) Activate() error {
	if p.Status == PartnerStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Partner is already active")
	}
	p.Status = PartnerStatusActive
	p.IncrementVersion()
	p.AddDomainEvent(NewPartnerEvent(EventTypePartnerActivated, p))
	return nil
}

// Suspend stops commission accrual
func (p *Partner) Suspend() error {
	if p.Status != PartnerStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active partners can be suspended")
	}
	p.Status = PartnerStatusSuspended
	p.IncrementVersion()
	return nil
}

// Deactivate soft deletes the partner
func (p *Partner) Deactivate() error {
	if p.Status == PartnerStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Partner is already inactive")
	}
	p.Status = PartnerStatusInactive
	p.IncrementVersion()
	p.AddDomainEvent(NewPartnerEvent(EventTypePartnerDeactivated, p))
	return nil
}

// CanEarn reports whether new commissions may be recorded
func (p *Partner) CanEarn() bool {
	return p.Status == PartnerStatusActive
}

// GenerateCode returns a random code from an alphabet without look-alike characters
func GenerateCode(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	for i := range buf {
		buf[i] = codeAlphabet[int(buf[i])%len(codeAlphabet)]
	}
	return string(buf)
}
