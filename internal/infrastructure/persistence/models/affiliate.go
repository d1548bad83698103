package models

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartnerModel is the persistence model for affiliate partners
type PartnerModel struct {
	TenantAggregateModel
	Name           string                  `gorm:"type:varchar(200);not null"`
	Email          string                  `gorm:"type:varchar(255);not null;index"`
	ReferralCode   string                  `gorm:"type:varchar(20);not null;uniqueIndex"`
	CommissionRate decimal.Decimal         `gorm:"type:decimal(5,2);not null"`
	Status         affiliate.PartnerStatus `gorm:"type:varchar(20);not null;index"`
	UserID         *uuid.UUID              `gorm:"type:uuid;index"`
	Website        string                  `gorm:"type:varchar(500)"`
	Notes          string                  `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PartnerModel) TableName() string {
	return "partners"
}

// ToDomain converts the model to a domain Partner
func (m *PartnerModel) ToDomain() *affiliate.Partner {
	rate, err := valueobject.NewPercentage(m.CommissionRate)
	if err != nil {
		rate = affiliate.DefaultCommissionRate
	}
	p := &affiliate.Partner{
		Name:           m.Name,
		Email:          m.Email,
		ReferralCode:   m.ReferralCode,
		CommissionRate: rate,
		Status:         m.Status,
		UserID:         m.UserID,
		Website:        m.Website,
		Notes:          m.Notes,
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// PartnerModelFromDomain creates a model from a domain Partner
func PartnerModelFromDomain(p *affiliate.Partner) *PartnerModel {
	m := &PartnerModel{
		Name:           p.Name,
		Email:          p.Email,
		ReferralCode:   p.ReferralCode,
		CommissionRate: p.CommissionRate.Decimal(),
		Status:         p.Status,
		UserID:         p.UserID,
		Website:        p.Website,
		Notes:          p.Notes,
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// PartnerLinkModel is the persistence model for tracked partner links
type PartnerLinkModel struct {
	TenantAggregateModel
	PartnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Code        string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	TargetURL   string    `gorm:"type:varchar(2048);not null"`
	Clicks      int64     `gorm:"not null;default:0"`
	Conversions int64     `gorm:"not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PartnerLinkModel) TableName() string {
	return "partner_links"
}

// ToDomain converts the model to a domain PartnerLink
func (m *PartnerLinkModel) ToDomain() *affiliate.PartnerLink {
	l := &affiliate.PartnerLink{
		PartnerID:   m.PartnerID,
		Name:        m.Name,
		Code:        m.Code,
		TargetURL:   m.TargetURL,
		Clicks:      m.Clicks,
		Conversions: m.Conversions,
		IsActive:    m.IsActive,
	}
	m.PopulateTenantAggregateRoot(&l.TenantAggregateRoot)
	return l
}

// PartnerLinkModelFromDomain creates a model from a domain PartnerLink
func PartnerLinkModelFromDomain(l *affiliate.PartnerLink) *PartnerLinkModel {
	m := &PartnerLinkModel{
		PartnerID:   l.PartnerID,
		Name:        l.Name,
		Code:        l.Code,
		TargetURL:   l.TargetURL,
		Clicks:      l.Clicks,
		Conversions: l.Conversions,
		IsActive:    l.IsActive,
	}
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	return m
}

// CommissionModel is the persistence model for commissions
type CommissionModel struct {
	TenantAggregateModel
	PartnerID       uuid.UUID                  `gorm:"type:uuid;not null;index"`
	LinkID          *uuid.UUID                 `gorm:"type:uuid;index"`
	OrderID         string                     `gorm:"type:varchar(100);not null;index"`
	Currency        string                     `gorm:"type:varchar(3);not null;default:'USD'"`
	OrderAmount     decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Rate            decimal.Decimal            `gorm:"type:decimal(5,2);not null"`
	Amount          decimal.Decimal            `gorm:"type:decimal(18,2);not null"`
	Status          affiliate.CommissionStatus `gorm:"type:varchar(20);not null;index"`
	RejectionReason string                     `gorm:"type:varchar(500)"`
	PayoutReference string                     `gorm:"type:varchar(200)"`
	ApprovedAt      *time.Time
	PaidAt          *time.Time
}

// TableName returns the table name for GORM
func (CommissionModel) TableName() string {
	return "commissions"
}

// ToDomain converts the model to a domain Commission
func (m *CommissionModel) ToDomain() *affiliate.Commission {
	currency := valueobject.Currency(m.Currency)
	rate, err := valueobject.NewPercentage(m.Rate)
	if err != nil {
		rate = valueobject.Percentage{}
	}
	c := &affiliate.Commission{
		PartnerID:       m.PartnerID,
		LinkID:          m.LinkID,
		OrderID:         m.OrderID,
		OrderAmount:     moneyOf(m.OrderAmount, currency),
		Rate:            rate,
		Amount:          moneyOf(m.Amount, currency),
		Status:          m.Status,
		RejectionReason: m.RejectionReason,
		PayoutReference: m.PayoutReference,
		ApprovedAt:      m.ApprovedAt,
		PaidAt:          m.PaidAt,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// CommissionModelFromDomain creates a model from a domain Commission
func CommissionModelFromDomain(c *affiliate.Commission) *CommissionModel {
	m := &CommissionModel{
		PartnerID:       c.PartnerID,
		LinkID:          c.LinkID,
		OrderID:         c.OrderID,
		Currency:        string(c.Amount.Currency()),
		OrderAmount:     c.OrderAmount.Amount(),
		Rate:            c.Rate.Decimal(),
		Amount:          c.Amount.Amount(),
		Status:          c.Status,
		RejectionReason: c.RejectionReason,
		PayoutReference: c.PayoutReference,
		ApprovedAt:      c.ApprovedAt,
		PaidAt:          c.PaidAt,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// EarningsModel is the materialised monthly rollup of one partner
type EarningsModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	PartnerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Period      string          `gorm:"type:varchar(7);not null;index"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
	Clicks      int64           `gorm:"not null;default:0"`
	Conversions int64           `gorm:"not null;default:0"`
	Pending     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Approved    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Paid        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EarningsModel) TableName() string {
	return "partner_earnings"
}

// ToDomain converts the model to domain Earnings
func (m *EarningsModel) ToDomain() *affiliate.Earnings {
	currency := valueobject.Currency(m.Currency)
	return &affiliate.Earnings{
		ID:          m.ID,
		TenantID:    m.TenantID,
		PartnerID:   m.PartnerID,
		Period:      m.Period,
		Clicks:      m.Clicks,
		Conversions: m.Conversions,
		Pending:     moneyOf(m.Pending, currency),
		Approved:    moneyOf(m.Approved, currency),
		Paid:        moneyOf(m.Paid, currency),
		Total:       moneyOf(m.Total, currency),
		UpdatedAt:   m.UpdatedAt,
	}
}

// EarningsModelFromDomain creates a model from domain Earnings
func EarningsModelFromDomain(e *affiliate.Earnings) *EarningsModel {
	return &EarningsModel{
		ID:          e.ID,
		TenantID:    e.TenantID,
		PartnerID:   e.PartnerID,
		Period:      e.Period,
		Currency:    string(e.Total.Currency()),
		Clicks:      e.Clicks,
		Conversions: e.Conversions,
		Pending:     e.Pending.Amount(),
		Approved:    e.Approved.Amount(),
		Paid:        e.Paid.Amount(),
		Total:       e.Total.Amount(),
		UpdatedAt:   e.UpdatedAt,
	}
}

// moneyOf rebuilds a Money read from a non-negative column
func moneyOf(amount decimal.Decimal, currency valueobject.Currency) valueobject.Money {
	m, err := valueobject.NewMoney(amount, currency)
	if err != nil {
		return valueobject.Zero(currency)
	}
	return m
}
