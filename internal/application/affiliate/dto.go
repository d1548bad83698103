package affiliate

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Partner DTOs
// =============================================================================

// CreatePartnerRequest represents a request to create a new partner
type CreatePartnerRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Email          string           `json:"email" binding:"required,email,max=200"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	Website        string           `json:"website" binding:"omitempty,url,max=500"`
	Notes          string           `json:"notes"`
	UserID         *uuid.UUID       `json:"user_id"`
	Activate       bool             `json:"activate"`
	CreatedBy      *uuid.UUID       `json:"-"` // Set from JWT context, not from request body
}

// UpdatePartnerRequest represents a request to update a partner
type UpdatePartnerRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Website        *string          `json:"website" binding:"omitempty,max=500"`
	Notes          *string          `json:"notes"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
	Status         *string          `json:"status" binding:"omitempty,oneof=active suspended"`
}

// PartnerListFilter holds partner list query parameters
type PartnerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=pending active suspended inactive"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=name created_at updated_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PartnerResponse represents a partner in API responses
type PartnerResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	ReferralCode   string          `json:"referral_code"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Status         string          `json:"status"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	Website        string          `json:"website,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// ToPartnerResponse converts a domain Partner to PartnerResponse
func ToPartnerResponse(p *affiliate.Partner) PartnerResponse {
	return PartnerResponse{
		ID:             p.ID,
		TenantID:       p.TenantID,
		Name:           p.Name,
		Email:          p.Email,
		ReferralCode:   p.ReferralCode,
		CommissionRate: p.CommissionRate.Decimal(),
		Status:         string(p.Status),
		UserID:         p.UserID,
		Website:        p.Website,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Version:        p.Version,
	}
}

// =============================================================================
// Link DTOs
// =============================================================================

// CreateLinkRequest represents a request to create a partner link
type CreateLinkRequest struct {
	PartnerID uuid.UUID `json:"partner_id" binding:"required"`
	Name      string    `json:"name" binding:"max=200"`
	TargetURL string    `json:"target_url" binding:"required,url,max=2000"`
}

// UpdateLinkRequest represents a request to update a partner link
type UpdateLinkRequest struct {
	Name      *string `json:"name" binding:"omitempty,max=200"`
	TargetURL *string `json:"target_url" binding:"omitempty,url,max=2000"`
}

// LinkListFilter holds link list query parameters
type LinkListFilter struct {
	PartnerID       *uuid.UUID `form:"-"`
	Search          string     `form:"search"`
	IncludeInactive bool       `form:"include_inactive"`
	Page            int        `form:"page" binding:"min=0"`
	PageSize        int        `form:"page_size" binding:"min=0,max=100"`
}

// LinkResponse represents a partner link in API responses
type LinkResponse struct {
	ID             uuid.UUID `json:"id"`
	PartnerID      uuid.UUID `json:"partner_id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	TargetURL      string    `json:"target_url"`
	ShortPath      string    `json:"short_path"`
	Clicks         int64     `json:"clicks"`
	Conversions    int64     `json:"conversions"`
	ConversionRate float64   `json:"conversion_rate"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToLinkResponse converts a domain PartnerLink to LinkResponse
func ToLinkResponse(l *affiliate.PartnerLink) LinkResponse {
	return LinkResponse{
		ID:             l.ID,
		PartnerID:      l.PartnerID,
		Name:           l.Name,
		Code:           l.Code,
		TargetURL:      l.TargetURL,
		ShortPath:      "/r/" + l.Code,
		Clicks:         l.Clicks,
		Conversions:    l.Conversions,
		ConversionRate: l.ConversionRate(),
		IsActive:       l.IsActive,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

// ClickRequest identifies the visitor following a link
type ClickRequest struct {
	Code      string
	IP        string
	UserAgent string
}

// ClickResult is where the visitor goes next
type ClickResult struct {
	Location string
	Counted  bool
}

// =============================================================================
// Commission DTOs
// =============================================================================

// RecordConversionRequest attributes an order to a partner
type RecordConversionRequest struct {
	OrderID     string          `json:"order_id" binding:"required,max=100"`
	OrderAmount decimal.Decimal `json:"order_amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,len=3"`
	LinkID      *uuid.UUID      `json:"link_id"`
}

// TransitionCommissionRequest carries the reason or payout reference of a transition
type TransitionCommissionRequest struct {
	Reason    string `json:"reason" binding:"max=500"`
	Reference string `json:"reference" binding:"max=200"`
}

// CommissionListFilter holds commission list query parameters
type CommissionListFilter struct {
	PartnerID *uuid.UUID `form:"-"`
	Status    string     `form:"status" binding:"omitempty,oneof=pending approved paid rejected cancelled"`
	Page      int        `form:"page" binding:"min=0"`
	PageSize  int        `form:"page_size" binding:"min=0,max=100"`
}

// CommissionResponse represents a commission in API responses
type CommissionResponse struct {
	ID              uuid.UUID       `json:"id"`
	PartnerID       uuid.UUID       `json:"partner_id"`
	LinkID          *uuid.UUID      `json:"link_id,omitempty"`
	OrderID         string          `json:"order_id"`
	OrderAmount     decimal.Decimal `json:"order_amount"`
	Rate            decimal.Decimal `json:"rate"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	PayoutReference string          `json:"payout_reference,omitempty"`
	ApprovedAt      *time.Time      `json:"approved_at,omitempty"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ToCommissionResponse converts a domain Commission to CommissionResponse
func ToCommissionResponse(c *affiliate.Commission) CommissionResponse {
	return CommissionResponse{
		ID:              c.ID,
		PartnerID:       c.PartnerID,
		LinkID:          c.LinkID,
		OrderID:         c.OrderID,
		OrderAmount:     c.OrderAmount.Amount(),
		Rate:            c.Rate.Decimal(),
		Amount:          c.Amount.Amount(),
		Currency:        string(c.Amount.Currency()),
		Status:          string(c.Status),
		RejectionReason: c.RejectionReason,
		PayoutReference: c.PayoutReference,
		ApprovedAt:      c.ApprovedAt,
		PaidAt:          c.PaidAt,
		CreatedAt:       c.CreatedAt,
	}
}

// =============================================================================
// Earnings DTOs
// =============================================================================

// EarningsFilter selects the period of an earnings summary; empty means the current month
type EarningsFilter struct {
	Period string `form:"period"`
}

// EarningsResponse is one partner's earnings for one period
type EarningsResponse struct {
	PartnerID   uuid.UUID       `json:"partner_id"`
	PartnerName string          `json:"partner_name,omitempty"`
	Period      string          `json:"period"`
	Clicks      int64           `json:"clicks"`
	Conversions int64           `json:"conversions"`
	Pending     decimal.Decimal `json:"pending"`
	Approved    decimal.Decimal `json:"approved"`
	Paid        decimal.Decimal `json:"paid"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToEarningsResponse converts a domain Earnings to EarningsResponse
func ToEarningsResponse(e *affiliate.Earnings) EarningsResponse {
	return EarningsResponse{
		PartnerID:   e.PartnerID,
		Period:      e.Period,
		Clicks:      e.Clicks,
		Conversions: e.Conversions,
		Pending:     e.Pending.Amount(),
		Approved:    e.Approved.Amount(),
		Paid:        e.Paid.Amount(),
		Total:       e.Total.Amount(),
		Currency:    string(e.Total.Currency()),
		UpdatedAt:   e.UpdatedAt,
	}
}

// EarningsSummaryResponse totals a period across partners
type EarningsSummaryResponse struct {
	Period   string             `json:"period"`
	Partners []EarningsResponse `json:"partners"`
	Pending  decimal.Decimal    `json:"pending"`
	Approved decimal.Decimal    `json:"approved"`
	Paid     decimal.Decimal    `json:"paid"`
	Total    decimal.Decimal    `json:"total"`
}
