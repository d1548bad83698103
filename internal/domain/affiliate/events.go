package affiliate

import (
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypePartner    = "Partner"
	AggregateTypeLink       = "PartnerLink"
	AggregateTypeCommission = "Commission"
)

// Event type constants
const (
	EventTypePartnerCreated      = "PartnerCreated"
	EventTypePartnerActivated    = "PartnerActivated"
	EventTypePartnerDeactivated  = "PartnerDeactivated"
	EventTypeLinkClicked         = "PartnerLinkClicked"
	EventTypeCommissionCreated   = "CommissionCreated"
	EventTypeCommissionApproved  = "CommissionApproved"
	EventTypeCommissionRejected  = "CommissionRejected"
	EventTypeCommissionPaid      = "CommissionPaid"
	EventTypeCommissionCancelled = "CommissionCancelled"
)

var commissionEventTypes = map[CommissionStatus]string{
	CommissionStatusApproved:  EventTypeCommissionApproved,
	CommissionStatusRejected:  EventTypeCommissionRejected,
	CommissionStatusPaid:      EventTypeCommissionPaid,
	CommissionStatusCancelled: EventTypeCommissionCancelled,
}

// PartnerEvent carries partner lifecycle changes
type PartnerEvent struct {
	shared.BaseDomainEvent
	PartnerID    uuid.UUID     `json:"partner_id"`
	Name         string        `json:"name"`
	ReferralCode string        `json:"referral_code"`
	Status       PartnerStatus `json:"status"`
}

// NewPartnerEvent builds a partner event of the given type
func NewPartnerEvent(eventType string, p *Partner) *PartnerEvent {
	return &PartnerEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypePartner, p.ID, p.TenantID),
		PartnerID:       p.ID,
		Name:            p.Name,
		ReferralCode:    p.ReferralCode,
		Status:          p.Status,
	}
}

// LinkClickedEvent is raised for each unique click on a partner link
type LinkClickedEvent struct {
	shared.BaseDomainEvent
	LinkID    uuid.UUID `json:"link_id"`
	PartnerID uuid.UUID `json:"partner_id"`
	Code      string    `json:"code"`
}

// NewLinkClickedEvent builds a click event
func NewLinkClickedEvent(l *PartnerLink) *LinkClickedEvent {
	return &LinkClickedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLinkClicked, AggregateTypeLink, l.ID, l.TenantID),
		LinkID:          l.ID,
		PartnerID:       l.PartnerID,
		Code:            l.Code,
	}
}

// CommissionEvent carries commission changes
type CommissionEvent struct {
	shared.BaseDomainEvent
	CommissionID uuid.UUID        `json:"commission_id"`
	PartnerID    uuid.UUID        `json:"partner_id"`
	OrderID      string           `json:"order_id"`
	Amount       string           `json:"amount"`
	Currency     string           `json:"currency"`
	Status       CommissionStatus `json:"status"`
}

// NewCommissionEvent builds a commission event of the given type
func NewCommissionEvent(eventType string, c *Commission) *CommissionEvent {
	return &CommissionEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeCommission, c.ID, c.TenantID),
		CommissionID:    c.ID,
		PartnerID:       c.PartnerID,
		OrderID:         c.OrderID,
		Amount:          c.Amount.Amount().StringFixed(2),
		Currency:        string(c.Amount.Currency()),
		Status:          c.Status,
	}
}
