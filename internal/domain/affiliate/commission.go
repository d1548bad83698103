package affiliate

import (
	"strings"
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CommissionStatus is the payout state of a commission
type CommissionStatus string

const (
	CommissionStatusPending   CommissionStatus = "pending"
	CommissionStatusApproved  CommissionStatus = "approved"
	CommissionStatusPaid      CommissionStatus = "paid"
	CommissionStatusRejected  CommissionStatus = "rejected"
	CommissionStatusCancelled CommissionStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s CommissionStatus) IsValid() bool {
	switch s {
	case CommissionStatusPending, CommissionStatusApproved, CommissionStatusPaid,
		CommissionStatusRejected, CommissionStatusCancelled:
		return true
	}
	return false
}

var commissionTransitions = map[CommissionStatus][]CommissionStatus{
	CommissionStatusPending:  {CommissionStatusApproved, CommissionStatusRejected, CommissionStatusCancelled},
	CommissionStatusApproved: {CommissionStatusPaid, CommissionStatusCancelled},
}

// CanTransitionTo reports whether the status may move to next
func (s CommissionStatus) CanTransitionTo(next CommissionStatus) bool {
	for _, allowed := range commissionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Commission is the amount a partner earns on one referred order
type Commission struct {
	shared.TenantAggregateRoot
	PartnerID       uuid.UUID
	LinkID          *uuid.UUID
	OrderID         string
	OrderAmount     valueobject.Money
	Rate            valueobject.Percentage
	Amount          valueobject.Money
	Status          CommissionStatus
	RejectionReason string
	PayoutReference string
	ApprovedAt      *time.Time
	PaidAt          *time.Time
}

// NewCommission records a pending commission at the partner's current rate
func NewCommission(partner *Partner, linkID *uuid.UUID, orderID string, orderAmount valueobject.Money) (*Commission, error) {
	if !partner.CanEarn() {
		return nil, shared.NewDomainError("PARTNER_NOT_ACTIVE", "Partner is not active")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID is required")
	}
	if orderAmount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Order amount must be positive")
	}
	c := &Commission{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(partner.TenantID),
		PartnerID:           partner.ID,
		LinkID:              linkID,
		OrderID:             orderID,
		OrderAmount:         orderAmount,
		Rate:                partner.CommissionRate,
		Amount:              orderAmount.ApplyRate(partner.CommissionRate),
		Status:              CommissionStatusPending,
	}
	c.AddDomainEvent(NewCommissionEvent(EventTypeCommissionCreated, c))
	return c, nil
}

// TransitionTo moves the commission along its payout lifecycle. reference is
// the rejection reason when rejecting and the payout reference when paying.
func (c *Commission) TransitionTo(next CommissionStatus, reference string, now time.Time) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown commission status")
	}
	if !c.Status.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Commission cannot move from "+string(c.Status)+" to "+string(next))
	}
	switch next {
	case CommissionStatusApproved:
		c.ApprovedAt = &now
	case CommissionStatusPaid:
		c.PaidAt = &now
		c.PayoutReference = reference
	case CommissionStatusRejected:
		if reference == "" {
			return shared.NewDomainError("REASON_REQUIRED", "A rejection reason is required")
		}
		c.RejectionReason = reference
	}
	c.Status = next
	c.IncrementVersion()
	c.AddDomainEvent(NewCommissionEvent(commissionEventTypes[next], c))
	return nil
}

// Period is the earnings period the commission counts towards
func (c *Commission) Period() string {
	return PeriodOf(c.CreatedAt)
}
