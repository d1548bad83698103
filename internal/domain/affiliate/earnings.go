package affiliate

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

const periodLayout = "2006-01"

// PeriodOf formats t as a YYYY-MM earnings period in UTC
func PeriodOf(t time.Time) string {
	return t.UTC().Format(periodLayout)
}

// ParsePeriod validates a YYYY-MM period
func ParsePeriod(s string) (string, error) {
	t, err := time.Parse(periodLayout, s)
	if err != nil {
		return "", shared.NewDomainError("INVALID_PERIOD", "Period must be formatted as YYYY-MM")
	}
	return PeriodOf(t), nil
}

// PeriodRange returns the half-open UTC time range of a period
func PeriodRange(period string) (time.Time, time.Time, error) {
	t, err := time.Parse(periodLayout, period)
	if err != nil {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_PERIOD", "Period must be formatted as YYYY-MM")
	}
	return t, t.AddDate(0, 1, 0), nil
}

// Earnings is a partner's monthly rollup
type Earnings struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	PartnerID   uuid.UUID
	Period      string
	Clicks      int64
	Conversions int64
	Pending     valueobject.Money
	Approved    valueobject.Money
	Paid        valueobject.Money
	Total       valueobject.Money
	UpdatedAt   time.Time
}

// NewEarnings returns an empty rollup for a partner and period
func NewEarnings(tenantID, partnerID uuid.UUID, period string, currency valueobject.Currency) *Earnings {
	zero := valueobject.Zero(currency)
	return &Earnings{
		ID:        uuid.New(),
		TenantID:  tenantID,
		PartnerID: partnerID,
		Period:    period,
		Pending:   zero,
		Approved:  zero,
		Paid:      zero,
		Total:     zero,
		UpdatedAt: time.Now(),
	}
}

// Accumulate adds a commission to the bucket matching its status.
// Rejected and cancelled commissions do not count.
func (e *Earnings) Accumulate(c *Commission) error {
	var err error
	switch c.Status {
	case CommissionStatusPending:
		e.Pending, err = e.Pending.Add(c.Amount)
	case CommissionStatusApproved:
		e.Approved, err = e.Approved.Add(c.Amount)
	case CommissionStatusPaid:
		e.Paid, err = e.Paid.Add(c.Amount)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	e.Conversions++
	e.Total, err = e.Total.Add(c.Amount)
	return err
}

// Rollup builds earnings for one partner and period from its commissions
func Rollup(tenantID, partnerID uuid.UUID, period string, clicks int64, commissions []Commission, currency valueobject.Currency) (*Earnings, error) {
	e := NewEarnings(tenantID, partnerID, period, currency)
	e.Clicks = clicks
	for i := range commissions {
		if err := e.Accumulate(&commissions[i]); err != nil {
			return nil, err
		}
	}
	return e, nil
}
