package affiliate

import (
	"context"
	"errors"
	"time"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EarningsService computes partner earnings and materialises monthly rollups
type EarningsService struct {
	earningsRepo   affiliate.EarningsRepository
	commissionRepo affiliate.CommissionRepository
	partnerRepo    affiliate.PartnerRepository
	linkRepo       affiliate.LinkRepository
	now            func() time.Time
}

// NewEarningsService creates a new EarningsService
func NewEarningsService(
	earningsRepo affiliate.EarningsRepository,
	commissionRepo affiliate.CommissionRepository,
	partnerRepo affiliate.PartnerRepository,
	linkRepo affiliate.LinkRepository,
) *EarningsService {
	return &EarningsService{
		earningsRepo:   earningsRepo,
		commissionRepo: commissionRepo,
		partnerRepo:    partnerRepo,
		linkRepo:       linkRepo,
		now:            time.Now,
	}
}

// ForPartner computes one partner's earnings for a period from its commissions
func (s *EarningsService) ForPartner(ctx context.Context, tenantID, partnerID uuid.UUID, filter EarningsFilter) (*EarningsResponse, error) {
	period, err := s.period(filter.Period)
	if err != nil {
		return nil, err
	}
	partner, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID)
	if err != nil {
		return nil, err
	}
	earnings, err := s.compute(ctx, tenantID, partnerID, period)
	if err != nil {
		return nil, err
	}
	response := ToEarningsResponse(earnings)
	response.PartnerName = partner.Name
	return &response, nil
}

// History returns the materialised rollups of a partner
func (s *EarningsService) History(ctx context.Context, tenantID, partnerID uuid.UUID) ([]EarningsResponse, error) {
	if _, err := s.partnerRepo.FindByIDForTenant(ctx, tenantID, partnerID); err != nil {
		return nil, err
	}
	rows, err := s.earningsRepo.FindByPartner(ctx, tenantID, partnerID)
	if err != nil {
		return nil, err
	}
	out := make([]EarningsResponse, len(rows))
	for i := range rows {
		out[i] = ToEarningsResponse(&rows[i])
	}
	return out, nil
}

// Summary totals a period across partners. The current month is computed
// live; earlier months come from the rollup table.
func (s *EarningsService) Summary(ctx context.Context, tenantID uuid.UUID, filter EarningsFilter) (*EarningsSummaryResponse, error) {
	period, err := s.period(filter.Period)
	if err != nil {
		return nil, err
	}

	var rows []affiliate.Earnings
	if period == affiliate.PeriodOf(s.now()) {
		ids, err := s.partnerRepo.FindActiveIDs(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			e, err := s.compute(ctx, tenantID, id, period)
			if err != nil {
				return nil, err
			}
			rows = append(rows, *e)
		}
	} else {
		rows, err = s.earningsRepo.FindByPeriod(ctx, tenantID, period)
		if err != nil {
			return nil, err
		}
	}

	summary := &EarningsSummaryResponse{
		Period:   period,
		Partners: make([]EarningsResponse, 0, len(rows)),
		Pending:  decimal.Zero,
		Approved: decimal.Zero,
		Paid:     decimal.Zero,
		Total:    decimal.Zero,
	}
	for i := range rows {
		r := ToEarningsResponse(&rows[i])
		summary.Partners = append(summary.Partners, r)
		summary.Pending = summary.Pending.Add(r.Pending)
		summary.Approved = summary.Approved.Add(r.Approved)
		summary.Paid = summary.Paid.Add(r.Paid)
		summary.Total = summary.Total.Add(r.Total)
	}
	return summary, nil
}

// RollupEarnings materialises the period for every active partner of a tenant
// and returns how many rollups were written. Failures of single partners do
// not stop the others.
func (s *EarningsService) RollupEarnings(ctx context.Context, tenantID uuid.UUID, period string) (int, error) {
	period, err := affiliate.ParsePeriod(period)
	if err != nil {
		return 0, err
	}
	ids, err := s.partnerRepo.FindActiveIDs(ctx, tenantID)
	if err != nil {
		return 0, err
	}

	written := 0
	var errs []error
	for _, id := range ids {
		earnings, err := s.compute(ctx, tenantID, id, period)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := s.earningsRepo.Upsert(ctx, earnings); err != nil {
			errs = append(errs, err)
			continue
		}
		written++
	}
	return written, errors.Join(errs...)
}

func (s *EarningsService) compute(ctx context.Context, tenantID, partnerID uuid.UUID, period string) (*affiliate.Earnings, error) {
	from, to, err := affiliate.PeriodRange(period)
	if err != nil {
		return nil, err
	}
	commissions, err := s.commissionRepo.FindByPartnerInRange(ctx, tenantID, partnerID, from, to)
	if err != nil {
		return nil, err
	}
	clicks, err := s.linkRepo.SumClicks(ctx, tenantID, partnerID)
	if err != nil {
		return nil, err
	}
	currency := valueobject.DefaultCurrency
	if len(commissions) > 0 {
		currency = commissions[0].Amount.Currency()
	}
	earnings, err := affiliate.Rollup(tenantID, partnerID, period, clicks, commissions, currency)
	if err != nil {
		return nil, err
	}
	earnings.UpdatedAt = s.now()
	return earnings, nil
}

func (s *EarningsService) period(raw string) (string, error) {
	if raw == "" {
		return affiliate.PeriodOf(s.now()), nil
	}
	return affiliate.ParsePeriod(raw)
}
