package affiliate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/cmsplatform/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func activePartner(t *testing.T, tenantID uuid.UUID) *affiliate.Partner {
	t.Helper()
	rate := decimal.RequireFromString("12.5")
	p, err := affiliate.NewPartner(tenantID, "Acme Reviews", "team@acme.example", &rate)
	require.NoError(t, err)
	require.NoError(t, p.Activate())
	p.ClearDomainEvents()
	return p
}

func TestPartnerService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("duplicate email", func(t *testing.T) {
		partners := new(MockPartnerRepository)
		svc := NewPartnerService(partners)
		partners.On("ExistsByEmail", ctx, tenantID, "team@acme.example", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, tenantID, CreatePartnerRequest{Name: "Acme", Email: "team@acme.example"})

		assert.ErrorIs(t, err, ErrDuplicateEmail)
		partners.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("activated with default rate", func(t *testing.T) {
		partners := new(MockPartnerRepository)
		publisher := &recordingPublisher{}
		svc := NewPartnerService(partners)
		svc.SetEventPublisher(publisher)
		partners.On("ExistsByEmail", ctx, tenantID, "team@acme.example", (*uuid.UUID)(nil)).Return(false, nil)
		partners.On("Save", ctx, mock.AnythingOfType("*affiliate.Partner")).Return(nil)

		resp, err := svc.Create(ctx, tenantID, CreatePartnerRequest{Name: "Acme", Email: "team@acme.example", Activate: true})

		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
		assert.True(t, resp.CommissionRate.Equal(decimal.NewFromInt(10)))
		assert.Len(t, resp.ReferralCode, 8)
		assert.Equal(t, []string{affiliate.EventTypePartnerCreated, affiliate.EventTypePartnerActivated}, publisher.types())
	})
}

func TestLinkService_Click(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	partner := activePartner(t, tenantID)

	newLink := func(t *testing.T) *affiliate.PartnerLink {
		link, err := affiliate.NewPartnerLink(tenantID, partner.ID, "Spring sale", "https://shop.example/sale?utm=cms")
		require.NoError(t, err)
		return link
	}

	t.Run("counts a visitor once within the window", func(t *testing.T) {
		links := new(MockLinkRepository)
		partners := new(MockPartnerRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		publisher := &recordingPublisher{}
		svc := NewLinkService(links, partners, dedup, time.Hour)
		svc.SetEventPublisher(publisher)

		link := newLink(t)
		links.On("FindByCode", ctx, link.Code).Return(link, nil)
		partners.On("FindByIDForTenant", ctx, tenantID, partner.ID).Return(partner, nil)
		links.On("IncrementClicks", ctx, link.ID).Return(nil).Once()

		req := ClickRequest{Code: link.Code, IP: "203.0.113.7", UserAgent: "Mozilla/5.0"}
		first, err := svc.Click(ctx, req)
		require.NoError(t, err)
		second, err := svc.Click(ctx, req)
		require.NoError(t, err)

		assert.True(t, first.Counted)
		assert.False(t, second.Counted)
		assert.Equal(t, "https://shop.example/sale?ref="+partner.ReferralCode+"&utm=cms", first.Location)
		assert.Equal(t, first.Location, second.Location)
		assert.Equal(t, []string{affiliate.EventTypeLinkClicked}, publisher.types())
		links.AssertExpectations(t)
	})

	t.Run("another visitor is counted", func(t *testing.T) {
		links := new(MockLinkRepository)
		partners := new(MockPartnerRepository)
		dedup := cache.NewInMemoryDedupStore()
		defer dedup.Close()
		svc := NewLinkService(links, partners, dedup, time.Hour)

		link := newLink(t)
		links.On("FindByCode", ctx, link.Code).Return(link, nil)
		partners.On("FindByIDForTenant", ctx, tenantID, partner.ID).Return(partner, nil)
		links.On("IncrementClicks", ctx, link.ID).Return(nil).Twice()

		_, err := svc.Click(ctx, ClickRequest{Code: link.Code, IP: "203.0.113.7", UserAgent: "A"})
		require.NoError(t, err)
		_, err = svc.Click(ctx, ClickRequest{Code: link.Code, IP: "203.0.113.7", UserAgent: "B"})
		require.NoError(t, err)
		links.AssertExpectations(t)
	})

	t.Run("inactive link is not found", func(t *testing.T) {
		links := new(MockLinkRepository)
		svc := NewLinkService(links, new(MockPartnerRepository), nil, 0)
		link := newLink(t)
		link.Deactivate()
		links.On("FindByCode", ctx, link.Code).Return(link, nil)

		_, err := svc.Click(ctx, ClickRequest{Code: link.Code})
		assert.True(t, shared.IsNotFound(err))
		links.AssertNotCalled(t, "IncrementClicks", mock.Anything, mock.Anything)
	})
}

func TestLinkService_CreateRetriesTakenCode(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	partner := activePartner(t, tenantID)
	links := new(MockLinkRepository)
	partners := new(MockPartnerRepository)
	svc := NewLinkService(links, partners, nil, 0)

	partners.On("FindByIDForTenant", ctx, tenantID, partner.ID).Return(partner, nil)
	taken := &affiliate.PartnerLink{}
	links.On("FindByCode", ctx, mock.Anything).Return(taken, nil).Once()
	links.On("FindByCode", ctx, mock.Anything).Return(nil, shared.ErrNotFound).Once()
	links.On("Save", ctx, mock.AnythingOfType("*affiliate.PartnerLink")).Return(nil)

	resp, err := svc.Create(ctx, tenantID, CreateLinkRequest{PartnerID: partner.ID, TargetURL: "https://shop.example"})

	require.NoError(t, err)
	assert.Len(t, resp.Code, 7)
	assert.Equal(t, "/r/"+resp.Code, resp.ShortPath)
	links.AssertNumberOfCalls(t, "FindByCode", 2)
}

func TestCommissionService_RecordConversion(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("amount uses the partner rate", func(t *testing.T) {
		commissions := new(MockCommissionRepository)
		partners := new(MockPartnerRepository)
		links := new(MockLinkRepository)
		svc := NewCommissionService(commissions, partners, links, nil)
		partner := activePartner(t, tenantID)
		link, err := affiliate.NewPartnerLink(tenantID, partner.ID, "", "https://shop.example")
		require.NoError(t, err)

		partners.On("FindByIDForTenant", ctx, tenantID, partner.ID).Return(partner, nil)
		commissions.On("ExistsByOrderID", ctx, tenantID, "ORD-1001").Return(false, nil)
		links.On("FindByIDForTenant", ctx, tenantID, link.ID).Return(link, nil)
		commissions.On("Save", ctx, mock.AnythingOfType("*affiliate.Commission")).Return(nil)
		links.On("IncrementConversions", ctx, link.ID).Return(nil)

		resp, err := svc.RecordConversion(ctx, tenantID, partner.ID, RecordConversionRequest{
			OrderID:     " ORD-1001 ",
			OrderAmount: decimal.RequireFromString("80.99"),
			LinkID:      &link.ID,
		})

		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		assert.Equal(t, "10.12", resp.Amount.StringFixed(2))
		assert.Equal(t, "USD", resp.Currency)
		links.AssertExpectations(t)
	})

	t.Run("duplicate order", func(t *testing.T) {
		commissions := new(MockCommissionRepository)
		partners := new(MockPartnerRepository)
		svc := NewCommissionService(commissions, partners, new(MockLinkRepository), nil)
		partner := activePartner(t, tenantID)
		partners.On("FindByIDForTenant", ctx, tenantID, partner.ID).Return(partner, nil)
		commissions.On("ExistsByOrderID", ctx, tenantID, "ORD-1001").Return(true, nil)

		_, err := svc.RecordConversion(ctx, tenantID, partner.ID, RecordConversionRequest{
			OrderID: "ORD-1001", OrderAmount: decimal.NewFromInt(10),
		})

		assert.ErrorIs(t, err, ErrDuplicateOrder)
	})

	t.Run("link of another partner", func(t *testing.T) {
		commissions := new(MockCommissionRepository)
		partners := new(MockPartnerRepository)
		links := new(MockLinkRepository)
		svc := NewCommissionService(commissions, partners, links, nil)
		partner := activePartner(t, tenantID)
		foreign, err := affiliate.NewPartnerLink(tenantID, uuid.New(), "", "https://shop.example")
		require.NoError(t, err)
		partners.On("FindByIDForTenant", ctx, tenantID, partner.ID).Return(partner, nil)
		commissions.On("ExistsByOrderID", ctx, tenantID, "ORD-7").Return(false, nil)
		links.On("FindByIDForTenant", ctx, tenantID, foreign.ID).Return(foreign, nil)

		_, err = svc.RecordConversion(ctx, tenantID, partner.ID, RecordConversionRequest{
			OrderID: "ORD-7", OrderAmount: decimal.NewFromInt(10), LinkID: &foreign.ID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_LINK", domainErr.Code)
	})
}

func TestCommissionService_Transitions(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	newCommission := func(t *testing.T) *affiliate.Commission {
		amount, err := valueobject.NewMoneyFromString("100", valueobject.USD)
		require.NoError(t, err)
		c, err := affiliate.NewCommission(activePartner(t, tenantID), nil, "ORD-1", amount)
		require.NoError(t, err)
		c.ClearDomainEvents()
		return c
	}

	t.Run("approve then pay", func(t *testing.T) {
		commissions := new(MockCommissionRepository)
		publisher := &recordingPublisher{}
		svc := NewCommissionService(commissions, new(MockPartnerRepository), new(MockLinkRepository), nil)
		svc.SetEventPublisher(publisher)
		c := newCommission(t)
		commissions.On("FindByIDForTenant", ctx, tenantID, c.ID).Return(c, nil)
		commissions.On("Save", ctx, c).Return(nil)

		_, err := svc.Approve(ctx, tenantID, c.ID)
		require.NoError(t, err)
		resp, err := svc.Pay(ctx, tenantID, c.ID, TransitionCommissionRequest{Reference: "PAYOUT-9"})
		require.NoError(t, err)

		assert.Equal(t, "paid", resp.Status)
		assert.Equal(t, "PAYOUT-9", resp.PayoutReference)
		assert.NotNil(t, resp.ApprovedAt)
		assert.Equal(t, []string{affiliate.EventTypeCommissionApproved, affiliate.EventTypeCommissionPaid}, publisher.types())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		commissions := new(MockCommissionRepository)
		svc := NewCommissionService(commissions, new(MockPartnerRepository), new(MockLinkRepository), nil)
		c := newCommission(t)
		commissions.On("FindByIDForTenant", ctx, tenantID, c.ID).Return(c, nil)

		_, err := svc.Reject(ctx, tenantID, c.ID, TransitionCommissionRequest{Reason: "  "})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "REASON_REQUIRED", domainErr.Code)
		commissions.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("paying a pending commission is refused", func(t *testing.T) {
		commissions := new(MockCommissionRepository)
		svc := NewCommissionService(commissions, new(MockPartnerRepository), new(MockLinkRepository), nil)
		c := newCommission(t)
		commissions.On("FindByIDForTenant", ctx, tenantID, c.ID).Return(c, nil)

		_, err := svc.Pay(ctx, tenantID, c.ID, TransitionCommissionRequest{})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})
}

func TestEarningsService_RollupEarnings(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	partner := activePartner(t, tenantID)
	failing := uuid.New()

	earnings := new(MockEarningsRepository)
	commissions := new(MockCommissionRepository)
	partners := new(MockPartnerRepository)
	links := new(MockLinkRepository)
	svc := NewEarningsService(earnings, commissions, partners, links)

	amount, err := valueobject.NewMoneyFromString("200", valueobject.EUR)
	require.NoError(t, err)
	approved, err := affiliate.NewCommission(partner, nil, "ORD-1", amount)
	require.NoError(t, err)
	require.NoError(t, approved.TransitionTo(affiliate.CommissionStatusApproved, "", time.Now()))
	pending, err := affiliate.NewCommission(partner, nil, "ORD-2", amount)
	require.NoError(t, err)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	partners.On("FindActiveIDs", ctx, tenantID).Return([]uuid.UUID{partner.ID, failing}, nil)
	commissions.On("FindByPartnerInRange", ctx, tenantID, partner.ID, from, to).
		Return([]affiliate.Commission{*approved, *pending}, nil)
	commissions.On("FindByPartnerInRange", ctx, tenantID, failing, from, to).
		Return([]affiliate.Commission{}, errors.New("connection reset"))
	links.On("SumClicks", ctx, tenantID, partner.ID).Return(int64(40), nil)
	earnings.On("Upsert", ctx, mock.MatchedBy(func(e *affiliate.Earnings) bool {
		return e.PartnerID == partner.ID && e.Period == "2024-03" && e.Clicks == 40 &&
			e.Conversions == 2 && e.Total.Amount().Equal(decimal.RequireFromString("50")) &&
			e.Approved.Amount().Equal(decimal.RequireFromString("25")) &&
			e.Total.Currency() == valueobject.EUR
	})).Return(nil).Once()

	written, err := svc.RollupEarnings(ctx, tenantID, "2024-03")

	assert.Equal(t, 1, written)
	assert.ErrorContains(t, err, "connection reset")
	earnings.AssertExpectations(t)
}

func TestEarningsService_SummaryUsesRollupsForPastPeriods(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	earnings := new(MockEarningsRepository)
	svc := NewEarningsService(earnings, new(MockCommissionRepository), new(MockPartnerRepository), new(MockLinkRepository))
	svc.now = func() time.Time { return time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC) }

	row := affiliate.NewEarnings(tenantID, uuid.New(), "2024-03", valueobject.USD)
	row.Total, _ = valueobject.NewMoneyFromString("12.50", valueobject.USD)
	row.Paid = row.Total
	earnings.On("FindByPeriod", ctx, tenantID, "2024-03").Return([]affiliate.Earnings{*row}, nil)

	summary, err := svc.Summary(ctx, tenantID, EarningsFilter{Period: "2024-03"})

	require.NoError(t, err)
	assert.Len(t, summary.Partners, 1)
	assert.Equal(t, "12.5", summary.Total.String())
	assert.Equal(t, "12.5", summary.Paid.String())

	_, err = svc.Summary(ctx, tenantID, EarningsFilter{Period: "March"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_PERIOD", domainErr.Code)
}
