package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newActivePartner(t *testing.T, repo *GormPartnerRepository, tenantID uuid.UUID, email string) *affiliate.Partner {
	t.Helper()
	rate := decimal.NewFromInt(15)
	p, err := affiliate.NewPartner(tenantID, "Acme Media", email, &rate)
	require.NoError(t, err)
	require.NoError(t, p.Activate())
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func TestGormPartnerRepository(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormPartnerRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	p := newActivePartner(t, repo, tenantID, "team@acme.test")

	loaded, err := repo.FindByReferralCode(ctx, tenantID, p.ReferralCode)
	require.NoError(t, err)
	assert.Equal(t, p.ID, loaded.ID)
	assert.True(t, loaded.CommissionRate.Decimal().Equal(decimal.NewFromInt(15)))

	exists, err := repo.ExistsByEmail(ctx, tenantID, "TEAM@acme.test", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByEmail(ctx, tenantID, "team@acme.test", &p.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	ids, err := repo.FindActiveIDs(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{p.ID}, ids)

	filter := shared.DefaultFilter()
	filter.Filters[affiliate.FilterStatus] = affiliate.PartnerStatusSuspended
	count, err := repo.CountForTenant(ctx, tenantID, filter)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGormPartnerLinkRepository_Counters(t *testing.T) {
	db := newSQLiteDB(t)
	partners := NewGormPartnerRepository(db)
	links := NewGormPartnerLinkRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	p := newActivePartner(t, partners, tenantID, "links@acme.test")
	link, err := affiliate.NewPartnerLink(tenantID, p.ID, "Spring sale", "https://shop.example.com/sale")
	require.NoError(t, err)
	require.NoError(t, links.Save(ctx, link))

	require.NoError(t, links.IncrementClicks(ctx, link.ID))
	require.NoError(t, links.IncrementClicks(ctx, link.ID))
	require.NoError(t, links.IncrementConversions(ctx, link.ID))

	loaded, err := links.FindByCode(ctx, link.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.Clicks)
	assert.Equal(t, int64(1), loaded.Conversions)

	total, err := links.SumClicks(ctx, tenantID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	assert.ErrorIs(t, links.IncrementClicks(ctx, uuid.New()), shared.ErrNotFound)
}

func TestGormCommissionRepository_Range(t *testing.T) {
	db := newSQLiteDB(t)
	partners := NewGormPartnerRepository(db)
	commissions := NewGormCommissionRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	p := newActivePartner(t, partners, tenantID, "sales@acme.test")
	amount, err := valueobject.NewMoneyFromString("200.00", valueobject.USD)
	require.NoError(t, err)
	c, err := affiliate.NewCommission(p, nil, "ORD-1", amount)
	require.NoError(t, err)
	require.NoError(t, commissions.Save(ctx, c))

	exists, err := commissions.ExistsByOrderID(ctx, tenantID, "ORD-1")
	require.NoError(t, err)
	assert.True(t, exists)

	from, to, err := affiliate.PeriodRange(affiliate.PeriodOf(c.CreatedAt))
	require.NoError(t, err)
	found, err := commissions.FindByPartnerInRange(ctx, tenantID, p.ID, from, to)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "30.00", found[0].Amount.Amount().StringFixed(2))
	assert.Equal(t, valueobject.USD, found[0].Amount.Currency())

	found, err = commissions.FindByPartnerInRange(ctx, tenantID, p.ID, to, to.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGormEarningsRepository_Upsert(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormEarningsRepository(db)
	ctx := context.Background()
	tenantID, partnerID := uuid.New(), uuid.New()
	period := affiliate.PeriodOf(time.Now())

	first := affiliate.NewEarnings(tenantID, partnerID, period, valueobject.USD)
	first.Clicks = 5
	require.NoError(t, repo.Upsert(ctx, first))

	second := affiliate.NewEarnings(tenantID, partnerID, period, valueobject.USD)
	second.Clicks = 9
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID, "the row id stays stable")

	rows, err := repo.FindByPartner(ctx, tenantID, partnerID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(9), rows[0].Clicks)

	byPeriod, err := repo.FindByPeriod(ctx, tenantID, period)
	require.NoError(t, err)
	assert.Len(t, byPeriod, 1)
}
