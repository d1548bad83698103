package affiliate

import (
	"context"
	"time"

	"github.com/cmsplatform/backend/internal/domain/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPartnerRepository is a mock implementation of affiliate.PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*affiliate.Partner, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliate.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindByReferralCode(ctx context.Context, tenantID uuid.UUID, code string) (*affiliate.Partner, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliate.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindByUserID(ctx context.Context, tenantID, userID uuid.UUID) (*affiliate.Partner, error) {
	args := m.Called(ctx, tenantID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliate.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]affiliate.Partner, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]affiliate.Partner), args.Error(1)
}

func (m *MockPartnerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPartnerRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartnerRepository) FindActiveIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, partner *affiliate.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

// MockLinkRepository is a mock implementation of affiliate.LinkRepository
type MockLinkRepository struct {
	mock.Mock
}

func (m *MockLinkRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*affiliate.PartnerLink, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliate.PartnerLink), args.Error(1)
}

func (m *MockLinkRepository) FindByCode(ctx context.Context, code string) (*affiliate.PartnerLink, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliate.PartnerLink), args.Error(1)
}

func (m *MockLinkRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]affiliate.PartnerLink, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]affiliate.PartnerLink), args.Error(1)
}

func (m *MockLinkRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLinkRepository) SumClicks(ctx context.Context, tenantID, partnerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, partnerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLinkRepository) Save(ctx context.Context, link *affiliate.PartnerLink) error {
	return m.Called(ctx, link).Error(0)
}

func (m *MockLinkRepository) IncrementClicks(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLinkRepository) IncrementConversions(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockCommissionRepository is a mock implementation of affiliate.CommissionRepository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*affiliate.Commission, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliate.Commission), args.Error(1)
}

func (m *MockCommissionRepository) ExistsByOrderID(ctx context.Context, tenantID uuid.UUID, orderID string) (bool, error) {
	args := m.Called(ctx, tenantID, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommissionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]affiliate.Commission, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]affiliate.Commission), args.Error(1)
}

func (m *MockCommissionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommissionRepository) FindByPartnerInRange(ctx context.Context, tenantID, partnerID uuid.UUID, from, to time.Time) ([]affiliate.Commission, error) {
	args := m.Called(ctx, tenantID, partnerID, from, to)
	return args.Get(0).([]affiliate.Commission), args.Error(1)
}

func (m *MockCommissionRepository) Save(ctx context.Context, commission *affiliate.Commission) error {
	return m.Called(ctx, commission).Error(0)
}

// MockEarningsRepository is a mock implementation of affiliate.EarningsRepository
type MockEarningsRepository struct {
	mock.Mock
}

func (m *MockEarningsRepository) FindByPartner(ctx context.Context, tenantID, partnerID uuid.UUID) ([]affiliate.Earnings, error) {
	args := m.Called(ctx, tenantID, partnerID)
	return args.Get(0).([]affiliate.Earnings), args.Error(1)
}

func (m *MockEarningsRepository) FindByPeriod(ctx context.Context, tenantID uuid.UUID, period string) ([]affiliate.Earnings, error) {
	args := m.Called(ctx, tenantID, period)
	return args.Get(0).([]affiliate.Earnings), args.Error(1)
}

func (m *MockEarningsRepository) Upsert(ctx context.Context, earnings *affiliate.Earnings) error {
	return m.Called(ctx, earnings).Error(0)
}

// recordingPublisher collects published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType()
	}
	return out
}
