package content

import (
	"context"
	"strings"
	"time"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock implementation of content.PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.Post, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Post), args.Error(1)
}

func (m *MockPostRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*content.Post, error) {
	args := m.Called(ctx, tenantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Post), args.Error(1)
}

func (m *MockPostRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.Post, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]content.Post), args.Error(1)
}

func (m *MockPostRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) FindPublished(ctx context.Context, tenantID uuid.UUID, postType content.PostType) ([]content.Post, error) {
	args := m.Called(ctx, tenantID, postType)
	return args.Get(0).([]content.Post), args.Error(1)
}

func (m *MockPostRepository) FindDueScheduled(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]content.Post, error) {
	args := m.Called(ctx, tenantID, now)
	return args.Get(0).([]content.Post), args.Error(1)
}

func (m *MockPostRepository) CountByTag(ctx context.Context, tenantID, tagID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, tagID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPostRepository) Save(ctx context.Context, post *content.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of content.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.Category, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*content.Category, error) {
	args := m.Called(ctx, tenantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]content.Category, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]content.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.Category, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]content.Category), args.Error(1)
}

func (m *MockCategoryRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) CountActiveChildren(ctx context.Context, tenantID, parentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryRepository) RefreshPostCounts(ctx context.Context, tenantID uuid.UUID, ids ...uuid.UUID) error {
	args := m.Called(ctx, tenantID, ids)
	return args.Error(0)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *content.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of content.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.Tag, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Tag), args.Error(1)
}

func (m *MockTagRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*content.Tag, error) {
	args := m.Called(ctx, tenantID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]content.Tag, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]content.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]content.Tag, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]content.Tag), args.Error(1)
}

func (m *MockTagRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTagRepository) ExistsBySlug(ctx context.Context, tenantID uuid.UUID, slug string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) RefreshUsageCounts(ctx context.Context, tenantID uuid.UUID, ids ...uuid.UUID) error {
	args := m.Called(ctx, tenantID, ids)
	return args.Error(0)
}

func (m *MockTagRepository) Save(ctx context.Context, tag *content.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

// recordingPublisher captures published events
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

// plainRenderer echoes the body and takes the first words as excerpt
type plainRenderer struct{}

func (plainRenderer) HTML(_ content.ContentFormat, body string) (string, error) {
	return "<p>" + body + "</p>", nil
}

func (plainRenderer) Excerpt(_ content.ContentFormat, body string) string {
	words := strings.Fields(body)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}
