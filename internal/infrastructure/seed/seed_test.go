package seed

import (
	"context"
	"errors"
	"testing"

	affiliateapp "github.com/cmsplatform/backend/internal/application/affiliate"
	contentapp "github.com/cmsplatform/backend/internal/application/content"
	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/identity"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	return m.Called(ctx, tenant).Error(0)
}

// fakeUsers only implements what the seeder calls
type fakeUsers struct {
	identity.UserRepository
	saved []*identity.User
	find  func(username string) (*identity.User, error)
}

func (f *fakeUsers) FindByUsername(_ context.Context, _ uuid.UUID, username string) (*identity.User, error) {
	return f.find(username)
}

func (f *fakeUsers) Save(_ context.Context, user *identity.User) error {
	f.saved = append(f.saved, user)
	return nil
}

// recorder captures every create call
type recorder struct {
	categories  []contentapp.CreateCategoryRequest
	tags        []contentapp.CreateTagRequest
	posts       []contentapp.CreatePostRequest
	partners    []affiliateapp.CreatePartnerRequest
	links       []affiliateapp.CreateLinkRequest
	conversions []affiliateapp.RecordConversionRequest
	postErr     error
}

type categoryFunc func(contentapp.CreateCategoryRequest) (*contentapp.CategoryResponse, error)

func (f categoryFunc) Create(_ context.Context, _ uuid.UUID, req contentapp.CreateCategoryRequest) (*contentapp.CategoryResponse, error) {
	return f(req)
}

type tagFunc func(contentapp.CreateTagRequest) (*contentapp.TagResponse, error)

func (f tagFunc) Create(_ context.Context, _ uuid.UUID, req contentapp.CreateTagRequest) (*contentapp.TagResponse, error) {
	return f(req)
}

type postFunc func(contentapp.CreatePostRequest) (*contentapp.PostResponse, error)

func (f postFunc) Create(_ context.Context, _ uuid.UUID, req contentapp.CreatePostRequest) (*contentapp.PostResponse, error) {
	return f(req)
}

type partnerFunc func(affiliateapp.CreatePartnerRequest) (*affiliateapp.PartnerResponse, error)

func (f partnerFunc) Create(_ context.Context, _ uuid.UUID, req affiliateapp.CreatePartnerRequest) (*affiliateapp.PartnerResponse, error) {
	return f(req)
}

type linkFunc func(affiliateapp.CreateLinkRequest) (*affiliateapp.LinkResponse, error)

func (f linkFunc) Create(_ context.Context, _ uuid.UUID, req affiliateapp.CreateLinkRequest) (*affiliateapp.LinkResponse, error) {
	return f(req)
}

type conversionFunc func(uuid.UUID, affiliateapp.RecordConversionRequest) (*affiliateapp.CommissionResponse, error)

func (f conversionFunc) RecordConversion(_ context.Context, _, partnerID uuid.UUID, req affiliateapp.RecordConversionRequest) (*affiliateapp.CommissionResponse, error) {
	return f(partnerID, req)
}

func (r *recorder) services() Services {
	return Services{
		Categories: categoryFunc(func(req contentapp.CreateCategoryRequest) (*contentapp.CategoryResponse, error) {
			r.categories = append(r.categories, req)
			return &contentapp.CategoryResponse{ID: uuid.New()}, nil
		}),
		Tags: tagFunc(func(req contentapp.CreateTagRequest) (*contentapp.TagResponse, error) {
			r.tags = append(r.tags, req)
			return &contentapp.TagResponse{ID: uuid.New()}, nil
		}),
		Posts: postFunc(func(req contentapp.CreatePostRequest) (*contentapp.PostResponse, error) {
			if r.postErr != nil {
				return nil, r.postErr
			}
			r.posts = append(r.posts, req)
			return &contentapp.PostResponse{ID: uuid.New()}, nil
		}),
		Partners: partnerFunc(func(req affiliateapp.CreatePartnerRequest) (*affiliateapp.PartnerResponse, error) {
			r.partners = append(r.partners, req)
			return &affiliateapp.PartnerResponse{ID: uuid.New()}, nil
		}),
		Links: linkFunc(func(req affiliateapp.CreateLinkRequest) (*affiliateapp.LinkResponse, error) {
			r.links = append(r.links, req)
			return &affiliateapp.LinkResponse{ID: uuid.New(), PartnerID: req.PartnerID}, nil
		}),
		Commissions: conversionFunc(func(_ uuid.UUID, req affiliateapp.RecordConversionRequest) (*affiliateapp.CommissionResponse, error) {
			r.conversions = append(r.conversions, req)
			return &affiliateapp.CommissionResponse{ID: uuid.New()}, nil
		}),
	}
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Categories = 2
	opts.Tags = 4
	opts.Posts = 5
	opts.Pages = 2
	opts.Partners = 2
	opts.Seed = 42
	return opts
}

func notFoundUsers() *fakeUsers {
	return &fakeUsers{find: func(string) (*identity.User, error) { return nil, shared.ErrNotFound }}
}

func TestSeeder_Run_CreatesTenantAndContent(t *testing.T) {
	tenants := new(MockTenantRepository)
	tenants.On("FindByCode", mock.Anything, "demo").Return(nil, shared.ErrNotFound)
	tenants.On("Save", mock.Anything, mock.MatchedBy(func(tn *identity.Tenant) bool {
		return tn.Code.String() == "demo"
	})).Return(nil)
	users := notFoundUsers()
	rec := &recorder{}

	result, err := New(tenants, users, rec.services(), nil).Run(context.Background(), smallOptions())
	require.NoError(t, err)

	tenants.AssertExpectations(t)
	require.Len(t, users.saved, 1)
	assert.Equal(t, identity.RoleAdmin, users.saved[0].Role)
	assert.Equal(t, result.TenantID, users.saved[0].TenantID)

	assert.Equal(t, 2, result.Categories)
	assert.Equal(t, 4, result.Tags)
	assert.Equal(t, 5, result.Posts)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 2, result.Partners)
	assert.Equal(t, 2, result.Links)
	assert.Equal(t, 4, result.Commissions)

	var posts, pages int
	for _, p := range rec.posts {
		assert.NotEmpty(t, p.Title)
		assert.Equal(t, string(content.FormatMarkdown), p.Format)
		require.NotNil(t, p.AuthorID)
		assert.Equal(t, result.AdminID, *p.AuthorID)
		switch p.Type {
		case content.PostTypePost:
			posts++
			assert.Len(t, p.CategoryIDs, 1)
			assert.NotEmpty(t, p.TagIDs)
		case content.PostTypePage:
			pages++
			assert.Equal(t, string(content.PostStatusPublish), p.Status)
		}
	}
	assert.Equal(t, 5, posts)
	assert.Equal(t, 2, pages)

	for _, tag := range rec.tags {
		assert.Regexp(t, `^#[0-9a-fA-F]{6}$`, tag.Color)
	}
	for _, c := range rec.conversions {
		assert.True(t, c.OrderAmount.IsPositive())
		assert.Equal(t, "USD", c.Currency)
		assert.NotNil(t, c.LinkID)
	}
}

func TestSeeder_Run_ReusesExistingTenantAndAdmin(t *testing.T) {
	tenant, err := identity.NewTenant("demo", "Demo Blog", "demo.localhost")
	require.NoError(t, err)
	admin, err := identity.NewUser(tenant.ID, "admin", "admin@demo.localhost", "admin12345", identity.RoleAdmin)
	require.NoError(t, err)

	tenants := new(MockTenantRepository)
	tenants.On("FindByCode", mock.Anything, "demo").Return(tenant, nil)
	users := &fakeUsers{find: func(string) (*identity.User, error) { return admin, nil }}
	rec := &recorder{}

	opts := smallOptions()
	opts.Partners = 0
	result, err := New(tenants, users, rec.services(), nil).Run(context.Background(), opts)
	require.NoError(t, err)

	tenants.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, users.saved)
	assert.Equal(t, tenant.ID, result.TenantID)
	assert.Equal(t, admin.ID, result.AdminID)
	assert.Empty(t, rec.partners)
}

func TestSeeder_Run_StopsOnServiceError(t *testing.T) {
	tenants := new(MockTenantRepository)
	tenants.On("FindByCode", mock.Anything, "demo").Return(nil, shared.ErrNotFound)
	tenants.On("Save", mock.Anything, mock.Anything).Return(nil)
	rec := &recorder{postErr: shared.ErrDuplicateSlug}

	result, err := New(tenants, notFoundUsers(), rec.services(), nil).Run(context.Background(), smallOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrDuplicateSlug)
	assert.Equal(t, 0, result.Posts)
	assert.Equal(t, 2, result.Categories)
	assert.Empty(t, rec.partners)
}

func TestSeeder_Run_TenantLookupFailure(t *testing.T) {
	tenants := new(MockTenantRepository)
	tenants.On("FindByCode", mock.Anything, "demo").Return(nil, errors.New("connection refused"))

	result, err := New(tenants, notFoundUsers(), (&recorder{}).services(), nil).Run(context.Background(), smallOptions())
	assert.Nil(t, result)
	assert.ErrorContains(t, err, "connection refused")
}

func TestPostStatus_MostlyPublished(t *testing.T) {
	counts := map[string]int{}
	for i := 0; i < 10; i++ {
		counts[postStatus(i)]++
	}
	assert.Equal(t, 6, counts[string(content.PostStatusPublish)])
	assert.Equal(t, 2, counts[string(content.PostStatusDraft)])
	assert.Equal(t, 2, counts[string(content.PostStatusPending)])
}
