package handler

import (
	"context"

	affiliateapp "github.com/cmsplatform/backend/internal/application/affiliate"
	contentapp "github.com/cmsplatform/backend/internal/application/content"
	identityapp "github.com/cmsplatform/backend/internal/application/identity"
	mediaapp "github.com/cmsplatform/backend/internal/application/media"
	permalinkapp "github.com/cmsplatform/backend/internal/application/permalink"
	settingsapp "github.com/cmsplatform/backend/internal/application/settings"
	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/permalink"
	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) post(args mock.Arguments) (*contentapp.PostResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentapp.PostResponse), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, tenantID uuid.UUID, req contentapp.CreatePostRequest) (*contentapp.PostResponse, error) {
	return m.post(m.Called(ctx, tenantID, req))
}

func (m *MockPostService) GetByID(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*contentapp.PostResponse, error) {
	return m.post(m.Called(ctx, tenantID, id, postType))
}

func (m *MockPostService) List(ctx context.Context, tenantID uuid.UUID, filter contentapp.PostListFilter) ([]contentapp.PostListResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]contentapp.PostListResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostService) Update(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType, req contentapp.UpdatePostRequest) (*contentapp.PostResponse, error) {
	return m.post(m.Called(ctx, tenantID, id, postType, req))
}

func (m *MockPostService) Publish(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType, req contentapp.PublishPostRequest) (*contentapp.PostResponse, error) {
	return m.post(m.Called(ctx, tenantID, id, postType, req))
}

func (m *MockPostService) Unpublish(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*contentapp.PostResponse, error) {
	return m.post(m.Called(ctx, tenantID, id, postType))
}

func (m *MockPostService) Trash(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) error {
	return m.Called(ctx, tenantID, id, postType).Error(0)
}

func (m *MockPostService) Restore(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*contentapp.PostResponse, error) {
	return m.post(m.Called(ctx, tenantID, id, postType))
}

func (m *MockPostService) DeletePermanently(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) error {
	return m.Called(ctx, tenantID, id, postType).Error(0)
}

func (m *MockPostService) SetCategories(ctx context.Context, tenantID, id uuid.UUID, categoryIDs []uuid.UUID) (*contentapp.PostResponse, error) {
	return m.post(m.Called(ctx, tenantID, id, categoryIDs))
}

func (m *MockPostService) SetTags(ctx context.Context, tenantID, id uuid.UUID, tagIDs []uuid.UUID) (*contentapp.PostResponse, error) {
	return m.post(m.Called(ctx, tenantID, id, tagIDs))
}

// MockTagService is a mock implementation of TagService
type MockTagService struct {
	mock.Mock
}

func (m *MockTagService) tag(args mock.Arguments) (*contentapp.TagResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentapp.TagResponse), args.Error(1)
}

func (m *MockTagService) Create(ctx context.Context, tenantID uuid.UUID, req contentapp.CreateTagRequest) (*contentapp.TagResponse, error) {
	return m.tag(m.Called(ctx, tenantID, req))
}

func (m *MockTagService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*contentapp.TagResponse, error) {
	return m.tag(m.Called(ctx, tenantID, id))
}

func (m *MockTagService) List(ctx context.Context, tenantID uuid.UUID, filter contentapp.TermListFilter) ([]contentapp.TagResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]contentapp.TagResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockTagService) Update(ctx context.Context, tenantID, id uuid.UUID, req contentapp.UpdateTagRequest) (*contentapp.TagResponse, error) {
	return m.tag(m.Called(ctx, tenantID, id, req))
}

func (m *MockTagService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, input identityapp.LoginInput) (*identityapp.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.LoginResult), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, input identityapp.RefreshTokenInput) (*identityapp.RefreshTokenResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.RefreshTokenResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, input identityapp.LogoutInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthService) GetCurrentUser(ctx context.Context, input identityapp.GetCurrentUserInput) (*identityapp.UserInfo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityapp.UserInfo), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, input identityapp.ChangePasswordInput) error {
	return m.Called(ctx, input).Error(0)
}

// MockLinkService is a mock implementation of LinkService
type MockLinkService struct {
	mock.Mock
}

func (m *MockLinkService) link(args mock.Arguments) (*affiliateapp.LinkResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliateapp.LinkResponse), args.Error(1)
}

func (m *MockLinkService) Create(ctx context.Context, tenantID uuid.UUID, req affiliateapp.CreateLinkRequest) (*affiliateapp.LinkResponse, error) {
	return m.link(m.Called(ctx, tenantID, req))
}

func (m *MockLinkService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.LinkResponse, error) {
	return m.link(m.Called(ctx, tenantID, id))
}

func (m *MockLinkService) List(ctx context.Context, tenantID uuid.UUID, filter affiliateapp.LinkListFilter) ([]affiliateapp.LinkResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]affiliateapp.LinkResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockLinkService) Update(ctx context.Context, tenantID, id uuid.UUID, req affiliateapp.UpdateLinkRequest) (*affiliateapp.LinkResponse, error) {
	return m.link(m.Called(ctx, tenantID, id, req))
}

func (m *MockLinkService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockLinkService) Click(ctx context.Context, req affiliateapp.ClickRequest) (*affiliateapp.ClickResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliateapp.ClickResult), args.Error(1)
}

// MockPermalinkService is a mock implementation of PermalinkService
type MockPermalinkService struct {
	mock.Mock
}

func (m *MockPermalinkService) GetSettings(ctx context.Context, tenantID uuid.UUID) (*permalinkapp.SettingsResponse, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permalinkapp.SettingsResponse), args.Error(1)
}

func (m *MockPermalinkService) UpdateSettings(ctx context.Context, tenantID uuid.UUID, req permalinkapp.UpdateSettingsRequest) (*permalinkapp.UpdateSettingsResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permalinkapp.UpdateSettingsResponse), args.Error(1)
}

func (m *MockPermalinkService) Preview(ctx context.Context, tenantID uuid.UUID, structure string) (*permalink.PreviewResult, error) {
	args := m.Called(ctx, tenantID, structure)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permalink.PreviewResult), args.Error(1)
}

func (m *MockPermalinkService) Validate(structure string) permalink.ValidationResult {
	return m.Called(structure).Get(0).(permalink.ValidationResult)
}

func (m *MockPermalinkService) Presets() []permalink.Preset {
	return m.Called().Get(0).([]permalink.Preset)
}

func (m *MockPermalinkService) Analyze(ctx context.Context, tenantID uuid.UUID, req permalinkapp.AnalyzeRequest) (*permalink.Analysis, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permalink.Analysis), args.Error(1)
}

func (m *MockPermalinkService) PostSEO(ctx context.Context, tenantID, postID uuid.UUID) (*permalinkapp.PostSEOResponse, error) {
	args := m.Called(ctx, tenantID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permalinkapp.PostSEOResponse), args.Error(1)
}

func (m *MockPermalinkService) Resolve(ctx context.Context, tenantID uuid.UUID, path string) (*permalinkapp.ResolveResponse, error) {
	args := m.Called(ctx, tenantID, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*permalinkapp.ResolveResponse), args.Error(1)
}

func (m *MockPermalinkService) ListRedirects(ctx context.Context, tenantID uuid.UUID, filter permalinkapp.RedirectListFilter) ([]permalinkapp.RedirectResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]permalinkapp.RedirectResponse), args.Get(1).(int64), args.Error(2)
}

var (
	_ PostService      = (*MockPostService)(nil)
	_ TagService       = (*MockTagService)(nil)
	_ AuthService      = (*MockAuthService)(nil)
	_ LinkService      = (*MockLinkService)(nil)
	_ PermalinkService = (*MockPermalinkService)(nil)
)

// MockCategoryService is a mock implementation of CategoryService
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) category(args mock.Arguments) (*contentapp.CategoryResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contentapp.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, tenantID uuid.UUID, req contentapp.CreateCategoryRequest) (*contentapp.CategoryResponse, error) {
	return m.category(m.Called(ctx, tenantID, req))
}

func (m *MockCategoryService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*contentapp.CategoryResponse, error) {
	return m.category(m.Called(ctx, tenantID, id))
}

func (m *MockCategoryService) List(ctx context.Context, tenantID uuid.UUID, filter contentapp.TermListFilter) ([]contentapp.CategoryResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]contentapp.CategoryResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryService) Update(ctx context.Context, tenantID, id uuid.UUID, req contentapp.UpdateCategoryRequest) (*contentapp.CategoryResponse, error) {
	return m.category(m.Called(ctx, tenantID, id, req))
}

func (m *MockCategoryService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockPartnerService is a mock implementation of PartnerService
type MockPartnerService struct {
	mock.Mock
}

func (m *MockPartnerService) partner(args mock.Arguments) (*affiliateapp.PartnerResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliateapp.PartnerResponse), args.Error(1)
}

func (m *MockPartnerService) Create(ctx context.Context, tenantID uuid.UUID, req affiliateapp.CreatePartnerRequest) (*affiliateapp.PartnerResponse, error) {
	return m.partner(m.Called(ctx, tenantID, req))
}

func (m *MockPartnerService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.PartnerResponse, error) {
	return m.partner(m.Called(ctx, tenantID, id))
}

func (m *MockPartnerService) List(ctx context.Context, tenantID uuid.UUID, filter affiliateapp.PartnerListFilter) ([]affiliateapp.PartnerResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]affiliateapp.PartnerResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockPartnerService) Update(ctx context.Context, tenantID, id uuid.UUID, req affiliateapp.UpdatePartnerRequest) (*affiliateapp.PartnerResponse, error) {
	return m.partner(m.Called(ctx, tenantID, id, req))
}

func (m *MockPartnerService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockCommissionService is a mock implementation of CommissionService
type MockCommissionService struct {
	mock.Mock
}

func (m *MockCommissionService) commission(args mock.Arguments) (*affiliateapp.CommissionResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliateapp.CommissionResponse), args.Error(1)
}

func (m *MockCommissionService) RecordConversion(ctx context.Context, tenantID, partnerID uuid.UUID, req affiliateapp.RecordConversionRequest) (*affiliateapp.CommissionResponse, error) {
	return m.commission(m.Called(ctx, tenantID, partnerID, req))
}

func (m *MockCommissionService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.CommissionResponse, error) {
	return m.commission(m.Called(ctx, tenantID, id))
}

func (m *MockCommissionService) List(ctx context.Context, tenantID uuid.UUID, filter affiliateapp.CommissionListFilter) ([]affiliateapp.CommissionResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]affiliateapp.CommissionResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommissionService) Approve(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.CommissionResponse, error) {
	return m.commission(m.Called(ctx, tenantID, id))
}

func (m *MockCommissionService) Reject(ctx context.Context, tenantID, id uuid.UUID, req affiliateapp.TransitionCommissionRequest) (*affiliateapp.CommissionResponse, error) {
	return m.commission(m.Called(ctx, tenantID, id, req))
}

func (m *MockCommissionService) Pay(ctx context.Context, tenantID, id uuid.UUID, req affiliateapp.TransitionCommissionRequest) (*affiliateapp.CommissionResponse, error) {
	return m.commission(m.Called(ctx, tenantID, id, req))
}

func (m *MockCommissionService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.CommissionResponse, error) {
	return m.commission(m.Called(ctx, tenantID, id))
}

// MockEarningsService is a mock implementation of EarningsService
type MockEarningsService struct {
	mock.Mock
}

func (m *MockEarningsService) ForPartner(ctx context.Context, tenantID, partnerID uuid.UUID, filter affiliateapp.EarningsFilter) (*affiliateapp.EarningsResponse, error) {
	args := m.Called(ctx, tenantID, partnerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliateapp.EarningsResponse), args.Error(1)
}

func (m *MockEarningsService) History(ctx context.Context, tenantID, partnerID uuid.UUID) ([]affiliateapp.EarningsResponse, error) {
	args := m.Called(ctx, tenantID, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]affiliateapp.EarningsResponse), args.Error(1)
}

func (m *MockEarningsService) Summary(ctx context.Context, tenantID uuid.UUID, filter affiliateapp.EarningsFilter) (*affiliateapp.EarningsSummaryResponse, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*affiliateapp.EarningsSummaryResponse), args.Error(1)
}

// MockMediaService is a mock implementation of MediaService
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) media(args mock.Arguments) (*mediaapp.MediaResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mediaapp.MediaResponse), args.Error(1)
}

func (m *MockMediaService) CreateUpload(ctx context.Context, tenantID uuid.UUID, req mediaapp.CreateUploadRequest, uploadedBy *uuid.UUID) (*mediaapp.UploadResponse, error) {
	args := m.Called(ctx, tenantID, req, uploadedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mediaapp.UploadResponse), args.Error(1)
}

func (m *MockMediaService) Confirm(ctx context.Context, tenantID, id uuid.UUID) (*mediaapp.MediaResponse, error) {
	return m.media(m.Called(ctx, tenantID, id))
}

func (m *MockMediaService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*mediaapp.MediaResponse, error) {
	return m.media(m.Called(ctx, tenantID, id))
}

func (m *MockMediaService) List(ctx context.Context, tenantID uuid.UUID, filter mediaapp.ListFilter) ([]mediaapp.MediaResponse, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]mediaapp.MediaResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockMediaService) Update(ctx context.Context, tenantID, id uuid.UUID, req mediaapp.UpdateMediaRequest) (*mediaapp.MediaResponse, error) {
	return m.media(m.Called(ctx, tenantID, id, req))
}

func (m *MockMediaService) DownloadURL(ctx context.Context, tenantID, id uuid.UUID) (*mediaapp.DownloadResponse, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mediaapp.DownloadResponse), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// MockSettingsService is a mock implementation of SettingsService
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) setting(args mock.Arguments) (*settingsapp.SettingResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsapp.SettingResponse), args.Error(1)
}

func (m *MockSettingsService) GetAll(ctx context.Context, tenantID uuid.UUID) (map[string]settings.Values, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]settings.Values), args.Error(1)
}

func (m *MockSettingsService) Get(ctx context.Context, tenantID uuid.UUID, sectionName string) (*settingsapp.SettingResponse, error) {
	return m.setting(m.Called(ctx, tenantID, sectionName))
}

func (m *MockSettingsService) Update(ctx context.Context, tenantID uuid.UUID, sectionName string, req settingsapp.UpdateSettingRequest) (*settingsapp.SettingResponse, error) {
	return m.setting(m.Called(ctx, tenantID, sectionName, req))
}

func (m *MockSettingsService) Reset(ctx context.Context, tenantID uuid.UUID, sectionName string, updatedBy uuid.UUID) (*settingsapp.SettingResponse, error) {
	return m.setting(m.Called(ctx, tenantID, sectionName, updatedBy))
}

func (m *MockSettingsService) Homepage(ctx context.Context, tenantID uuid.UUID) (*settingsapp.HomepageResponse, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settingsapp.HomepageResponse), args.Error(1)
}
