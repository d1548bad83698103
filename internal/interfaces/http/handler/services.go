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
)

// The interfaces below are the use cases each handler calls. The application
// services satisfy them; tests substitute mocks.

// AuthService authenticates users
type AuthService interface {
	Login(ctx context.Context, input identityapp.LoginInput) (*identityapp.LoginResult, error)
	RefreshToken(ctx context.Context, input identityapp.RefreshTokenInput) (*identityapp.RefreshTokenResult, error)
	Logout(ctx context.Context, input identityapp.LogoutInput) error
	GetCurrentUser(ctx context.Context, input identityapp.GetCurrentUserInput) (*identityapp.UserInfo, error)
	ChangePassword(ctx context.Context, input identityapp.ChangePasswordInput) error
}

// PostService manages posts and pages
type PostService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req contentapp.CreatePostRequest) (*contentapp.PostResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*contentapp.PostResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter contentapp.PostListFilter) ([]contentapp.PostListResponse, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType, req contentapp.UpdatePostRequest) (*contentapp.PostResponse, error)
	Publish(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType, req contentapp.PublishPostRequest) (*contentapp.PostResponse, error)
	Unpublish(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*contentapp.PostResponse, error)
	Trash(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) error
	Restore(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) (*contentapp.PostResponse, error)
	DeletePermanently(ctx context.Context, tenantID, id uuid.UUID, postType content.PostType) error
	SetCategories(ctx context.Context, tenantID, id uuid.UUID, categoryIDs []uuid.UUID) (*contentapp.PostResponse, error)
	SetTags(ctx context.Context, tenantID, id uuid.UUID, tagIDs []uuid.UUID) (*contentapp.PostResponse, error)
}

// CategoryService manages categories
type CategoryService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req contentapp.CreateCategoryRequest) (*contentapp.CategoryResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*contentapp.CategoryResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter contentapp.TermListFilter) ([]contentapp.CategoryResponse, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req contentapp.UpdateCategoryRequest) (*contentapp.CategoryResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// TagService manages tags
type TagService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req contentapp.CreateTagRequest) (*contentapp.TagResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*contentapp.TagResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter contentapp.TermListFilter) ([]contentapp.TagResponse, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req contentapp.UpdateTagRequest) (*contentapp.TagResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// SettingsService reads and updates settings sections
type SettingsService interface {
	GetAll(ctx context.Context, tenantID uuid.UUID) (map[string]settings.Values, error)
	Get(ctx context.Context, tenantID uuid.UUID, sectionName string) (*settingsapp.SettingResponse, error)
	Update(ctx context.Context, tenantID uuid.UUID, sectionName string, req settingsapp.UpdateSettingRequest) (*settingsapp.SettingResponse, error)
	Reset(ctx context.Context, tenantID uuid.UUID, sectionName string, updatedBy uuid.UUID) (*settingsapp.SettingResponse, error)
	Homepage(ctx context.Context, tenantID uuid.UUID) (*settingsapp.HomepageResponse, error)
}

// PermalinkService exposes the permalink engine
type PermalinkService interface {
	GetSettings(ctx context.Context, tenantID uuid.UUID) (*permalinkapp.SettingsResponse, error)
	UpdateSettings(ctx context.Context, tenantID uuid.UUID, req permalinkapp.UpdateSettingsRequest) (*permalinkapp.UpdateSettingsResponse, error)
	Preview(ctx context.Context, tenantID uuid.UUID, structure string) (*permalink.PreviewResult, error)
	Validate(structure string) permalink.ValidationResult
	Presets() []permalink.Preset
	Analyze(ctx context.Context, tenantID uuid.UUID, req permalinkapp.AnalyzeRequest) (*permalink.Analysis, error)
	PostSEO(ctx context.Context, tenantID, postID uuid.UUID) (*permalinkapp.PostSEOResponse, error)
	Resolve(ctx context.Context, tenantID uuid.UUID, path string) (*permalinkapp.ResolveResponse, error)
	ListRedirects(ctx context.Context, tenantID uuid.UUID, filter permalinkapp.RedirectListFilter) ([]permalinkapp.RedirectResponse, int64, error)
}

// PartnerService manages affiliate partners
type PartnerService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req affiliateapp.CreatePartnerRequest) (*affiliateapp.PartnerResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.PartnerResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter affiliateapp.PartnerListFilter) ([]affiliateapp.PartnerResponse, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req affiliateapp.UpdatePartnerRequest) (*affiliateapp.PartnerResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// LinkService manages partner links and public clicks
type LinkService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req affiliateapp.CreateLinkRequest) (*affiliateapp.LinkResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.LinkResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter affiliateapp.LinkListFilter) ([]affiliateapp.LinkResponse, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req affiliateapp.UpdateLinkRequest) (*affiliateapp.LinkResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	Click(ctx context.Context, req affiliateapp.ClickRequest) (*affiliateapp.ClickResult, error)
}

// CommissionService records and moves commissions
type CommissionService interface {
	RecordConversion(ctx context.Context, tenantID, partnerID uuid.UUID, req affiliateapp.RecordConversionRequest) (*affiliateapp.CommissionResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.CommissionResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter affiliateapp.CommissionListFilter) ([]affiliateapp.CommissionResponse, int64, error)
	Approve(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.CommissionResponse, error)
	Reject(ctx context.Context, tenantID, id uuid.UUID, req affiliateapp.TransitionCommissionRequest) (*affiliateapp.CommissionResponse, error)
	Pay(ctx context.Context, tenantID, id uuid.UUID, req affiliateapp.TransitionCommissionRequest) (*affiliateapp.CommissionResponse, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID) (*affiliateapp.CommissionResponse, error)
}

// EarningsService summarises partner earnings
type EarningsService interface {
	ForPartner(ctx context.Context, tenantID, partnerID uuid.UUID, filter affiliateapp.EarningsFilter) (*affiliateapp.EarningsResponse, error)
	History(ctx context.Context, tenantID, partnerID uuid.UUID) ([]affiliateapp.EarningsResponse, error)
	Summary(ctx context.Context, tenantID uuid.UUID, filter affiliateapp.EarningsFilter) (*affiliateapp.EarningsSummaryResponse, error)
}

// MediaService manages uploads
type MediaService interface {
	CreateUpload(ctx context.Context, tenantID uuid.UUID, req mediaapp.CreateUploadRequest, uploadedBy *uuid.UUID) (*mediaapp.UploadResponse, error)
	Confirm(ctx context.Context, tenantID, id uuid.UUID) (*mediaapp.MediaResponse, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*mediaapp.MediaResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, filter mediaapp.ListFilter) ([]mediaapp.MediaResponse, int64, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, req mediaapp.UpdateMediaRequest) (*mediaapp.MediaResponse, error)
	DownloadURL(ctx context.Context, tenantID, id uuid.UUID) (*mediaapp.DownloadResponse, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

var (
	_ AuthService       = (*identityapp.AuthService)(nil)
	_ PostService       = (*contentapp.PostService)(nil)
	_ CategoryService   = (*contentapp.CategoryService)(nil)
	_ TagService        = (*contentapp.TagService)(nil)
	_ SettingsService   = (*settingsapp.Service)(nil)
	_ PermalinkService  = (*permalinkapp.Service)(nil)
	_ PartnerService    = (*affiliateapp.PartnerService)(nil)
	_ LinkService       = (*affiliateapp.LinkService)(nil)
	_ CommissionService = (*affiliateapp.CommissionService)(nil)
	_ EarningsService   = (*affiliateapp.EarningsService)(nil)
	_ MediaService      = (*mediaapp.Service)(nil)
)
