package settings

import (
	"context"
	"testing"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSettingsRepository is a mock implementation of settings.Repository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindBySection(ctx context.Context, tenantID uuid.UUID, section settings.Section) (*settings.Setting, error) {
	args := m.Called(ctx, tenantID, section)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Setting), args.Error(1)
}

func (m *MockSettingsRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]settings.Setting, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]settings.Setting), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, setting *settings.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

// MockPageFinder is a mock implementation of PageFinder
type MockPageFinder struct {
	mock.Mock
}

func (m *MockPageFinder) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*content.Post, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.Post), args.Error(1)
}

func newTestService(t *testing.T) (*Service, *MockSettingsRepository, *MockPageFinder, *cache.InMemorySettingsCache) {
	t.Helper()
	repo := new(MockSettingsRepository)
	pages := new(MockPageFinder)
	c := cache.NewInMemorySettingsCache()
	t.Cleanup(func() { _ = c.Close() })
	return NewService(repo, c, pages), repo, pages, c
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("defaults are cached on first read", func(t *testing.T) {
		svc, repo, _, c := newTestService(t)
		repo.On("FindBySection", ctx, tenantID, settings.SectionGeneral).Return(nil, shared.ErrNotFound).Once()

		first, err := svc.Get(ctx, tenantID, "general")
		require.NoError(t, err)
		assert.Equal(t, "My Site", first.Values["siteTitle"])

		second, err := svc.Get(ctx, tenantID, "general")
		require.NoError(t, err)
		assert.Equal(t, first.Values, second.Values)

		hits, _ := c.Stats()
		assert.Equal(t, int64(1), hits)
		repo.AssertNumberOfCalls(t, "FindBySection", 1)
	})

	t.Run("unknown section", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.Get(ctx, tenantID, "themes")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SECTION", domainErr.Code)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("merges and invalidates the cache", func(t *testing.T) {
		svc, repo, _, c := newTestService(t)
		repo.On("FindBySection", ctx, tenantID, settings.SectionGeneral).Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*settings.Setting")).Return(nil)
		require.NoError(t, c.Set(ctx, tenantID, settings.SectionGeneral, settings.Values{"siteTitle": "Stale"}, 0))

		resp, err := svc.Update(ctx, tenantID, "general", UpdateSettingRequest{
			Values:    settings.Values{"siteTitle": "Fresh"},
			UpdatedBy: userID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Fresh", resp.Values["siteTitle"])
		assert.Equal(t, "UTC", resp.Values["timezone"])
		require.NotNil(t, resp.UpdatedBy)
		assert.Equal(t, userID, *resp.UpdatedBy)

		cached, err := c.Get(ctx, tenantID, settings.SectionGeneral)
		require.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("unknown key", func(t *testing.T) {
		svc, repo, _, _ := newTestService(t)
		repo.On("FindBySection", ctx, tenantID, settings.SectionGeneral).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, tenantID, "general", UpdateSettingRequest{Values: settings.Values{"siteTitel": "x"}})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SETTING", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestService_PermalinkSectionIsManaged(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	svc, repo, _, _ := newTestService(t)

	_, err := svc.Update(ctx, tenantID, "permalinks", UpdateSettingRequest{
		Values: settings.Values{"structure": "/%year%/%monthnum%/%postname%/"},
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MANAGED_SECTION", domainErr.Code)

	_, err = svc.Reset(ctx, tenantID, "permalinks", uuid.Nil)
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MANAGED_SECTION", domainErr.Code)

	repo.AssertNotCalled(t, "FindBySection", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Reset(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	userID := uuid.New()

	t.Run("restores defaults and invalidates the cache", func(t *testing.T) {
		svc, repo, _, c := newTestService(t)
		stored := settings.NewSetting(tenantID, settings.SectionGeneral)
		require.NoError(t, stored.Merge(settings.Values{"siteTitle": "Custom"}, userID))
		repo.On("FindBySection", ctx, tenantID, settings.SectionGeneral).Return(stored, nil)
		repo.On("Save", ctx, mock.MatchedBy(func(s *settings.Setting) bool {
			return len(s.Values) == 0
		})).Return(nil).Once()
		require.NoError(t, c.Set(ctx, tenantID, settings.SectionGeneral, settings.Values{"siteTitle": "Custom"}, 0))

		resp, err := svc.Reset(ctx, tenantID, "general", userID)

		require.NoError(t, err)
		assert.Equal(t, "My Site", resp.Values["siteTitle"])
		repo.AssertExpectations(t)
		cached, err := c.Get(ctx, tenantID, settings.SectionGeneral)
		require.NoError(t, err)
		assert.Nil(t, cached)
	})

	t.Run("unknown section", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		_, err := svc.Reset(ctx, tenantID, "themes", userID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SECTION", domainErr.Code)
	})
}

func TestService_Homepage(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	pageID := uuid.New()

	page := func(t *testing.T, publish bool) *content.Post {
		p, err := content.NewPost(tenantID, content.PostTypePage, "Home", content.FormatHTML)
		require.NoError(t, err)
		if publish {
			require.NoError(t, p.Publish(p.CreatedAt, nil))
		}
		return p
	}
	staticReading := func(id string) *settings.Setting {
		s := settings.NewSetting(tenantID, settings.SectionReading)
		s.Values = settings.Values{"homepageType": "static_page", "homepageId": id}
		return s
	}

	tests := []struct {
		name          string
		stored        *settings.Setting
		page          func(t *testing.T) (*content.Post, error)
		wantEffective string
		wantReason    string
	}{
		{
			name:          "defaults show latest posts",
			wantEffective: "latest_posts",
		},
		{
			name:          "published static page",
			stored:        staticReading(pageID.String()),
			page:          func(t *testing.T) (*content.Post, error) { return page(t, true), nil },
			wantEffective: "static_page",
		},
		{
			name:          "draft page falls back",
			stored:        staticReading(pageID.String()),
			page:          func(t *testing.T) (*content.Post, error) { return page(t, false), nil },
			wantEffective: "latest_posts",
			wantReason:    HomepagePageNotPublished,
		},
		{
			name:          "missing page falls back",
			stored:        staticReading(pageID.String()),
			page:          func(*testing.T) (*content.Post, error) { return nil, shared.ErrNotFound },
			wantEffective: "latest_posts",
			wantReason:    HomepagePageNotFound,
		},
		{
			name:          "no page id",
			stored:        staticReading(""),
			wantEffective: "latest_posts",
			wantReason:    HomepageMissingPageID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pages, _ := newTestService(t)
			if tt.stored != nil {
				repo.On("FindBySection", ctx, tenantID, settings.SectionReading).Return(tt.stored, nil)
			} else {
				repo.On("FindBySection", ctx, tenantID, settings.SectionReading).Return(nil, shared.ErrNotFound)
			}
			if tt.page != nil {
				p, err := tt.page(t)
				pages.On("FindByIDForTenant", ctx, tenantID, pageID).Return(p, err)
			}

			resp, err := svc.Homepage(ctx, tenantID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantEffective, resp.EffectiveType)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.Equal(t, tt.wantReason != "", resp.ValidationFailed)
			assert.Equal(t, 10, resp.PostsPerPage)
		})
	}
}

func TestService_UpdateReadingHomepage(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	publishedPage := func(t *testing.T) *content.Post {
		page, err := content.NewPost(tenantID, content.PostTypePage, "Home", content.FormatHTML)
		require.NoError(t, err)
		return page
	}

	tests := []struct {
		name     string
		values   func(pageID string) settings.Values
		page     func(t *testing.T) (*content.Post, error)
		wantCode string
	}{
		{
			name:     "static page without id",
			values:   func(string) settings.Values { return settings.Values{"homepageType": "static_page"} },
			wantCode: "MISSING_PAGE_ID",
		},
		{
			name: "page does not exist",
			values: func(id string) settings.Values {
				return settings.Values{"homepageType": "static_page", "homepageId": id}
			},
			page:     func(*testing.T) (*content.Post, error) { return nil, shared.ErrNotFound },
			wantCode: "PAGE_NOT_FOUND",
		},
		{
			name: "page is a draft",
			values: func(id string) settings.Values {
				return settings.Values{"homepageType": "static_page", "homepageId": id}
			},
			page:     func(t *testing.T) (*content.Post, error) { return publishedPage(t), nil },
			wantCode: "PAGE_NOT_PUBLISHED",
		},
		{
			name: "published page",
			values: func(id string) settings.Values {
				return settings.Values{"homepageType": "static_page", "homepageId": id}
			},
			page: func(t *testing.T) (*content.Post, error) {
				p := publishedPage(t)
				require.NoError(t, p.Publish(p.CreatedAt, nil))
				return p, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, pages, _ := newTestService(t)
			pageID := uuid.New()
			repo.On("FindBySection", ctx, tenantID, settings.SectionReading).Return(nil, shared.ErrNotFound)
			repo.On("Save", ctx, mock.Anything).Return(nil)
			if tt.page != nil {
				page, err := tt.page(t)
				pages.On("FindByIDForTenant", ctx, tenantID, pageID).Return(page, err)
			}

			_, err := svc.Update(ctx, tenantID, "reading", UpdateSettingRequest{Values: tt.values(pageID.String())})

			if tt.wantCode == "" {
				require.NoError(t, err)
				repo.AssertCalled(t, "Save", ctx, mock.Anything)
				return
			}
			var domainErr *shared.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tt.wantCode, domainErr.Code)
			repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestCacheInvalidationHandler(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	c := cache.NewInMemorySettingsCache()
	defer c.Close()
	require.NoError(t, c.Set(ctx, tenantID, settings.SectionMedia, settings.Values{"maxUploadSizeMb": 5}, 0))

	handler := NewCacheInvalidationHandler(c, zap.NewNop())
	assert.Equal(t, []string{settings.EventTypeSettingsUpdated}, handler.EventTypes())

	setting := settings.NewSetting(tenantID, settings.SectionMedia)
	require.NoError(t, handler.Handle(ctx, settings.NewUpdatedEvent(setting, []string{"maxUploadSizeMb"})))

	cached, err := c.Get(ctx, tenantID, settings.SectionMedia)
	require.NoError(t, err)
	assert.Nil(t, cached)
}
