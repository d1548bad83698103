package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	posts      *MockPostRepository
	categories *MockCategoryRepository
	tags       *MockTagRepository
	publisher  *recordingPublisher
	service    *PostService
	now        time.Time
}

func newPostFixture() *postFixture {
	f := &postFixture{
		posts:      new(MockPostRepository),
		categories: new(MockCategoryRepository),
		tags:       new(MockTagRepository),
		publisher:  &recordingPublisher{},
		now:        time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
	f.service = NewPostService(f.posts, f.categories, f.tags, nil, plainRenderer{})
	f.service.SetEventPublisher(f.publisher)
	f.service.now = func() time.Time { return f.now }
	return f
}

func existingPost(t *testing.T, tenantID uuid.UUID, postType content.PostType) *content.Post {
	t.Helper()
	p, err := content.NewPost(tenantID, postType, "Hello World", content.FormatMarkdown)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("derives slug and excerpt", func(t *testing.T) {
		f := newPostFixture()
		f.posts.On("ExistsBySlug", ctx, tenantID, "hello-world", (*uuid.UUID)(nil)).Return(false, nil)
		f.posts.On("Save", ctx, mock.AnythingOfType("*content.Post")).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, CreatePostRequest{
			Title:   "Hello World",
			Content: "one two three four five",
		})

		require.NoError(t, err)
		assert.Equal(t, "hello-world", resp.Slug)
		assert.Equal(t, "post", resp.Type)
		assert.Equal(t, "draft", resp.Status)
		assert.Equal(t, "one two three", resp.Excerpt)
		assert.Equal(t, "<p>one two three four five</p>", resp.ContentHTML)
		assert.Equal(t, []string{content.EventTypePostCreated}, f.publisher.types())
		f.posts.AssertExpectations(t)
	})

	t.Run("generated slug collisions get a numeric suffix", func(t *testing.T) {
		f := newPostFixture()
		f.posts.On("ExistsBySlug", ctx, tenantID, "hello-world", (*uuid.UUID)(nil)).Return(true, nil)
		f.posts.On("ExistsBySlug", ctx, tenantID, "hello-world-2", (*uuid.UUID)(nil)).Return(true, nil)
		f.posts.On("ExistsBySlug", ctx, tenantID, "hello-world-3", (*uuid.UUID)(nil)).Return(false, nil)
		f.posts.On("Save", ctx, mock.Anything).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, CreatePostRequest{Title: "Hello World"})

		require.NoError(t, err)
		assert.Equal(t, "hello-world-3", resp.Slug)
	})

	t.Run("explicit duplicate slug is rejected", func(t *testing.T) {
		f := newPostFixture()
		f.posts.On("ExistsBySlug", ctx, tenantID, "taken", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := f.service.Create(ctx, tenantID, CreatePostRequest{Title: "Hello", Slug: "taken"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrDuplicateSlug))
		f.posts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("invalid slug", func(t *testing.T) {
		f := newPostFixture()
		_, err := f.service.Create(ctx, tenantID, CreatePostRequest{Title: "Hello", Slug: "Not A Slug"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SLUG", domainErr.Code)
	})

	t.Run("publish with terms recounts usage", func(t *testing.T) {
		f := newPostFixture()
		cat, err := content.NewCategory(tenantID, "News", "")
		require.NoError(t, err)
		tag, err := content.NewTag(tenantID, "Go", "")
		require.NoError(t, err)

		f.posts.On("ExistsBySlug", ctx, tenantID, "release", (*uuid.UUID)(nil)).Return(false, nil)
		f.categories.On("FindByIDs", ctx, tenantID, []uuid.UUID{cat.ID}).Return([]content.Category{*cat}, nil)
		f.tags.On("FindByIDs", ctx, tenantID, []uuid.UUID{tag.ID}).Return([]content.Tag{*tag}, nil)
		f.posts.On("Save", ctx, mock.Anything).Return(nil)
		f.categories.On("RefreshPostCounts", ctx, tenantID, []uuid.UUID{cat.ID}).Return(nil)
		f.tags.On("RefreshUsageCounts", ctx, tenantID, []uuid.UUID{tag.ID}).Return(nil)

		resp, err := f.service.Create(ctx, tenantID, CreatePostRequest{
			Title:       "Release",
			Status:      "publish",
			CategoryIDs: []uuid.UUID{cat.ID},
			TagIDs:      []uuid.UUID{tag.ID},
		})

		require.NoError(t, err)
		assert.Equal(t, "publish", resp.Status)
		require.NotNil(t, resp.PublishedAt)
		assert.True(t, resp.PublishedAt.Equal(f.now))
		assert.Contains(t, f.publisher.types(), content.EventTypePostPublished)
		f.categories.AssertExpectations(t)
		f.tags.AssertExpectations(t)
	})

	t.Run("unknown tag is rejected", func(t *testing.T) {
		f := newPostFixture()
		missing := uuid.New()
		f.posts.On("ExistsBySlug", ctx, tenantID, "tagged", (*uuid.UUID)(nil)).Return(false, nil)
		f.tags.On("FindByIDs", ctx, tenantID, []uuid.UUID{missing}).Return([]content.Tag{}, nil)

		_, err := f.service.Create(ctx, tenantID, CreatePostRequest{Title: "Tagged", TagIDs: []uuid.UUID{missing}})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})

	t.Run("future status needs a future date", func(t *testing.T) {
		f := newPostFixture()
		f.posts.On("ExistsBySlug", ctx, tenantID, "later", (*uuid.UUID)(nil)).Return(false, nil)

		_, err := f.service.Create(ctx, tenantID, CreatePostRequest{Title: "Later", Status: "future"})
		assert.Error(t, err)
	})

	t.Run("page parent must be a page", func(t *testing.T) {
		f := newPostFixture()
		parent := existingPost(t, tenantID, content.PostTypePost)
		f.posts.On("ExistsBySlug", ctx, tenantID, "about", (*uuid.UUID)(nil)).Return(false, nil)
		f.posts.On("FindByIDForTenant", ctx, tenantID, parent.ID).Return(parent, nil)

		_, err := f.service.Create(ctx, tenantID, CreatePostRequest{
			Title:    "About",
			Type:     content.PostTypePage,
			ParentID: &parent.ID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_PARENT", domainErr.Code)
	})
}

func TestPostService_Update(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("slug change on published post emits slug changed", func(t *testing.T) {
		f := newPostFixture()
		post := existingPost(t, tenantID, content.PostTypePost)
		require.NoError(t, post.Publish(f.now.Add(-time.Hour), nil))
		post.ClearDomainEvents()

		f.posts.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)
		f.posts.On("ExistsBySlug", ctx, tenantID, "renamed", &post.ID).Return(false, nil)
		f.posts.On("Save", ctx, post).Return(nil)

		newSlug := "renamed"
		resp, err := f.service.Update(ctx, tenantID, post.ID, content.PostTypePost, UpdatePostRequest{Slug: &newSlug})

		require.NoError(t, err)
		assert.Equal(t, "renamed", resp.Slug)
		require.Len(t, f.publisher.events, 1)
		changed, ok := f.publisher.events[0].(*content.PostSlugChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "hello-world", changed.OldSlug)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		f := newPostFixture()
		post := existingPost(t, tenantID, content.PostTypePost)
		f.posts.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)
		f.posts.On("ExistsBySlug", ctx, tenantID, "taken", &post.ID).Return(true, nil)

		taken := "taken"
		_, err := f.service.Update(ctx, tenantID, post.ID, content.PostTypePost, UpdatePostRequest{Slug: &taken})
		assert.ErrorIs(t, err, shared.ErrDuplicateSlug)
	})

	t.Run("stale version", func(t *testing.T) {
		f := newPostFixture()
		post := existingPost(t, tenantID, content.PostTypePost)
		f.posts.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)

		stale := post.Version + 1
		_, err := f.service.Update(ctx, tenantID, post.ID, content.PostTypePost, UpdatePostRequest{Version: &stale})
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})

	t.Run("removing a tag recounts the old tag", func(t *testing.T) {
		f := newPostFixture()
		post := existingPost(t, tenantID, content.PostTypePost)
		oldTag := uuid.New()
		post.TagIDs = []uuid.UUID{oldTag}

		f.posts.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)
		f.posts.On("Save", ctx, post).Return(nil)
		f.tags.On("RefreshUsageCounts", ctx, tenantID, []uuid.UUID{oldTag}).Return(nil)

		empty := []uuid.UUID{}
		resp, err := f.service.Update(ctx, tenantID, post.ID, content.PostTypePost, UpdatePostRequest{TagIDs: &empty})

		require.NoError(t, err)
		assert.Empty(t, resp.TagIDs)
		f.tags.AssertExpectations(t)
	})

	t.Run("type mismatch reads as not found", func(t *testing.T) {
		f := newPostFixture()
		post := existingPost(t, tenantID, content.PostTypePost)
		f.posts.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)

		_, err := f.service.GetByID(ctx, tenantID, post.ID, content.PostTypePage)
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestPostService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("publish in the future schedules", func(t *testing.T) {
		f := newPostFixture()
		post := existingPost(t, tenantID, content.PostTypePost)
		f.posts.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)
		f.posts.On("Save", ctx, post).Return(nil)

		at := f.now.Add(24 * time.Hour)
		resp, err := f.service.Publish(ctx, tenantID, post.ID, content.PostTypePost, PublishPostRequest{PublishedAt: &at})

		require.NoError(t, err)
		assert.Equal(t, "future", resp.Status)
		assert.Equal(t, []string{content.EventTypePostScheduled}, f.publisher.types())
	})

	t.Run("trash then restore", func(t *testing.T) {
		f := newPostFixture()
		post := existingPost(t, tenantID, content.PostTypePost)
		require.NoError(t, post.Publish(f.now, nil))
		post.ClearDomainEvents()
		f.posts.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)
		f.posts.On("Save", ctx, post).Return(nil)

		require.NoError(t, f.service.Trash(ctx, tenantID, post.ID, content.PostTypePost))
		assert.Equal(t, content.PostStatusTrash, post.Status)

		resp, err := f.service.Restore(ctx, tenantID, post.ID, content.PostTypePost)
		require.NoError(t, err)
		assert.Equal(t, "publish", resp.Status)
		assert.Equal(t, []string{content.EventTypePostTrashed, content.EventTypePostRestored}, f.publisher.types())
	})

	t.Run("permanent delete requires trash", func(t *testing.T) {
		f := newPostFixture()
		post := existingPost(t, tenantID, content.PostTypePost)
		f.posts.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)

		err := f.service.DeletePermanently(ctx, tenantID, post.ID, content.PostTypePost)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.posts.AssertNotCalled(t, "DeleteForTenant", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("permanent delete of trashed post", func(t *testing.T) {
		f := newPostFixture()
		post := existingPost(t, tenantID, content.PostTypePost)
		require.NoError(t, post.Trash())
		post.ClearDomainEvents()
		f.posts.On("FindByIDForTenant", ctx, tenantID, post.ID).Return(post, nil)
		f.posts.On("DeleteForTenant", ctx, tenantID, post.ID).Return(nil)

		require.NoError(t, f.service.DeletePermanently(ctx, tenantID, post.ID, content.PostTypePost))
		assert.Equal(t, []string{content.EventTypePostDeleted}, f.publisher.types())
	})
}

func TestPostService_PublishDue(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newPostFixture()

	due := existingPost(t, tenantID, content.PostTypePost)
	past := f.now.Add(-time.Minute)
	due.Status = content.PostStatusFuture
	due.PublishedAt = &past

	failing := existingPost(t, tenantID, content.PostTypePost)
	failing.Status = content.PostStatusFuture
	failing.PublishedAt = &past

	f.posts.On("FindDueScheduled", ctx, tenantID, f.now).Return([]content.Post{*due, *failing}, nil)
	f.posts.On("Save", ctx, mock.MatchedBy(func(p *content.Post) bool { return p.ID == due.ID })).Return(nil)
	f.posts.On("Save", ctx, mock.MatchedBy(func(p *content.Post) bool { return p.ID == failing.ID })).Return(errors.New("db down"))

	n, err := f.service.PublishDue(ctx, tenantID, f.now)

	assert.Equal(t, 1, n)
	assert.Error(t, err)
	assert.Equal(t, []string{content.EventTypePostPublished}, f.publisher.types())
}

func TestPostService_List(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	f := newPostFixture()
	tagID := uuid.New()
	post := existingPost(t, tenantID, content.PostTypePost)

	matchFilter := mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Filters[content.FilterType] == "post" &&
			filter.Filters[content.FilterTagID] == tagID &&
			filter.Page == 2 && filter.PageSize == 10
	})
	f.posts.On("FindAllForTenant", ctx, tenantID, matchFilter).Return([]content.Post{*post}, nil)
	f.posts.On("CountForTenant", ctx, tenantID, matchFilter).Return(int64(11), nil)

	items, total, err := f.service.List(ctx, tenantID, PostListFilter{
		Type:     content.PostTypePost,
		TagID:    &tagID,
		Page:     2,
		PageSize: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(11), total)
	require.Len(t, items, 1)
	assert.Equal(t, post.ID, items[0].ID)
}
