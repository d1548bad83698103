package content

import (
	"testing"
	"time"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPost(t *testing.T) *Post {
	t.Helper()
	p, err := NewPost(uuid.New(), PostTypePost, "Hello World", FormatMarkdown)
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func eventTypes(agg shared.AggregateRoot) []string {
	var types []string
	for _, e := range agg.GetDomainEvents() {
		types = append(types, e.EventType())
	}
	return types
}

func TestNewPost(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates draft with derived slug", func(t *testing.T) {
		p, err := NewPost(tenantID, PostTypePost, "  Hello World  ", "")
		require.NoError(t, err)

		assert.Equal(t, tenantID, p.TenantID)
		assert.Equal(t, "Hello World", p.Title)
		assert.Equal(t, valueobject.Slug("hello-world"), p.Slug)
		assert.Equal(t, PostStatusDraft, p.Status)
		assert.Equal(t, FormatMarkdown, p.Format)
		assert.NotNil(t, p.Meta)
		assert.Equal(t, []string{EventTypePostCreated}, eventTypes(p))
	})

	t.Run("falls back to id slug when title has no usable characters", func(t *testing.T) {
		p, err := NewPost(tenantID, PostTypePage, "!!!", FormatHTML)
		require.NoError(t, err)
		assert.Equal(t, "page-"+p.ID.String()[:8], p.Slug.String())
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewPost(tenantID, "product", "Title", FormatMarkdown)
		require.Error(t, err)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewPost(tenantID, PostTypePost, "   ", FormatMarkdown)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Title cannot be empty")
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		_, err := NewPost(tenantID, PostTypePost, "Title", "rtf")
		require.Error(t, err)
	})
}

func TestPost_Publish(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("publishes immediately", func(t *testing.T) {
		p := newTestPost(t)
		require.NoError(t, p.Publish(now, nil))

		assert.Equal(t, PostStatusPublish, p.Status)
		require.NotNil(t, p.PublishedAt)
		assert.Equal(t, now, *p.PublishedAt)
		assert.Equal(t, []string{EventTypePostPublished}, eventTypes(p))
	})

	t.Run("future date schedules", func(t *testing.T) {
		p := newTestPost(t)
		at := now.Add(24 * time.Hour)
		require.NoError(t, p.Publish(now, &at))

		assert.Equal(t, PostStatusFuture, p.Status)
		assert.Equal(t, []string{EventTypePostScheduled}, eventTypes(p))
	})

	t.Run("past date backdates", func(t *testing.T) {
		p := newTestPost(t)
		at := now.Add(-48 * time.Hour)
		require.NoError(t, p.Publish(now, &at))

		assert.Equal(t, PostStatusPublish, p.Status)
		assert.Equal(t, at, *p.PublishedAt)
	})

	t.Run("already published", func(t *testing.T) {
		p := newTestPost(t)
		require.NoError(t, p.Publish(now, nil))
		err := p.Publish(now, nil)
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("trashed cannot be published", func(t *testing.T) {
		p := newTestPost(t)
		require.NoError(t, p.Trash())
		assert.Error(t, p.Publish(now, nil))
	})
}

func TestPost_PublishIfDue(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := newTestPost(t)
	at := now.Add(time.Hour)
	require.NoError(t, p.Publish(now, &at))
	p.ClearDomainEvents()

	assert.False(t, p.PublishIfDue(now))
	assert.True(t, p.PublishIfDue(now.Add(2*time.Hour)))
	assert.Equal(t, PostStatusPublish, p.Status)
	assert.Equal(t, []string{EventTypePostPublished}, eventTypes(p))
}

func TestPost_TrashAndRestore(t *testing.T) {
	now := time.Now()
	p := newTestPost(t)
	require.NoError(t, p.Publish(now, nil))

	require.NoError(t, p.Trash())
	assert.Equal(t, PostStatusTrash, p.Status)
	assert.Equal(t, PostStatusPublish, p.TrashedFrom)
	assert.Error(t, p.Trash())

	require.NoError(t, p.Restore(now))
	assert.Equal(t, PostStatusPublish, p.Status)
	assert.Empty(t, p.TrashedFrom)
	assert.Error(t, p.Restore(now))
}

func TestPost_RestoreExpiredSchedule(t *testing.T) {
	now := time.Now()
	p := newTestPost(t)
	at := now.Add(time.Hour)
	require.NoError(t, p.Publish(now, &at))
	require.NoError(t, p.Trash())

	require.NoError(t, p.Restore(now.Add(2*time.Hour)))
	assert.Equal(t, PostStatusDraft, p.Status)
}

func TestPost_MarkDeletedRequiresTrash(t *testing.T) {
	p := newTestPost(t)
	assert.Error(t, p.MarkDeleted())

	require.NoError(t, p.Trash())
	require.NoError(t, p.MarkDeleted())
	assert.Contains(t, eventTypes(p), EventTypePostDeleted)
}

func TestPost_SetSlug(t *testing.T) {
	t.Run("draft change is silent", func(t *testing.T) {
		p := newTestPost(t)
		p.SetSlug("new-slug")
		assert.Equal(t, valueobject.Slug("new-slug"), p.Slug)
		assert.Empty(t, p.GetDomainEvents())
	})

	t.Run("published change announces old slug", func(t *testing.T) {
		p := newTestPost(t)
		require.NoError(t, p.Publish(time.Now(), nil))
		p.ClearDomainEvents()

		p.SetSlug("renamed")
		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(*PostSlugChangedEvent)
		require.True(t, ok)
		assert.Equal(t, "hello-world", changed.OldSlug)
		assert.Equal(t, "renamed", changed.Slug)
	})
}

func TestPost_PagesRejectTerms(t *testing.T) {
	page, err := NewPost(uuid.New(), PostTypePage, "About", FormatHTML)
	require.NoError(t, err)

	assert.Error(t, page.SetTags([]uuid.UUID{uuid.New()}))
	assert.Error(t, page.SetCategories([]uuid.UUID{uuid.New()}))
	assert.NoError(t, page.SetTags(nil))
}

func TestPost_SetTagsDeduplicates(t *testing.T) {
	p := newTestPost(t)
	id := uuid.New()
	require.NoError(t, p.SetTags([]uuid.UUID{id, id, uuid.Nil}))
	assert.Equal(t, []uuid.UUID{id}, p.TagIDs)
}

func TestPost_SetParent(t *testing.T) {
	page, err := NewPost(uuid.New(), PostTypePage, "Team", FormatHTML)
	require.NoError(t, err)

	assert.Error(t, page.SetParent(&page.ID))
	parent := uuid.New()
	require.NoError(t, page.SetParent(&parent))
	assert.Equal(t, parent, *page.ParentID)

	post := newTestPost(t)
	assert.Error(t, post.SetParent(&parent))
}

func TestPost_ChangeStatus(t *testing.T) {
	p := newTestPost(t)
	require.NoError(t, p.ChangeStatus(PostStatusPending))
	assert.Equal(t, PostStatusPending, p.Status)

	assert.Error(t, p.ChangeStatus(PostStatusPublish))

	require.NoError(t, p.Publish(time.Now(), nil))
	p.ClearDomainEvents()
	require.NoError(t, p.ChangeStatus(PostStatusPrivate))
	assert.Equal(t, []string{EventTypePostUnpublished}, eventTypes(p))
}

func TestPost_UpdateContent(t *testing.T) {
	p := newTestPost(t)
	version := p.Version

	require.NoError(t, p.UpdateContent("New title", "# Body", " short ", ""))
	assert.Equal(t, "New title", p.Title)
	assert.Equal(t, "short", p.Excerpt)
	assert.Equal(t, FormatMarkdown, p.Format)
	assert.Equal(t, version+1, p.Version)
	// slug is not touched by title edits
	assert.Equal(t, valueobject.Slug("hello-world"), p.Slug)
}
