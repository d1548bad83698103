package content

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// MaxTitleLength is the maximum length of a post title in characters
const MaxTitleLength = 300

// PostType distinguishes blog posts from static pages. Both share one table.
type PostType string

const (
	PostTypePost PostType = "post"
	PostTypePage PostType = "page"
)

// IsValid reports whether the type is known
func (t PostType) IsValid() bool {
	return t == PostTypePost || t == PostTypePage
}

// PostStatus is the publication state of a post
type PostStatus string

const (
	PostStatusDraft   PostStatus = "draft"
	PostStatusPending PostStatus = "pending"
	PostStatusPublish PostStatus = "publish"
	PostStatusFuture  PostStatus = "future"
	PostStatusPrivate PostStatus = "private"
	PostStatusTrash   PostStatus = "trash"
)

// IsValid reports whether the status is known
func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusDraft, PostStatusPending, PostStatusPublish, PostStatusFuture, PostStatusPrivate, PostStatusTrash:
		return true
	}
	return false
}

// ContentFormat is the source format of the body
type ContentFormat string

const (
	FormatMarkdown ContentFormat = "markdown"
	FormatHTML     ContentFormat = "html"
)

// IsValid reports whether the format is known
func (f ContentFormat) IsValid() bool {
	return f == FormatMarkdown || f == FormatHTML
}

// Meta holds free-form JSON attributes (SEO title, focus keyword, custom fields)
type Meta map[string]any

// StringValue returns a string value from meta or ""
func (m Meta) StringValue(key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// Post is a blog post or a static page
type Post struct {
	shared.TenantAggregateRoot
	Type        PostType
	Title       string
	Slug        valueobject.Slug
	Content     string
	Format      ContentFormat
	Excerpt     string
	Status      PostStatus
	TrashedFrom PostStatus
	AuthorID    *uuid.UUID
	ParentID    *uuid.UUID
	MenuOrder   int
	PublishedAt *time.Time
	Meta        Meta
	CategoryIDs []uuid.UUID
	TagIDs      []uuid.UUID
}

// NewPost creates a draft post or page. The slug is derived from the title and
// may be replaced with SetSlug before the first save.
func NewPost(tenantID uuid.UUID, postType PostType, title string, format ContentFormat) (*Post, error) {
	if !postType.IsValid() {
		return nil, shared.NewDomainError("INVALID_POST_TYPE", "Post type must be post or page")
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatMarkdown
	}
	if !format.IsValid() {
		return nil, shared.NewDomainError("INVALID_FORMAT", "Content format must be markdown or html")
	}

	p := &Post{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Type:                postType,
		Title:               strings.TrimSpace(title),
		Format:              format,
		Status:              PostStatusDraft,
		Meta:                Meta{},
	}
	p.Slug = valueobject.Slugify(p.Title)
	if p.Slug.IsZero() {
		p.Slug = valueobject.Slug(string(postType) + "-" + p.ID.String()[:8])
	}

	p.AddDomainEvent(NewPostCreatedEvent(p))
	return p, nil
}

// IsPage reports whether the post is a static page
func (p *Post) IsPage() bool {
	return p.Type == PostTypePage
}

// IsPublished reports whether the post is publicly visible
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublish
}

// IsTrashed reports whether the post is soft deleted
func (p *Post) IsTrashed() bool {
	return p.Status == PostStatusTrash
}

// PermalinkDate is the date used for date tokens in permalinks
func (p *Post) PermalinkDate() time.Time {
	if p.PublishedAt != nil {
		return *p.PublishedAt
	}
	return p.CreatedAt
}

// UpdateContent replaces the editable body fields
func (p *Post) UpdateContent(title, body, excerpt string, format ContentFormat) error {
	if p.IsTrashed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit a trashed post")
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if format == "" {
		format = p.Format
	}
	if !format.IsValid() {
		return shared.NewDomainError("INVALID_FORMAT", "Content format must be markdown or html")
	}

	p.Title = strings.TrimSpace(title)
	p.Content = body
	p.Excerpt = strings.TrimSpace(excerpt)
	p.Format = format
	p.IncrementVersion()

	p.AddDomainEvent(NewPostUpdatedEvent(p))
	return nil
}

// SetSlug changes the slug. A change on visible content is announced so
// that the old URL can be redirected.
func (p *Post) SetSlug(slug valueobject.Slug) {
	if slug == p.Slug || slug.IsZero() {
		return
	}
	old := p.Slug
	p.Slug = slug
	p.IncrementVersion()

	if p.IsPublished() {
		p.AddDomainEvent(NewPostSlugChangedEvent(p, old))
	}
}

// SetMeta replaces the meta object
func (p *Post) SetMeta(meta Meta) {
	if meta == nil {
		meta = Meta{}
	}
	p.Meta = meta
	p.Touch()
}

// SetAuthor assigns the author
func (p *Post) SetAuthor(authorID uuid.UUID) {
	if authorID == uuid.Nil {
		return
	}
	p.AuthorID = &authorID
}

// SetParent nests a page under another page
func (p *Post) SetParent(parentID *uuid.UUID) error {
	if parentID == nil {
		p.ParentID = nil
		return nil
	}
	if !p.IsPage() {
		return shared.NewDomainError("INVALID_PARENT", "Only pages can have a parent")
	}
	if *parentID == p.ID {
		return shared.NewDomainError("INVALID_PARENT", "A page cannot be its own parent")
	}
	p.ParentID = parentID
	return nil
}

// SetMenuOrder sets the navigation order of a page
func (p *Post) SetMenuOrder(order int) {
	p.MenuOrder = order
}

// SetCategories replaces the category assignment
func (p *Post) SetCategories(ids []uuid.UUID) error {
	if p.IsPage() && len(ids) > 0 {
		return shared.NewDomainError("INVALID_INPUT", "Pages cannot be categorized")
	}
	p.CategoryIDs = uniqueIDs(ids)
	return nil
}

// SetTags replaces the tag assignment
func (p *Post) SetTags(ids []uuid.UUID) error {
	if p.IsPage() && len(ids) > 0 {
		return shared.NewDomainError("INVALID_INPUT", "Pages cannot be tagged")
	}
	p.TagIDs = uniqueIDs(ids)
	return nil
}

// ChangeStatus moves between the editorial states draft, pending and private.
// Publishing, scheduling and trashing have dedicated methods.
func (p *Post) ChangeStatus(status PostStatus) error {
	switch status {
	case PostStatusDraft, PostStatusPending, PostStatusPrivate:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Status must be draft, pending or private")
	}
	if p.IsTrashed() {
		return shared.NewDomainError("INVALID_STATE", "Restore the post before changing its status")
	}
	if p.Status == status {
		return nil
	}
	wasPublished := p.IsPublished()
	p.Status = status
	p.IncrementVersion()
	if wasPublished {
		p.AddDomainEvent(NewPostUnpublishedEvent(p))
	}
	return nil
}

// Publish makes the post visible. A publish date in the future schedules it instead.
func (p *Post) Publish(now time.Time, at *time.Time) error {
	if p.IsTrashed() {
		return shared.NewDomainError("INVALID_STATE", "Cannot publish a trashed post")
	}
	if at != nil && at.After(now) {
		scheduled := *at
		p.PublishedAt = &scheduled
		p.Status = PostStatusFuture
		p.IncrementVersion()
		p.AddDomainEvent(NewPostScheduledEvent(p))
		return nil
	}
	if p.IsPublished() {
		return shared.NewDomainError("INVALID_STATE", "Post is already published")
	}

	publishedAt := now
	if at != nil {
		publishedAt = *at
	} else if p.PublishedAt != nil && !p.PublishedAt.After(now) {
		publishedAt = *p.PublishedAt
	}
	p.PublishedAt = &publishedAt
	p.Status = PostStatusPublish
	p.IncrementVersion()

	p.AddDomainEvent(NewPostPublishedEvent(p))
	return nil
}

// PublishIfDue publishes a scheduled post whose date has passed
func (p *Post) PublishIfDue(now time.Time) bool {
	if p.Status != PostStatusFuture || p.PublishedAt == nil || p.PublishedAt.After(now) {
		return false
	}
	p.Status = PostStatusPublish
	p.IncrementVersion()
	p.AddDomainEvent(NewPostPublishedEvent(p))
	return true
}

// Unpublish returns visible or scheduled content to draft
func (p *Post) Unpublish() error {
	switch p.Status {
	case PostStatusPublish, PostStatusFuture, PostStatusPrivate:
	default:
		return shared.NewDomainError("INVALID_STATE", "Only published or scheduled posts can be unpublished")
	}
	p.Status = PostStatusDraft
	p.IncrementVersion()
	p.AddDomainEvent(NewPostUnpublishedEvent(p))
	return nil
}

// Trash soft deletes the post, remembering the status for Restore
func (p *Post) Trash() error {
	if p.IsTrashed() {
		return shared.NewDomainError("INVALID_STATE", "Post is already in trash")
	}
	p.TrashedFrom = p.Status
	p.Status = PostStatusTrash
	p.IncrementVersion()
	p.AddDomainEvent(NewPostTrashedEvent(p))
	return nil
}

// Restore brings a trashed post back to its previous status.
// Scheduled posts whose date passed while trashed come back as drafts.
func (p *Post) Restore(now time.Time) error {
	if !p.IsTrashed() {
		return shared.NewDomainError("INVALID_STATE", "Only trashed posts can be restored")
	}
	status := p.TrashedFrom
	if !status.IsValid() || status == PostStatusTrash {
		status = PostStatusDraft
	}
	if status == PostStatusFuture && (p.PublishedAt == nil || !p.PublishedAt.After(now)) {
		status = PostStatusDraft
	}
	p.Status = status
	p.TrashedFrom = ""
	p.IncrementVersion()
	p.AddDomainEvent(NewPostRestoredEvent(p))
	return nil
}

// MarkDeleted records the permanent deletion. Only trashed posts may be removed.
func (p *Post) MarkDeleted() error {
	if !p.IsTrashed() {
		return shared.NewDomainError("INVALID_STATE", "Move the post to trash before deleting it permanently")
	}
	p.AddDomainEvent(NewPostDeletedEvent(p))
	return nil
}

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 300 characters")
	}
	return nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
