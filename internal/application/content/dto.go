package content

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/google/uuid"
)

// CreatePostRequest creates a post or a page. Type is set by the handler from the route.
type CreatePostRequest struct {
	Title       string         `json:"title" binding:"required,min=1,max=300"`
	Slug        string         `json:"slug" binding:"omitempty,max=200"`
	Content     string         `json:"content"`
	Format      string         `json:"format" binding:"omitempty,oneof=markdown html"`
	Excerpt     string         `json:"excerpt" binding:"max=2000"`
	Status      string         `json:"status" binding:"omitempty,oneof=draft pending publish future private"`
	PublishedAt *time.Time     `json:"published_at"`
	ParentID    *uuid.UUID     `json:"parent_id"`
	MenuOrder   int            `json:"menu_order"`
	Meta        map[string]any `json:"meta"`
	CategoryIDs []uuid.UUID    `json:"category_ids"`
	TagIDs      []uuid.UUID    `json:"tag_ids"`

	Type     content.PostType `json:"-"`
	AuthorID *uuid.UUID       `json:"-"`
}

// UpdatePostRequest is a partial update; nil fields are left unchanged
type UpdatePostRequest struct {
	Title       *string        `json:"title" binding:"omitempty,min=1,max=300"`
	Slug        *string        `json:"slug" binding:"omitempty,max=200"`
	Content     *string        `json:"content"`
	Format      *string        `json:"format" binding:"omitempty,oneof=markdown html"`
	Excerpt     *string        `json:"excerpt" binding:"omitempty,max=2000"`
	Status      *string        `json:"status" binding:"omitempty,oneof=draft pending publish future private"`
	PublishedAt *time.Time     `json:"published_at"`
	ParentID    *uuid.UUID     `json:"parent_id"`
	ClearParent bool           `json:"clear_parent"`
	MenuOrder   *int           `json:"menu_order"`
	Meta        map[string]any `json:"meta"`
	CategoryIDs *[]uuid.UUID   `json:"category_ids"`
	TagIDs      *[]uuid.UUID   `json:"tag_ids"`
	Version     *int           `json:"version"`
}

// PublishPostRequest optionally carries a publish date; a future date schedules the post
type PublishPostRequest struct {
	PublishedAt *time.Time `json:"published_at"`
}

// PostListFilter holds list query parameters
type PostListFilter struct {
	Type         content.PostType `form:"-"`
	Search       string           `form:"search"`
	Status       string           `form:"status" binding:"omitempty,oneof=draft pending publish future private trash"`
	CategoryID   *uuid.UUID       `form:"-"`
	TagID        *uuid.UUID       `form:"-"`
	AuthorID     *uuid.UUID       `form:"-"`
	ParentID     *uuid.UUID       `form:"-"`
	IncludeTrash bool             `form:"include_trash"`
	Page         int              `form:"page" binding:"min=0"`
	PageSize     int              `form:"page_size" binding:"min=0,max=100"`
	OrderBy      string           `form:"order_by" binding:"omitempty,oneof=created_at updated_at published_at title menu_order"`
	OrderDir     string           `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TermRef is a compact category or tag reference embedded in post responses
type TermRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// PostResponse represents a post or page in API responses
type PostResponse struct {
	ID          uuid.UUID      `json:"id"`
	TenantID    uuid.UUID      `json:"tenant_id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Content     string         `json:"content"`
	ContentHTML string         `json:"content_html,omitempty"`
	Format      string         `json:"format"`
	Excerpt     string         `json:"excerpt"`
	Status      string         `json:"status"`
	AuthorID    *uuid.UUID     `json:"author_id,omitempty"`
	ParentID    *uuid.UUID     `json:"parent_id,omitempty"`
	MenuOrder   int            `json:"menu_order"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	Meta        map[string]any `json:"meta"`
	CategoryIDs []uuid.UUID    `json:"category_ids"`
	TagIDs      []uuid.UUID    `json:"tag_ids"`
	Categories  []TermRef      `json:"categories,omitempty"`
	Tags        []TermRef      `json:"tags,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Version     int            `json:"version"`
}

// PostListResponse is the list projection of a post; the body is left out
type PostListResponse struct {
	ID          uuid.UUID   `json:"id"`
	Type        string      `json:"type"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Excerpt     string      `json:"excerpt"`
	Status      string      `json:"status"`
	AuthorID    *uuid.UUID  `json:"author_id,omitempty"`
	ParentID    *uuid.UUID  `json:"parent_id,omitempty"`
	MenuOrder   int         `json:"menu_order"`
	PublishedAt *time.Time  `json:"published_at,omitempty"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ToPostResponse converts a domain post
func ToPostResponse(p *content.Post) *PostResponse {
	meta := map[string]any(p.Meta)
	if meta == nil {
		meta = map[string]any{}
	}
	return &PostResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Type:        string(p.Type),
		Title:       p.Title,
		Slug:        p.Slug.String(),
		Content:     p.Content,
		Format:      string(p.Format),
		Excerpt:     p.Excerpt,
		Status:      string(p.Status),
		AuthorID:    p.AuthorID,
		ParentID:    p.ParentID,
		MenuOrder:   p.MenuOrder,
		PublishedAt: p.PublishedAt,
		Meta:        meta,
		CategoryIDs: nonNilIDs(p.CategoryIDs),
		TagIDs:      nonNilIDs(p.TagIDs),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToPostListResponse converts a domain post to its list projection
func ToPostListResponse(p *content.Post) PostListResponse {
	return PostListResponse{
		ID:          p.ID,
		Type:        string(p.Type),
		Title:       p.Title,
		Slug:        p.Slug.String(),
		Excerpt:     p.Excerpt,
		Status:      string(p.Status),
		AuthorID:    p.AuthorID,
		ParentID:    p.ParentID,
		MenuOrder:   p.MenuOrder,
		PublishedAt: p.PublishedAt,
		CategoryIDs: nonNilIDs(p.CategoryIDs),
		TagIDs:      nonNilIDs(p.TagIDs),
		UpdatedAt:   p.UpdatedAt,
	}
}

func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

// CreateCategoryRequest creates a category
type CreateCategoryRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Slug        string     `json:"slug" binding:"omitempty,max=200"`
	Description string     `json:"description" binding:"max=1000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	SortOrder   int        `json:"sort_order"`
	CreatedBy   *uuid.UUID `json:"-"`
}

// UpdateCategoryRequest is a partial category update
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string    `json:"slug" binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	ClearParent bool       `json:"clear_parent"`
	SortOrder   *int       `json:"sort_order"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	SortOrder   int        `json:"sort_order"`
	IsActive    bool       `json:"is_active"`
	PostCount   int64      `json:"post_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToCategoryResponse converts a domain category
func ToCategoryResponse(c *content.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug.String(),
		Description: c.Description,
		ParentID:    c.ParentID,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		PostCount:   c.PostCount,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateTagRequest creates a tag
type CreateTagRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Slug        string     `json:"slug" binding:"omitempty,max=200"`
	Description string     `json:"description" binding:"max=1000"`
	Color       string     `json:"color" binding:"omitempty,hexcolor"`
	CreatedBy   *uuid.UUID `json:"-"`
}

// UpdateTagRequest is a partial tag update
type UpdateTagRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Color       *string `json:"color" binding:"omitempty,hexcolor"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"is_active"`
	UsageCount  int64     `json:"usage_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToTagResponse converts a domain tag
func ToTagResponse(t *content.Tag) *TagResponse {
	return &TagResponse{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug.String(),
		Description: t.Description,
		Color:       t.Color,
		IsActive:    t.IsActive,
		UsageCount:  t.UsageCount,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TermListFilter holds category and tag list parameters
type TermListFilter struct {
	Search          string `form:"search"`
	IncludeInactive bool   `form:"include_inactive"`
	Page            int    `form:"page" binding:"min=0"`
	PageSize        int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy         string `form:"order_by" binding:"omitempty,oneof=name slug created_at sort_order post_count usage_count"`
	OrderDir        string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
