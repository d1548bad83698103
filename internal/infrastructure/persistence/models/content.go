package models

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/cmsplatform/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// PostModel is the persistence model for posts and pages
type PostModel struct {
	TenantAggregateModel
	Type        content.PostType      `gorm:"type:varchar(10);not null;index"`
	Title       string                `gorm:"type:varchar(300);not null"`
	Slug        string                `gorm:"type:varchar(200);not null;index"`
	Content     string                `gorm:"type:text"`
	Format      content.ContentFormat `gorm:"type:varchar(10);not null;default:'markdown'"`
	Excerpt     string                `gorm:"type:text"`
	Status      content.PostStatus    `gorm:"type:varchar(10);not null;index"`
	TrashedFrom content.PostStatus    `gorm:"type:varchar(10)"`
	AuthorID    *uuid.UUID            `gorm:"type:uuid;index"`
	ParentID    *uuid.UUID            `gorm:"type:uuid;index"`
	MenuOrder   int                   `gorm:"not null;default:0"`
	PublishedAt *time.Time            `gorm:"index"`
	MetaJSON    string                `gorm:"column:meta;type:jsonb;default:'{}'"`
}

// TableName returns the table name for GORM
func (PostModel) TableName() string {
	return "posts"
}

// ToDomain converts the model to a domain Post. Term ids are loaded separately.
func (m *PostModel) ToDomain() *content.Post {
	p := &content.Post{
		Type:        m.Type,
		Title:       m.Title,
		Slug:        valueobject.Slug(m.Slug),
		Content:     m.Content,
		Format:      m.Format,
		Excerpt:     m.Excerpt,
		Status:      m.Status,
		TrashedFrom: m.TrashedFrom,
		AuthorID:    m.AuthorID,
		ParentID:    m.ParentID,
		MenuOrder:   m.MenuOrder,
		PublishedAt: m.PublishedAt,
		Meta:        content.Meta(decodeJSONObject(m.MetaJSON, "posts", m.ID)),
		CategoryIDs: []uuid.UUID{},
		TagIDs:      []uuid.UUID{},
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// FromDomain populates the model from a domain Post
func (m *PostModel) FromDomain(p *content.Post) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Type = p.Type
	m.Title = p.Title
	m.Slug = p.Slug.String()
	m.Content = p.Content
	m.Format = p.Format
	m.Excerpt = p.Excerpt
	m.Status = p.Status
	m.TrashedFrom = p.TrashedFrom
	m.AuthorID = p.AuthorID
	m.ParentID = p.ParentID
	m.MenuOrder = p.MenuOrder
	m.PublishedAt = p.PublishedAt
	m.MetaJSON = encodeJSON(p.Meta, "{}")
}

// PostModelFromDomain creates a model from a domain Post
func PostModelFromDomain(p *content.Post) *PostModel {
	m := &PostModel{}
	m.FromDomain(p)
	return m
}

// PostCategoryModel links a post to a category
type PostCategoryModel struct {
	PostID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (PostCategoryModel) TableName() string {
	return "post_categories"
}

// PostTagModel links a post to a tag
type PostTagModel struct {
	PostID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (PostTagModel) TableName() string {
	return "post_tags"
}

// CategoryModel is the persistence model for categories
type CategoryModel struct {
	TenantAggregateModel
	Name        string     `gorm:"type:varchar(200);not null"`
	Slug        string     `gorm:"type:varchar(200);not null;index"`
	Description string     `gorm:"type:text"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	SortOrder   int        `gorm:"not null;default:0"`
	IsActive    bool       `gorm:"not null;default:true"`
	PostCount   int64      `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the model to a domain Category
func (m *CategoryModel) ToDomain() *content.Category {
	c := &content.Category{
		Name:        m.Name,
		Slug:        valueobject.Slug(m.Slug),
		Description: m.Description,
		ParentID:    m.ParentID,
		SortOrder:   m.SortOrder,
		IsActive:    m.IsActive,
		PostCount:   m.PostCount,
	}
	m.PopulateTenantAggregateRoot(&c.TenantAggregateRoot)
	return c
}

// FromDomain populates the model from a domain Category
func (m *CategoryModel) FromDomain(c *content.Category) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Slug = c.Slug.String()
	m.Description = c.Description
	m.ParentID = c.ParentID
	m.SortOrder = c.SortOrder
	m.IsActive = c.IsActive
	m.PostCount = c.PostCount
}

// CategoryModelFromDomain creates a model from a domain Category
func CategoryModelFromDomain(c *content.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// TagModel is the persistence model for tags
type TagModel struct {
	TenantAggregateModel
	Name        string `gorm:"type:varchar(100);not null"`
	Slug        string `gorm:"type:varchar(200);not null;index"`
	Description string `gorm:"type:text"`
	Color       string `gorm:"type:varchar(20)"`
	IsActive    bool   `gorm:"not null;default:true"`
	UsageCount  int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (TagModel) TableName() string {
	return "tags"
}

// ToDomain converts the model to a domain Tag
func (m *TagModel) ToDomain() *content.Tag {
	t := &content.Tag{
		Name:        m.Name,
		Slug:        valueobject.Slug(m.Slug),
		Description: m.Description,
		Color:       m.Color,
		IsActive:    m.IsActive,
		UsageCount:  m.UsageCount,
	}
	m.PopulateTenantAggregateRoot(&t.TenantAggregateRoot)
	return t
}

// FromDomain populates the model from a domain Tag
func (m *TagModel) FromDomain(t *content.Tag) {
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.Name = t.Name
	m.Slug = t.Slug.String()
	m.Description = t.Description
	m.Color = t.Color
	m.IsActive = t.IsActive
	m.UsageCount = t.UsageCount
}

// TagModelFromDomain creates a model from a domain Tag
func TagModelFromDomain(t *content.Tag) *TagModel {
	m := &TagModel{}
	m.FromDomain(t)
	return m
}
