package models

import (
	"github.com/cmsplatform/backend/internal/domain/media"
	"github.com/google/uuid"
)

// MediaModel is the persistence model for uploaded media
type MediaModel struct {
	TenantAggregateModel
	Filename    string       `gorm:"type:varchar(255);not null"`
	ContentType string       `gorm:"type:varchar(100);not null"`
	Size        int64        `gorm:"not null"`
	StorageKey  string       `gorm:"type:varchar(512);not null;uniqueIndex"`
	AltText     string       `gorm:"type:varchar(500)"`
	Caption     string       `gorm:"type:text"`
	Status      media.Status `gorm:"type:varchar(20);not null;index"`
	UploadedBy  *uuid.UUID   `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (MediaModel) TableName() string {
	return "media"
}

// ToDomain converts the model to a domain Media
func (m *MediaModel) ToDomain() *media.Media {
	md := &media.Media{
		Filename:    m.Filename,
		ContentType: m.ContentType,
		Size:        m.Size,
		StorageKey:  m.StorageKey,
		AltText:     m.AltText,
		Caption:     m.Caption,
		Status:      m.Status,
		UploadedBy:  m.UploadedBy,
	}
	m.PopulateTenantAggregateRoot(&md.TenantAggregateRoot)
	return md
}

// MediaModelFromDomain creates a model from a domain Media
func MediaModelFromDomain(md *media.Media) *MediaModel {
	m := &MediaModel{
		Filename:    md.Filename,
		ContentType: md.ContentType,
		Size:        md.Size,
		StorageKey:  md.StorageKey,
		AltText:     md.AltText,
		Caption:     md.Caption,
		Status:      md.Status,
		UploadedBy:  md.UploadedBy,
	}
	m.FromDomainTenantAggregateRoot(md.TenantAggregateRoot)
	return m
}
