package models

import (
	"github.com/cmsplatform/backend/internal/domain/permalink"
	"github.com/google/uuid"
)

// RedirectModel is the persistence model for stored redirects
type RedirectModel struct {
	BaseModel
	TenantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Source     string    `gorm:"type:varchar(512);not null;index"`
	Target     string    `gorm:"type:varchar(1024);not null"`
	StatusCode int       `gorm:"not null;default:301"`
	Hits       int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (RedirectModel) TableName() string {
	return "redirects"
}

// ToDomain converts the model to a domain Redirect
func (m *RedirectModel) ToDomain() *permalink.Redirect {
	return &permalink.Redirect{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		Source:     m.Source,
		Target:     m.Target,
		StatusCode: m.StatusCode,
		Hits:       m.Hits,
	}
}

// RedirectModelFromDomain creates a model from a domain Redirect
func RedirectModelFromDomain(r *permalink.Redirect) *RedirectModel {
	m := &RedirectModel{
		TenantID:   r.TenantID,
		Source:     r.Source,
		Target:     r.Target,
		StatusCode: r.StatusCode,
		Hits:       r.Hits,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}
