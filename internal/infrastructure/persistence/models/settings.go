package models

import (
	"time"

	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/google/uuid"
)

// SettingModel stores one settings section of a tenant as a JSON document
type SettingModel struct {
	ID         uuid.UUID        `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	Section    settings.Section `gorm:"type:varchar(30);not null"`
	ValuesJSON string           `gorm:"column:values;type:jsonb;not null;default:'{}'"`
	UpdatedBy  *uuid.UUID       `gorm:"type:uuid"`
	CreatedAt  time.Time        `gorm:"not null"`
	UpdatedAt  time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SettingModel) TableName() string {
	return "settings"
}

// ToDomain converts the model to a domain Setting
func (m *SettingModel) ToDomain() *settings.Setting {
	return &settings.Setting{
		ID:        m.ID,
		TenantID:  m.TenantID,
		Section:   m.Section,
		Values:    settings.Values(decodeJSONObject(m.ValuesJSON, "settings", m.ID)),
		UpdatedBy: m.UpdatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SettingModelFromDomain creates a model from a domain Setting
func SettingModelFromDomain(s *settings.Setting) *SettingModel {
	return &SettingModel{
		ID:         s.ID,
		TenantID:   s.TenantID,
		Section:    s.Section,
		ValuesJSON: encodeJSON(s.Values, "{}"),
		UpdatedBy:  s.UpdatedBy,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
