package persistence

import (
	"context"
	"errors"

	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/cmsplatform/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSettingRepository implements settings.Repository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindBySection returns the stored document of a section
func (r *GormSettingRepository) FindBySection(ctx context.Context, tenantID uuid.UUID, section settings.Section) (*settings.Setting, error) {
	var model models.SettingModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ? AND section = ?", tenantID, section).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant returns every stored section of a tenant
func (r *GormSettingRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]settings.Setting, error) {
	var settingModels []models.SettingModel
	if err := conn(ctx, r.db).
		Where("tenant_id = ?", tenantID).
		Order("section ASC").
		Find(&settingModels).Error; err != nil {
		return nil, err
	}
	out := make([]settings.Setting, len(settingModels))
	for i := range settingModels {
		out[i] = *settingModels[i].ToDomain()
	}
	return out, nil
}

// Save creates or updates a settings document
func (r *GormSettingRepository) Save(ctx context.Context, setting *settings.Setting) error {
	return conn(ctx, r.db).Save(models.SettingModelFromDomain(setting)).Error
}
