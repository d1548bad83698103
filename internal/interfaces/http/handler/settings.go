package handler

import (
	settingsapp "github.com/cmsplatform/backend/internal/application/settings"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SettingsHandler serves the key-value settings sections
type SettingsHandler struct {
	BaseHandler
	settingsService SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetAll godoc
// @ID           getAllSettings
// @Summary      All settings
// @Description  Every section with stored values merged over the defaults
// @Tags         settings
// @Produce      json
// @Success      200 {object} APIResponse[map[string]any]
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingsHandler) GetAll(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	all, err := h.settingsService.GetAll(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, all)
}

// Get godoc
// @ID           getSettingsSection
// @Summary      One settings section
// @Tags         settings
// @Produce      json
// @Param        section path string true "Section" Enums(general, writing, reading, discussion, media, permalinks, privacy)
// @Success      200 {object} APIResponse[settingsapp.SettingResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/{section} [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	setting, err := h.settingsService.Get(c.Request.Context(), tenantID, c.Param("section"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, setting)
}

// Update godoc
// @ID           updateSettingsSection
// @Summary      Update a settings section
// @Description  Merges the given keys into the section. Reading settings with a static homepage must reference a published page.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        section path string true "Section"
// @Param        request body settingsapp.UpdateSettingRequest true "Values to merge"
// @Success      200 {object} APIResponse[settingsapp.SettingResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/{section} [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req settingsapp.UpdateSettingRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if userID := optionalUserID(c); userID != nil {
		req.UpdatedBy = *userID
	}

	setting, err := h.settingsService.Update(c.Request.Context(), tenantID, c.Param("section"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, setting)
}

// Reset godoc
// @ID           resetSettingsSection
// @Summary      Reset a settings section
// @Description  Drops the stored values so the section defaults apply again. Permalink settings are reset through PUT /settings/permalink.
// @Tags         settings
// @Produce      json
// @Param        section path string true "Section"
// @Success      200 {object} APIResponse[settingsapp.SettingResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/reset/{section} [post]
func (h *SettingsHandler) Reset(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	updatedBy := uuid.Nil
	if userID := optionalUserID(c); userID != nil {
		updatedBy = *userID
	}

	setting, err := h.settingsService.Reset(c.Request.Context(), tenantID, c.Param("section"), updatedBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, setting)
}

// Homepage godoc
// @ID           getHomepageSettings
// @Summary      Homepage settings
// @Description  What the site root shows. A static page that is missing or unpublished falls back to latest posts with the reason reported.
// @Tags         settings
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Success      200 {object} APIResponse[settingsapp.HomepageResponse]
// @Router       /settings/homepage [get]
func (h *SettingsHandler) Homepage(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	homepage, err := h.settingsService.Homepage(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, homepage)
}
