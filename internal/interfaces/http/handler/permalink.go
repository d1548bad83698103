package handler

import (
	permalinkapp "github.com/cmsplatform/backend/internal/application/permalink"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PermalinkHandler serves permalink settings, path resolution, redirects and SEO scoring
type PermalinkHandler struct {
	BaseHandler
	permalinkService PermalinkService
}

// NewPermalinkHandler creates a new PermalinkHandler
func NewPermalinkHandler(permalinkService PermalinkService) *PermalinkHandler {
	return &PermalinkHandler{permalinkService: permalinkService}
}

// GetSettings godoc
// @ID           getPermalinkSettings
// @Summary      Permalink settings
// @Tags         permalinks
// @Produce      json
// @Success      200 {object} APIResponse[permalinkapp.SettingsResponse]
// @Security     BearerAuth
// @Router       /settings/permalink [get]
func (h *PermalinkHandler) GetSettings(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.permalinkService.GetSettings(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateSettings godoc
// @ID           updatePermalinkSettings
// @Summary      Update permalink settings
// @Description  Validates the structure; when it changes and redirectOldUrls is on, 301 rules are created for published content
// @Tags         permalinks
// @Accept       json
// @Produce      json
// @Param        request body permalinkapp.UpdateSettingsRequest true "Settings"
// @Success      200 {object} APIResponse[permalinkapp.UpdateSettingsResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/permalink [put]
func (h *PermalinkHandler) UpdateSettings(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req permalinkapp.UpdateSettingsRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if userID := optionalUserID(c); userID != nil {
		req.UpdatedBy = *userID
	}

	resp, err := h.permalinkService.UpdateSettings(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Preview godoc
// @ID           previewPermalink
// @Summary      Preview a structure
// @Description  Sample URLs for a post, a page, a category and a tag; an empty structure previews the current one
// @Tags         permalinks
// @Accept       json
// @Produce      json
// @Param        request body permalinkapp.PreviewRequest true "Structure"
// @Success      200 {object} APIResponse[permalink.PreviewResult]
// @Security     BearerAuth
// @Router       /settings/permalink/preview [post]
func (h *PermalinkHandler) Preview(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req permalinkapp.PreviewRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.permalinkService.Preview(c.Request.Context(), tenantID, req.Structure)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Validate godoc
// @ID           validatePermalink
// @Summary      Validate a structure
// @Description  Always 200; the result lists errors and SEO warnings
// @Tags         permalinks
// @Accept       json
// @Produce      json
// @Param        request body permalinkapp.ValidateRequest true "Structure"
// @Success      200 {object} APIResponse[permalink.ValidationResult]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /settings/permalink/validate [post]
func (h *PermalinkHandler) Validate(c *gin.Context) {
	var req permalinkapp.ValidateRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.Success(c, h.permalinkService.Validate(req.Structure))
}

// Presets godoc
// @ID           listPermalinkPresets
// @Summary      Common structures
// @Tags         permalinks
// @Produce      json
// @Success      200 {object} APIResponse[[]permalink.Preset]
// @Security     BearerAuth
// @Router       /permalinks/presets [get]
func (h *PermalinkHandler) Presets(c *gin.Context) {
	h.Success(c, h.permalinkService.Presets())
}

// Resolve godoc
// @ID           resolvePermalink
// @Summary      Resolve a path
// @Description  Maps a public path to content, following stored redirects first
// @Tags         permalinks
// @Accept       json
// @Produce      json
// @Param        request body permalinkapp.ResolveRequest true "Path"
// @Success      200 {object} APIResponse[permalinkapp.ResolveResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /permalinks/resolve [post]
func (h *PermalinkHandler) Resolve(c *gin.Context) {
	var req permalinkapp.ResolveRequest
	if !h.bindJSON(c, &req) {
		return
	}
	h.resolve(c, req.Path)
}

// Analyze godoc
// @ID           analyzePermalinkSEO
// @Summary      Score a URL
// @Description  SEO heuristic: score 0..100, grade and issues
// @Tags         permalinks
// @Accept       json
// @Produce      json
// @Param        request body permalinkapp.AnalyzeRequest true "URL and focus keyword"
// @Success      200 {object} APIResponse[permalink.Analysis]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /permalinks/seo [post]
func (h *PermalinkHandler) Analyze(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req permalinkapp.AnalyzeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	analysis, err := h.permalinkService.Analyze(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, analysis)
}

// PostSEO godoc
// @ID           getPostSEO
// @Summary      SEO analysis of a post permalink
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} APIResponse[permalinkapp.PostSEOResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id}/seo [get]
func (h *PermalinkHandler) PostSEO(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		resp, err := h.permalinkService.PostSEO(c.Request.Context(), tenantID, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, resp)
	})
}

// ListRedirects godoc
// @ID           listRedirects
// @Summary      List stored redirects
// @Tags         permalinks
// @Produce      json
// @Param        search query string false "Matches source or target"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]permalinkapp.RedirectResponse]
// @Security     BearerAuth
// @Router       /redirects [get]
func (h *PermalinkHandler) ListRedirects(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter permalinkapp.RedirectListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	redirects, total, err := h.permalinkService.ListRedirects(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, redirects, total, filter.Page, filter.PageSize)
}

// PublicSettings godoc
// @ID           getPublicPermalinkSettings
// @Summary      Public permalink settings
// @Description  Unauthenticated; used by front-ends to build links
// @Tags         public
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Success      200 {object} APIResponse[permalinkapp.SettingsResponse]
// @Router       /public/permalink-settings [get]
func (h *PermalinkHandler) PublicSettings(c *gin.Context) {
	h.GetSettings(c)
}

// PublicContent godoc
// @ID           getPublicContent
// @Summary      Resolve public content
// @Description  Unauthenticated path lookup for front-ends
// @Tags         public
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID"
// @Param        path query string true "Public path, e.g. /2024/05/hello-world/"
// @Success      200 {object} APIResponse[permalinkapp.ResolveResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /public/content [get]
func (h *PermalinkHandler) PublicContent(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		h.BadRequest(c, "path is required")
		return
	}
	h.resolve(c, path)
}

func (h *PermalinkHandler) resolve(c *gin.Context, path string) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	resp, err := h.permalinkService.Resolve(c.Request.Context(), tenantID, path)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
