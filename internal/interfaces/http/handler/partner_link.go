package handler

import (
	"net/http"

	affiliateapp "github.com/cmsplatform/backend/internal/application/affiliate"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LinkHandler handles partner link endpoints and the public short-link redirect
type LinkHandler struct {
	BaseHandler
	linkService LinkService
}

// NewLinkHandler creates a new LinkHandler
func NewLinkHandler(linkService LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

// Create godoc
// @ID           createPartnerLink
// @Summary      Create a partner link
// @Description  A unique short code is generated; the public URL is /r/{code}
// @Tags         partner-links
// @Accept       json
// @Produce      json
// @Param        request body affiliateapp.CreateLinkRequest true "Link"
// @Success      201 {object} APIResponse[affiliateapp.LinkResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner-links [post]
func (h *LinkHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req affiliateapp.CreateLinkRequest
	if !h.bindJSON(c, &req) {
		return
	}

	link, err := h.linkService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, link)
}

// Get godoc
// @ID           getPartnerLink
// @Summary      Get a partner link
// @Tags         partner-links
// @Produce      json
// @Param        id path string true "Link ID" format(uuid)
// @Success      200 {object} APIResponse[affiliateapp.LinkResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner-links/{id} [get]
func (h *LinkHandler) Get(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		link, err := h.linkService.GetByID(c.Request.Context(), tenantID, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, link)
	})
}

// List godoc
// @ID           listPartnerLinks
// @Summary      List partner links
// @Tags         partner-links
// @Produce      json
// @Param        partner_id query string false "Partner ID" format(uuid)
// @Param        search query string false "Matches name, code or target"
// @Param        include_inactive query bool false "Include deleted links"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]affiliateapp.LinkResponse]
// @Security     BearerAuth
// @Router       /partner-links [get]
func (h *LinkHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter affiliateapp.LinkListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.PartnerID, ok = h.queryUUID(c, "partner_id"); !ok {
		return
	}

	links, total, err := h.linkService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, links, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updatePartnerLink
// @Summary      Update a partner link
// @Tags         partner-links
// @Accept       json
// @Produce      json
// @Param        id path string true "Link ID" format(uuid)
// @Param        request body affiliateapp.UpdateLinkRequest true "Fields to change"
// @Success      200 {object} APIResponse[affiliateapp.LinkResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner-links/{id} [put]
func (h *LinkHandler) Update(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		var req affiliateapp.UpdateLinkRequest
		if !h.bindJSON(c, &req) {
			return
		}
		link, err := h.linkService.Update(c.Request.Context(), tenantID, id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, link)
	})
}

// Delete godoc
// @ID           deletePartnerLink
// @Summary      Deactivate a partner link
// @Description  Soft delete; the short URL stops redirecting
// @Tags         partner-links
// @Param        id path string true "Link ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /partner-links/{id} [delete]
func (h *LinkHandler) Delete(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		if err := h.linkService.Delete(c.Request.Context(), tenantID, id); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	})
}

// Follow godoc
// @ID           followPartnerLink
// @Summary      Follow a short link
// @Description  Counts the click once per visitor within the de-duplication window and redirects to the target with ref=<referral code>
// @Tags         public
// @Param        code path string true "Short code"
// @Success      302
// @Failure      404 {object} ErrorResponse
// @Router       /r/{code} [get]
func (h *LinkHandler) Follow(c *gin.Context) {
	result, err := h.linkService.Click(c.Request.Context(), affiliateapp.ClickRequest{
		Code:      c.Param("code"),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if shared.IsNotFound(err) {
			h.NotFound(c, "Link not found")
			return
		}
		h.HandleError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, result.Location)
}
