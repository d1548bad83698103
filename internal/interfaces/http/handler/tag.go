package handler

import (
	contentapp "github.com/cmsplatform/backend/internal/application/content"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TagHandler handles tag endpoints
type TagHandler struct {
	BaseHandler
	tagService TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(tagService TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// Create godoc
// @ID           createTag
// @Summary      Create a tag
// @Description  Create a tag. The slug is derived from the name when empty.
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body contentapp.CreateTagRequest true "Tag"
// @Success      201 {object} APIResponse[contentapp.TagResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req contentapp.CreateTagRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = optionalUserID(c)

	tag, err := h.tagService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tag)
}

// Get godoc
// @ID           getTag
// @Summary      Get a tag
// @Tags         tags
// @Produce      json
// @Param        id path string true "Tag ID" format(uuid)
// @Success      200 {object} APIResponse[contentapp.TagResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tags/{id} [get]
func (h *TagHandler) Get(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		tag, err := h.tagService.GetByID(c.Request.Context(), tenantID, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, tag)
	})
}

// List godoc
// @ID           listTags
// @Summary      List tags
// @Tags         tags
// @Produce      json
// @Param        search query string false "Search term"
// @Param        include_inactive query bool false "Include deleted tags"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by" default(name)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]contentapp.TagResponse]
// @Security     BearerAuth
// @Router       /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter contentapp.TermListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	tags, total, err := h.tagService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, tags, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateTag
// @Summary      Update a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id path string true "Tag ID" format(uuid)
// @Param        request body contentapp.UpdateTagRequest true "Fields to change"
// @Success      200 {object} APIResponse[contentapp.TagResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		var req contentapp.UpdateTagRequest
		if !h.bindJSON(c, &req) {
			return
		}
		tag, err := h.tagService.Update(c.Request.Context(), tenantID, id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, tag)
	})
}

// Delete godoc
// @ID           deleteTag
// @Summary      Delete a tag
// @Description  Soft delete; refused with TAG_IN_USE while any post that is not trashed uses it
// @Tags         tags
// @Param        id path string true "Tag ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		if err := h.tagService.Delete(c.Request.Context(), tenantID, id); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	})
}
