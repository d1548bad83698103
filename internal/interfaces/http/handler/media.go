package handler

import (
	mediaapp "github.com/cmsplatform/backend/internal/application/media"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaHandler handles media library endpoints. Files travel directly
// between the client and object storage through presigned URLs.
type MediaHandler struct {
	BaseHandler
	mediaService MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// CreateUpload godoc
// @ID           createMediaUpload
// @Summary      Start an upload
// @Description  Registers a pending media item and returns a presigned PUT URL
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request body mediaapp.CreateUploadRequest true "File description"
// @Success      201 {object} APIResponse[mediaapp.UploadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /media [post]
func (h *MediaHandler) CreateUpload(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req mediaapp.CreateUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	upload, err := h.mediaService.CreateUpload(c.Request.Context(), tenantID, req, optionalUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, upload)
}

// Confirm godoc
// @ID           confirmMediaUpload
// @Summary      Confirm an upload
// @Description  Checks the object exists in storage and marks the item uploaded
// @Tags         media
// @Produce      json
// @Param        id path string true "Media ID" format(uuid)
// @Success      200 {object} APIResponse[mediaapp.MediaResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /media/{id}/confirm [post]
func (h *MediaHandler) Confirm(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		item, err := h.mediaService.Confirm(c.Request.Context(), tenantID, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, item)
	})
}

// Get godoc
// @ID           getMedia
// @Summary      Get a media item
// @Tags         media
// @Produce      json
// @Param        id path string true "Media ID" format(uuid)
// @Success      200 {object} APIResponse[mediaapp.MediaResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /media/{id} [get]
func (h *MediaHandler) Get(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		item, err := h.mediaService.GetByID(c.Request.Context(), tenantID, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, item)
	})
}

// List godoc
// @ID           listMedia
// @Summary      List media
// @Tags         media
// @Produce      json
// @Param        search query string false "Matches filename or alt text"
// @Param        content_type query string false "Content type prefix, e.g. image/"
// @Param        status query string false "Status" Enums(pending, uploaded)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]mediaapp.MediaResponse]
// @Security     BearerAuth
// @Router       /media [get]
func (h *MediaHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter mediaapp.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	items, total, err := h.mediaService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateMedia
// @Summary      Update alt text or caption
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        id path string true "Media ID" format(uuid)
// @Param        request body mediaapp.UpdateMediaRequest true "Fields to change"
// @Success      200 {object} APIResponse[mediaapp.MediaResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /media/{id} [put]
func (h *MediaHandler) Update(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		var req mediaapp.UpdateMediaRequest
		if !h.bindJSON(c, &req) {
			return
		}
		item, err := h.mediaService.Update(c.Request.Context(), tenantID, id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, item)
	})
}

// Download godoc
// @ID           getMediaDownloadURL
// @Summary      Download URL
// @Description  Short-lived presigned GET URL
// @Tags         media
// @Produce      json
// @Param        id path string true "Media ID" format(uuid)
// @Success      200 {object} APIResponse[mediaapp.DownloadResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /media/{id}/download [get]
func (h *MediaHandler) Download(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		link, err := h.mediaService.DownloadURL(c.Request.Context(), tenantID, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, link)
	})
}

// Delete godoc
// @ID           deleteMedia
// @Summary      Delete a media item
// @Description  Removes the stored object and the record
// @Tags         media
// @Param        id path string true "Media ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /media/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		if err := h.mediaService.Delete(c.Request.Context(), tenantID, id); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	})
}
