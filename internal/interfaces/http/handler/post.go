package handler

import (
	"context"

	contentapp "github.com/cmsplatform/backend/internal/application/content"
	"github.com/cmsplatform/backend/internal/domain/content"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PostHandler serves posts or pages; one instance per post type
type PostHandler struct {
	BaseHandler
	postService PostService
	postType    content.PostType
}

// NewPostHandler creates a handler for blog posts
func NewPostHandler(postService PostService) *PostHandler {
	return &PostHandler{postService: postService, postType: content.PostTypePost}
}

// NewPageHandler creates a handler for static pages
func NewPageHandler(postService PostService) *PostHandler {
	return &PostHandler{postService: postService, postType: content.PostTypePage}
}

// SetTermsRequest replaces the categories or tags of a post
type SetTermsRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

// Create godoc
// @ID           createPost
// @Summary      Create a post
// @Description  Create a post (or, under /pages, a page). The slug is derived from the title when empty.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body contentapp.CreatePostRequest true "Post"
// @Success      201 {object} APIResponse[contentapp.PostResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req contentapp.CreatePostRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.Type = h.postType
	req.AuthorID = optionalUserID(c)

	post, err := h.postService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, post)
}

// Get godoc
// @ID           getPost
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} APIResponse[contentapp.PostResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.GetByID(c.Request.Context(), tenantID, id, h.postType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// List godoc
// @ID           listPosts
// @Summary      List posts
// @Description  Filter by status, category, tag, author or parent; search matches title and content
// @Tags         posts
// @Produce      json
// @Param        search query string false "Search term"
// @Param        status query string false "Status" Enums(draft, pending, publish, future, private, trash)
// @Param        category_id query string false "Category ID" format(uuid)
// @Param        tag_id query string false "Tag ID" format(uuid)
// @Param        author_id query string false "Author ID" format(uuid)
// @Param        parent_id query string false "Parent page ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]contentapp.PostListResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter contentapp.PostListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	if filter.CategoryID, ok = h.queryUUID(c, "category_id"); !ok {
		return
	}
	if filter.TagID, ok = h.queryUUID(c, "tag_id"); !ok {
		return
	}
	if filter.AuthorID, ok = h.queryUUID(c, "author_id"); !ok {
		return
	}
	if filter.ParentID, ok = h.queryUUID(c, "parent_id"); !ok {
		return
	}
	filter.Type = h.postType

	posts, total, err := h.postService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, posts, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updatePost
// @Summary      Update a post
// @Description  Partial update; send version for optimistic locking. A slug change records a redirect.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body contentapp.UpdatePostRequest true "Fields to change"
// @Success      200 {object} APIResponse[contentapp.PostResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req contentapp.UpdatePostRequest
	if !h.bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Update(c.Request.Context(), tenantID, id, h.postType, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Delete godoc
// @ID           trashPost
// @Summary      Move a post to the trash
// @Description  Soft delete; the post can be restored
// @Tags         posts
// @Param        id path string true "Post ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		if err := h.postService.Trash(c.Request.Context(), tenantID, id, h.postType); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	})
}

// DeletePermanently godoc
// @ID           deletePostPermanently
// @Summary      Delete a trashed post permanently
// @Tags         posts
// @Param        id path string true "Post ID" format(uuid)
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id}/permanent [delete]
func (h *PostHandler) DeletePermanently(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		if err := h.postService.DeletePermanently(c.Request.Context(), tenantID, id, h.postType); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	})
}

// Publish godoc
// @ID           publishPost
// @Summary      Publish a post
// @Description  A future published_at schedules the post instead
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body contentapp.PublishPostRequest false "Publish date"
// @Success      200 {object} APIResponse[contentapp.PostResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id}/publish [post]
func (h *PostHandler) Publish(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req contentapp.PublishPostRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	post, err := h.postService.Publish(c.Request.Context(), tenantID, id, h.postType, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}

// Unpublish godoc
// @ID           unpublishPost
// @Summary      Revert a post to draft
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} APIResponse[contentapp.PostResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id}/unpublish [post]
func (h *PostHandler) Unpublish(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		post, err := h.postService.Unpublish(c.Request.Context(), tenantID, id, h.postType)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, post)
	})
}

// Restore godoc
// @ID           restorePost
// @Summary      Restore a trashed post
// @Description  The post returns to the status it had before it was trashed
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Success      200 {object} APIResponse[contentapp.PostResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id}/restore [post]
func (h *PostHandler) Restore(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		post, err := h.postService.Restore(c.Request.Context(), tenantID, id, h.postType)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, post)
	})
}

// SetCategories godoc
// @ID           setPostCategories
// @Summary      Replace the categories of a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body SetTermsRequest true "Category IDs"
// @Success      200 {object} APIResponse[contentapp.PostResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id}/categories [put]
func (h *PostHandler) SetCategories(c *gin.Context) {
	h.setTerms(c, h.postService.SetCategories)
}

// SetTags godoc
// @ID           setPostTags
// @Summary      Replace the tags of a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path string true "Post ID" format(uuid)
// @Param        request body SetTermsRequest true "Tag IDs"
// @Success      200 {object} APIResponse[contentapp.PostResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /posts/{id}/tags [put]
func (h *PostHandler) SetTags(c *gin.Context) {
	h.setTerms(c, h.postService.SetTags)
}

func (h *PostHandler) setTerms(c *gin.Context, set func(context.Context, uuid.UUID, uuid.UUID, []uuid.UUID) (*contentapp.PostResponse, error)) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req SetTermsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	post, err := set(c.Request.Context(), tenantID, id, req.IDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, post)
}
