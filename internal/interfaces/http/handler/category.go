package handler

import (
	contentapp "github.com/cmsplatform/backend/internal/application/content"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create godoc
// @ID           createCategory
// @Summary      Create a category
// @Description  Create a root or child category. The slug is derived from the name when empty.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        X-Tenant-ID header string false "Tenant ID (optional for dev)"
// @Param        request body contentapp.CreateCategoryRequest true "Category"
// @Success      201 {object} APIResponse[contentapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var req contentapp.CreateCategoryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.CreatedBy = optionalUserID(c)

	category, err := h.categoryService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// Get godoc
// @ID           getCategory
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Success      200 {object} APIResponse[contentapp.CategoryResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		category, err := h.categoryService.GetByID(c.Request.Context(), tenantID, id)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, category)
	})
}

// List godoc
// @ID           listCategories
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        search query string false "Search term"
// @Param        include_inactive query bool false "Include deleted categories"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by" default(sort_order)
// @Param        order_dir query string false "Order direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]contentapp.CategoryResponse]
// @Security     BearerAuth
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	tenantID, ok := h.tenant(c)
	if !ok {
		return
	}

	var filter contentapp.TermListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	categories, total, err := h.categoryService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, categories, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateCategory
// @Summary      Update a category
// @Description  Partial update; moving under a descendant is rejected
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path string true "Category ID" format(uuid)
// @Param        request body contentapp.UpdateCategoryRequest true "Fields to change"
// @Success      200 {object} APIResponse[contentapp.CategoryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		var req contentapp.UpdateCategoryRequest
		if !h.bindJSON(c, &req) {
			return
		}
		category, err := h.categoryService.Update(c.Request.Context(), tenantID, id, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, category)
	})
}

// Delete godoc
// @ID           deleteCategory
// @Summary      Delete a category
// @Description  Soft delete; refused with CATEGORY_IN_USE while posts or active children reference it
// @Tags         categories
// @Param        id path string true "Category ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	h.withID(c, func(tenantID, id uuid.UUID) {
		if err := h.categoryService.Delete(c.Request.Context(), tenantID, id); err != nil {
			h.HandleError(c, err)
			return
		}
		h.NoContent(c)
	})
}
