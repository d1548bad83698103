package handler

import (
	"net/http"
	"testing"

	contentapp "github.com/cmsplatform/backend/internal/application/content"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func categoryRouter(svc *MockCategoryService) http.Handler {
	h := NewCategoryHandler(svc)
	router := newTestRouter()
	router.POST("/categories", h.Create)
	router.GET("/categories", h.List)
	router.GET("/categories/:id", h.Get)
	router.DELETE("/categories/:id", h.Delete)
	return router
}

func TestCategoryHandler_Create(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("Create", mock.Anything, testTenantID, mock.MatchedBy(func(req contentapp.CreateCategoryRequest) bool {
		return req.Name == "Tutorials" && req.CreatedBy == nil
	})).Return(&contentapp.CategoryResponse{ID: uuid.New(), Name: "Tutorials", Slug: "tutorials", IsActive: true}, nil)

	w := serve(categoryRouter(svc), http.MethodPost, "/categories", map[string]any{"name": "Tutorials"})
	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "tutorials", resp.Data.(map[string]any)["slug"])

	w = serve(categoryRouter(svc), http.MethodPost, "/categories", map[string]any{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_VALIDATION", errorCode(t, w))
	svc.AssertNumberOfCalls(t, "Create", 1)
}

func TestCategoryHandler_Get(t *testing.T) {
	missing := uuid.New()
	svc := new(MockCategoryService)
	svc.On("GetByID", mock.Anything, testTenantID, missing).
		Return(nil, shared.NewDomainError("CATEGORY_NOT_FOUND", "Category not found"))

	w := serve(categoryRouter(svc), http.MethodGet, "/categories/"+missing.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CATEGORY_NOT_FOUND", errorCode(t, w))

	w = serve(categoryRouter(svc), http.MethodGet, "/categories/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryHandler_Delete(t *testing.T) {
	inUse := uuid.New()
	unused := uuid.New()
	svc := new(MockCategoryService)
	svc.On("Delete", mock.Anything, testTenantID, inUse).
		Return(shared.NewDomainError("CATEGORY_IN_USE", "Category has 2 posts"))
	svc.On("Delete", mock.Anything, testTenantID, unused).Return(nil)

	w := serve(categoryRouter(svc), http.MethodDelete, "/categories/"+inUse.String(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CATEGORY_IN_USE", errorCode(t, w))

	w = serve(categoryRouter(svc), http.MethodDelete, "/categories/"+unused.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCategoryHandler_List(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("List", mock.Anything, testTenantID, contentapp.TermListFilter{IncludeInactive: true, Page: 2, PageSize: 5}).
		Return([]contentapp.CategoryResponse{{Name: "News"}}, int64(6), nil)

	w := serve(categoryRouter(svc), http.MethodGet, "/categories?include_inactive=true&page=2&page_size=5", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, int64(6), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)

	w = serve(categoryRouter(svc), http.MethodGet, "/categories?order_by=color", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}
