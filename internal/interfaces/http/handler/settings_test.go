package handler

import (
	"net/http"
	"testing"

	settingsapp "github.com/cmsplatform/backend/internal/application/settings"
	"github.com/cmsplatform/backend/internal/domain/settings"
	"github.com/cmsplatform/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func settingsRouter(svc *MockSettingsService, pre ...gin.HandlerFunc) http.Handler {
	h := NewSettingsHandler(svc)
	router := newTestRouter(pre...)
	router.GET("/settings", h.GetAll)
	router.GET("/settings/homepage", h.Homepage)
	router.GET("/settings/:section", h.Get)
	router.PUT("/settings/:section", h.Update)
	router.POST("/settings/reset/:section", h.Reset)
	return router
}

func TestSettingsHandler_Update(t *testing.T) {
	userID := uuid.New()
	svc := new(MockSettingsService)
	svc.On("Update", mock.Anything, testTenantID, "general", settingsapp.UpdateSettingRequest{
		Values:    settings.Values{"siteTitle": "Gopher News"},
		UpdatedBy: userID,
	}).Return(&settingsapp.SettingResponse{Section: "general", Values: settings.Values{"siteTitle": "Gopher News"}}, nil)
	svc.On("Update", mock.Anything, testTenantID, "permalinks", mock.Anything).
		Return(nil, shared.NewDomainError("MANAGED_SECTION", "Permalink settings are changed through /settings/permalink"))

	router := settingsRouter(svc, withUser(userID))

	w := serve(router, http.MethodPut, "/settings/general", map[string]any{"values": map[string]any{"siteTitle": "Gopher News"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "general", decode(t, w).Data.(map[string]any)["section"])

	w = serve(router, http.MethodPut, "/settings/permalinks", map[string]any{"values": map[string]any{"structure": "/%postname%/"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MANAGED_SECTION", errorCode(t, w))

	w = serve(router, http.MethodPut, "/settings/general", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNumberOfCalls(t, "Update", 2)
}

func TestSettingsHandler_Reset(t *testing.T) {
	userID := uuid.New()
	svc := new(MockSettingsService)
	svc.On("Reset", mock.Anything, testTenantID, "reading", userID).
		Return(&settingsapp.SettingResponse{Section: "reading", Values: settings.Values{"postsPerPage": 10}}, nil)
	svc.On("Reset", mock.Anything, testTenantID, "bogus", userID).
		Return(nil, shared.NewDomainError("INVALID_SECTION", "Unknown settings section: bogus"))

	router := settingsRouter(svc, withUser(userID))

	w := serve(router, http.MethodPost, "/settings/reset/reading", nil)
	require.Equal(t, http.StatusOK, w.Code)
	values := decode(t, w).Data.(map[string]any)["values"].(map[string]any)
	assert.EqualValues(t, 10, values["postsPerPage"])

	w = serve(router, http.MethodPost, "/settings/reset/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SECTION", errorCode(t, w))
}

func TestSettingsHandler_Homepage(t *testing.T) {
	pageID := uuid.New()
	svc := new(MockSettingsService)
	svc.On("Homepage", mock.Anything, testTenantID).Return(&settingsapp.HomepageResponse{
		Type:             "static_page",
		PageID:           &pageID,
		PostsPerPage:     10,
		EffectiveType:    "latest_posts",
		ValidationFailed: true,
		Reason:           settingsapp.HomepagePageNotPublished,
	}, nil)

	w := serve(settingsRouter(svc), http.MethodGet, "/settings/homepage", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]any)
	assert.Equal(t, "latest_posts", data["effectiveType"])
	assert.Equal(t, pageID.String(), data["pageId"])
	assert.Equal(t, true, data["validationFailed"])
	assert.Equal(t, "page_not_published", data["reason"])
	svc.AssertExpectations(t)
}
