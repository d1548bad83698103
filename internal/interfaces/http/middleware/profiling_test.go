package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestResourceFromRoute(t *testing.T) {
	tests := map[string]string{
		"/api/v1/posts/:id/publish":   "posts",
		"/api/permalink-settings":     "permalink-settings",
		"/api/v2/affiliate/links":     "affiliate",
		"/r/:code":                    "r",
		"/api/v1/:id":                 "",
		"":                            "",
		"/api/V3/media/*filepath":     "media",
		"/api/version/categories/:id": "version",
	}
	for route, want := range tests {
		assert.Equal(t, want, resourceFromRoute(route), route)
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, isVersionSegment("v1"))
	assert.True(t, isVersionSegment("V12"))
	assert.False(t, isVersionSegment("v"))
	assert.False(t, isVersionSegment("video"))
	assert.False(t, isVersionSegment("1"))
}

func TestProfilingWithConfig_PassesRequestsThrough(t *testing.T) {
	router := gin.New()
	router.Use(Profiling())
	router.GET("/api/v1/posts/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/posts/42", "/health"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
