package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_InMemory(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()
	ctx := context.Background()

	allowed, remaining, err := rl.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, remaining, _ = rl.Allow(ctx, "a")
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, _, _ = rl.Allow(ctx, "a")
	assert.False(t, allowed)

	allowed, _, _ = rl.Allow(ctx, "b")
	assert.True(t, allowed, "keys are limited independently")
}

func TestRedisRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	rl := NewRedisRateLimiter(client, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, err := rl.Allow(ctx, "tenant:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, remaining, err := rl.Allow(ctx, "tenant:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)

	mr.Close()
	allowed, _, err = rl.Allow(ctx, "tenant:1.2.3.4")
	assert.Error(t, err)
	assert.True(t, allowed, "redis outage fails open")
}

func TestRateLimitMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	router := gin.New()
	router.Use(RateLimit(rl, nil))
	router.GET("/api/v1/posts", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(tenant string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
		req.Header.Set(TenantHeaderKey, tenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := send("t1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = send("t1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "ERR_RATE_LIMITED", errorCode(t, w))

	assert.Equal(t, http.StatusOK, send("t2").Code)
}
