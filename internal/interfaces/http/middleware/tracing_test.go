package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedRouter(recorder *tracetest.SpanRecorder, status int) *gin.Engine {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		ctx, span := tp.Tracer("test").Start(c.Request.Context(), c.FullPath())
		defer span.End()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	router.Use(RequestID(), TracingAttributeInjector(), SpanErrorMarker())
	router.GET("/api/v1/posts/:id", func(c *gin.Context) { c.Status(status) })
	return router
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) string {
	for _, kv := range span.Attributes() {
		if kv.Key == attribute.Key(key) {
			return kv.Value.Emit()
		}
	}
	return ""
}

func TestTracingAttributeInjector(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	router := tracedRouter(recorder, http.StatusOK)
	tenant := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/7", nil)
	req.Header.Set(RequestIDHeader, "trace-req")
	req.Header.Set(TenantHeaderKey, tenant)
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "trace-req", spanAttr(spans[0], "request_id"))
	assert.Equal(t, tenant, spanAttr(spans[0], "tenant_id"))
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
}

func TestTracingAttributeInjector_IgnoresMalformedTenantHeader(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	router := tracedRouter(recorder, http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/7", nil)
	req.Header.Set(TenantHeaderKey, "<script>")
	router.ServeHTTP(httptest.NewRecorder(), req)

	require.Len(t, recorder.Ended(), 1)
	assert.Empty(t, spanAttr(recorder.Ended()[0], "tenant_id"))
}

func TestSpanErrorMarker(t *testing.T) {
	tests := []struct {
		status int
		msg    string
	}{
		{http.StatusNotFound, "Not Found"},
		{http.StatusBadGateway, "Internal Server Error"},
	}
	for _, tt := range tests {
		recorder := tracetest.NewSpanRecorder()
		router := tracedRouter(recorder, tt.status)
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/posts/1", nil))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, codes.Error, spans[0].Status().Code)
		assert.Equal(t, tt.msg, spans[0].Status().Description)
	}
}
