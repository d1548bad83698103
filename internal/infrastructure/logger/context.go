package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	tenantIDKey  contextKey = "tenant_id"
	userIDKey    contextKey = "user_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, a no-op logger if absent
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// RequestScope identifies who is making a request
type RequestScope struct {
	RequestID string
	TenantID  string
	UserID    string
}

// WithScope stores the scope in ctx and attaches the matching fields to the context logger
func WithScope(ctx context.Context, scope RequestScope) context.Context {
	l := FromContext(ctx)
	if scope.RequestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, scope.RequestID)
		l = l.With(zap.String("request_id", scope.RequestID))
	}
	if scope.TenantID != "" {
		ctx = context.WithValue(ctx, tenantIDKey, scope.TenantID)
		l = l.With(zap.String("tenant_id", scope.TenantID))
	}
	if scope.UserID != "" {
		ctx = context.WithValue(ctx, userIDKey, scope.UserID)
		l = l.With(zap.String("user_id", scope.UserID))
	}
	return WithContext(ctx, l)
}

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// GetTenantID retrieves the tenant ID from context
func GetTenantID(ctx context.Context) string {
	v, _ := ctx.Value(tenantIDKey).(string)
	return v
}

// GetUserID retrieves the user ID from context
func GetUserID(ctx context.Context) string {
	v, _ := ctx.Value(userIDKey).(string)
	return v
}

// GetTraceID returns the active trace ID or ""
func GetTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

// L returns the context logger with trace_id and span_id attached when a
// span is active. Usage: logger.L(ctx).Info("post published", zap.String("slug", s))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return l
	}
	return l.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}
