package middleware

import (
	"net/http"
	"slices"

	"github.com/cmsplatform/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Roles as carried in the token's role claim
const (
	RoleAdmin   = "admin"
	RoleEditor  = "editor"
	RoleAuthor  = "author"
	RolePartner = "partner"
)

// ContentWriters may create and edit posts, pages and terms
var ContentWriters = []string{RoleAdmin, RoleEditor, RoleAuthor}

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	Logger *zap.Logger
	// OnDenied replaces the default 403 response
	OnDenied func(c *gin.Context, allowed []string)
}

// RequireRole allows the request through when the token's role is one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return RequireRoleWithConfig(RoleConfig{}, roles...)
}

// RequireRoleWithConfig is RequireRole with custom config
func RequireRoleWithConfig(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID("UNAUTHORIZED", "Authentication required", c.GetString(RequestIDKey)))
			return
		}
		if slices.Contains(roles, claims.Role) {
			c.Next()
			return
		}

		if cfg.OnDenied != nil {
			cfg.OnDenied(c, roles)
			return
		}
		if cfg.Logger != nil {
			cfg.Logger.Warn("Role denied",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role),
				zap.Strings("allowed", roles),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponseWithRequestID("FORBIDDEN", "Access denied: insufficient role", c.GetString(RequestIDKey)))
	}
}

// RequireWriteRole guards only mutating methods; reads pass through
func RequireWriteRole(roles ...string) gin.HandlerFunc {
	gate := RequireRole(roles...)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			gate(c)
		}
	}
}

// HasRole reports whether the authenticated user has one of roles
func HasRole(c *gin.Context, roles ...string) bool {
	return slices.Contains(roles, GetJWTRole(c))
}
