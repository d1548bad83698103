package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cmsplatform/backend/internal/domain/identity"
	"github.com/cmsplatform/backend/internal/infrastructure/logger"
	"github.com/cmsplatform/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	TenantIDKey     = "tenant_id"
	TenantCodeKey   = "tenant_code"
	TenantHeaderKey = "X-Tenant-ID"
)

// DevelopmentTenantID is used when neither the token nor the header names a tenant
const DevelopmentTenantID = "00000000-0000-0000-0000-000000000001"

// TenantInfo holds the extracted tenant information
type TenantInfo struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
}

// TenantValidator checks that a tenant exists and is active
type TenantValidator interface {
	ValidateTenant(ctx context.Context, tenantID uuid.UUID) (*TenantInfo, error)
}

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	HeaderEnabled bool
	// JWTEnabled reads the tenant claim set by the JWT middleware
	JWTEnabled bool
	// SkipPaths are paths that don't require tenant context (e.g., health check)
	SkipPaths []string
	// Required rejects requests without a tenant; ignored when DefaultTenant is set
	Required bool
	// DefaultTenant is the development fallback; empty disables it
	DefaultTenant string
	Validator     TenantValidator
	Logger        *zap.Logger
}

// DefaultTenantConfig returns default tenant middleware configuration
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		HeaderEnabled: true,
		JWTEnabled:    true,
		SkipPaths:     []string{"/health", "/api/v1/health", "/swagger"},
		Required:      true,
	}
}

// TenantMiddleware extracts tenant information from the request
// Extraction order: JWT claims > X-Tenant-ID header > development default
func TenantMiddleware() gin.HandlerFunc {
	return TenantMiddlewareWithConfig(DefaultTenantConfig())
}

// TenantMiddlewareWithConfig returns tenant middleware with custom configuration
func TenantMiddlewareWithConfig(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		tenantID, method := resolveTenant(c, cfg)
		if tenantID == "" {
			if cfg.Required {
				respondTenantError(c, http.StatusBadRequest, "TENANT_REQUIRED", "Tenant identification required")
				return
			}
			c.Next()
			return
		}

		parsed, err := uuid.Parse(tenantID)
		if err != nil {
			respondTenantError(c, http.StatusBadRequest, "INVALID_TENANT", "Invalid tenant ID format")
			return
		}

		var info *TenantInfo
		if cfg.Validator != nil {
			info, err = cfg.Validator.ValidateTenant(c.Request.Context(), parsed)
			if err != nil {
				log := cfg.Logger
				if log == nil {
					log = logger.FromContext(c.Request.Context())
				}
				log.Warn("Tenant validation failed",
					zap.String("tenant_id", tenantID),
					zap.Error(err),
				)
				respondTenantError(c, http.StatusForbidden, "TENANT_INACTIVE", "Invalid or inactive tenant")
				return
			}
		}

		c.Set(TenantIDKey, tenantID)
		if info != nil {
			c.Set(TenantCodeKey, info.Code)
		}
		if method != "jwt" {
			c.Request = c.Request.WithContext(logger.WithScope(c.Request.Context(), logger.RequestScope{TenantID: tenantID}))
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Tenant identified",
				zap.String("tenant_id", tenantID),
				zap.String("method", method),
			)
		}

		c.Next()
	}
}

func resolveTenant(c *gin.Context, cfg TenantMiddlewareConfig) (string, string) {
	if cfg.JWTEnabled {
		if tid := GetJWTTenantID(c); tid != "" {
			return tid, "jwt"
		}
	}
	if cfg.HeaderEnabled {
		if tid := strings.TrimSpace(c.GetHeader(TenantHeaderKey)); tid != "" {
			return tid, "header"
		}
	}
	if cfg.DefaultTenant != "" {
		return cfg.DefaultTenant, "default"
	}
	return "", ""
}

func respondTenantError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
}

// GetTenantID retrieves the tenant ID from gin.Context
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}

// GetTenantUUID retrieves the tenant ID as UUID from gin.Context
func GetTenantUUID(c *gin.Context) (uuid.UUID, error) {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return uuid.Nil, errors.New("tenant not found in context")
	}
	return uuid.Parse(tenantID)
}

// GetTenantCode retrieves the tenant code from gin.Context
func GetTenantCode(c *gin.Context) string {
	return c.GetString(TenantCodeKey)
}

// TenantRepositoryValidator validates tenants against the tenant store
type TenantRepositoryValidator struct {
	repo identity.TenantRepository
}

// NewTenantRepositoryValidator creates a validator backed by repo
func NewTenantRepositoryValidator(repo identity.TenantRepository) *TenantRepositoryValidator {
	return &TenantRepositoryValidator{repo: repo}
}

// ValidateTenant implements TenantValidator
func (v *TenantRepositoryValidator) ValidateTenant(ctx context.Context, tenantID uuid.UUID) (*TenantInfo, error) {
	tenant, err := v.repo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, errors.New("tenant is not active")
	}
	return &TenantInfo{ID: tenant.ID, Code: tenant.Code.String()}, nil
}
