package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/invoicehub/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	// TenantIDKey is the gin context key holding the resolved tenant UUID.
	TenantIDKey = "tenant_id"
	// TenantIDHeader carries the tenant identity on every API request.
	TenantIDHeader = "X-Tenant-ID"
)

// TenantValidator checks that a tenant exists and may use the API.
type TenantValidator interface {
	ValidateTenant(c *gin.Context, tenantID uuid.UUID) error
}

// TenantConfig holds configuration for the tenant resolution middleware.
type TenantConfig struct {
	// SkipPaths are paths served without tenant context (health, metrics).
	SkipPaths []string
	// Validator optionally verifies the tenant is known and active.
	Validator TenantValidator
	Logger    *zap.Logger
}

// DefaultTenantConfig returns the default tenant middleware configuration.
func DefaultTenantConfig() TenantConfig {
	return TenantConfig{
		SkipPaths: []string{"/health", "/healthz", "/ready", "/metrics", "/api/v1/health"},
	}
}

// Tenant resolves the tenant from the X-Tenant-ID header and stores the
// parsed UUID in the request context. Requests without a valid tenant are
// rejected before reaching any handler.
func Tenant() gin.HandlerFunc {
	return TenantWithConfig(DefaultTenantConfig())
}

// TenantWithConfig returns tenant resolution middleware with custom configuration.
func TenantWithConfig(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		raw := c.GetHeader(TenantIDHeader)
		if raw == "" {
			respondTenantError(c, "Missing "+TenantIDHeader+" header")
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil || tenantID == uuid.Nil {
			respondTenantError(c, "Invalid tenant ID format")
			return
		}

		if cfg.Validator != nil {
			if err := cfg.Validator.ValidateTenant(c, tenantID); err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Warn("Tenant validation failed",
						zap.String("tenant_id", tenantID.String()),
						zap.Error(err),
					)
				}
				respondTenantError(c, "Unknown or inactive tenant")
				return
			}
		}

		c.Set(TenantIDKey, tenantID)

		// Propagate to the request context so service-layer logs carry the tenant.
		ctx := c.Request.Context()
		ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantID retrieves the tenant UUID stored by the tenant middleware.
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(TenantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

func respondTenantError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "BAD_REQUEST",
			"message": message,
		},
	})
}
