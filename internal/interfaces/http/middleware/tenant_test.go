package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTenantValidator struct {
	err    error
	called bool
	lastID uuid.UUID
}

func (v *stubTenantValidator) ValidateTenant(_ *gin.Context, tenantID uuid.UUID) error {
	v.called = true
	v.lastID = tenantID
	return v.err
}

func newTenantRouter(cfg TenantConfig) *gin.Engine {
	router := gin.New()
	router.Use(TenantWithConfig(cfg))
	handler := func(c *gin.Context) {
		id, ok := GetTenantID(c)
		if !ok {
			c.String(http.StatusOK, "no-tenant")
			return
		}
		c.String(http.StatusOK, id.String())
	}
	router.GET("/api/v1/invoices", handler)
	router.GET("/health", handler)
	return router
}

func TestTenantResolvesHeader(t *testing.T) {
	router := newTenantRouter(DefaultTenantConfig())
	tenantID := uuid.New()

	req := httptest.NewRequest("GET", "/api/v1/invoices", nil)
	req.Header.Set(TenantIDHeader, tenantID.String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tenantID.String(), w.Body.String())
}

func TestTenantRejectsMissingHeader(t *testing.T) {
	router := newTenantRouter(DefaultTenantConfig())

	req := httptest.NewRequest("GET", "/api/v1/invoices", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing X-Tenant-ID header")
}

func TestTenantRejectsMalformedHeader(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a uuid", value: "acme-corp"},
		{name: "nil uuid", value: uuid.Nil.String()},
		{name: "truncated", value: "123e4567-e89b"},
	}

	router := newTenantRouter(DefaultTenantConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/invoices", nil)
			req.Header.Set(TenantIDHeader, tt.value)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid tenant ID format")
		})
	}
}

func TestTenantSkipsConfiguredPaths(t *testing.T) {
	router := newTenantRouter(DefaultTenantConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-tenant", w.Body.String())
}

func TestTenantValidatorAccepts(t *testing.T) {
	validator := &stubTenantValidator{}
	cfg := DefaultTenantConfig()
	cfg.Validator = validator
	router := newTenantRouter(cfg)
	tenantID := uuid.New()

	req := httptest.NewRequest("GET", "/api/v1/invoices", nil)
	req.Header.Set(TenantIDHeader, tenantID.String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, validator.called)
	assert.Equal(t, tenantID, validator.lastID)
}

func TestTenantValidatorRejects(t *testing.T) {
	validator := &stubTenantValidator{err: errors.New("tenant suspended")}
	cfg := DefaultTenantConfig()
	cfg.Validator = validator
	router := newTenantRouter(cfg)

	req := httptest.NewRequest("GET", "/api/v1/invoices", nil)
	req.Header.Set(TenantIDHeader, uuid.New().String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown or inactive tenant")
}

func TestTenantValidatorSkippedOnSkipPath(t *testing.T) {
	validator := &stubTenantValidator{err: errors.New("should not run")}
	cfg := DefaultTenantConfig()
	cfg.Validator = validator
	router := newTenantRouter(cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, validator.called)
}

func TestGetTenantID(t *testing.T) {
	t.Run("returns stored uuid", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		tenantID := uuid.New()
		c.Set(TenantIDKey, tenantID)

		got, ok := GetTenantID(c)
		assert.True(t, ok)
		assert.Equal(t, tenantID, got)
	})

	t.Run("missing key", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		_, ok := GetTenantID(c)
		assert.False(t, ok)
	})

	t.Run("wrong type", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(TenantIDKey, "not-a-uuid")

		_, ok := GetTenantID(c)
		assert.False(t, ok)
	})

	t.Run("nil uuid", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(TenantIDKey, uuid.Nil)

		_, ok := GetTenantID(c)
		assert.False(t, ok)
	})
}
