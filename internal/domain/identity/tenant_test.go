package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicehub/backend/internal/domain/shared/valueobject"
)

func TestNewTenant(t *testing.T) {
	t.Run("creates active free tenant with defaults", func(t *testing.T) {
		tenant, err := NewTenant("acme-corp", "Acme Corp", valueobject.USD)
		require.NoError(t, err)
		assert.Equal(t, "acme-corp", tenant.Slug)
		assert.Equal(t, TenantStatusActive, tenant.Status)
		assert.Equal(t, TenantPlanFree, tenant.Plan)
		assert.Equal(t, "INV-", tenant.Numbering.InvoicePrefix)
		assert.Equal(t, 1000, tenant.Numbering.InvoiceStartNumber)
	})

	t.Run("normalizes slug case", func(t *testing.T) {
		tenant, err := NewTenant("  Acme-01 ", "Acme", valueobject.USD)
		require.NoError(t, err)
		assert.Equal(t, "acme-01", tenant.Slug)
	})

	t.Run("defaults empty currency", func(t *testing.T) {
		tenant, err := NewTenant("acme", "Acme", "")
		require.NoError(t, err)
		assert.Equal(t, valueobject.DefaultCurrency, tenant.Currency)
	})

	t.Run("rejects bad slug", func(t *testing.T) {
		_, err := NewTenant("a", "Acme", valueobject.USD)
		assert.Error(t, err)

		_, err = NewTenant("-leading", "Acme", valueobject.USD)
		assert.Error(t, err)
	})

	t.Run("rejects unsupported currency", func(t *testing.T) {
		_, err := NewTenant("acme", "Acme", valueobject.Currency("ZZZ"))
		assert.Error(t, err)
	})
}

func TestTenantSetNumbering(t *testing.T) {
	tenant, err := NewTenant("acme", "Acme", valueobject.USD)
	require.NoError(t, err)

	t.Run("stores custom settings", func(t *testing.T) {
		require.NoError(t, tenant.SetNumbering("ACME-", 5000))
		assert.Equal(t, "ACME-", tenant.Numbering.InvoicePrefix)
		assert.Equal(t, 5000, tenant.Numbering.InvoiceStartNumber)
	})

	t.Run("falls back to defaults", func(t *testing.T) {
		require.NoError(t, tenant.SetNumbering("", 0))
		assert.Equal(t, "INV-", tenant.Numbering.InvoicePrefix)
		assert.Equal(t, 1000, tenant.Numbering.InvoiceStartNumber)
	})

	t.Run("rejects oversized prefix", func(t *testing.T) {
		assert.Error(t, tenant.SetNumbering("THIS-PREFIX-IS-MUCH-TOO-LONG-", 1))
	})
}

func TestTenantPlan(t *testing.T) {
	t.Run("assist quota by tier", func(t *testing.T) {
		assert.Equal(t, 10, TenantPlanFree.AssistQuota())
		assert.Equal(t, 200, TenantPlanPro.AssistQuota())
		assert.Equal(t, 2000, TenantPlanEnterprise.AssistQuota())
	})

	t.Run("change plan validates enum", func(t *testing.T) {
		tenant, err := NewTenant("acme", "Acme", valueobject.USD)
		require.NoError(t, err)
		require.NoError(t, tenant.ChangePlan(TenantPlanPro))
		assert.Equal(t, TenantPlanPro, tenant.Plan)
		assert.Error(t, tenant.ChangePlan("platinum"))
	})
}

func TestTenantSuspendActivate(t *testing.T) {
	tenant, err := NewTenant("acme", "Acme", valueobject.USD)
	require.NoError(t, err)

	tenant.Suspend()
	assert.False(t, tenant.IsActive())

	tenant.Activate()
	assert.True(t, tenant.IsActive())
}
