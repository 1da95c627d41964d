package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTenantSource struct {
	mu  sync.Mutex
	ids []uuid.UUID
	err error
}

func (s *stubTenantSource) FindActiveIDs(_ context.Context) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.ids, nil
}

type stubInvoiceSweeper struct {
	mu      sync.Mutex
	calls   map[uuid.UUID]int
	marked  int
	failFor map[uuid.UUID]error
}

func newStubInvoiceSweeper() *stubInvoiceSweeper {
	return &stubInvoiceSweeper{
		calls:   make(map[uuid.UUID]int),
		failFor: make(map[uuid.UUID]error),
	}
}

func (s *stubInvoiceSweeper) MarkOverdueForTenant(_ context.Context, tenantID uuid.UUID, _ time.Time, _ int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[tenantID]++
	if err, ok := s.failFor[tenantID]; ok {
		return 0, err
	}
	return s.marked, nil
}

func (s *stubInvoiceSweeper) callCount(tenantID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[tenantID]
}

func TestDefaultOverdueSweeperConfig(t *testing.T) {
	cfg := DefaultOverdueSweeperConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, time.Hour, cfg.Interval)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 5*time.Minute, cfg.SweepTimeout)
}

func TestOverdueSweeperConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OverdueSweeperConfig)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*OverdueSweeperConfig) {}},
		{name: "zero interval", mutate: func(c *OverdueSweeperConfig) { c.Interval = 0 }, wantErr: true},
		{name: "zero batch size", mutate: func(c *OverdueSweeperConfig) { c.BatchSize = 0 }, wantErr: true},
		{name: "zero timeout", mutate: func(c *OverdueSweeperConfig) { c.SweepTimeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultOverdueSweeperConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewOverdueSweeperRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultOverdueSweeperConfig()
	cfg.BatchSize = -1

	_, err := NewOverdueSweeper(cfg, &stubTenantSource{}, newStubInvoiceSweeper(), zap.NewNop())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestOverdueSweeperSweepsAllTenants(t *testing.T) {
	tenantA := uuid.New()
	tenantB := uuid.New()
	tenants := &stubTenantSource{ids: []uuid.UUID{tenantA, tenantB}}
	invoices := newStubInvoiceSweeper()
	invoices.marked = 2

	cfg := DefaultOverdueSweeperConfig()
	cfg.Interval = time.Hour // only the startup sweep runs during the test

	sweeper, err := NewOverdueSweeper(cfg, tenants, invoices, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return invoices.callCount(tenantA) >= 1 && invoices.callCount(tenantB) >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestOverdueSweeperRunsOnInterval(t *testing.T) {
	tenantID := uuid.New()
	tenants := &stubTenantSource{ids: []uuid.UUID{tenantID}}
	invoices := newStubInvoiceSweeper()

	cfg := DefaultOverdueSweeperConfig()
	cfg.Interval = 10 * time.Millisecond

	sweeper, err := NewOverdueSweeper(cfg, tenants, invoices, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return invoices.callCount(tenantID) >= 3
	}, time.Second, 5*time.Millisecond)
}

func TestOverdueSweeperContinuesPastFailingTenant(t *testing.T) {
	failing := uuid.New()
	healthy := uuid.New()
	tenants := &stubTenantSource{ids: []uuid.UUID{failing, healthy}}
	invoices := newStubInvoiceSweeper()
	invoices.failFor[failing] = errors.New("deadlock detected")

	cfg := DefaultOverdueSweeperConfig()

	sweeper, err := NewOverdueSweeper(cfg, tenants, invoices, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return invoices.callCount(healthy) >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestOverdueSweeperDisabled(t *testing.T) {
	cfg := DefaultOverdueSweeperConfig()
	cfg.Enabled = false

	sweeper, err := NewOverdueSweeper(cfg, &stubTenantSource{}, newStubInvoiceSweeper(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sweeper.Start(context.Background()))
	assert.False(t, sweeper.IsRunning())
}

func TestOverdueSweeperStopIsIdempotent(t *testing.T) {
	sweeper, err := NewOverdueSweeper(DefaultOverdueSweeperConfig(), &stubTenantSource{}, newStubInvoiceSweeper(), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sweeper.Start(context.Background()))
	require.NoError(t, sweeper.Stop(context.Background()))
	assert.NoError(t, sweeper.Stop(context.Background()))
	assert.False(t, sweeper.IsRunning())
}

func TestTriggerImmediateSweepRequiresRunning(t *testing.T) {
	sweeper, err := NewOverdueSweeper(DefaultOverdueSweeperConfig(), &stubTenantSource{}, newStubInvoiceSweeper(), zap.NewNop())
	require.NoError(t, err)

	assert.ErrorIs(t, sweeper.TriggerImmediateSweep(context.Background()), ErrSchedulerNotRunning)
}

func TestTriggerImmediateSweep(t *testing.T) {
	tenantID := uuid.New()
	tenants := &stubTenantSource{ids: []uuid.UUID{tenantID}}
	invoices := newStubInvoiceSweeper()

	cfg := DefaultOverdueSweeperConfig()

	sweeper, err := NewOverdueSweeper(cfg, tenants, invoices, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, sweeper.Start(context.Background()))
	defer sweeper.Stop(context.Background())

	// Wait out the startup sweep first
	assert.Eventually(t, func() bool {
		return invoices.callCount(tenantID) >= 1
	}, time.Second, 5*time.Millisecond)
	before := invoices.callCount(tenantID)

	require.NoError(t, sweeper.TriggerImmediateSweep(context.Background()))

	assert.Eventually(t, func() bool {
		return invoices.callCount(tenantID) > before
	}, time.Second, 5*time.Millisecond)
}
