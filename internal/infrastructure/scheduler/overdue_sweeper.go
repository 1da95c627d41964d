package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantSource lists the tenants a sweep iterates over.
// The identity tenant repository satisfies this.
type TenantSource interface {
	FindActiveIDs(ctx context.Context) ([]uuid.UUID, error)
}

// InvoiceSweeper flips a tenant's past-due dispatched invoices to overdue.
// The billing invoice service satisfies this.
type InvoiceSweeper interface {
	MarkOverdueForTenant(ctx context.Context, tenantID uuid.UUID, asOf time.Time, batchSize int) (int, error)
}

// OverdueSweeperConfig holds configuration for the overdue sweeper
type OverdueSweeperConfig struct {
	// Enabled determines if the sweeper runs at all
	Enabled bool

	// Interval is how often the sweep runs
	Interval time.Duration

	// BatchSize caps how many invoices are flipped per tenant per sweep
	BatchSize int

	// SweepTimeout is the maximum time for one full sweep across all tenants
	SweepTimeout time.Duration
}

// DefaultOverdueSweeperConfig returns default configuration
func DefaultOverdueSweeperConfig() OverdueSweeperConfig {
	return OverdueSweeperConfig{
		Enabled:      true,
		Interval:     time.Hour,
		BatchSize:    100,
		SweepTimeout: 5 * time.Minute,
	}
}

// Validate validates the configuration
func (c *OverdueSweeperConfig) Validate() error {
	if c.Interval <= 0 {
		return ErrInvalidConfig
	}
	if c.BatchSize <= 0 {
		return ErrInvalidConfig
	}
	if c.SweepTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// OverdueSweeper periodically marks dispatched invoices past their due
// date as overdue, tenant by tenant.
type OverdueSweeper struct {
	config  OverdueSweeperConfig
	tenants TenantSource
	sweeper InvoiceSweeper
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueSweeper creates a new overdue sweeper
func NewOverdueSweeper(
	config OverdueSweeperConfig,
	tenants TenantSource,
	sweeper InvoiceSweeper,
	logger *zap.Logger,
) (*OverdueSweeper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverdueSweeper{
		config:  config,
		tenants: tenants,
		sweeper: sweeper,
		logger:  logger,
	}, nil
}

// Start starts the sweep loop
func (s *OverdueSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Overdue sweeper is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Overdue sweeper started",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
	)

	return nil
}

// Stop gracefully stops the sweeper
func (s *OverdueSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Overdue sweeper stop timed out")
		return ctx.Err()
	}
}

// IsRunning returns whether the sweeper is running
func (s *OverdueSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// TriggerImmediateSweep runs a sweep now, outside the regular interval
func (s *OverdueSweeper) TriggerImmediateSweep(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Triggering immediate overdue sweep")

	go func() {
		defer s.wg.Done()
		s.executeSweep(ctx)
	}()

	return nil
}

// run executes sweeps on the configured interval until the context ends
func (s *OverdueSweeper) run(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Run once at startup so a restart does not delay the first sweep
	// by a full interval.
	s.executeSweep(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Overdue sweep loop stopping")
			return
		case <-ticker.C:
			s.executeSweep(ctx)
		}
	}
}

// executeSweep runs one sweep across all active tenants
func (s *OverdueSweeper) executeSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.SweepTimeout)
	defer cancel()

	startTime := time.Now()
	tenantIDs, err := s.tenants.FindActiveIDs(sweepCtx)
	if err != nil {
		s.logger.Error("Overdue sweep failed to list tenants", zap.Error(err))
		return
	}

	asOf := time.Now()
	total := 0
	failed := 0

	for _, tenantID := range tenantIDs {
		if sweepCtx.Err() != nil {
			s.logger.Warn("Overdue sweep aborted",
				zap.Int("marked_so_far", total),
				zap.Error(sweepCtx.Err()),
			)
			return
		}

		// One tenant failing must not stop the sweep for the rest.
		marked, err := s.sweeper.MarkOverdueForTenant(sweepCtx, tenantID, asOf, s.config.BatchSize)
		if err != nil {
			failed++
			s.logger.Error("Overdue sweep failed for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
			continue
		}
		if marked > 0 {
			s.logger.Info("Marked invoices overdue",
				zap.String("tenant_id", tenantID.String()),
				zap.Int("marked", marked),
			)
		}
		total += marked
	}

	s.logger.Info("Overdue sweep completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("tenants", len(tenantIDs)),
		zap.Int("failed_tenants", failed),
		zap.Int("marked", total),
	)
}
