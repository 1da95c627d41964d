package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/invoicehub/backend/internal/application/assist"
)

// MemoryQuotaStore tracks assist usage in process memory. Suitable for
// single-instance deployments and tests; counters do not survive restarts.
type MemoryQuotaStore struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemoryQuotaStore creates an in-memory quota store
func NewMemoryQuotaStore() *MemoryQuotaStore {
	return &MemoryQuotaStore{
		counts: make(map[string]int),
	}
}

// Consume increments the tenant's counter for the month and reports whether
// the call stayed within the limit
func (s *MemoryQuotaStore) Consume(_ context.Context, tenantID uuid.UUID, month string, limit int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryQuotaKey(tenantID, month)
	if s.counts[key] >= limit {
		return false, nil
	}
	s.counts[key]++
	return true, nil
}

// Usage returns the tenant's consumed count for the month
func (s *MemoryQuotaStore) Usage(_ context.Context, tenantID uuid.UUID, month string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[memoryQuotaKey(tenantID, month)], nil
}

func memoryQuotaKey(tenantID uuid.UUID, month string) string {
	return fmt.Sprintf("%s:%s", tenantID, month)
}

var _ assist.QuotaStore = (*MemoryQuotaStore)(nil)
