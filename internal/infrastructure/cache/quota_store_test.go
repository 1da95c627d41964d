package cache

import (
	"context"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisQuotaStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisQuotaStoreWithClient(client, "")
	t.Cleanup(func() { _ = client.Close() })
	return store, mr
}

func TestRedisQuotaStore_ConsumeWithinLimit(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()
	tenantID := uuid.New()

	for i := 0; i < 3; i++ {
		allowed, err := store.Consume(ctx, tenantID, "2026-08", 3)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	used, err := store.Usage(ctx, tenantID, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 3, used)
}

func TestRedisQuotaStore_DeniesOverLimit(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()
	tenantID := uuid.New()

	allowed, err := store.Consume(ctx, tenantID, "2026-08", 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = store.Consume(ctx, tenantID, "2026-08", 1)
	require.NoError(t, err)
	assert.False(t, allowed)

	// The denied call was rolled back, so usage stays at the limit.
	used, err := store.Usage(ctx, tenantID, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 1, used)
}

func TestRedisQuotaStore_MonthsAreIndependent(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()
	tenantID := uuid.New()

	allowed, err := store.Consume(ctx, tenantID, "2026-07", 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = store.Consume(ctx, tenantID, "2026-08", 1)
	require.NoError(t, err)
	assert.True(t, allowed)

	used, err := store.Usage(ctx, tenantID, "2026-07")
	require.NoError(t, err)
	assert.Equal(t, 1, used)
}

func TestRedisQuotaStore_UsageForUnknownTenant(t *testing.T) {
	store, _ := newTestRedisStore(t)

	used, err := store.Usage(context.Background(), uuid.New(), "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestRedisQuotaStore_CounterExpires(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()
	tenantID := uuid.New()

	_, err := store.Consume(ctx, tenantID, "2026-08", 5)
	require.NoError(t, err)

	mr.FastForward(quotaKeyTTL)

	used, err := store.Usage(ctx, tenantID, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 0, used)
}

func TestMemoryQuotaStore(t *testing.T) {
	store := NewMemoryQuotaStore()
	ctx := context.Background()
	tenantID := uuid.New()

	allowed, err := store.Consume(ctx, tenantID, "2026-08", 2)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = store.Consume(ctx, tenantID, "2026-08", 2)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = store.Consume(ctx, tenantID, "2026-08", 2)
	require.NoError(t, err)
	assert.False(t, allowed)

	used, err := store.Usage(ctx, tenantID, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, 2, used)
}

func TestMemoryQuotaStore_Concurrent(t *testing.T) {
	store := NewMemoryQuotaStore()
	ctx := context.Background()
	tenantID := uuid.New()

	const limit = 50
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Consume(ctx, tenantID, "2026-08", limit)
		}()
	}
	wg.Wait()

	used, err := store.Usage(ctx, tenantID, "2026-08")
	require.NoError(t, err)
	assert.Equal(t, limit, used)
}
