package tests

import (
	"context"
	"testing"
	"time"

	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/storage"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*storage.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewRedisCache(client, time.Hour), mr
}

func TestRedisCache_FeedbackMarker(t *testing.T) {
	cache, mr := setupRedis(t)
	ctx := context.Background()

	key := cache.FeedbackMarkerKey("O001")
	assert.Equal(t, "feedback:order:O001", key)

	exists, err := cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cache.SetMarker(ctx, key))
	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, time.Hour, mr.TTL(key))

	mr.FastForward(2 * time.Hour)
	exists, err = cache.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_SalesProjection(t *testing.T) {
	cache, mr := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.RecordSale(ctx, "2024-03-01", "M001", 2))
	require.NoError(t, cache.RecordSale(ctx, "2024-03-01", "M002", 5))
	require.NoError(t, cache.RecordSale(ctx, "2024-03-01", "M001", 1))
	require.NoError(t, cache.RecordSale(ctx, "2024-03-01", "M003", 1))
	require.NoError(t, cache.RecordSale(ctx, "2024-03-02", "M003", 9))

	top, err := cache.TopSellers(ctx, "2024-03-01", 2)
	require.NoError(t, err)
	assert.Equal(t, []domain.SalesRank{
		{MenuID: "M002", Quantity: 5},
		{MenuID: "M001", Quantity: 3},
	}, top)
	assert.Equal(t, 7*24*time.Hour, mr.TTL("sales:daily:2024-03-01"))

	empty, err := cache.TopSellers(ctx, "2024-01-01", 5)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRedisCache_Unavailable(t *testing.T) {
	cache, mr := setupRedis(t)
	mr.Close()

	_, err := cache.Exists(context.Background(), cache.FeedbackMarkerKey("O001"))
	assert.Error(t, err)
}
