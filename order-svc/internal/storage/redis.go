package storage

import (
	"context"
	"time"

	"restorify/order-svc/internal/domain"
	"restorify/order-svc/internal/service"

	"github.com/redis/go-redis/v9"
)

const salesRetention = 7 * 24 * time.Hour

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

var (
	_ service.FeedbackMarker = (*RedisCache)(nil)
	_ service.SalesStore     = (*RedisCache)(nil)
)

func (c *RedisCache) FeedbackMarkerKey(orderID string) string {
	return "feedback:order:" + orderID
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	res, err := c.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (c *RedisCache) SetMarker(ctx context.Context, key string) error {
	return c.Client.Set(ctx, key, "1", c.TTL).Err()
}

func salesKey(date string) string {
	return "sales:daily:" + date
}

// RecordSale adds quantity to the menu item's score for the day. Daily keys expire after a week.
func (c *RedisCache) RecordSale(ctx context.Context, date, menuID string, quantity int) error {
	key := salesKey(date)
	pipe := c.Client.TxPipeline()
	pipe.ZIncrBy(ctx, key, float64(quantity), menuID)
	pipe.Expire(ctx, key, salesRetention)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *RedisCache) TopSellers(ctx context.Context, date string, limit int) ([]domain.SalesRank, error) {
	members, err := c.Client.ZRevRangeWithScores(ctx, salesKey(date), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	ranks := make([]domain.SalesRank, 0, len(members))
	for _, member := range members {
		menuID, _ := member.Member.(string)
		ranks = append(ranks, domain.SalesRank{MenuID: menuID, Quantity: int(member.Score)})
	}
	return ranks, nil
}
