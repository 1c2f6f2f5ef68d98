package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bpims/pos-api/internal/domain/entity"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// RedisCatalogCache is a CatalogCache backed by Redis.
type RedisCatalogCache struct {
	client *redis.Client
}

// NewRedisCatalogCache creates a Redis-backed catalog cache.
func NewRedisCatalogCache(addr, password string, db int) *RedisCatalogCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisCatalogCache{client: client}
}

// Ping verifies the Redis connection.
func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

func itemKey(id uuid.UUID) string {
	return "catalog:item:" + id.String()
}

// cachedItem is the wire form stored in Redis. The entity's public JSON
// form renders money as decimals, so the cents fields are carried here
// explicitly to survive the round trip.
type cachedItem struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	Category   string    `json:"category"`
	Price      int64     `json:"price_cents"`
	Cost       int64     `json:"cost_cents"`
	SellByUnit bool      `json:"sell_by_unit"`
}

func (c *RedisCatalogCache) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, bool, error) {
	val, err := c.client.Get(ctx, itemKey(id)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var ci cachedItem
	if err := json.Unmarshal([]byte(val), &ci); err != nil {
		return nil, false, err
	}
	return &entity.Item{
		ID:         ci.ID,
		Name:       ci.Name,
		Code:       ci.Code,
		Category:   ci.Category,
		Price:      ci.Price,
		Cost:       ci.Cost,
		SellByUnit: ci.SellByUnit,
	}, true, nil
}

func (c *RedisCatalogCache) SetItem(ctx context.Context, item *entity.Item, ttl time.Duration) error {
	if item == nil {
		return nil
	}
	payload, err := json.Marshal(cachedItem{
		ID:         item.ID,
		Name:       item.Name,
		Code:       item.Code,
		Category:   item.Category,
		Price:      item.Price,
		Cost:       item.Cost,
		SellByUnit: item.SellByUnit,
	})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, itemKey(item.ID), payload, ttl).Err()
}

func (c *RedisCatalogCache) InvalidateItem(ctx context.Context, id uuid.UUID) error {
	return c.client.Del(ctx, itemKey(id)).Err()
}
