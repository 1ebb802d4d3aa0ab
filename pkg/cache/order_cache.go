package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultOrderCacheTTL applies when OrderCache is built with a zero TTL.
	DefaultOrderCacheTTL = 24 * time.Hour

	orderCacheKeyPrefix = "order"
)

// CachedLineItem is one line of a CachedOrder.
type CachedLineItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Size        string `json:"size"`
	UnitPrice   int64  `json:"price"`
	LineTotal   int64  `json:"line_total"`
}

// CachedOrder is the denormalized read model stored in Redis as a hash.
// Items are kept as a single JSON field.
type CachedOrder struct {
	ID        string
	Items     []CachedLineItem
	Total     int64
	Currency  string
	Status    string
	CreatedAt time.Time
}

// OrderCache provides read/write access to cached orders.
// Key format: "order:{orderID}"
type OrderCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewOrderCache creates an OrderCache backed by r. A zero ttl uses DefaultOrderCacheTTL.
func NewOrderCache(r *RedisClient, ttl time.Duration) *OrderCache {
	if ttl <= 0 {
		ttl = DefaultOrderCacheTTL
	}
	return &OrderCache{client: r, ttl: ttl}
}

// Get retrieves a cached order.
// Returns redis.Nil when the key does not exist or has expired.
func (c *OrderCache) Get(ctx context.Context, orderID string) (*CachedOrder, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(orderID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	total, err := strconv.ParseInt(vals["total"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse total: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	var items []CachedLineItem
	if err := json.Unmarshal([]byte(vals["items"]), &items); err != nil {
		return nil, fmt.Errorf("cache parse items: %w", err)
	}

	return &CachedOrder{
		ID:        vals["id"],
		Items:     items,
		Total:     total,
		Currency:  vals["currency"],
		Status:    vals["status"],
		CreatedAt: createdAt,
	}, nil
}

// Set writes order as a Redis hash and sets its TTL in one pipeline.
func (c *OrderCache) Set(ctx context.Context, order *CachedOrder) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("cache encode items: %w", err)
	}
	key := c.key(order.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, key,
		"id", order.ID,
		"items", string(items),
		"total", strconv.FormatInt(order.Total, 10),
		"currency", order.Currency,
		"status", order.Status,
		"created_at", order.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached order.
func (c *OrderCache) Delete(ctx context.Context, orderID string) error {
	if err := c.client.Client().Del(ctx, c.key(orderID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *OrderCache) key(orderID string) string {
	return orderCacheKeyPrefix + ":" + orderID
}
