package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/voiceshop/pkg/cache"
	"github.com/ghuser/voiceshop/pkg/logger"
	shopdomain "github.com/ghuser/voiceshop/services/shop/domain"
	"github.com/ghuser/voiceshop/services/shop/domain/models"
)

const cacheWarmTimeout = 2 * time.Second

// OrderQueryService serves order reads. Lookups by id go through the Redis
// read model when one is configured; the ledger stays the source of truth.
type OrderQueryService struct {
	ledger *OrderLedger
	cache  *pkgcache.OrderCache // nil disables caching
	log    logger.Logger
}

// NewOrderQueryService returns an OrderQueryService. orderCache may be nil.
func NewOrderQueryService(ledger *OrderLedger, orderCache *pkgcache.OrderCache, log logger.Logger) *OrderQueryService {
	return &OrderQueryService{ledger: ledger, cache: orderCache, log: log}
}

// Last returns the most recent order or ErrOrderNotFound when none exist.
func (s *OrderQueryService) Last() (models.Order, error) {
	o, ok := s.ledger.GetLast()
	if !ok {
		return models.Order{}, shopdomain.ErrOrderNotFound
	}
	return o, nil
}

// GetByID retrieves an order using a read-through cache:
//  1. Check Redis first.
//  2. On miss (or cache error), ask the ledger.
//  3. Warm the cache with the ledger's answer in the background.
func (s *OrderQueryService) GetByID(ctx context.Context, id string) (models.Order, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCachedOrder(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "order cache read failed", "order_id", id, "error", err)
		}
	}

	order, err := s.ledger.Get(id)
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}

	if s.cache != nil {
		go func() {
			warmCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWarmTimeout)
			defer cancel()
			if err := s.Warm(warmCtx, order); err != nil {
				s.log.WarnContext(warmCtx, "order cache warm failed", "order_id", order.ID, "error", err)
			}
		}()
	}
	return order, nil
}

// Warm writes order into the cache. It is a no-op without a cache.
func (s *OrderQueryService) Warm(ctx context.Context, order models.Order) error {
	return NewOrderCacheWarmer(s.cache).Warm(ctx, order)
}

// OrderCacheWarmer fills the order cache without touching the ledger. The
// worker uses it so it never has to load the order history.
type OrderCacheWarmer struct {
	cache *pkgcache.OrderCache
}

// NewOrderCacheWarmer returns a warmer over orderCache, which may be nil.
func NewOrderCacheWarmer(orderCache *pkgcache.OrderCache) *OrderCacheWarmer {
	return &OrderCacheWarmer{cache: orderCache}
}

// Warm writes order into the cache. It is a no-op without a cache.
func (w *OrderCacheWarmer) Warm(ctx context.Context, order models.Order) error {
	if w.cache == nil {
		return nil
	}
	return w.cache.Set(ctx, toCachedOrder(order))
}

func toCachedOrder(o models.Order) *pkgcache.CachedOrder {
	items := make([]pkgcache.CachedLineItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = pkgcache.CachedLineItem(it)
	}
	return &pkgcache.CachedOrder{
		ID:        o.ID,
		Items:     items,
		Total:     o.Total,
		Currency:  o.Currency,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

func fromCachedOrder(c *pkgcache.CachedOrder) models.Order {
	items := make([]models.LineItem, len(c.Items))
	for i, it := range c.Items {
		items[i] = models.LineItem(it)
	}
	return models.Order{
		ID:        c.ID,
		Items:     items,
		Total:     c.Total,
		Currency:  c.Currency,
		CreatedAt: c.CreatedAt,
		Status:    c.Status,
	}
}
