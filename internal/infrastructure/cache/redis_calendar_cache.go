package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/application/production"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/application/sales"
	"github.com/ryannnnnnnnnns/Confeitaria/internal/infrastructure/config"
	"go.uber.org/zap"
)

const (
	productionFeed = "calendar:production"
	salesFeed      = "calendar:sales"
)

// RedisCalendarCache caches the production and sales calendar feeds in
// Redis. It is best effort throughout: Redis failures are logged and
// reported as cache misses, never surfaced to the caller.
//
// Keys are grouped per feed in a Redis set so invalidation can drop all
// cached periods of one feed without touching the other.
type RedisCalendarCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCalendarCache creates a calendar cache connected to Redis
func NewRedisCalendarCache(cfg *config.RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisCalendarCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCalendarCacheWithClient(client, ttl, logger), nil
}

// NewRedisCalendarCacheWithClient creates a cache over an existing
// client. Useful for testing or when sharing a client.
func NewRedisCalendarCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCalendarCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCalendarCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Close closes the underlying Redis client
func (c *RedisCalendarCache) Close() error {
	return c.client.Close()
}

func periodKey(feed string, from, to time.Time) string {
	return fmt.Sprintf("%s:%s:%s", feed, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (c *RedisCalendarCache) get(ctx context.Context, feed string, from, to time.Time, dest any) bool {
	data, err := c.client.Get(ctx, periodKey(feed, from, to)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("calendar cache read failed", zap.String("feed", feed), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("calendar cache entry corrupted", zap.String("feed", feed), zap.Error(err))
		return false
	}
	return true
}

func (c *RedisCalendarCache) set(ctx context.Context, feed string, from, to time.Time, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("calendar cache marshal failed", zap.String("feed", feed), zap.Error(err))
		return
	}

	key := periodKey(feed, from, to)
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, feed+":keys", key)
	pipe.Expire(ctx, feed+":keys", c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("calendar cache write failed", zap.String("feed", feed), zap.Error(err))
	}
}

func (c *RedisCalendarCache) invalidate(ctx context.Context, feed string) {
	setKey := feed + ":keys"
	keys, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil {
		c.logger.Warn("calendar cache invalidation failed", zap.String("feed", feed), zap.Error(err))
		return
	}
	keys = append(keys, setKey)
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("calendar cache invalidation failed", zap.String("feed", feed), zap.Error(err))
	}
}

// GetProductionEvents returns the cached production feed for a period
func (c *RedisCalendarCache) GetProductionEvents(ctx context.Context, from, to time.Time) ([]production.CalendarEventResponse, bool) {
	var events []production.CalendarEventResponse
	if !c.get(ctx, productionFeed, from, to, &events) {
		return nil, false
	}
	return events, true
}

// SetProductionEvents caches the production feed for a period
func (c *RedisCalendarCache) SetProductionEvents(ctx context.Context, from, to time.Time, events []production.CalendarEventResponse) {
	c.set(ctx, productionFeed, from, to, events)
}

// InvalidateProduction drops every cached production period
func (c *RedisCalendarCache) InvalidateProduction(ctx context.Context) {
	c.invalidate(ctx, productionFeed)
}

// GetSaleEvents returns the cached sales feed for a period
func (c *RedisCalendarCache) GetSaleEvents(ctx context.Context, from, to time.Time) ([]sales.CalendarEventResponse, bool) {
	var events []sales.CalendarEventResponse
	if !c.get(ctx, salesFeed, from, to, &events) {
		return nil, false
	}
	return events, true
}

// SetSaleEvents caches the sales feed for a period
func (c *RedisCalendarCache) SetSaleEvents(ctx context.Context, from, to time.Time, events []sales.CalendarEventResponse) {
	c.set(ctx, salesFeed, from, to, events)
}

// InvalidateSales drops every cached sales period
func (c *RedisCalendarCache) InvalidateSales(ctx context.Context) {
	c.invalidate(ctx, salesFeed)
}

var (
	_ production.CalendarCache = (*RedisCalendarCache)(nil)
	_ sales.CalendarCache      = (*RedisCalendarCache)(nil)
)
