package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

// AvailabilityRedis caches computed slots per (business, date) generation.
// Invalidate bumps the generation so every key for that day goes stale at once.
type AvailabilityRedis struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewAvailabilityRedis(rdb *redis.Client, ttl time.Duration) *AvailabilityRedis {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &AvailabilityRedis{rdb: rdb, ttl: ttl, prefix: "avail"}
}

func (c *AvailabilityRedis) versionKey(businessID uint, date string) string {
	return fmt.Sprintf("%s:ver:%d:%s", c.prefix, businessID, date)
}

func (c *AvailabilityRedis) dataKey(ver int64, k domain.AvailabilityKey) string {
	return fmt.Sprintf("%s:%d:%s:v%d:s%d:d%d:i%d:r%s",
		c.prefix, k.BusinessID, k.Date, ver, k.StaffID, k.DurationMinutes, k.IntervalMinutes, k.Resource)
}

func (c *AvailabilityRedis) version(ctx context.Context, businessID uint, date string) (int64, error) {
	v, err := c.rdb.Get(ctx, c.versionKey(businessID, date)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func (c *AvailabilityRedis) Get(ctx context.Context, key domain.AvailabilityKey) ([]domain.TimeSlot, bool) {
	ver, err := c.version(ctx, key.BusinessID, key.Date)
	if err != nil {
		logger.Warn("availability cache version read failed", "err", err)
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.dataKey(ver, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("availability cache read failed", "err", err)
		}
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityRedis) Set(ctx context.Context, key domain.AvailabilityKey, slots []domain.TimeSlot) {
	ver, err := c.version(ctx, key.BusinessID, key.Date)
	if err != nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, c.dataKey(ver, key), raw, c.ttl).Err(); err != nil {
		logger.Warn("availability cache write failed", "err", err)
	}
}

func (c *AvailabilityRedis) Invalidate(ctx context.Context, businessID uint, date string) {
	key := c.versionKey(businessID, date)
	pipe := c.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 48*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("availability cache invalidation failed", "business_id", businessID, "date", date, "err", err)
	}
}

// Noop is used when no redis is configured.
type Noop struct{}

func (Noop) Get(context.Context, domain.AvailabilityKey) ([]domain.TimeSlot, bool) {
	return nil, false
}
func (Noop) Set(context.Context, domain.AvailabilityKey, []domain.TimeSlot) {}
func (Noop) Invalidate(context.Context, uint, string)                       {}

var (
	_ domain.AvailabilityCache = (*AvailabilityRedis)(nil)
	_ domain.AvailabilityCache = Noop{}
)

// NewClient parses a redis:// URL.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}
