package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const slotCachePrefix = "slots:"

// SlotCache caches availability responses in Redis. Every date carries a
// version counter that mutations bump, so stale entries simply stop being
// addressed instead of needing a scan-and-delete. A nil *SlotCache is a
// valid no-op cache.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSlotCache returns nil when no Redis client is configured, which
// disables caching entirely.
func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	if client == nil {
		return nil
	}
	return &SlotCache{client: client, ttl: ttl}
}

func (c *SlotCache) key(ctx context.Context, date, service, dentist string) string {
	version, err := c.client.Get(ctx, slotCachePrefix+"ver:"+date).Result()
	if err != nil {
		version = "0"
	}
	return fmt.Sprintf("%sv%s:%s:%s:%s", slotCachePrefix, version, date, service, dentist)
}

// Get returns the cached availability response, if any. Cache errors are
// treated as misses.
func (c *SlotCache) Get(ctx context.Context, date, service, dentist string) (*models.AvailableSlotsResponse, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, c.key(ctx, date, service, dentist)).Result()
	if err != nil {
		return nil, false
	}
	var resp models.AvailableSlotsResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// Set stores an availability response under the date's current version.
func (c *SlotCache) Set(ctx context.Context, date, service, dentist string, resp models.AvailableSlotsResponse) {
	if c == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(ctx, date, service, dentist), data, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("slot cache set failed", zap.String("date", date), zap.Error(err))
	}
}

// Invalidate bumps the date's version so all cached responses for it expire
// from view immediately.
func (c *SlotCache) Invalidate(ctx context.Context, date string) {
	if c == nil {
		return
	}
	if err := c.client.Incr(ctx, slotCachePrefix+"ver:"+date).Err(); err != nil {
		utils.GetLogger().Warn("slot cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}
