package redisadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"adserve/internal/core/domain"
)

const activeZonesKey = "adserve:zones:active"

// ZoneCache implements port.ZoneCache with a single JSON value.
type ZoneCache struct {
	rc  *redis.Client
	ttl time.Duration
}

func NewZoneCache(rc *redis.Client, ttl time.Duration) *ZoneCache {
	return &ZoneCache{rc: rc, ttl: ttl}
}

func (c *ZoneCache) GetActive(ctx context.Context) ([]domain.Zone, bool, error) {
	raw, err := c.rc.Get(ctx, activeZonesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read zone cache: %w", err)
	}
	var zones []domain.Zone
	if err = json.Unmarshal(raw, &zones); err != nil {
		// a value we cannot decode is treated as a miss and overwritten
		return nil, false, nil
	}
	return zones, true, nil
}

func (c *ZoneCache) SetActive(ctx context.Context, zones []domain.Zone) error {
	raw, err := json.Marshal(zones)
	if err != nil {
		return err
	}
	if err = c.rc.Set(ctx, activeZonesKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("write zone cache: %w", err)
	}
	return nil
}

func (c *ZoneCache) Invalidate(ctx context.Context) error {
	if err := c.rc.Del(ctx, activeZonesKey).Err(); err != nil {
		return fmt.Errorf("invalidate zone cache: %w", err)
	}
	return nil
}
