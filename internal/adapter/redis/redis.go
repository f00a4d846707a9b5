// Package redisadapter holds the Redis backed zone cache and sweep lock.
package redisadapter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"adserve/internal/config/configs"
)

// NewClient connects to cfg.URL and pings it. It returns nil, nil when Redis
// is not configured.
func NewClient(ctx context.Context, cfg configs.Redis) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
