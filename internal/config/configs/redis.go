package configs

import "time"

// Redis configures the optional Redis connection used for the zone cache
// and the expiry sweep lock. An empty URL runs without Redis.
type Redis struct {
	URL          string        `env:"URL"`
	ZoneCacheTTL time.Duration `env:"ZONE_CACHE_TTL" envDefault:"30s"`
	LockTTL      time.Duration `env:"LOCK_TTL" envDefault:"1m"`
}

func (c Redis) Enabled() bool {
	return c.URL != ""
}
