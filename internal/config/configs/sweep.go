package configs

import "time"

// Sweep configures the periodic campaign expiry job.
type Sweep struct {
	Interval time.Duration `env:"INTERVAL" envDefault:"1m"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
}
