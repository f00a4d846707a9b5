package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"adserve/internal/config/configs"
)

// Store selects the repository implementation.
type Store string

const (
	StorePostgres Store = "postgres"
	StoreMemory   Store = "memory"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is
	// attached to every log line.
	Env string `env:"ENV" envDefault:"prod"`

	// Store is postgres in any real deployment; memory keeps all state in
	// process and is meant for local runs.
	Store Store `env:"STORE" envDefault:"postgres"`

	// HTTP holds configuration for the HTTP server. Environment variables
	// prefixed with HTTP_ will populate this struct.
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger. Environment variables prefixed
	// with LOG_ will populate this struct.
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the PostgreSQL connection. Environment variables
	// prefixed with PSQL_ will populate this struct.
	Psql configs.Postgres `envPrefix:"PSQL_"`

	Redis    configs.Redis    `envPrefix:"REDIS_"`
	Paystack configs.Paystack `envPrefix:"PAYSTACK_"`
	Auth     configs.Auth     `envPrefix:"AUTH_"`
	Sweep    configs.Sweep    `envPrefix:"SWEEP_"`
}

// Load reads configuration from environment variables into a Config. If
// parsing fails, an error is returned. All fields are loaded with their
// specified defaults when no environment variable is provided.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.Store {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required")
	}
	if c.Paystack.SecretKey == "" {
		return fmt.Errorf("PAYSTACK_SECRET_KEY is required")
	}
	return nil
}
