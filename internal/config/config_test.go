package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "jwt")
	t.Setenv("PAYSTACK_SECRET_KEY", "sk")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.HTTP.ServeTimeout)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "https://api.paystack.co", cfg.Paystack.BaseURL)
	assert.Equal(t, "X-Paystack-Signature", cfg.Paystack.SignatureHeader)
	assert.Equal(t, time.Minute, cfg.Sweep.Interval)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "jwt")
	t.Setenv("PAYSTACK_SECRET_KEY", "sk")
	t.Setenv("STORE", "memory")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PSQL_MAX_CONNS", "16")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, int32(16), cfg.Psql.MaxConns)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejects(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("PAYSTACK_SECRET_KEY", "sk")
	_, err := Load()
	assert.ErrorContains(t, err, "AUTH_JWT_SECRET")

	t.Setenv("AUTH_JWT_SECRET", "jwt")
	t.Setenv("STORE", "sqlite")
	_, err = Load()
	assert.ErrorContains(t, err, "STORE")
}
