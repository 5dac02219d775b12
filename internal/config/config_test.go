package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg := Load()
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.True(t, cfg.AuthEnabled)
	assert.Equal(t, 3, cfg.Ledger.MaxRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.Ledger.RetryBackoff)
	assert.Equal(t, 5*time.Second, cfg.Ledger.LockTimeout)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("store.driver", "memory")
	viper.Set("ledger.max_retries", 7)
	viper.Set("ledger.lock_timeout", "250ms")
	viper.Set("auth.enabled", false)
	viper.Set("jwt.secret_key", "test-secret")

	cfg := Load()
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 7, cfg.Ledger.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Ledger.LockTimeout)
	assert.False(t, cfg.AuthEnabled)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestBindEnv(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("LEDGER_MAX_RETRIES", "9")
	t.Setenv("PORT", "9090")

	// no .env in the package directory
	assert.Error(t, BindEnv())

	cfg := Load()
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 9, cfg.Ledger.MaxRetries)
	assert.Equal(t, "9090", cfg.Server.Port)
}
