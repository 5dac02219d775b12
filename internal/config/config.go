package config

import (
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LedgerConfig struct {
	MaxRetries   int
	RetryBackoff time.Duration
	LockTimeout  time.Duration
}

type Config struct {
	Server         ServerConfig
	Ledger         LedgerConfig
	StoreDriver    string // "postgres" or "memory"
	AuthEnabled    bool
	JWTSecret      string
	IdempotencyTTL time.Duration
	LogLevel       string
	LogEncoding    string
}

// BindEnv maps environment variables onto viper keys and reads an optional
// .env file. Environment variables win over the file.
func BindEnv() error {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("store.driver", "STORE_DRIVER")
	viper.BindEnv("auth.enabled", "AUTH_ENABLED")
	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("ledger.max_retries", "LEDGER_MAX_RETRIES")
	viper.BindEnv("ledger.retry_backoff", "LEDGER_RETRY_BACKOFF")
	viper.BindEnv("ledger.lock_timeout", "LEDGER_LOCK_TIMEOUT")
	viper.BindEnv("idempotency.ttl", "IDEMPOTENCY_TTL")
	viper.BindEnv("log.level", "LOG_LEVEL")
	viper.BindEnv("log.encoding", "LOG_ENCODING")

	return viper.ReadInConfig()
}

// Load returns the service configuration with defaults applied.
func Load() *Config {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 15*time.Second)
	viper.SetDefault("server.idle_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 30*time.Second)
	viper.SetDefault("store.driver", "postgres")
	viper.SetDefault("auth.enabled", true)
	viper.SetDefault("ledger.max_retries", 3)
	viper.SetDefault("ledger.retry_backoff", 50*time.Millisecond)
	viper.SetDefault("ledger.lock_timeout", 5*time.Second)
	viper.SetDefault("idempotency.ttl", 24*time.Hour)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.encoding", "json")

	return &Config{
		Server: ServerConfig{
			Port:            viper.GetString("server.port"),
			ReadTimeout:     viper.GetDuration("server.read_timeout"),
			WriteTimeout:    viper.GetDuration("server.write_timeout"),
			IdleTimeout:     viper.GetDuration("server.idle_timeout"),
			ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
		},
		Ledger: LedgerConfig{
			MaxRetries:   viper.GetInt("ledger.max_retries"),
			RetryBackoff: viper.GetDuration("ledger.retry_backoff"),
			LockTimeout:  viper.GetDuration("ledger.lock_timeout"),
		},
		StoreDriver:    viper.GetString("store.driver"),
		AuthEnabled:    viper.GetBool("auth.enabled"),
		JWTSecret:      viper.GetString("jwt.secret_key"),
		IdempotencyTTL: viper.GetDuration("idempotency.ttl"),
		LogLevel:       viper.GetString("log.level"),
		LogEncoding:    viper.GetString("log.encoding"),
	}
}
