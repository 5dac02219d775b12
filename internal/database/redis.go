package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/simplebank/backend/internal/logger"
	"github.com/spf13/viper"
)

// InitRedis initializes Redis client with config. It returns nil when Redis
// is unreachable; idempotency and transfer events are then disabled.
func InitRedis() *redis.Client {
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	addr := viper.GetString("redis.host") + ":" + viper.GetString("redis.port")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnf("[REDIS] connection to %s failed, continuing without Redis: %v", addr, err)
		rdb.Close()
		return nil
	}

	logger.Infof("[REDIS] connection established to %s", addr)
	return rdb
}