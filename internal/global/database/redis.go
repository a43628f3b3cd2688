package database

import (
	"context"
	"time"

	"lab-website/config"
	"lab-website/internal/global/sentry/tracing"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedis 仅在会话存储配置为 redis 时调用
func InitRedis() error {
	cfg := config.Get()
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if tracing.IsEnabled() {
		threshold := time.Duration(cfg.Sentry.Tracing.RedisSlowThresholdMs) * time.Millisecond
		client.AddHook(tracing.NewRedisSentryHook(threshold))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return err
	}
	RDB = client
	return nil
}
